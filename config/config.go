package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Sentry    SentryConfig
	Cache     CacheConfig
	Dashboard DashboardConfig
	Booking   BookingConfig
}

type AppConfig struct {
	Port       string
	Env        string
	LogLevel   string
	Timezone   string
	SignInPath string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// JWTConfig describes the tokens minted by the external auth provider.
type JWTConfig struct {
	Secret       string
	Audience     string
	AccessExpiry time.Duration
}

type SentryConfig struct {
	DSN              string
	TracesSampleRate float64
}

type CacheConfig struct {
	// StaleAfter of zero keeps entries fresh until they are invalidated.
	StaleAfter   time.Duration
	FetchTimeout time.Duration
	// IdleTTL drops entries nobody has read for this long. Zero keeps them.
	IdleTTL time.Duration
}

type DashboardConfig struct {
	RecentAppointments int
	DoctorListLimit    int
}

type BookingConfig struct {
	IdempotencyTTL  time.Duration
	DuplicateWindow time.Duration
	// PendingTTL bounds how long an unfinished submission blocks retries.
	PendingTTL time.Duration
}

// DSN builds the PostgreSQL connection string used by gorm and the migrator.
func (c DBConfig) DSN(timezone string) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, timezone,
	)
}

// URL is the pgx5:// form golang-migrate expects.
func (c DBConfig) URL() string {
	return fmt.Sprintf("pgx5://%s:%s@%s:%s/%s?sslmode=%s", c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_TIMEZONE", "UTC")
	v.SetDefault("SIGN_IN_PATH", "/signin")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SENTRY_TRACES_SAMPLE_RATE", 0.2)

	v.SetDefault("DASHBOARD_RECENT_APPOINTMENTS", 10)
	v.SetDefault("DASHBOARD_DOCTOR_LIST_LIMIT", 5)
}

// LoadConfig reads .env when present and lets the environment override it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Port:       v.GetString("APP_PORT"),
			Env:        v.GetString("APP_ENV"),
			LogLevel:   v.GetString("LOG_LEVEL"),
			Timezone:   v.GetString("APP_TIMEZONE"),
			SignInPath: v.GetString("SIGN_IN_PATH"),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			Audience:     v.GetString("JWT_AUDIENCE"),
			AccessExpiry: durationOr(v.GetString("JWT_ACCESS_EXPIRY"), time.Hour),
		},
		Sentry: SentryConfig{
			DSN:              v.GetString("SENTRY_DSN"),
			TracesSampleRate: v.GetFloat64("SENTRY_TRACES_SAMPLE_RATE"),
		},
		Cache: CacheConfig{
			StaleAfter:   durationOr(v.GetString("QUERY_CACHE_STALE_AFTER"), 0),
			FetchTimeout: durationOr(v.GetString("QUERY_CACHE_FETCH_TIMEOUT"), 10*time.Second),
			IdleTTL:      durationOr(v.GetString("QUERY_CACHE_IDLE_TTL"), time.Hour),
		},
		Dashboard: DashboardConfig{
			RecentAppointments: v.GetInt("DASHBOARD_RECENT_APPOINTMENTS"),
			DoctorListLimit:    v.GetInt("DASHBOARD_DOCTOR_LIST_LIMIT"),
		},
		Booking: BookingConfig{
			IdempotencyTTL:  durationOr(v.GetString("BOOKING_IDEMPOTENCY_TTL"), 24*time.Hour),
			DuplicateWindow: durationOr(v.GetString("BOOKING_DUPLICATE_WINDOW"), 30*time.Second),
			PendingTTL:      durationOr(v.GetString("BOOKING_PENDING_TTL"), 2*time.Minute),
		},
	}
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if c.Cache.IdleTTL > 0 && c.Cache.IdleTTL <= c.Cache.FetchTimeout {
		return fmt.Errorf("QUERY_CACHE_IDLE_TTL (%s) must exceed QUERY_CACHE_FETCH_TIMEOUT (%s)", c.Cache.IdleTTL, c.Cache.FetchTimeout)
	}
	return nil
}

// durationOr parses raw and falls back when it is empty or malformed.
func durationOr(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
