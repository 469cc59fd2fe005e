package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	cfg := fromViper(v)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "/signin", cfg.App.SignInPath)
	assert.Equal(t, "UTC", cfg.App.Timezone)
	assert.Equal(t, time.Hour, cfg.JWT.AccessExpiry)
	assert.Zero(t, cfg.Cache.StaleAfter)
	assert.Equal(t, 10*time.Second, cfg.Cache.FetchTimeout)
	assert.Equal(t, 10, cfg.Dashboard.RecentAppointments)
	assert.Equal(t, 5, cfg.Dashboard.DoctorListLimit)
	assert.Equal(t, 24*time.Hour, cfg.Booking.IdempotencyTTL)
	assert.Equal(t, 30*time.Second, cfg.Booking.DuplicateWindow)
	assert.Equal(t, 2*time.Minute, cfg.Booking.PendingTTL)
	assert.Equal(t, time.Hour, cfg.Cache.IdleTTL)
}

func TestValidate(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)
	assert.EqualError(t, cfg.Validate(), "JWT_SECRET is not set")

	cfg.JWT.Secret = "s3cret"
	assert.NoError(t, cfg.Validate())

	cfg.Cache.IdleTTL = 5 * time.Second
	assert.Error(t, cfg.Validate())

	cfg.Cache.IdleTTL = 0
	assert.NoError(t, cfg.Validate())
}

func TestOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("QUERY_CACHE_STALE_AFTER", "45s")
	v.Set("JWT_ACCESS_EXPIRY", "garbage")
	v.Set("DB_HOST", "db")
	v.Set("DB_USER", "medcare")
	v.Set("DB_PASSWORD", "pw")
	v.Set("DB_NAME", "portal")
	cfg := fromViper(v)

	assert.Equal(t, 45*time.Second, cfg.Cache.StaleAfter)
	assert.Equal(t, time.Hour, cfg.JWT.AccessExpiry)
	assert.Equal(t, "pgx5://medcare:pw@db:5432/portal?sslmode=disable", cfg.DB.URL())
	assert.Equal(t, "host=db user=medcare password=pw dbname=portal port=5432 sslmode=disable TimeZone=Asia/Jakarta", cfg.DB.DSN("Asia/Jakarta"))
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
}
