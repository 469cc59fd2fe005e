package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medcare-portal/config"
	deliveryHttp "medcare-portal/internal/delivery/http"
	"medcare-portal/internal/delivery/http/handler"
	"medcare-portal/internal/delivery/http/middleware"
	"medcare-portal/internal/infrastructure/cache"
	"medcare-portal/internal/infrastructure/database"
	"medcare-portal/internal/querycache"
	"medcare-portal/internal/repository"
	"medcare-portal/internal/service"
	"medcare-portal/internal/usecase"
	"medcare-portal/pkg/jwt"
	"medcare-portal/pkg/validator"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Log         *logrus.Logger

	sentryEnabled bool
	stopJanitor   context.CancelFunc
}

// New creates a new App instance with all dependencies initialized
func New(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log := SetupLogger(cfg.App)
	app := &App{Config: cfg, Log: log}

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.App.Timezone, err)
	}

	// Initialize Sentry
	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			EnableTracing:    true,
			TracesSampleRate: cfg.Sentry.TracesSampleRate,
			Environment:      cfg.App.Env,
		}); err != nil {
			log.Errorf("Sentry init failed: %v", err)
		} else {
			app.sentryEnabled = true
		}
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	log.Info("Redis connected successfully")

	// Initialize query cache
	queryCache := querycache.New(cfg.Cache, log)
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	app.stopJanitor = stopJanitor
	go queryCache.RunJanitor(janitorCtx)

	// Initialize all layers
	app.Server = initializeServer(cfg, log, db, redisClient, queryCache, location, app.sentryEnabled)

	return app, nil
}

// SetupLogger builds the JSON logger shared by every layer
func SetupLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}

// initializeServer creates and configures the HTTP server
func initializeServer(
	cfg *config.Config,
	log *logrus.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
	queryCache *querycache.Cache,
	location *time.Location,
	sentryEnabled bool,
) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	clock := usecase.NewClock(location)

	// Initialize repositories
	repos := usecase.DashboardRepositories{
		Profile:      repository.NewProfileRepository(),
		Doctor:       repository.NewDoctorRepository(),
		Nurse:        repository.NewNurseRepository(),
		Appointment:  repository.NewAppointmentRepository(),
		Operation:    repository.NewOperationRepository(),
		DutySchedule: repository.NewDutyScheduleRepository(),
	}
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(db, log, auditLogRepo)
	bookingGuard := service.NewBookingGuard(redisClient, log)
	sessionRevocation := service.NewSessionRevocation(redisClient)

	// Initialize usecases
	dashboardUsecase := usecase.NewDashboardUsecase(db, log, queryCache, clock, cfg.Dashboard, repos)
	bookingUsecase := usecase.NewBookingUsecase(
		db, log, queryCache, queryCache, clock, cfg.Booking, customValidator,
		repos.Profile, repos.Appointment, bookingGuard, auditService,
	)
	sessionUsecase := usecase.NewSessionUsecase(log, sessionRevocation, queryCache, auditService)

	// Initialize handlers
	dashboardHandler := handler.NewDashboardHandler(dashboardUsecase)
	bookingHandler := handler.NewBookingHandler(bookingUsecase)
	sessionHandler := handler.NewSessionHandler(sessionUsecase, cfg.App.SignInPath)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, sessionRevocation, log, cfg.App.SignInPath)
	roleMiddleware := middleware.NewRoleMiddleware(dashboardUsecase, log)
	corsMiddleware := middleware.NewCORSMiddleware()
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(
		dashboardHandler,
		bookingHandler,
		sessionHandler,
		authMiddleware,
		roleMiddleware,
		corsMiddleware,
		loggingMiddleware,
	)
	var httpHandler http.Handler = router.Setup()
	if sentryEnabled {
		httpHandler = sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle(httpHandler)
	}

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() error {
	errCh := make(chan error, 1)

	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case <-quit:
	case err := <-errCh:
		runErr = fmt.Errorf("failed to start server: %w", err)
	}

	app.shutdown()
	return runErr
}

func (app *App) shutdown() {
	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.stopJanitor != nil {
		app.stopJanitor()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}

	if app.sentryEnabled {
		sentry.Flush(2 * time.Second)
	}
}
