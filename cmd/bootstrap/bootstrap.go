package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salon-booking-api/config"
	deliveryHttp "salon-booking-api/internal/delivery/http"
	"salon-booking-api/internal/delivery/http/handler"
	"salon-booking-api/internal/delivery/http/middleware"
	"salon-booking-api/internal/domain/entity"
	domainRepo "salon-booking-api/internal/domain/repository"
	"salon-booking-api/internal/infrastructure/cache"
	"salon-booking-api/internal/infrastructure/database"
	"salon-booking-api/internal/integrations/paystack"
	"salon-booking-api/internal/repository"
	"salon-booking-api/internal/service"
	"salon-booking-api/internal/usecase"
	"salon-booking-api/pkg/jwt"
	"salon-booking-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// reconcileInterval is how often the background ledger sweep runs
const reconcileInterval = 1 * time.Hour

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server

	ledger        *service.SlotLedger
	stopReconcile chan struct{}
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{
		stopReconcile: make(chan struct{}),
	}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server, ledger, err := initializeServer(cfg, db, redisClient)
	if err != nil {
		return nil, err
	}
	app.Server = server
	app.ledger = ledger

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// migrate creates or updates the schema for every entity
func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.StyleCategory{},
		&entity.Style{},
		&entity.BookableDate{},
		&entity.Appointment{},
		&entity.Payment{},
		&entity.Settings{},
		&entity.AuditLog{},
	)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, *service.SlotLedger, error) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	apptRepo := repository.NewAppointmentRepository()
	dateRepo := repository.NewBookableDateRepository()
	styleRepo := repository.NewStyleRepository()
	categoryRepo := repository.NewStyleCategoryRepository()
	settingsRepo := repository.NewSettingsRepository()
	auditRepo := repository.NewAuditLogRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize services
	auditService := service.NewAuditService(db, log, auditRepo)
	ledger := service.NewSlotLedger(db, log, dateRepo, apptRepo)
	queryCache := service.NewQueryCache(service.DefaultCacheTTL)
	gateway := paystack.NewClient(cfg.Payment, log)

	// Initialize usecases
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, apptRepo, styleRepo, settingsRepo, ledger, queryCache, auditService)
	paymentUsecase := usecase.NewPaymentUsecase(db, log, gateway, appointmentUsecase, apptRepo, settingsRepo, cfg.Payment.CallbackURL)
	dateUsecase := usecase.NewBookableDateUsecase(db, log, dateRepo, ledger, queryCache, auditService)
	styleUsecase := usecase.NewStyleUsecase(db, log, styleRepo, queryCache, auditService)
	categoryUsecase := usecase.NewCategoryUsecase(db, log, categoryRepo, styleRepo, queryCache, auditService)
	settingsUsecase := usecase.NewSettingsUsecase(db, log, settingsRepo, auditService)
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, jwtService, redisClient, auditService)

	// Seed the settings singleton and the initial admin account
	if _, err := settingsRepo.Get(db); err != nil {
		return nil, nil, fmt.Errorf("failed to seed settings: %w", err)
	}
	if err := seedAdmin(db, userRepo, cfg.Admin, log); err != nil {
		return nil, nil, fmt.Errorf("failed to seed admin account: %w", err)
	}

	// Repair the slot counters before taking traffic
	if err := ledger.Reconcile(context.Background()); err != nil {
		return nil, nil, fmt.Errorf("failed initial ledger reconcile: %w", err)
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	paymentHandler := handler.NewPaymentHandler(paymentUsecase, customValidator)
	dateHandler := handler.NewDateHandler(dateUsecase, customValidator)
	styleHandler := handler.NewStyleHandler(styleUsecase, customValidator)
	categoryHandler := handler.NewCategoryHandler(categoryUsecase, customValidator)
	settingsHandler := handler.NewSettingsHandler(settingsUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		appointmentHandler,
		paymentHandler,
		dateHandler,
		styleHandler,
		categoryHandler,
		settingsHandler,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
	return server, ledger, nil
}

// seedAdmin creates the first admin account when the users table is empty
func seedAdmin(db *gorm.DB, userRepo domainRepo.UserRepository, cfg config.AdminConfig, log *logrus.Logger) error {
	if cfg.Email == "" || cfg.Password == "" {
		return nil
	}

	count, err := userRepo.Count(db)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	active := true
	admin := &entity.User{
		Email:    cfg.Email,
		Password: string(hashedPassword),
		FullName: "Administrator",
		IsActive: &active,
	}
	if err := userRepo.Create(db, admin); err != nil {
		return err
	}

	log.Infof("Seeded initial admin account %s", cfg.Email)
	return nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Periodic ledger reconciliation
	go app.reconcileLoop()

	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// reconcileLoop sweeps the slot ledger on a fixed interval until shutdown
func (app *App) reconcileLoop() {
	ticker := time.NewTicker(reconcileInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
			if err := app.ledger.Reconcile(ctx); err != nil {
				logrus.Errorf("Scheduled ledger reconcile failed: %v", err)
			}
			cancel()
		case <-app.stopReconcile:
			return
		}
	}
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	close(app.stopReconcile)

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
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
}
