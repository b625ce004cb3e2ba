package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/bhaskarverma12/kodebank/docs"
	"github.com/bhaskarverma12/kodebank/internal/config"
	"github.com/bhaskarverma12/kodebank/internal/handlers"
	"github.com/bhaskarverma12/kodebank/internal/logger"
	"github.com/bhaskarverma12/kodebank/internal/middleware"
	"github.com/bhaskarverma12/kodebank/internal/repositories"
	"github.com/bhaskarverma12/kodebank/internal/services"
	"github.com/bhaskarverma12/kodebank/internal/token"
)

// @title KodeBank Account API
// @version 1.0
// @description API for account registration, authentication and balance queries

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	// Load configuration; a missing signing secret or DB setting is fatal here
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting KodeBank Account Service")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize session token generator with the process-wide secret
	tokenGenerator := token.NewTokenGenerator(cfg.JWT.Secret, cfg.JWT.TokenTTL)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	sessionTokenRepo := repositories.NewSessionTokenRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, sessionTokenRepo, tokenGenerator, logger.Logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, logger.Logger, cfg.JWT.TokenTTL)
	balanceHandler := handlers.NewBalanceHandler(authService, logger.Logger)
	healthHandler := handlers.NewHealthHandler(logger.Logger)
	tokenCleaningHandler := handlers.NewTokenCleaningHandler(sessionTokenRepo, logger.Logger)

	// Initialize auth middleware
	authMiddleware := middleware.AuthMiddleware(tokenGenerator)
	apiKeyMiddleware := middleware.APIKeyMiddleware(cfg.APIKey)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(logger.Logger))
	r.Use(middleware.RecoveryMiddleware(logger.Logger))
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(middleware.RequestSizeLimitMiddleware(1 * 1024 * 1024)) // 1MB

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Public routes
	healthHandler.RegisterRoutes(r)
	authHandler.RegisterRoutes(r)

	// Protected routes behind token validation
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		balanceHandler.RegisterRoutes(r)
	})

	// Ledger maintenance behind the API key; disabled when no key is configured
	if cfg.APIKey != "" {
		r.Group(func(r chi.Router) {
			r.Use(apiKeyMiddleware)
			tokenCleaningHandler.RegisterRoutes(r)
		})
	}

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "account_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Get the working directory or use migrations folder relative to the binary
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
