package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/formlytic/formlytic-api/docs"
	"github.com/formlytic/formlytic-api/internal/auth"
	"github.com/formlytic/formlytic-api/internal/config"
	"github.com/formlytic/formlytic-api/internal/database"
	"github.com/formlytic/formlytic-api/internal/email"
	"github.com/formlytic/formlytic-api/internal/http/handler"
	"github.com/formlytic/formlytic-api/internal/http/middleware"
	"github.com/formlytic/formlytic-api/internal/http/router"
	"github.com/formlytic/formlytic-api/internal/jobs"
	"github.com/formlytic/formlytic-api/internal/logger"
	"github.com/formlytic/formlytic-api/internal/repository"
	"github.com/formlytic/formlytic-api/internal/service"
	"github.com/formlytic/formlytic-api/internal/storage"
	"go.uber.org/zap"
)

// @title Formlytic API
// @version 1.0
// @description Form and quiz builder API: forms, public submissions, analytics, quizzes and billing

// @contact.name API Support
// @contact.email support@formlytic.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for system operations

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	if host := os.Getenv("SWAGGER_HOST"); host != "" {
		docs.SwaggerInfo.Host = host
	} else {
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// In staging/production secrets may come from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	fileStorage, err := storage.NewStorage(ctx, &cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	sender, err := email.NewSender(&cfg.Email, log)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	formRepo := repository.NewFormRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	responseRepo := repository.NewResponseRepository(db)
	fileRepo := repository.NewFileRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	// Initialize services
	baseURL := cfg.App.PublicBaseURL
	authService := service.NewAuthService(userRepo, auth.NewTokenIssuer(&cfg.Auth), cfg.Auth.BcryptCost, log)
	formService := service.NewFormService(formRepo, questionRepo, fileRepo, fileStorage, baseURL, log)
	questionService := service.NewQuestionService(formRepo, questionRepo, log)
	responseService := service.NewResponseService(formRepo, questionRepo, responseRepo, userRepo, sender, baseURL, log)
	fileService := service.NewFileService(formRepo, questionRepo, fileRepo, fileStorage,
		cfg.Storage.MaxUploadBytes(), cfg.Storage.AllowedContentTypes, log)
	analyticsService := service.NewAnalyticsService(formRepo, questionRepo, responseRepo, log)
	exportService := service.NewExportService(formRepo, questionRepo, responseRepo, log)
	quizService := service.NewQuizService(formRepo, questionRepo, responseRepo, baseURL, log)
	purchaseService := service.NewPurchaseService(purchaseRepo, formRepo, cfg.Billing, log)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, cfg.Billing, log)
	auditLogService := service.NewAuditLogService(auditLogRepo, log)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(auth.NewJWTValidator(&cfg.Auth), cfg.ApiKey.Value, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)
	auditMiddleware := middleware.NewAuditMiddleware(auditLogService, nil, log)

	rt := router.NewRouter(
		cfg,
		log,
		authMiddleware,
		rateLimiter,
		auditMiddleware,
		router.Handlers{
			Health:    handler.NewHealthHandler(db, log),
			Auth:      handler.NewAuthHandler(authService, log),
			Forms:     handler.NewFormHandler(formService, log),
			Questions: handler.NewQuestionHandler(questionService, log),
			Responses: handler.NewResponseHandler(responseService, fileService, log),
			Files:     handler.NewFileHandler(fileService, log),
			Analytics: handler.NewAnalyticsHandler(analyticsService, exportService, log),
			Quizzes:   handler.NewQuizHandler(quizService, log),
			Billing:   handler.NewBillingHandler(purchaseService, subscriptionService, log),
			Audit:     handler.NewAuditHandler(auditLogService, log),
		},
	)

	// Initialize and start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log)
		expiry := jobs.NewSubscriptionExpiryJob(subscriptionService, log, cfg.Jobs.TimeoutDuration())
		if err := expiry.Register(scheduler, cfg.Jobs.SubscriptionExpiryCron); err != nil {
			log.Error("Failed to register subscription expiry job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with subscription expiry job",
				zap.String("cron_expr", cfg.Jobs.SubscriptionExpiryCron),
				zap.Duration("timeout", cfg.Jobs.TimeoutDuration()),
			)
		}
	} else {
		log.Info("Background jobs disabled")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           rt.Setup(),
		ReadTimeout:       cfg.Server.ReadTimeoutDuration(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			<-scheduler.Stop().Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Warn("Error closing database connection", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
