package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/teamfinder/config"
	"github.com/Dosada05/teamfinder/db"
	"github.com/Dosada05/teamfinder/handlers"
	appLogger "github.com/Dosada05/teamfinder/logger"
	"github.com/Dosada05/teamfinder/models"
	"github.com/Dosada05/teamfinder/repositories"
	api "github.com/Dosada05/teamfinder/routes"
	"github.com/Dosada05/teamfinder/services"
	"github.com/Dosada05/teamfinder/storage"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Настройка логгера
	logger, err := appLogger.New(cfg.AppEnv)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("configuration loaded", zap.Int("port", cfg.ServerPort), zap.String("env", cfg.AppEnv))

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", zap.Error(err))
		return err
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", zap.Error(err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Инициализация подписи ссылок для загрузки в бакет
	presigner, err := storage.NewS3Presigner(ctx, storage.S3PresignerConfig{
		Bucket:          cfg.S3Bucket,
		Region:          cfg.S3Region,
		Endpoint:        cfg.S3Endpoint,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
	})
	if err != nil {
		logger.Error("failed to initialize S3 presigner", zap.Error(err))
		return err
	}
	logger.Info("S3 presigner initialized", zap.String("bucket", cfg.S3Bucket))

	// Инициализация репозиториев
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	memberRepo := repositories.NewPostgresMembershipRepository(dbConn)
	applicationRepo := repositories.NewPostgresApplicationRepository(dbConn)
	invitationRepo := repositories.NewPostgresInvitationRepository(dbConn)
	prefsRepo := repositories.NewPostgresEmailPreferencesRepository(dbConn)
	catalogRepo := repositories.NewPostgresCatalogRepository(dbConn)
	logger.Info("repositories initialized")

	// Инициализация сервисов
	authService := services.NewAuthService(userRepo, playerRepo, cfg.JWTSecretKey, cfg.TokenTTL)
	applicationService := services.NewApplicationService(applicationRepo, teamRepo, memberRepo)
	invitationService := services.NewInvitationService(invitationRepo, teamRepo, memberRepo)
	membershipService := services.NewMembershipService(memberRepo)
	prefsService := services.NewEmailPreferencesService(prefsRepo)
	catalogService := services.NewCatalogService(catalogRepo)
	uploadService := services.NewUploadService(presigner)
	logger.Info("services initialized")

	// Инициализация обработчиков HTTP и маршрутов
	router := api.SetupRoutes(api.Options{
		Logger:         logger,
		Resolver:       authService,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		SwaggerEnabled: cfg.SwaggerEnabled,
	}, api.Handlers{
		Health:           handlers.NewHealthHandler(dbConn),
		Auth:             handlers.NewAuthHandler(authService),
		Applications:     handlers.NewApplicationHandler(applicationService),
		Invitations:      handlers.NewInvitationHandler(invitationService),
		Memberships:      handlers.NewMembershipHandler(membershipService),
		EmailPreferences: handlers.NewEmailPreferencesHandler(prefsService),
		Uploads:          handlers.NewUploadHandler(uploadService),
		Regions:          handlers.NewCatalogHandler(catalogService, models.CatalogRegions),
		Positions:        handlers.NewCatalogHandler(catalogService, models.CatalogPositions),
		Interests:        handlers.NewCatalogHandler(catalogService, models.CatalogInterests),
		Languages:        handlers.NewCatalogHandler(catalogService, models.CatalogLanguages),
	})
	logger.Info("routes configured", zap.Bool("swagger", cfg.SwaggerEnabled))

	// Настройка и запуск HTTP-сервера
	errorLog, err := zap.NewStdLogAt(logger, zap.ErrorLevel)
	if err != nil {
		return fmt.Errorf("failed to build server error log: %w", err)
	}
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     errorLog,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Ожидание сигнала завершения
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server", zap.Duration("timeout", shutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", zap.Error(closeErr))
			}
			return err
		}
		logger.Info("server shutdown complete")
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("application stopped with error", zap.Error(err))
		return err
	}
	logger.Info("application exited")
	return nil
}
