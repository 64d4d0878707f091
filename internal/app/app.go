package app

import (
	"context"

	"server/config"
	"server/internal/database"
	"server/internal/events"
	"server/internal/handlers/middleware"
	"server/internal/logger"
	"server/internal/repositories"
	"server/internal/services"
	"server/internal/storage"

	applicationController "server/internal/controllers/application"
	authController "server/internal/controllers/auth"
	reviewController "server/internal/controllers/review"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	EventBus   *events.EventBus
	Config     config.Config

	// Services
	TransactionService *services.TransactionService
	SessionService     services.SessionService
	UploadService      *services.UploadService

	// Repositories
	ApplicationRepo repositories.ApplicationRepository
	EvaluatorRepo   repositories.EvaluatorRepository

	// Controllers
	ApplicationController *applicationController.ApplicationController
	ReviewController      *reviewController.ReviewController
	AuthController        *authController.AuthController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events)

	objectStore, err := storage.NewS3Store(context.Background(), config)
	if err != nil {
		return &App{}, log.Err("failed to create object store", err)
	}

	// Initialize services
	transactionService := services.NewTransactionService(db)
	sessionService := services.NewSessionService(db, config)
	uploadService := services.NewUploadService(objectStore, config)

	// Initialize repositories
	applicationRepo := repositories.NewApplication(db)
	evaluatorRepo := repositories.NewEvaluator(db)

	// Initialize controllers with repositories and services
	middleware := middleware.New(sessionService, evaluatorRepo, config)
	applicationController := applicationController.New(applicationRepo, uploadService, eventBus, config)
	reviewController := reviewController.New(applicationRepo, eventBus)
	authController := authController.New(evaluatorRepo, sessionService, config)

	app := &App{
		Database:              db,
		Config:                config,
		Middleware:            middleware,
		EventBus:              eventBus,
		TransactionService:    transactionService,
		SessionService:        sessionService,
		UploadService:         uploadService,
		ApplicationRepo:       applicationRepo,
		EvaluatorRepo:         evaluatorRepo,
		ApplicationController: applicationController,
		ReviewController:      reviewController,
		AuthController:        authController,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.EventBus,
		a.TransactionService,
		a.SessionService,
		a.UploadService,
		a.ApplicationRepo,
		a.EvaluatorRepo,
		a.ApplicationController,
		a.ReviewController,
		a.AuthController,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
