package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/services"
)

const (
	APPLICATION_CACHE_EXPIRY = 1 * time.Hour
)

type ApplicationRepository interface {
	Create(ctx context.Context, application *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	GetSummaries(ctx context.Context) ([]ApplicationSummary, error)
	UpdateReview(ctx context.Context, application *Application) error
}

type applicationRepository struct {
	db  database.DB
	log logger.Logger
}

func NewApplication(db database.DB) ApplicationRepository {
	return &applicationRepository{
		db:  db,
		log: logger.New("applicationRepository"),
	}
}

func (r *applicationRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *applicationRepository) Create(ctx context.Context, application *Application) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(application).Error; err != nil {
		return log.Err("failed to create application", err, "email", application.Email)
	}

	if err := r.addToCache(application); err != nil {
		log.Warn("failed to add application to cache", "applicationID", application.ID, "error", err)
	}

	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*Application, error) {
	log := r.log.Function("GetByID")

	var application Application
	if found, err := r.getFromCache(id, &application); err == nil && found {
		return &application, nil
	}

	if err := r.getDB(ctx).First(&application, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, log.Err("failed to get application", err, "id", id)
	}

	if err := r.addToCache(&application); err != nil {
		log.Warn("failed to add application to cache", "applicationID", id, "error", err)
	}

	return &application, nil
}

func (r *applicationRepository) GetSummaries(ctx context.Context) ([]ApplicationSummary, error) {
	log := r.log.Function("GetSummaries")

	var summaries []ApplicationSummary
	err := r.getDB(ctx).
		Model(&Application{}).
		Select("id", "created_at", "full_name", "email", "design_category", "score", "label", "status").
		Order("created_at DESC").
		Find(&summaries).Error
	if err != nil {
		return nil, log.Err("failed to get application summaries", err)
	}

	return summaries, nil
}

// UpdateReview writes only the review columns. Concurrent evaluator
// updates are last-write-wins; the deployment assumes one active
// evaluator per record at a time.
func (r *applicationRepository) UpdateReview(ctx context.Context, application *Application) error {
	log := r.log.Function("UpdateReview")

	err := r.getDB(ctx).
		Model(&Application{}).
		Where("id = ?", application.ID).
		Updates(map[string]any{
			"score":  application.Score,
			"label":  application.Label,
			"status": application.Status,
		}).Error
	if err != nil {
		return log.Err("failed to update application review", err, "applicationID", application.ID)
	}

	if err := r.addToCache(application); err != nil {
		log.Warn("failed to update application in cache", "applicationID", application.ID, "error", err)
	}

	return nil
}

func (r *applicationRepository) addToCache(application *Application) error {
	return database.NewCacheBuilder(r.db.Cache.Application, application.ID).
		WithExpiry(APPLICATION_CACHE_EXPIRY).
		Set(application)
}

func (r *applicationRepository) getFromCache(id string, application *Application) (bool, error) {
	return database.NewCacheBuilder(r.db.Cache.Application, id).Get(application)
}
