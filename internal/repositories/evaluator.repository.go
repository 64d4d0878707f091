package repositories

import (
	"context"

	"gorm.io/gorm"

	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/services"
)

type EvaluatorRepository interface {
	Create(ctx context.Context, evaluator *Evaluator) error
	GetByEmail(ctx context.Context, email string) (*Evaluator, error)
	GetByID(ctx context.Context, id string) (*Evaluator, error)
}

type evaluatorRepository struct {
	db  database.DB
	log logger.Logger
}

func NewEvaluator(db database.DB) EvaluatorRepository {
	return &evaluatorRepository{
		db:  db,
		log: logger.New("evaluatorRepository"),
	}
}

func (r *evaluatorRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *evaluatorRepository) Create(ctx context.Context, evaluator *Evaluator) error {
	if err := r.getDB(ctx).Create(evaluator).Error; err != nil {
		return r.log.Function("Create").
			Err("failed to create evaluator", err, "email", evaluator.Email)
	}
	return nil
}

func (r *evaluatorRepository) GetByEmail(ctx context.Context, email string) (*Evaluator, error) {
	var evaluator Evaluator
	if err := r.getDB(ctx).First(&evaluator, "email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, r.log.Function("GetByEmail").
			Err("failed to get evaluator by email", err, "email", email)
	}
	return &evaluator, nil
}

func (r *evaluatorRepository) GetByID(ctx context.Context, id string) (*Evaluator, error) {
	var evaluator Evaluator
	if err := r.getDB(ctx).First(&evaluator, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, r.log.Function("GetByID").
			Err("failed to get evaluator by id", err, "id", id)
	}
	return &evaluator, nil
}
