package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"server/config"
	"server/internal/apperr"
	"server/internal/database"
	"server/internal/logger"
)

const sessionKeyPrefix = "session:"

// SessionService maps opaque session tokens to evaluator IDs. Tokens live
// in the dedicated Session cache with a TTL; destroying one logs the
// evaluator out everywhere that token was used.
type SessionService interface {
	Create(ctx context.Context, evaluatorID string) (string, error)
	Get(ctx context.Context, token string) (string, error)
	Destroy(ctx context.Context, token string) error
}

type sessionService struct {
	cache database.CacheClient
	ttl   time.Duration
	log   logger.Logger
}

func NewSessionService(db database.DB, config config.Config) SessionService {
	return &sessionService{
		cache: db.Cache.Session,
		ttl:   time.Duration(config.SessionTTLMinutes) * time.Minute,
		log:   logger.New("SessionService"),
	}
}

func (s *sessionService) Create(ctx context.Context, evaluatorID string) (string, error) {
	log := s.log.Function("Create")

	token := uuid.New().String()
	builder := database.NewCacheBuilder(s.cache, sessionKeyPrefix+token).WithExpiry(s.ttl)
	if err := builder.Set(evaluatorID); err != nil {
		return "", log.Err("failed to store session", err, "evaluatorID", evaluatorID)
	}

	return token, nil
}

func (s *sessionService) Get(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", apperr.Authorization("missing session")
	}

	var evaluatorID string
	found, err := database.NewCacheBuilder(s.cache, sessionKeyPrefix+token).Get(&evaluatorID)
	if err != nil {
		return "", s.log.Function("Get").Err("failed to look up session", err)
	}
	if !found || evaluatorID == "" {
		return "", apperr.Authorization("invalid or expired session")
	}

	return evaluatorID, nil
}

func (s *sessionService) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := database.NewCacheBuilder(s.cache, sessionKeyPrefix+token).Delete(); err != nil {
		return s.log.Function("Destroy").Err("failed to destroy session", err)
	}
	return nil
}
