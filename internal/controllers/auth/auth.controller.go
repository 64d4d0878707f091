package authController

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"server/config"
	"server/internal/apperr"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/services"
)

const minPasswordLength = 8

type AuthController struct {
	evaluatorRepo repositories.EvaluatorRepository
	sessions      services.SessionService
	Config        config.Config
	log           logger.Logger
}

func New(
	evaluatorRepo repositories.EvaluatorRepository,
	sessions services.SessionService,
	config config.Config,
) *AuthController {
	return &AuthController{
		evaluatorRepo: evaluatorRepo,
		sessions:      sessions,
		Config:        config,
		log:           logger.New("AuthController"),
	}
}

// Signup creates an evaluator account. It is gated by the injected access
// code; with no code configured, signup is disabled outright rather than
// falling back to any built-in value.
func (ac *AuthController) Signup(ctx context.Context, request *SignupRequest) (*Evaluator, error) {
	log := ac.log.Function("Signup")

	if ac.Config.EvaluatorAccessCode == "" {
		return nil, apperr.Authorization("evaluator signup is disabled")
	}
	if request.AccessCode != ac.Config.EvaluatorAccessCode {
		log.Warn("signup attempt with invalid access code", "email", request.Email)
		return nil, apperr.Authorization("invalid access code")
	}

	if strings.TrimSpace(request.FullName) == "" {
		return nil, apperr.Validation("fullName", "full name is required")
	}
	email := strings.ToLower(strings.TrimSpace(request.Email))
	if email == "" {
		return nil, apperr.Validation("email", "email is required")
	}
	if len(request.Password) < minPasswordLength {
		return nil, apperr.Validation("password", "password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, log.Err("failed to hash password", err)
	}

	evaluator := &Evaluator{
		FullName:     strings.TrimSpace(request.FullName),
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := ac.evaluatorRepo.Create(ctx, evaluator); err != nil {
		return nil, apperr.Persistence("failed to create evaluator", err)
	}

	log.Info("Evaluator account created", "email", email)
	return evaluator, nil
}

// Login verifies credentials and opens a session, returning the evaluator
// and the session token. Bad email and bad password are indistinguishable
// to the caller.
func (ac *AuthController) Login(
	ctx context.Context,
	request *LoginRequest,
) (*Evaluator, string, error) {
	log := ac.log.Function("Login")

	email := strings.ToLower(strings.TrimSpace(request.Email))
	evaluator, err := ac.evaluatorRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.Authorization("invalid email or password")
		}
		return nil, "", log.Err("failed to look up evaluator", err)
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(evaluator.PasswordHash), []byte(request.Password)); err != nil {
		return nil, "", apperr.Authorization("invalid email or password")
	}

	token, err := ac.sessions.Create(ctx, evaluator.ID)
	if err != nil {
		return nil, "", log.Err("failed to create session", err)
	}

	return evaluator, token, nil
}

func (ac *AuthController) Logout(ctx context.Context, token string) error {
	return ac.sessions.Destroy(ctx, token)
}
