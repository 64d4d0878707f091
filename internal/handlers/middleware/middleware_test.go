package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"server/config"
	"server/internal/apperr"
	. "server/internal/models"
)

type fakeSessions struct {
	tokens map[string]string
}

func (f *fakeSessions) Create(ctx context.Context, evaluatorID string) (string, error) {
	return "", nil
}

func (f *fakeSessions) Get(ctx context.Context, token string) (string, error) {
	evaluatorID, ok := f.tokens[token]
	if !ok {
		return "", apperr.Authorization("invalid or expired session")
	}
	return evaluatorID, nil
}

func (f *fakeSessions) Destroy(ctx context.Context, token string) error {
	return nil
}

type fakeEvaluatorRepo struct {
	byID map[string]*Evaluator
}

func (f *fakeEvaluatorRepo) Create(ctx context.Context, evaluator *Evaluator) error {
	return nil
}

func (f *fakeEvaluatorRepo) GetByEmail(ctx context.Context, email string) (*Evaluator, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEvaluatorRepo) GetByID(ctx context.Context, id string) (*Evaluator, error) {
	evaluator, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return evaluator, nil
}

func gatedApp(t *testing.T) *fiber.App {
	t.Helper()

	sessions := &fakeSessions{tokens: map[string]string{"good-token": "eval-1"}}
	repo := &fakeEvaluatorRepo{byID: map[string]*Evaluator{
		"eval-1": {BaseUUIDModel: BaseUUIDModel{ID: "eval-1"}, FullName: "Ren Walker"},
	}}

	m := New(sessions, repo, config.Config{})

	app := fiber.New()
	app.Get("/api/admin/applications", m.RequireEvaluator(), func(c *fiber.Ctx) error {
		evaluator := c.Locals("evaluator").(Evaluator)
		return c.JSON(fiber.Map{"message": "success", "evaluator": evaluator.FullName})
	})
	return app
}

func TestRequireEvaluator(t *testing.T) {
	tests := []struct {
		name           string
		cookie         string
		expectedStatus int
	}{
		{name: "no cookie", cookie: "", expectedStatus: fiber.StatusUnauthorized},
		{name: "unknown token", cookie: "bad-token", expectedStatus: fiber.StatusUnauthorized},
		{name: "valid session", cookie: "good-token", expectedStatus: fiber.StatusOK},
	}

	app := gatedApp(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/admin/applications", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tt.cookie})
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestRequireEvaluator_SessionForMissingEvaluator(t *testing.T) {
	sessions := &fakeSessions{tokens: map[string]string{"orphan-token": "gone"}}
	repo := &fakeEvaluatorRepo{byID: map[string]*Evaluator{}}
	m := New(sessions, repo, config.Config{})

	app := fiber.New()
	app.Get("/gated", m.RequireEvaluator(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "success"})
	})

	req := httptest.NewRequest("GET", "/gated", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "orphan-token"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
