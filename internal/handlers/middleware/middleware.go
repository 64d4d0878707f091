package middleware

import (
	"github.com/gofiber/fiber/v2"

	"server/config"
	"server/internal/logger"
	"server/internal/repositories"
	"server/internal/services"
)

// SessionCookie is the evaluator session cookie name.
const SessionCookie = "atelier_session"

type Middleware struct {
	sessions      services.SessionService
	evaluatorRepo repositories.EvaluatorRepository
	config        config.Config
	log           logger.Logger
}

func New(
	sessions services.SessionService,
	evaluatorRepo repositories.EvaluatorRepository,
	config config.Config,
) Middleware {
	return Middleware{
		sessions:      sessions,
		evaluatorRepo: evaluatorRepo,
		config:        config,
		log:           logger.New("middleware"),
	}
}

// RequireEvaluator gates every review-side route. An unauthenticated
// caller gets a denial, never data; a valid session loads the evaluator
// into locals for the handlers downstream.
func (m Middleware) RequireEvaluator() fiber.Handler {
	log := m.log.Function("RequireEvaluator")

	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"message": "authentication required"})
		}

		evaluatorID, err := m.sessions.Get(c.Context(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"message": "authentication required"})
		}

		evaluator, err := m.evaluatorRepo.GetByID(c.Context(), evaluatorID)
		if err != nil {
			log.Warn("session references unknown evaluator", "evaluatorID", evaluatorID)
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"message": "authentication required"})
		}

		c.Locals("evaluator", *evaluator)
		return c.Next()
	}
}
