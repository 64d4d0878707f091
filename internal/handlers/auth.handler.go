package handlers

import (
	"time"

	"server/internal/app"
	authController "server/internal/controllers/auth"
	"server/internal/handlers/middleware"
	"server/internal/logger"
	. "server/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	controller authController.AuthController
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	log := logger.New("handlers").File("auth_handler")
	return &AuthHandler{
		controller: *app.AuthController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AuthHandler) Register() {
	auth := h.router.Group("/auth")
	auth.Post("/signup", h.signup)
	auth.Post("/login", h.login)
	auth.Post("/logout", h.logout)
	auth.Get("/me", h.middleware.RequireEvaluator(), h.me)
}

func (h *AuthHandler) signup(c *fiber.Ctx) error {
	log := h.log.Function("signup")

	var request SignupRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse signup request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse signup request"})
	}

	evaluator, err := h.controller.Signup(c.Context(), &request)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "evaluator": evaluator})
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	log := h.log.Function("login")

	var request LoginRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse login request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse login request"})
	}

	evaluator, token, err := h.controller.Login(c.Context(), &request)
	if err != nil {
		return respondError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(time.Duration(h.controller.Config.SessionTTLMinutes) * time.Minute),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{"message": "success", "evaluator": evaluator})
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	log := h.log.Function("logout")

	token := c.Cookies(middleware.SessionCookie)
	if err := h.controller.Logout(c.Context(), token); err != nil {
		log.Er("failed to destroy session", err)
	}

	c.ClearCookie(middleware.SessionCookie)
	return c.JSON(fiber.Map{"message": "success"})
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	evaluator, ok := c.Locals("evaluator").(Evaluator)
	if !ok {
		h.log.Function("me").ErMsg("No evaluator found in locals")
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error", "error": "failed to get evaluator"})
	}

	return c.JSON(fiber.Map{"message": "success", "evaluator": evaluator})
}
