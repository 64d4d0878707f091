package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"server/internal/app"
	reviewController "server/internal/controllers/review"
	"server/internal/logger"
	. "server/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	Handler
	controller reviewController.ReviewController
}

func NewReviewHandler(app app.App, router fiber.Router) *ReviewHandler {
	log := logger.New("handlers").File("review_handler")
	return &ReviewHandler{
		controller: *app.ReviewController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ReviewHandler) Register() {
	admin := h.router.Group("/admin", h.middleware.RequireEvaluator())
	admin.Get("/applications", h.listApplications)
	admin.Get("/applications/:id", h.getApplication)
	admin.Patch("/applications/:id", h.reviewApplication)
}

func (h *ReviewHandler) listApplications(c *fiber.Ctx) error {
	log := h.log.Function("listApplications")

	summaries, err := h.controller.List(c.Context())
	if err != nil {
		log.Er("failed to list applications", err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "applications": summaries})
}

func (h *ReviewHandler) getApplication(c *fiber.Ctx) error {
	log := h.log.Function("getApplication")

	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "application ID is required"})
	}

	application, err := h.controller.Get(c.Context(), id)
	if err != nil {
		log.Er("failed to get application", err, "id", id)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "application": application})
}

func (h *ReviewHandler) reviewApplication(c *fiber.Ctx) error {
	log := h.log.Function("reviewApplication")

	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "application ID is required"})
	}

	request, err := parseReviewUpdate(c.Body())
	if err != nil {
		log.Er("rejected review update payload", err, "id", id)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "update may only set status and/or score"})
	}

	application, err := h.controller.Review(c.Context(), id, request)
	if err != nil {
		log.Er("failed to apply review update", err, "id", id)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "application": application})
}

// parseReviewUpdate decodes the PATCH payload strictly: any key other than
// status or score fails the whole update.
func parseReviewUpdate(body []byte) (*ReviewUpdateRequest, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()

	var request ReviewUpdateRequest
	if err := decoder.Decode(&request); err != nil {
		return nil, err
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected trailing content")
	}

	return &request, nil
}
