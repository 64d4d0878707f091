package handlers

import (
	"io"
	"mime/multipart"

	"server/internal/app"
	applicationController "server/internal/controllers/application"
	"server/internal/logger"
	. "server/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ApplicationHandler struct {
	Handler
	controller applicationController.ApplicationController
}

func NewApplicationHandler(app app.App, router fiber.Router) *ApplicationHandler {
	log := logger.New("handlers").File("application_handler")
	return &ApplicationHandler{
		controller: *app.ApplicationController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ApplicationHandler) Register() {
	applications := h.router.Group("/applications")
	applications.Post("/", h.submitApplication)
}

func (h *ApplicationHandler) submitApplication(c *fiber.Ctx) error {
	log := h.log.Function("submitApplication")

	request := &SubmissionRequest{
		FullName:          c.FormValue("fullName"),
		Email:             c.FormValue("email"),
		Phone:             c.FormValue("phone"),
		DesignCategory:    c.FormValue("designCategory"),
		DateOfBirth:       c.FormValue("dob"),
		PortfolioLink:     c.FormValue("portfolioLink"),
		AnswerCollection:  c.FormValue("answerCollection"),
		AnswerProject:     c.FormValue("answerProject"),
		AnswerInspiration: c.FormValue("answerInspiration"),
	}

	var closers []io.Closer
	defer func() {
		for _, closer := range closers {
			closer.Close()
		}
	}()

	if resumeHeader, err := c.FormFile("resume"); err == nil {
		resume, opened, err := openAsset(resumeHeader)
		if err != nil {
			log.Er("failed to open resume attachment", err)
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"message": "resume attachment is unreadable", "field": "resume"})
		}
		closers = append(closers, opened)
		request.Resume = resume
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, imageHeader := range form.File["portfolioImages"] {
			image, opened, err := openAsset(imageHeader)
			if err != nil {
				log.Er("failed to open portfolio attachment", err, "fileName", imageHeader.Filename)
				return c.Status(fiber.StatusBadRequest).
					JSON(fiber.Map{"message": "portfolio attachment is unreadable", "field": "portfolioImages"})
			}
			closers = append(closers, opened)
			request.PortfolioImages = append(request.PortfolioImages, *image)
		}
	}

	outcome, err := h.controller.Submit(c.Context(), request)
	if err != nil {
		log.Er("submission intake failed", err, "outcome", outcome)
		return respondError(c, err)
	}

	// Accepted and Discarded respond identically: the submitter never
	// learns a submission was filtered out.
	return c.JSON(fiber.Map{"message": "success"})
}

func openAsset(header *multipart.FileHeader) (*Asset, io.Closer, error) {
	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}

	return &Asset{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}, file, nil
}
