package applicationController

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"server/config"
	"server/internal/apperr"
	"server/internal/eligibility"
	"server/internal/events"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/services"
)

// Outcome of one intake attempt. Discarded and Accepted are presented
// identically to the submitter; the distinction exists only internally.
type Outcome string

const (
	OutcomeAccepted  Outcome = "accepted"
	OutcomeDiscarded Outcome = "discarded"
	OutcomeFailed    Outcome = "failed"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type ApplicationController struct {
	applicationRepo repositories.ApplicationRepository
	uploader        services.AssetUploader
	eventBus        *events.EventBus
	Config          config.Config
	log             logger.Logger
}

func New(
	applicationRepo repositories.ApplicationRepository,
	uploader services.AssetUploader,
	eventBus *events.EventBus,
	config config.Config,
) *ApplicationController {
	return &ApplicationController{
		applicationRepo: applicationRepo,
		uploader:        uploader,
		eventBus:        eventBus,
		Config:          config,
		log:             logger.New("ApplicationController"),
	}
}

// Submit runs one submission through the whole intake sequence: structural
// validation, the age filter, the concurrent asset upload, then a single
// record write. Failures at any step are terminal for this attempt and
// nothing is persisted; the submitter retries by resubmitting in full.
func (ac *ApplicationController) Submit(
	ctx context.Context,
	request *SubmissionRequest,
) (Outcome, error) {
	log := ac.log.Function("Submit")

	dob, err := ac.validate(request)
	if err != nil {
		return OutcomeFailed, err
	}

	// The age filter runs before any upload so an ineligible submission
	// leaves no trace anywhere. The submitter sees plain success either
	// way; that silence is a product requirement, not an oversight.
	if !eligibility.IsEligible(dob, time.Now()) {
		log.Info("Discarding ineligible submission", "age", eligibility.Age(dob, time.Now()))
		return OutcomeDiscarded, nil
	}

	resumeLocator, portfolioLocators, err := ac.uploader.UploadAll(
		ctx, *request.Resume, request.PortfolioImages)
	if err != nil {
		return OutcomeFailed, log.Err("failed to upload submission assets", err)
	}

	application := &Application{
		FullName:           strings.TrimSpace(request.FullName),
		Email:              strings.TrimSpace(request.Email),
		Phone:              strings.TrimSpace(request.Phone),
		DesignCategory:     strings.TrimSpace(request.DesignCategory),
		DateOfBirth:        dob,
		PortfolioLink:      strings.TrimSpace(request.PortfolioLink),
		ResumeLocation:     resumeLocator,
		PortfolioLocations: portfolioLocators,
		AnswerCollection:   request.AnswerCollection,
		AnswerProject:      request.AnswerProject,
		AnswerInspiration:  request.AnswerInspiration,
		Status:             StatusPending,
	}

	if err := ac.applicationRepo.Create(ctx, application); err != nil {
		// Uploaded assets are knowingly left behind: orphaned objects are
		// cheaper than a compensating-delete path.
		return OutcomeFailed, apperr.Persistence("failed to save application", err)
	}

	ac.publishReceived(application)

	return OutcomeAccepted, nil
}

func (ac *ApplicationController) validate(request *SubmissionRequest) (time.Time, error) {
	required := []struct {
		field string
		value string
	}{
		{"fullName", request.FullName},
		{"email", request.Email},
		{"phone", request.Phone},
		{"designCategory", request.DesignCategory},
		{"answerCollection", request.AnswerCollection},
		{"answerProject", request.AnswerProject},
		{"answerInspiration", request.AnswerInspiration},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return time.Time{}, apperr.Validation(f.field, fmt.Sprintf("%s is required", f.field))
		}
	}

	if !emailPattern.MatchString(strings.TrimSpace(request.Email)) {
		return time.Time{}, apperr.Validation("email", "email address is not valid")
	}

	if request.Resume == nil || request.Resume.Content == nil {
		return time.Time{}, apperr.Validation("resume", "resume document is required")
	}
	if max := ac.Config.MaxResumeBytes; max > 0 && request.Resume.Size > max {
		return time.Time{}, apperr.Validation("resume", "resume document is too large")
	}

	if max := ac.Config.MaxPortfolioCount; max > 0 && len(request.PortfolioImages) > max {
		return time.Time{}, apperr.Validation("portfolioImages", "too many portfolio images")
	}
	for i, image := range request.PortfolioImages {
		if image.Content == nil {
			return time.Time{}, apperr.Validation("portfolioImages",
				fmt.Sprintf("portfolio image %d is unreadable", i+1))
		}
		if max := ac.Config.MaxImageBytes; max > 0 && image.Size > max {
			return time.Time{}, apperr.Validation("portfolioImages",
				fmt.Sprintf("portfolio image %d is too large", i+1))
		}
	}

	dob, err := eligibility.ParseDOB(request.DateOfBirth)
	if err != nil {
		return time.Time{}, err
	}

	return dob, nil
}

func (ac *ApplicationController) publishReceived(application *Application) {
	log := ac.log.Function("publishReceived")

	event := events.Event{
		ID:        uuid.New().String(),
		Type:      events.TypeApplicationReceived,
		Channel:   events.ChannelApplications,
		Data:      map[string]any{"applicationId": application.ID},
		Timestamp: time.Now(),
	}

	if err := ac.eventBus.Publish(events.ChannelApplications, event); err != nil {
		log.Warn("failed to publish application received event",
			"applicationID", application.ID, "error", err)
	}
}
