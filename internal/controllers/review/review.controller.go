package reviewController

import (
	"context"
	"time"

	"github.com/google/uuid"

	"server/internal/apperr"
	"server/internal/events"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
)

type ReviewController struct {
	applicationRepo repositories.ApplicationRepository
	eventBus        *events.EventBus
	log             logger.Logger
}

func New(
	applicationRepo repositories.ApplicationRepository,
	eventBus *events.EventBus,
) *ReviewController {
	return &ReviewController{
		applicationRepo: applicationRepo,
		eventBus:        eventBus,
		log:             logger.New("ReviewController"),
	}
}

func (rc *ReviewController) List(ctx context.Context) ([]ApplicationSummary, error) {
	summaries, err := rc.applicationRepo.GetSummaries(ctx)
	if err != nil {
		return nil, rc.log.Function("List").Err("failed to list applications", err)
	}
	return summaries, nil
}

func (rc *ReviewController) Get(ctx context.Context, id string) (*Application, error) {
	application, err := rc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return application, nil
}

// Review applies an evaluator's status and/or score change to one record.
// The two axes are independent: a score override recomputes the label but
// never touches status, and a status change never touches the score. Any
// invalid value leaves the record exactly as it was.
func (rc *ReviewController) Review(
	ctx context.Context,
	id string,
	request *ReviewUpdateRequest,
) (*Application, error) {
	log := rc.log.Function("Review")

	if request.Status == nil && request.Score == nil {
		return nil, apperr.Validation("", "nothing to update: provide status and/or score")
	}

	if request.Status != nil && !request.Status.Valid() {
		return nil, apperr.StateTransition("status",
			"status must be one of pending, selected, rejected")
	}
	if request.Score != nil && (*request.Score < MinScore || *request.Score > MaxScore) {
		return nil, apperr.StateTransition("score", "score must be between 0 and 100")
	}

	application, err := rc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if request.Status != nil {
		application.Status = *request.Status
	}
	if request.Score != nil {
		score := *request.Score
		label := LabelForScore(score)
		application.Score = &score
		application.Label = &label
	}

	if err := rc.applicationRepo.UpdateReview(ctx, application); err != nil {
		return nil, log.Err("failed to apply review update", err, "applicationID", id)
	}

	rc.publishReviewed(application)

	return application, nil
}

func (rc *ReviewController) publishReviewed(application *Application) {
	log := rc.log.Function("publishReviewed")

	event := events.Event{
		ID:        uuid.New().String(),
		Type:      events.TypeApplicationReviewed,
		Channel:   events.ChannelApplications,
		Data: map[string]any{
			"applicationId": application.ID,
			"status":        application.Status,
		},
		Timestamp: time.Now(),
	}

	if err := rc.eventBus.Publish(events.ChannelApplications, event); err != nil {
		log.Warn("failed to publish application reviewed event",
			"applicationID", application.ID, "error", err)
	}
}
