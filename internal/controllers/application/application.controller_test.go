package applicationController

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"server/config"
	"server/internal/apperr"
	. "server/internal/models"
)

type fakeApplicationRepo struct {
	created   []*Application
	createErr error
}

func (f *fakeApplicationRepo) Create(ctx context.Context, application *Application) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, application)
	return nil
}

func (f *fakeApplicationRepo) GetByID(ctx context.Context, id string) (*Application, error) {
	for _, application := range f.created {
		if application.ID == id {
			return application, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeApplicationRepo) GetSummaries(ctx context.Context) ([]ApplicationSummary, error) {
	return nil, nil
}

func (f *fakeApplicationRepo) UpdateReview(ctx context.Context, application *Application) error {
	return nil
}

type fakeUploader struct {
	calls     int
	uploadErr error
}

func (f *fakeUploader) UploadAll(
	ctx context.Context,
	resume Asset,
	images []Asset,
) (string, []string, error) {
	f.calls++
	if f.uploadErr != nil {
		return "", nil, apperr.Upload("asset upload failed", f.uploadErr)
	}

	locators := make([]string, len(images))
	for i, image := range images {
		locators[i] = "https://cdn.test/portfolios/" + image.FileName
	}
	return "https://cdn.test/resumes/" + resume.FileName, locators, nil
}

func newController(repo *fakeApplicationRepo, uploader *fakeUploader) *ApplicationController {
	return New(repo, uploader, nil, config.Config{
		MaxResumeBytes:    10 << 20,
		MaxImageBytes:     8 << 20,
		MaxPortfolioCount: 12,
	})
}

func dobForAge(age int) string {
	return time.Now().AddDate(-age, 0, -1).Format("2006-01-02")
}

func validRequest() *SubmissionRequest {
	resume := Asset{
		FileName:    "resume.pdf",
		ContentType: "application/pdf",
		Size:        1024,
		Content:     strings.NewReader("resume"),
	}
	return &SubmissionRequest{
		FullName:          "Imani Duarte",
		Email:             "imani@example.com",
		Phone:             "+1 555 0100",
		DesignCategory:    "Womenswear",
		DateOfBirth:       dobForAge(25),
		PortfolioLink:     "https://imani.example.com",
		AnswerCollection:  "A study in bias-cut silk.",
		AnswerProject:     "Rebuilt a jacket block from scratch.",
		AnswerInspiration: "Archival workwear.",
		Resume:            &resume,
		PortfolioImages: []Asset{
			{FileName: "look-1.jpg", ContentType: "image/jpeg", Size: 2048, Content: strings.NewReader("a")},
			{FileName: "look-2.jpg", ContentType: "image/jpeg", Size: 2048, Content: strings.NewReader("b")},
		},
	}
}

func TestSubmit_Accepted(t *testing.T) {
	repo := &fakeApplicationRepo{}
	uploader := &fakeUploader{}
	controller := newController(repo, uploader)

	outcome, err := controller.Submit(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, OutcomeAccepted, outcome)
	require.Len(t, repo.created, 1)

	application := repo.created[0]
	assert.Equal(t, StatusPending, application.Status)
	assert.Nil(t, application.Score)
	assert.Nil(t, application.Label)
	assert.Equal(t, "https://cdn.test/resumes/resume.pdf", application.ResumeLocation)
	assert.Equal(t, StringList{
		"https://cdn.test/portfolios/look-1.jpg",
		"https://cdn.test/portfolios/look-2.jpg",
	}, application.PortfolioLocations)
}

func TestSubmit_IneligibleDiscardedSilently(t *testing.T) {
	repo := &fakeApplicationRepo{}
	uploader := &fakeUploader{}
	controller := newController(repo, uploader)

	request := validRequest()
	request.DateOfBirth = dobForAge(35)

	outcome, err := controller.Submit(context.Background(), request)

	require.NoError(t, err)
	assert.Equal(t, OutcomeDiscarded, outcome)
	assert.Zero(t, uploader.calls, "nothing may be uploaded for an ineligible submission")
	assert.Empty(t, repo.created, "nothing may be persisted for an ineligible submission")
}

func TestSubmit_ExactlyThirtyIsIneligible(t *testing.T) {
	repo := &fakeApplicationRepo{}
	uploader := &fakeUploader{}
	controller := newController(repo, uploader)

	request := validRequest()
	request.DateOfBirth = time.Now().AddDate(-30, 0, 0).Format("2006-01-02")

	outcome, err := controller.Submit(context.Background(), request)

	require.NoError(t, err)
	assert.Equal(t, OutcomeDiscarded, outcome)
	assert.Zero(t, uploader.calls)
}

func TestSubmit_UploadFailurePersistsNothing(t *testing.T) {
	repo := &fakeApplicationRepo{}
	uploader := &fakeUploader{uploadErr: errors.New("store unreachable")}
	controller := newController(repo, uploader)

	outcome, err := controller.Submit(context.Background(), validRequest())

	require.Error(t, err)
	assert.Equal(t, OutcomeFailed, outcome)
	assert.Equal(t, apperr.KindUpload, apperr.KindOf(err))
	assert.Empty(t, repo.created, "a failed upload must not leave a record")
}

func TestSubmit_PersistenceFailure(t *testing.T) {
	repo := &fakeApplicationRepo{createErr: errors.New("store rejected write")}
	uploader := &fakeUploader{}
	controller := newController(repo, uploader)

	outcome, err := controller.Submit(context.Background(), validRequest())

	require.Error(t, err)
	assert.Equal(t, OutcomeFailed, outcome)
	assert.Equal(t, apperr.KindPersistence, apperr.KindOf(err))
	assert.Equal(t, 1, uploader.calls, "uploads happen before the failed persist")
}

func TestSubmit_Validation(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*SubmissionRequest)
		expectedField string
	}{
		{
			name:          "missing full name",
			mutate:        func(r *SubmissionRequest) { r.FullName = "  " },
			expectedField: "fullName",
		},
		{
			name:          "missing email",
			mutate:        func(r *SubmissionRequest) { r.Email = "" },
			expectedField: "email",
		},
		{
			name:          "malformed email",
			mutate:        func(r *SubmissionRequest) { r.Email = "not-an-email" },
			expectedField: "email",
		},
		{
			name:          "missing phone",
			mutate:        func(r *SubmissionRequest) { r.Phone = "" },
			expectedField: "phone",
		},
		{
			name:          "missing category",
			mutate:        func(r *SubmissionRequest) { r.DesignCategory = "" },
			expectedField: "designCategory",
		},
		{
			name:          "missing answer",
			mutate:        func(r *SubmissionRequest) { r.AnswerInspiration = "" },
			expectedField: "answerInspiration",
		},
		{
			name:          "missing resume",
			mutate:        func(r *SubmissionRequest) { r.Resume = nil },
			expectedField: "resume",
		},
		{
			name:          "missing dob",
			mutate:        func(r *SubmissionRequest) { r.DateOfBirth = "" },
			expectedField: "dob",
		},
		{
			name:          "malformed dob",
			mutate:        func(r *SubmissionRequest) { r.DateOfBirth = "17-05-2001" },
			expectedField: "dob",
		},
		{
			name:          "future dob",
			mutate:        func(r *SubmissionRequest) { r.DateOfBirth = "2999-01-01" },
			expectedField: "dob",
		},
		{
			name:          "implausibly old dob",
			mutate:        func(r *SubmissionRequest) { r.DateOfBirth = "1200-01-01" },
			expectedField: "dob",
		},
		{
			name: "oversized resume",
			mutate: func(r *SubmissionRequest) {
				r.Resume.Size = 11 << 20
			},
			expectedField: "resume",
		},
		{
			name: "too many portfolio images",
			mutate: func(r *SubmissionRequest) {
				for i := 0; i < 13; i++ {
					r.PortfolioImages = append(r.PortfolioImages, Asset{
						FileName:    fmt.Sprintf("extra-%d.jpg", i),
						ContentType: "image/jpeg",
						Size:        10,
						Content:     strings.NewReader("x"),
					})
				}
			},
			expectedField: "portfolioImages",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeApplicationRepo{}
			uploader := &fakeUploader{}
			controller := newController(repo, uploader)

			request := validRequest()
			tt.mutate(request)

			outcome, err := controller.Submit(context.Background(), request)

			require.Error(t, err)
			assert.Equal(t, OutcomeFailed, outcome)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			assert.Equal(t, tt.expectedField, apperr.FieldOf(err))
			assert.Zero(t, uploader.calls, "validation failures must precede any upload")
			assert.Empty(t, repo.created)
		})
	}
}
