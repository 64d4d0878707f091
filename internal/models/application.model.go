package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusSelected Status = "selected"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusSelected, StatusRejected:
		return true
	}
	return false
}

type Label string

const (
	LabelStrong  Label = "Strong"
	LabelGood    Label = "Good"
	LabelAverage Label = "Average"
	LabelWeak    Label = "Weak"
)

const (
	MinScore = 0
	MaxScore = 100
)

// LabelForScore bands a suitability score into its label. Total over
// [MinScore, MaxScore], no gaps or overlaps.
func LabelForScore(score int) Label {
	switch {
	case score >= 85:
		return LabelStrong
	case score >= 70:
		return LabelGood
	case score >= 50:
		return LabelAverage
	default:
		return LabelWeak
	}
}

// StringList stores an ordered list of strings as a JSON text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	switch v := value.(type) {
	case string:
		return json.Unmarshal([]byte(v), l)
	case []byte:
		return json.Unmarshal(v, l)
	}
	return fmt.Errorf("unsupported type %T for StringList", value)
}

type Application struct {
	BaseUUIDModel
	FullName           string     `gorm:"type:varchar(255);not null" json:"fullName"`
	Email              string     `gorm:"type:varchar(255);not null" json:"email"`
	Phone              string     `gorm:"type:varchar(64);not null"  json:"phone"`
	DesignCategory     string     `gorm:"type:varchar(128);not null" json:"designCategory"`
	DateOfBirth        time.Time  `gorm:"not null"                   json:"dateOfBirth"`
	PortfolioLink      string     `gorm:"type:text"                  json:"portfolioLink,omitempty"`
	ResumeLocation     string     `gorm:"type:text;not null"         json:"resumeLocation"`
	PortfolioLocations StringList `gorm:"type:text"                  json:"portfolioLocations"`
	AnswerCollection   string     `gorm:"type:text;not null"         json:"answerCollection"`
	AnswerProject      string     `gorm:"type:text;not null"         json:"answerProject"`
	AnswerInspiration  string     `gorm:"type:text;not null"         json:"answerInspiration"`
	Score              *int       `gorm:"type:int"                   json:"score"`
	Label              *Label     `gorm:"type:varchar(20)"           json:"label"`
	Status             Status     `gorm:"type:varchar(20);not null;default:pending" json:"status"`
}

// ApplicationSummary is the list projection: no answers, no asset locators.
type ApplicationSummary struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"createdAt"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	DesignCategory string    `json:"designCategory"`
	Score          *int      `json:"score"`
	Label          *Label    `json:"label"`
	Status         Status    `json:"status"`
}

// Asset is one inbound binary attachment, consumed exactly once.
type Asset struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// SubmissionRequest is a candidate's raw intake payload. It is constructed
// from one multipart request and discarded after the intake attempt.
type SubmissionRequest struct {
	FullName          string
	Email             string
	Phone             string
	DesignCategory    string
	DateOfBirth       string
	PortfolioLink     string
	AnswerCollection  string
	AnswerProject     string
	AnswerInspiration string
	Resume            *Asset
	PortfolioImages   []Asset
}

// ReviewUpdateRequest is the only mutation evaluators may apply: either
// axis may be set independently, nothing else is writable.
type ReviewUpdateRequest struct {
	Status *Status `json:"status"`
	Score  *int    `json:"score"`
}
