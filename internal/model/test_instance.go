package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusNotStarted  = "not_started"
	StatusInProgress  = "in_progress"
	StatusSubmitted   = "submitted"
	StatusUnderReview = "under_review"
	StatusReviewed    = "reviewed"
	StatusCancelled   = "cancelled"
)

// TestInstance is one learner's attempt at one TestTemplate.
type TestInstance struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	TemplateID       uint           `json:"template_id" gorm:"not null;index"`
	Template         TestTemplate   `json:"template,omitempty" gorm:"foreignKey:TemplateID"`
	UserID           uint           `json:"user_id" gorm:"not null;index"`
	Status           string         `json:"status" gorm:"not null;default:'not_started';index"`
	StartedAt        *time.Time     `json:"started_at,omitempty"`
	SubmittedAt      *time.Time     `json:"submitted_at,omitempty"`
	ReviewedAt       *time.Time     `json:"reviewed_at,omitempty"`
	FinalScore       *float64       `json:"final_score,omitempty"`
	MaxPossibleScore *float64       `json:"max_possible_score,omitempty"`
	Percentage       *float64       `json:"percentage,omitempty"`
	IsPassed         *bool          `json:"is_passed,omitempty"`
	Answers          []Answer       `json:"answers,omitempty" gorm:"foreignKey:InstanceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// CanTransition reports whether the lifecycle permits moving from one status
// to another. Transitions are one-directional; cancelled is reachable from
// every non-terminal state and reviewed is terminal.
func CanTransition(from, to string) bool {
	if to == StatusCancelled {
		return from != StatusReviewed && from != StatusCancelled
	}
	switch from {
	case StatusNotStarted:
		return to == StatusInProgress
	case StatusInProgress:
		return to == StatusSubmitted || to == StatusUnderReview
	case StatusSubmitted:
		return to == StatusUnderReview
	case StatusUnderReview:
		return to == StatusReviewed
	}
	return false
}

// IsSubmittedOrLater reports whether answers have already been locked in.
func IsSubmittedOrLater(status string) bool {
	return status == StatusSubmitted || status == StatusUnderReview || status == StatusReviewed
}
