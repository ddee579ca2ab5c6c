package model

import (
	"time"

	"gorm.io/gorm"
)

// Review is one reviewer's score for one manually-graded question within one
// instance. The (instance, question) pair is the upsert key: re-scoring a
// question overwrites the earlier entry.
type Review struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	InstanceID uint           `json:"instance_id" gorm:"not null;index;uniqueIndex:idx_review_instance_question"`
	QuestionID uint           `json:"question_id" gorm:"not null;index;uniqueIndex:idx_review_instance_question"`
	ReviewerID uint           `json:"reviewer_id" gorm:"not null;index"`
	Score      float64        `json:"score" gorm:"not null"`
	MaxScore   float64        `json:"max_score" gorm:"not null"`
	Feedback   string         `json:"feedback,omitempty" gorm:"type:text"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
