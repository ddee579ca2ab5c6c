package model

import (
	"time"

	"gorm.io/gorm"
)

type Answer struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	InstanceID uint           `json:"instance_id" gorm:"not null;index;uniqueIndex:idx_answer_instance_question"`
	QuestionID uint           `json:"question_id" gorm:"not null;index;uniqueIndex:idx_answer_instance_question"`
	Question   Question       `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	Section    string         `json:"section" gorm:"not null"`
	Content    string         `json:"content" gorm:"type:text"`
	AudioURL   *string        `json:"audio_url,omitempty"` // speaking answers reference an uploaded recording
	IsCorrect  *bool          `json:"is_correct,omitempty"`
	AutoScore  *float64       `json:"auto_score,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
