package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	SectionReading   = "reading"
	SectionWriting   = "writing"
	SectionSpeaking  = "speaking"
	SectionListening = "listening"
)

// ValidSection reports whether s names one of the four test sections.
func ValidSection(s string) bool {
	switch s {
	case SectionReading, SectionWriting, SectionSpeaking, SectionListening:
		return true
	}
	return false
}

type Question struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	TemplateID      uint           `json:"template_id" gorm:"not null;index"`
	Section         string         `json:"section" gorm:"not null"` // "reading", "writing", "speaking", "listening"
	Prompt          string         `json:"prompt" gorm:"type:text;not null"`
	Options         datatypes.JSON `json:"options,omitempty" gorm:"type:jsonb"` // optional multiple-choice options
	CorrectAnswer   *string        `json:"correct_answer,omitempty"`
	IsAutoGradable  bool           `json:"is_auto_gradable" gorm:"not null;default:false"`
	MaxScore        float64        `json:"max_score" gorm:"not null"`
	OrderInTemplate int            `json:"order_in_template" gorm:"not null"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
