package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	TestKindDemo     = "demo"
	TestKindPractice = "practice"
	TestKindFull     = "full"
)

// TestTemplate is a reusable test definition. It should be treated as
// immutable once an instance references it.
type TestTemplate struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	Title           string         `json:"title" gorm:"not null;uniqueIndex"`
	Description     string         `json:"description,omitempty"`
	Language        string         `json:"language" gorm:"not null"` // e.g. "en", "de", "vi"
	Kind            string         `json:"kind" gorm:"not null;default:'practice'"`
	DurationMinutes int            `json:"duration_minutes" gorm:"not null;default:60"`
	PassThreshold   *float64       `json:"pass_threshold,omitempty"` // percent; nil means the configured default
	Questions       []Question     `json:"questions,omitempty" gorm:"foreignKey:TemplateID"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
