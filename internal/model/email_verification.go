package model

import (
	"time"

	"gorm.io/gorm"
)

// EmailVerification holds the one-time code mailed at signup. A code is
// single-use and expires after the configured lifetime.
type EmailVerification struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	Code      string         `json:"-" gorm:"not null"`
	ExpiresAt time.Time      `json:"expires_at" gorm:"not null"`
	Consumed  bool           `json:"consumed" gorm:"not null;default:false"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
