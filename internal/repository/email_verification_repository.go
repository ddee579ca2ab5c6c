package repository

import (
	"time"

	"github.com/hndoan/Lorises/internal/model"
	"gorm.io/gorm"
)

type EmailVerificationRepository interface {
	Create(verification *model.EmailVerification) error
	FindActive(userID uint, code string, now time.Time) (*model.EmailVerification, error)
	Consume(id uint) error
}

type emailVerificationRepository struct {
	db *gorm.DB
}

func NewEmailVerificationRepository(db *gorm.DB) EmailVerificationRepository {
	return &emailVerificationRepository{db: db}
}

func (r *emailVerificationRepository) Create(verification *model.EmailVerification) error {
	return r.db.Create(verification).Error
}

func (r *emailVerificationRepository) FindActive(userID uint, code string, now time.Time) (*model.EmailVerification, error) {
	var verification model.EmailVerification
	err := r.db.
		Where("user_id = ? AND code = ? AND consumed = false AND expires_at > ?", userID, code, now).
		First(&verification).Error
	if err != nil {
		return nil, err
	}
	return &verification, nil
}

func (r *emailVerificationRepository) Consume(id uint) error {
	return r.db.Model(&model.EmailVerification{}).Where("id = ?", id).Update("consumed", true).Error
}
