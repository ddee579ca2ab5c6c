package repository

import (
	"github.com/hndoan/Lorises/internal/model"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	FindByInstanceID(instanceID uint) ([]model.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) FindByInstanceID(instanceID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.Where("instance_id = ?", instanceID).Find(&reviews).Error
	return reviews, err
}
