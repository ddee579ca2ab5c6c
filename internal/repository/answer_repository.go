package repository

import (
	"github.com/hndoan/Lorises/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	FindByInstanceID(instanceID uint) ([]model.Answer, error)
	CountByInstanceID(instanceID uint) (int64, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) FindByInstanceID(instanceID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.Preload("Question").Where("instance_id = ?", instanceID).Find(&answers).Error
	return answers, err
}

func (r *answerRepository) CountByInstanceID(instanceID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Answer{}).Where("instance_id = ?", instanceID).Count(&count).Error
	return count, err
}
