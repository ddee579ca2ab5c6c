package repository

import (
	"github.com/hndoan/Lorises/internal/model"
	"gorm.io/gorm"
)

type TemplateRepository interface {
	Create(template *model.TestTemplate) error
	FindByID(id uint) (*model.TestTemplate, error)
	FindByIDWithQuestions(id uint) (*model.TestTemplate, error)
	FindAllWithQuestionCount() ([]TemplateWithCount, error)
	Update(template *model.TestTemplate) error
	Delete(id uint) error
}

type TemplateWithCount struct {
	model.TestTemplate
	QuestionCount int
}

type templateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) Create(template *model.TestTemplate) error {
	// GORM creates the associated questions alongside the template.
	return r.db.Create(template).Error
}

func (r *templateRepository) FindByID(id uint) (*model.TestTemplate, error) {
	var template model.TestTemplate
	err := r.db.First(&template, id).Error
	return &template, err
}

func (r *templateRepository) FindByIDWithQuestions(id uint) (*model.TestTemplate, error) {
	var template model.TestTemplate
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.order_in_template ASC")
	}).First(&template, id).Error
	return &template, err
}

func (r *templateRepository) FindAllWithQuestionCount() ([]TemplateWithCount, error) {
	var results []TemplateWithCount
	err := r.db.Model(&model.TestTemplate{}).
		Select("test_templates.*, (SELECT COUNT(*) FROM questions WHERE questions.template_id = test_templates.id AND questions.deleted_at IS NULL) as question_count").
		Where("test_templates.deleted_at IS NULL").
		Order("test_templates.created_at DESC").
		Scan(&results).Error
	return results, err
}

func (r *templateRepository) Update(template *model.TestTemplate) error {
	return r.db.Save(template).Error
}

func (r *templateRepository) Delete(id uint) error {
	return r.db.Delete(&model.TestTemplate{}, id).Error
}
