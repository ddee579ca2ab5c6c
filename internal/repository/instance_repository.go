package repository

import (
	"time"

	"github.com/hndoan/Lorises/internal/apperr"
	"github.com/hndoan/Lorises/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InstanceRepository interface {
	Create(instance *model.TestInstance) error
	FindByID(id uint) (*model.TestInstance, error)
	FindByIDWithDetails(id uint) (*model.TestInstance, error)
	FindAllByUser(userID uint) ([]model.TestInstance, error)
	FindAllByStatus(status string) ([]model.TestInstance, error)

	// SubmitAnswers persists all answers and moves the instance from
	// in_progress to under_review in a single transaction. The status
	// predicate doubles as an optimistic guard: a concurrent submit makes
	// the update match zero rows and the whole transaction rolls back.
	SubmitAnswers(instanceID uint, answers []model.Answer, submittedAt time.Time) error

	// FinalizeReview upserts the reviews keyed by (instance, question) and
	// writes the aggregate result while transitioning under_review to
	// reviewed, all in one transaction guarded the same way.
	FinalizeReview(instanceID uint, reviews []model.Review, outcome FinalOutcome) error

	// UpdateStatusIf transitions status only when the current value matches
	// one of the expected statuses. Reports whether a row changed.
	UpdateStatusIf(id uint, expected []string, to string) (bool, error)
}

// FinalOutcome carries the aggregate fields written at the reviewed transition.
type FinalOutcome struct {
	FinalScore       float64
	MaxPossibleScore float64
	Percentage       float64
	IsPassed         bool
	ReviewedAt       time.Time
}

type instanceRepository struct {
	db *gorm.DB
}

func NewInstanceRepository(db *gorm.DB) InstanceRepository {
	return &instanceRepository{db: db}
}

func (r *instanceRepository) Create(instance *model.TestInstance) error {
	return r.db.Create(instance).Error
}

func (r *instanceRepository) FindByID(id uint) (*model.TestInstance, error) {
	var instance model.TestInstance
	err := r.db.First(&instance, id).Error
	if err != nil {
		return nil, err
	}
	return &instance, nil
}

func (r *instanceRepository) FindByIDWithDetails(id uint) (*model.TestInstance, error) {
	var instance model.TestInstance
	err := r.db.
		Preload("Template").
		Preload("Answers.Question").
		First(&instance, id).Error
	if err != nil {
		return nil, err
	}
	return &instance, nil
}

func (r *instanceRepository) FindAllByUser(userID uint) ([]model.TestInstance, error) {
	var instances []model.TestInstance
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&instances).Error
	return instances, err
}

func (r *instanceRepository) FindAllByStatus(status string) ([]model.TestInstance, error) {
	var instances []model.TestInstance
	err := r.db.Where("status = ?", status).Order("submitted_at ASC").Find(&instances).Error
	return instances, err
}

func (r *instanceRepository) SubmitAnswers(instanceID uint, answers []model.Answer, submittedAt time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.TestInstance{}).
			Where("id = ? AND status = ?", instanceID, model.StatusInProgress).
			Updates(map[string]interface{}{
				"status":       model.StatusUnderReview,
				"submitted_at": submittedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.AlreadySubmitted("test instance is no longer accepting answers")
		}
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *instanceRepository) FinalizeReview(instanceID uint, reviews []model.Review, outcome FinalOutcome) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(reviews) > 0 {
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "instance_id"}, {Name: "question_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"reviewer_id", "score", "max_score", "feedback", "updated_at",
				}),
			}).Create(&reviews).Error
			if err != nil {
				return err
			}
		}

		res := tx.Model(&model.TestInstance{}).
			Where("id = ? AND status = ?", instanceID, model.StatusUnderReview).
			Updates(map[string]interface{}{
				"status":             model.StatusReviewed,
				"reviewed_at":        outcome.ReviewedAt,
				"final_score":        outcome.FinalScore,
				"max_possible_score": outcome.MaxPossibleScore,
				"percentage":         outcome.Percentage,
				"is_passed":          outcome.IsPassed,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.ValidationFailed("test instance is not under review")
		}
		return nil
	})
}

func (r *instanceRepository) UpdateStatusIf(id uint, expected []string, to string) (bool, error) {
	res := r.db.Model(&model.TestInstance{}).
		Where("id = ? AND status IN ?", id, expected).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
