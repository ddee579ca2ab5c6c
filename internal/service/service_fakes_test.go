package service

import (
	"time"

	"github.com/hndoan/Lorises/internal/model"
	"github.com/hndoan/Lorises/internal/repository"
	"gorm.io/gorm"
)

// In-memory stand-ins for the GORM repositories, shared by the service tests.

type fakeTemplateRepo struct {
	templates map[uint]*model.TestTemplate
	nextID    uint
}

func newFakeTemplateRepo(templates ...*model.TestTemplate) *fakeTemplateRepo {
	repo := &fakeTemplateRepo{templates: make(map[uint]*model.TestTemplate)}
	for _, t := range templates {
		repo.templates[t.ID] = t
		if t.ID > repo.nextID {
			repo.nextID = t.ID
		}
	}
	return repo
}

func (r *fakeTemplateRepo) Create(template *model.TestTemplate) error {
	if template.ID == 0 {
		r.nextID++
		template.ID = r.nextID
	}
	r.templates[template.ID] = template
	return nil
}

func (r *fakeTemplateRepo) FindByID(id uint) (*model.TestTemplate, error) {
	t, ok := r.templates[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *fakeTemplateRepo) FindByIDWithQuestions(id uint) (*model.TestTemplate, error) {
	return r.FindByID(id)
}

func (r *fakeTemplateRepo) FindAllWithQuestionCount() ([]repository.TemplateWithCount, error) {
	out := make([]repository.TemplateWithCount, 0, len(r.templates))
	for _, t := range r.templates {
		out = append(out, repository.TemplateWithCount{TestTemplate: *t, QuestionCount: len(t.Questions)})
	}
	return out, nil
}

func (r *fakeTemplateRepo) Update(template *model.TestTemplate) error {
	r.templates[template.ID] = template
	return nil
}

func (r *fakeTemplateRepo) Delete(id uint) error {
	delete(r.templates, id)
	return nil
}

type fakeInstanceRepo struct {
	instances map[uint]*model.TestInstance
	answers   map[uint][]model.Answer
	reviews   map[uint][]model.Review

	submitErr   error
	finalizeErr error
}

func newFakeInstanceRepo(instances ...*model.TestInstance) *fakeInstanceRepo {
	repo := &fakeInstanceRepo{
		instances: make(map[uint]*model.TestInstance),
		answers:   make(map[uint][]model.Answer),
		reviews:   make(map[uint][]model.Review),
	}
	for _, in := range instances {
		repo.instances[in.ID] = in
	}
	return repo
}

func (r *fakeInstanceRepo) Create(instance *model.TestInstance) error {
	if instance.ID == 0 {
		instance.ID = uint(len(r.instances) + 1)
	}
	r.instances[instance.ID] = instance
	return nil
}

func (r *fakeInstanceRepo) FindByID(id uint) (*model.TestInstance, error) {
	in, ok := r.instances[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *in
	return &copied, nil
}

func (r *fakeInstanceRepo) FindByIDWithDetails(id uint) (*model.TestInstance, error) {
	in, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	in.Answers = r.answers[id]
	return in, nil
}

func (r *fakeInstanceRepo) FindAllByUser(userID uint) ([]model.TestInstance, error) {
	var out []model.TestInstance
	for _, in := range r.instances {
		if in.UserID == userID {
			out = append(out, *in)
		}
	}
	return out, nil
}

func (r *fakeInstanceRepo) FindAllByStatus(status string) ([]model.TestInstance, error) {
	var out []model.TestInstance
	for _, in := range r.instances {
		if in.Status == status {
			out = append(out, *in)
		}
	}
	return out, nil
}

func (r *fakeInstanceRepo) SubmitAnswers(instanceID uint, answers []model.Answer, submittedAt time.Time) error {
	if r.submitErr != nil {
		return r.submitErr
	}
	in := r.instances[instanceID]
	in.Status = model.StatusUnderReview
	in.SubmittedAt = &submittedAt
	r.answers[instanceID] = answers
	return nil
}

func (r *fakeInstanceRepo) FinalizeReview(instanceID uint, reviews []model.Review, outcome repository.FinalOutcome) error {
	if r.finalizeErr != nil {
		return r.finalizeErr
	}
	in := r.instances[instanceID]
	in.Status = model.StatusReviewed
	reviewedAt := outcome.ReviewedAt
	in.ReviewedAt = &reviewedAt
	in.FinalScore = &outcome.FinalScore
	in.MaxPossibleScore = &outcome.MaxPossibleScore
	in.Percentage = &outcome.Percentage
	in.IsPassed = &outcome.IsPassed
	r.reviews[instanceID] = append(r.reviews[instanceID], reviews...)
	return nil
}

func (r *fakeInstanceRepo) UpdateStatusIf(id uint, expected []string, to string) (bool, error) {
	in, ok := r.instances[id]
	if !ok {
		return false, nil
	}
	for _, status := range expected {
		if in.Status == status {
			in.Status = to
			return true, nil
		}
	}
	return false, nil
}

type fakeAnswerRepo struct {
	answers map[uint][]model.Answer
}

func (r *fakeAnswerRepo) FindByInstanceID(instanceID uint) ([]model.Answer, error) {
	return r.answers[instanceID], nil
}

func (r *fakeAnswerRepo) CountByInstanceID(instanceID uint) (int64, error) {
	return int64(len(r.answers[instanceID])), nil
}

type fakeReviewRepo struct {
	reviews map[uint][]model.Review
}

func (r *fakeReviewRepo) FindByInstanceID(instanceID uint) ([]model.Review, error) {
	return r.reviews[instanceID], nil
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
