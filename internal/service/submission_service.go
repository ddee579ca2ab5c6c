package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/hndoan/Lorises/internal/apperr"
	"github.com/hndoan/Lorises/internal/dto"
	"github.com/hndoan/Lorises/internal/model"
	"github.com/hndoan/Lorises/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SubmissionService locks in a learner's answers for a test instance and
// auto-grades the objectively gradable ones.
type SubmissionService interface {
	SubmitAnswers(userID, instanceID uint, req dto.SubmissionRequestDTO) (*dto.InstanceDetailDTO, error)
}

type submissionService struct {
	templateRepo repository.TemplateRepository
	instanceRepo repository.InstanceRepository
	grader       AutoGraderService
}

func NewSubmissionService(
	templateRepo repository.TemplateRepository,
	instanceRepo repository.InstanceRepository,
	grader AutoGraderService,
) SubmissionService {
	return &submissionService{
		templateRepo: templateRepo,
		instanceRepo: instanceRepo,
		grader:       grader,
	}
}

// SubmitAnswers validates the submission against the instance's template,
// grades auto-gradable questions, and persists answers plus the transition to
// under_review as one atomic write. A question id outside the template fails
// the whole submission rather than being guessed into a section.
func (s *submissionService) SubmitAnswers(userID, instanceID uint, req dto.SubmissionRequestDTO) (*dto.InstanceDetailDTO, error) {
	instance, err := s.instanceRepo.FindByID(instanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("test instance %d not found", instanceID))
		}
		return nil, apperr.Persistence("failed to load instance", err)
	}
	if instance.UserID != userID {
		return nil, apperr.NotFound(fmt.Sprintf("test instance %d not found", instanceID))
	}

	if model.IsSubmittedOrLater(instance.Status) {
		return nil, apperr.AlreadySubmitted(fmt.Sprintf("test instance %d was already submitted", instanceID))
	}
	if instance.Status == model.StatusCancelled {
		return nil, apperr.ValidationFailed("cannot submit answers for a cancelled test instance")
	}

	template, err := s.templateRepo.FindByIDWithQuestions(instance.TemplateID)
	if err != nil {
		return nil, apperr.Persistence("failed to load template", err)
	}
	if len(template.Questions) == 0 {
		return nil, apperr.ValidationFailed(fmt.Sprintf("template %d has no questions", template.ID))
	}
	questionByID := make(map[uint]*model.Question, len(template.Questions))
	for i := range template.Questions {
		questionByID[template.Questions[i].ID] = &template.Questions[i]
	}

	seen := make(map[uint]bool, len(req.Answers))
	answers := make([]model.Answer, 0, len(req.Answers))
	for _, in := range req.Answers {
		question, ok := questionByID[in.QuestionID]
		if !ok {
			return nil, apperr.ValidationFailed(fmt.Sprintf("question %d is not part of this test", in.QuestionID))
		}
		if seen[in.QuestionID] {
			return nil, apperr.ValidationFailed(fmt.Sprintf("question %d was answered twice", in.QuestionID))
		}
		seen[in.QuestionID] = true

		answer := model.Answer{
			InstanceID: instanceID,
			QuestionID: question.ID,
			Section:    question.Section,
			Content:    in.Content,
			AudioURL:   in.AudioURL,
		}
		if question.IsAutoGradable {
			isCorrect, score := s.grader.Grade(question, in.Content)
			answer.IsCorrect = &isCorrect
			answer.AutoScore = &score
		}
		answers = append(answers, answer)
	}

	submittedAt := time.Now()
	if err := s.instanceRepo.SubmitAnswers(instanceID, answers, submittedAt); err != nil {
		log.Error().Err(err).Uint("instanceID", instanceID).Msg("SubmitAnswers: failed to persist submission")
		if errors.Is(err, apperr.ErrAlreadySubmitted) {
			return nil, err
		}
		return nil, apperr.Persistence("failed to persist submission", err)
	}
	log.Info().Uint("instanceID", instanceID).Int("answers", len(answers)).Msg("SubmitAnswers: submission recorded")

	detailed, err := s.instanceRepo.FindByIDWithDetails(instanceID)
	if err != nil {
		log.Warn().Err(err).Uint("instanceID", instanceID).Msg("SubmitAnswers: failed to reload instance for response")
		instance.Status = model.StatusUnderReview
		instance.SubmittedAt = &submittedAt
		instance.Answers = answers
		resp := instanceToDetailDTO(instance, false)
		return &resp, nil
	}
	resp := instanceToDetailDTO(detailed, false)
	return &resp, nil
}
