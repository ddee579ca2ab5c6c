package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/hndoan/Lorises/config"
	"github.com/hndoan/Lorises/internal/apperr"
	"github.com/hndoan/Lorises/internal/dto"
	"github.com/hndoan/Lorises/internal/model"
	"github.com/hndoan/Lorises/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ReviewService drives the manual grading workflow: listing work, handing a
// reviewer everything needed to grade an instance, and finalizing scores.
type ReviewService interface {
	ListPendingInstances() ([]dto.InstanceSummaryDTO, error)
	GetReviewBundle(instanceID uint) (*dto.ReviewBundleDTO, error)
	SubmitReview(reviewerID, instanceID uint, req dto.ReviewRequestDTO) (*dto.ReviewResultDTO, error)
}

type reviewService struct {
	templateRepo repository.TemplateRepository
	instanceRepo repository.InstanceRepository
	answerRepo   repository.AnswerRepository
	reviewRepo   repository.ReviewRepository
	aggregator   ScoreAggregatorService
	cfg          *config.Config
}

func NewReviewService(
	templateRepo repository.TemplateRepository,
	instanceRepo repository.InstanceRepository,
	answerRepo repository.AnswerRepository,
	reviewRepo repository.ReviewRepository,
	aggregator ScoreAggregatorService,
	cfg *config.Config,
) ReviewService {
	return &reviewService{
		templateRepo: templateRepo,
		instanceRepo: instanceRepo,
		answerRepo:   answerRepo,
		reviewRepo:   reviewRepo,
		aggregator:   aggregator,
		cfg:          cfg,
	}
}

func (s *reviewService) ListPendingInstances() ([]dto.InstanceSummaryDTO, error) {
	instances, err := s.instanceRepo.FindAllByStatus(model.StatusUnderReview)
	if err != nil {
		return nil, apperr.Persistence("failed to list pending instances", err)
	}
	dtos := make([]dto.InstanceSummaryDTO, 0, len(instances))
	for i := range instances {
		var summary dto.InstanceSummaryDTO
		if err := copier.Copy(&summary, &instances[i]); err != nil {
			log.Error().Err(err).Uint("instanceID", instances[i].ID).Msg("ListPendingInstances: copy failed")
			continue
		}
		dtos = append(dtos, summary)
	}
	return dtos, nil
}

// GetReviewBundle returns the template, its questions, and the learner's
// answers for one instance. Reviewers see the correct answers so they can
// judge borderline auto-graded responses.
func (s *reviewService) GetReviewBundle(instanceID uint) (*dto.ReviewBundleDTO, error) {
	instance, err := s.instanceRepo.FindByIDWithDetails(instanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("test instance %d not found", instanceID))
		}
		return nil, apperr.Persistence("failed to load instance", err)
	}

	template, err := s.templateRepo.FindByIDWithQuestions(instance.TemplateID)
	if err != nil {
		return nil, apperr.Persistence("failed to load template", err)
	}
	answers, err := s.answerRepo.FindByInstanceID(instanceID)
	if err != nil {
		return nil, apperr.Persistence("failed to load answers", err)
	}

	bundle := dto.ReviewBundleDTO{
		Instance:  instanceToDetailDTO(instance, true),
		Template:  templateToDTO(template),
		Questions: questionsToDTOs(template.Questions),
	}
	bundle.Answers = make([]dto.AnswerResponseDTO, len(answers))
	for i := range answers {
		bundle.Answers[i] = answerToDTO(&answers[i])
	}
	return &bundle, nil
}

// SubmitReview upserts the reviewer's scores, aggregates them with the
// auto-scores, and finalizes the instance. The whole write is one guarded
// transaction, so a concurrent reviewer's stale result is rejected instead of
// silently overwriting.
func (s *reviewService) SubmitReview(reviewerID, instanceID uint, req dto.ReviewRequestDTO) (*dto.ReviewResultDTO, error) {
	instance, err := s.instanceRepo.FindByID(instanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("test instance %d not found", instanceID))
		}
		return nil, apperr.Persistence("failed to load instance", err)
	}
	if instance.Status != model.StatusUnderReview {
		return nil, apperr.ValidationFailed(fmt.Sprintf("test instance %d is %s, not under review", instanceID, instance.Status))
	}

	template, err := s.templateRepo.FindByIDWithQuestions(instance.TemplateID)
	if err != nil {
		return nil, apperr.Persistence("failed to load template", err)
	}
	questionByID := make(map[uint]*model.Question, len(template.Questions))
	for i := range template.Questions {
		questionByID[template.Questions[i].ID] = &template.Questions[i]
	}

	seen := make(map[uint]bool, len(req.Reviews))
	reviews := make([]model.Review, 0, len(req.Reviews))
	for _, in := range req.Reviews {
		question, ok := questionByID[in.QuestionID]
		if !ok {
			return nil, apperr.ValidationFailed(fmt.Sprintf("question %d is not part of this test", in.QuestionID))
		}
		if question.IsAutoGradable {
			return nil, apperr.ValidationFailed(fmt.Sprintf("question %d is auto-graded and cannot be reviewed manually", in.QuestionID))
		}
		if in.Score < 0 || in.Score > question.MaxScore {
			return nil, apperr.ValidationFailed(fmt.Sprintf("score %.2f for question %d is outside 0..%.2f", in.Score, in.QuestionID, question.MaxScore))
		}
		if seen[in.QuestionID] {
			return nil, apperr.ValidationFailed(fmt.Sprintf("question %d was reviewed twice in one request", in.QuestionID))
		}
		seen[in.QuestionID] = true

		reviews = append(reviews, model.Review{
			InstanceID: instanceID,
			QuestionID: in.QuestionID,
			ReviewerID: reviewerID,
			Score:      in.Score,
			MaxScore:   question.MaxScore,
			Feedback:   in.Feedback,
		})
	}

	answers, err := s.answerRepo.FindByInstanceID(instanceID)
	if err != nil {
		return nil, apperr.Persistence("failed to load answers", err)
	}
	existing, err := s.reviewRepo.FindByInstanceID(instanceID)
	if err != nil {
		return nil, apperr.Persistence("failed to load existing reviews", err)
	}

	// Merge this request over any earlier reviews so re-scoring a subset
	// keeps the rest of the manual scores.
	merged := make([]model.Review, 0, len(existing)+len(reviews))
	for _, rv := range existing {
		if !seen[rv.QuestionID] {
			merged = append(merged, rv)
		}
	}
	merged = append(merged, reviews...)

	threshold := ThresholdFor(template, s.cfg.Scoring.DefaultPassThreshold)
	result := s.aggregator.Aggregate(template.Questions, answers, merged, threshold)

	outcome := repository.FinalOutcome{
		FinalScore:       result.FinalScore,
		MaxPossibleScore: result.MaxPossibleScore,
		Percentage:       result.Percentage,
		IsPassed:         result.IsPassed,
		ReviewedAt:       time.Now(),
	}
	if err := s.instanceRepo.FinalizeReview(instanceID, reviews, outcome); err != nil {
		log.Error().Err(err).Uint("instanceID", instanceID).Msg("SubmitReview: failed to finalize review")
		if errors.Is(err, apperr.ErrValidationFailed) {
			return nil, err
		}
		return nil, apperr.Persistence("failed to finalize review", err)
	}

	log.Info().
		Uint("instanceID", instanceID).
		Uint("reviewerID", reviewerID).
		Float64("finalScore", result.FinalScore).
		Bool("isPassed", result.IsPassed).
		Msg("SubmitReview: instance reviewed")

	return &dto.ReviewResultDTO{
		InstanceID:       instanceID,
		FinalScore:       result.FinalScore,
		MaxPossibleScore: result.MaxPossibleScore,
		Percentage:       result.Percentage,
		IsPassed:         result.IsPassed,
	}, nil
}
