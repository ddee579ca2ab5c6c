package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/hndoan/Lorises/internal/apperr"
	"github.com/hndoan/Lorises/internal/dto"
	"github.com/hndoan/Lorises/internal/model"
	"github.com/hndoan/Lorises/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type UserTestService interface {
	GetAllTemplates() ([]dto.TemplateSummaryDTO, error)
	GetTemplateDetails(templateID uint) (*dto.TemplateResponseDTO, error)
	StartTest(userID, templateID uint) (*dto.InstanceDetailDTO, error)
	GetMyInstances(userID uint) ([]dto.InstanceSummaryDTO, error)
	GetInstanceDetails(userID, instanceID uint) (*dto.InstanceDetailDTO, error)
	CancelTest(userID, instanceID uint) error
}

type userTestService struct {
	templateRepo repository.TemplateRepository
	instanceRepo repository.InstanceRepository
}

func NewUserTestService(templateRepo repository.TemplateRepository, instanceRepo repository.InstanceRepository) UserTestService {
	return &userTestService{templateRepo: templateRepo, instanceRepo: instanceRepo}
}

func (s *userTestService) GetAllTemplates() ([]dto.TemplateSummaryDTO, error) {
	templatesWithCount, err := s.templateRepo.FindAllWithQuestionCount()
	if err != nil {
		log.Error().Err(err).Msg("GetAllTemplates: failed to list templates")
		return nil, apperr.Persistence("failed to list templates", err)
	}

	dtos := make([]dto.TemplateSummaryDTO, 0, len(templatesWithCount))
	for _, twc := range templatesWithCount {
		dtos = append(dtos, dto.TemplateSummaryDTO{
			ID:              twc.TestTemplate.ID,
			Title:           twc.TestTemplate.Title,
			Description:     twc.TestTemplate.Description,
			Language:        twc.TestTemplate.Language,
			Kind:            twc.TestTemplate.Kind,
			DurationMinutes: twc.TestTemplate.DurationMinutes,
			QuestionCount:   twc.QuestionCount,
			CreatedAt:       twc.TestTemplate.CreatedAt,
		})
	}
	return dtos, nil
}

func (s *userTestService) GetTemplateDetails(templateID uint) (*dto.TemplateResponseDTO, error) {
	template, err := s.templateRepo.FindByIDWithQuestions(templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("template %d not found", templateID))
		}
		return nil, apperr.Persistence("failed to load template", err)
	}
	resp := templateToDTO(template)
	return &resp, nil
}

func (s *userTestService) StartTest(userID, templateID uint) (*dto.InstanceDetailDTO, error) {
	if _, err := s.templateRepo.FindByID(templateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("template %d not found", templateID))
		}
		return nil, apperr.Persistence("failed to load template", err)
	}

	now := time.Now()
	instance := model.TestInstance{
		TemplateID: templateID,
		UserID:     userID,
		Status:     model.StatusInProgress,
		StartedAt:  &now,
	}
	if err := s.instanceRepo.Create(&instance); err != nil {
		log.Error().Err(err).Uint("templateID", templateID).Uint("userID", userID).Msg("StartTest: failed to create instance")
		return nil, apperr.Persistence("failed to start test", err)
	}

	log.Info().Uint("instanceID", instance.ID).Uint("userID", userID).Msg("StartTest: instance started")
	resp := instanceToDetailDTO(&instance, false)
	return &resp, nil
}

func (s *userTestService) GetMyInstances(userID uint) ([]dto.InstanceSummaryDTO, error) {
	instances, err := s.instanceRepo.FindAllByUser(userID)
	if err != nil {
		return nil, apperr.Persistence("failed to list instances", err)
	}
	dtos := make([]dto.InstanceSummaryDTO, 0, len(instances))
	for i := range instances {
		var summary dto.InstanceSummaryDTO
		if err := copier.Copy(&summary, &instances[i]); err != nil {
			log.Error().Err(err).Uint("instanceID", instances[i].ID).Msg("GetMyInstances: copy failed")
			continue
		}
		dtos = append(dtos, summary)
	}
	return dtos, nil
}

func (s *userTestService) GetInstanceDetails(userID, instanceID uint) (*dto.InstanceDetailDTO, error) {
	instance, err := s.instanceRepo.FindByIDWithDetails(instanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("test instance %d not found", instanceID))
		}
		return nil, apperr.Persistence("failed to load instance", err)
	}
	if instance.UserID != userID {
		// Do not leak the existence of someone else's instance.
		return nil, apperr.NotFound(fmt.Sprintf("test instance %d not found", instanceID))
	}

	// Grades stay hidden until the review is finished.
	resp := instanceToDetailDTO(instance, instance.Status == model.StatusReviewed)
	return &resp, nil
}

func (s *userTestService) CancelTest(userID, instanceID uint) error {
	instance, err := s.instanceRepo.FindByID(instanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound(fmt.Sprintf("test instance %d not found", instanceID))
		}
		return apperr.Persistence("failed to load instance", err)
	}
	if instance.UserID != userID {
		return apperr.NotFound(fmt.Sprintf("test instance %d not found", instanceID))
	}
	if !model.CanTransition(instance.Status, model.StatusCancelled) {
		return apperr.ValidationFailed(fmt.Sprintf("cannot cancel a %s test instance", instance.Status))
	}

	changed, err := s.instanceRepo.UpdateStatusIf(instanceID, []string{instance.Status}, model.StatusCancelled)
	if err != nil {
		return apperr.Persistence("failed to cancel instance", err)
	}
	if !changed {
		return apperr.ValidationFailed("test instance changed state, cancel it again if still possible")
	}
	log.Info().Uint("instanceID", instanceID).Msg("CancelTest: instance cancelled")
	return nil
}
