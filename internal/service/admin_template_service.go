package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hndoan/Lorises/internal/apperr"
	"github.com/hndoan/Lorises/internal/dto"
	"github.com/hndoan/Lorises/internal/model"
	"github.com/hndoan/Lorises/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AdminTemplateService interface {
	CreateTemplate(req dto.TemplateCreateDTO) (*dto.TemplateResponseDTO, error)
	UpdateTemplate(templateID uint, req dto.TemplateUpdateDTO) (*dto.TemplateResponseDTO, error)
	DeleteTemplate(templateID uint) error
	AddQuestion(templateID uint, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error)
}

type adminTemplateService struct {
	templateRepo repository.TemplateRepository
	questionRepo repository.QuestionRepository
}

func NewAdminTemplateService(templateRepo repository.TemplateRepository, questionRepo repository.QuestionRepository) AdminTemplateService {
	return &adminTemplateService{templateRepo: templateRepo, questionRepo: questionRepo}
}

func validateQuestionCreate(q *dto.QuestionCreateDTO) error {
	if !model.ValidSection(q.Section) {
		return apperr.ValidationFailed(fmt.Sprintf("unknown section %q", q.Section))
	}
	if q.IsAutoGradable && (q.CorrectAnswer == nil || *q.CorrectAnswer == "") {
		return apperr.ValidationFailed(fmt.Sprintf("auto-gradable question at order %d needs a correct answer", q.OrderInTemplate))
	}
	return nil
}

func questionCreateToModel(templateID uint, q *dto.QuestionCreateDTO) (model.Question, error) {
	out := model.Question{
		TemplateID:      templateID,
		Section:         q.Section,
		Prompt:          q.Prompt,
		CorrectAnswer:   q.CorrectAnswer,
		IsAutoGradable:  q.IsAutoGradable,
		MaxScore:        q.MaxScore,
		OrderInTemplate: q.OrderInTemplate,
	}
	if len(q.Options) > 0 {
		raw, err := json.Marshal(q.Options)
		if err != nil {
			return out, apperr.ValidationFailed("question options are not encodable")
		}
		out.Options = raw
	}
	return out, nil
}

func (s *adminTemplateService) CreateTemplate(req dto.TemplateCreateDTO) (*dto.TemplateResponseDTO, error) {
	orders := make(map[int]bool, len(req.Questions))
	questions := make([]model.Question, 0, len(req.Questions))
	for i := range req.Questions {
		q := &req.Questions[i]
		if err := validateQuestionCreate(q); err != nil {
			return nil, err
		}
		if orders[q.OrderInTemplate] {
			return nil, apperr.ValidationFailed(fmt.Sprintf("duplicate question order %d", q.OrderInTemplate))
		}
		orders[q.OrderInTemplate] = true

		qm, err := questionCreateToModel(0, q)
		if err != nil {
			return nil, err
		}
		questions = append(questions, qm)
	}

	template := model.TestTemplate{
		Title:           req.Title,
		Description:     req.Description,
		Language:        req.Language,
		Kind:            req.Kind,
		DurationMinutes: req.DurationMinutes,
		PassThreshold:   req.PassThreshold,
		Questions:       questions,
	}

	if err := s.templateRepo.Create(&template); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("CreateTemplate: database error")
		return nil, apperr.Persistence("failed to create template", err)
	}

	created, err := s.templateRepo.FindByIDWithQuestions(template.ID)
	if err != nil {
		log.Error().Err(err).Uint("templateID", template.ID).Msg("CreateTemplate: failed to reload created template")
		resp := templateToDTO(&template)
		return &resp, nil
	}
	resp := templateToDTO(created)
	return &resp, nil
}

func (s *adminTemplateService) UpdateTemplate(templateID uint, req dto.TemplateUpdateDTO) (*dto.TemplateResponseDTO, error) {
	template, err := s.templateRepo.FindByID(templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("template %d not found", templateID))
		}
		return nil, apperr.Persistence("failed to load template", err)
	}

	template.Title = req.Title
	template.Description = req.Description
	template.DurationMinutes = req.DurationMinutes
	template.PassThreshold = req.PassThreshold

	if err := s.templateRepo.Update(template); err != nil {
		log.Error().Err(err).Uint("templateID", templateID).Msg("UpdateTemplate: database error")
		return nil, apperr.Persistence("failed to update template", err)
	}
	resp := templateToDTO(template)
	return &resp, nil
}

func (s *adminTemplateService) DeleteTemplate(templateID uint) error {
	if _, err := s.templateRepo.FindByID(templateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound(fmt.Sprintf("template %d not found", templateID))
		}
		return apperr.Persistence("failed to load template", err)
	}
	if err := s.templateRepo.Delete(templateID); err != nil {
		return apperr.Persistence("failed to delete template", err)
	}
	return nil
}

func (s *adminTemplateService) AddQuestion(templateID uint, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error) {
	if err := validateQuestionCreate(&req); err != nil {
		return nil, err
	}
	existing, err := s.templateRepo.FindByIDWithQuestions(templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("template %d not found", templateID))
		}
		return nil, apperr.Persistence("failed to load template", err)
	}
	for _, q := range existing.Questions {
		if q.OrderInTemplate == req.OrderInTemplate {
			return nil, apperr.ValidationFailed(fmt.Sprintf("order %d is already taken in template %d", req.OrderInTemplate, templateID))
		}
	}

	question, err := questionCreateToModel(templateID, &req)
	if err != nil {
		return nil, err
	}
	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Uint("templateID", templateID).Msg("AddQuestion: database error")
		return nil, apperr.Persistence("failed to create question", err)
	}
	resp := questionToDTO(&question)
	return &resp, nil
}
