package service

import (
	"encoding/json"

	"github.com/jinzhu/copier"

	"github.com/hndoan/Lorises/internal/dto"
	"github.com/hndoan/Lorises/internal/model"
	"github.com/rs/zerolog/log"
)

// questionToDTO maps a question model to its response DTO, decoding the JSONB
// options column. Correct answers never leave the model here; reviewer and
// admin surfaces attach them separately when permitted.
func questionToDTO(q *model.Question) dto.QuestionResponseDTO {
	out := dto.QuestionResponseDTO{
		ID:              q.ID,
		TemplateID:      q.TemplateID,
		Section:         q.Section,
		Prompt:          q.Prompt,
		IsAutoGradable:  q.IsAutoGradable,
		MaxScore:        q.MaxScore,
		OrderInTemplate: q.OrderInTemplate,
	}
	if len(q.Options) > 0 {
		if err := json.Unmarshal(q.Options, &out.Options); err != nil {
			log.Warn().Err(err).Uint("questionID", q.ID).Msg("Failed to decode question options")
		}
	}
	return out
}

func questionsToDTOs(questions []model.Question) []dto.QuestionResponseDTO {
	out := make([]dto.QuestionResponseDTO, len(questions))
	for i := range questions {
		out[i] = questionToDTO(&questions[i])
	}
	return out
}

func templateToDTO(t *model.TestTemplate) dto.TemplateResponseDTO {
	var out dto.TemplateResponseDTO
	if err := copier.Copy(&out, t); err != nil {
		log.Error().Err(err).Uint("templateID", t.ID).Msg("Failed to copy template to DTO")
	}
	out.Questions = questionsToDTOs(t.Questions)
	return out
}

func answerToDTO(a *model.Answer) dto.AnswerResponseDTO {
	out := dto.AnswerResponseDTO{
		ID:         a.ID,
		QuestionID: a.QuestionID,
		Section:    a.Section,
		Content:    a.Content,
		AudioURL:   a.AudioURL,
		IsCorrect:  a.IsCorrect,
		AutoScore:  a.AutoScore,
	}
	if a.Question.ID != 0 {
		out.Question = questionToDTO(&a.Question)
	}
	return out
}

// instanceToDetailDTO maps an instance with preloaded associations. When
// withGrades is false the per-answer grading fields are stripped, which is
// what learners see while their test is still being reviewed.
func instanceToDetailDTO(instance *model.TestInstance, withGrades bool) dto.InstanceDetailDTO {
	out := dto.InstanceDetailDTO{
		ID:               instance.ID,
		TemplateID:       instance.TemplateID,
		UserID:           instance.UserID,
		Status:           instance.Status,
		StartedAt:        instance.StartedAt,
		SubmittedAt:      instance.SubmittedAt,
		ReviewedAt:       instance.ReviewedAt,
		FinalScore:       instance.FinalScore,
		MaxPossibleScore: instance.MaxPossibleScore,
		Percentage:       instance.Percentage,
		IsPassed:         instance.IsPassed,
	}
	if instance.Template.ID != 0 {
		out.TemplateTitle = instance.Template.Title
	}
	out.Answers = make([]dto.AnswerResponseDTO, len(instance.Answers))
	for i := range instance.Answers {
		ansDTO := answerToDTO(&instance.Answers[i])
		if !withGrades {
			ansDTO.IsCorrect = nil
			ansDTO.AutoScore = nil
		}
		out.Answers[i] = ansDTO
	}
	return out
}
