package service

import (
	"strings"

	"github.com/hndoan/Lorises/internal/model"
)

// AutoGraderService decides correctness for auto-gradable questions by
// normalized string comparison against the stored correct answer.
type AutoGraderService interface {
	Grade(question *model.Question, content string) (isCorrect bool, score float64)
}

type autoGraderService struct{}

func NewAutoGraderService() AutoGraderService {
	return &autoGraderService{}
}

// Grade compares the learner's answer with the correct one, both trimmed and
// case-folded. A correct answer earns the question's full MaxScore, anything
// else earns zero. A question without a stored correct answer grades to zero.
func (s *autoGraderService) Grade(question *model.Question, content string) (bool, float64) {
	if question.CorrectAnswer == nil {
		return false, 0
	}
	expected := strings.TrimSpace(*question.CorrectAnswer)
	given := strings.TrimSpace(content)
	if expected == "" || !strings.EqualFold(expected, given) {
		return false, 0
	}
	return true, question.MaxScore
}
