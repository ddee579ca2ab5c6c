package service

import (
	"testing"

	"github.com/hndoan/Lorises/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestAutoGraderGrade(t *testing.T) {
	grader := NewAutoGraderService()
	question := &model.Question{
		ID:             1,
		Section:        model.SectionReading,
		CorrectAnswer:  strPtr("Paris"),
		IsAutoGradable: true,
		MaxScore:       5,
	}

	tests := []struct {
		name        string
		content     string
		wantCorrect bool
		wantScore   float64
	}{
		{"exact match", "Paris", true, 5},
		{"case insensitive", "pARis", true, 5},
		{"surrounding whitespace trimmed", "  paris \n", true, 5},
		{"wrong answer", "london", false, 0},
		{"empty answer", "", false, 0},
		{"partial match is wrong", "Paris, France", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isCorrect, score := grader.Grade(question, tt.content)
			assert.Equal(t, tt.wantCorrect, isCorrect)
			assert.Equal(t, tt.wantScore, score)
		})
	}
}

func TestAutoGraderNoStoredAnswer(t *testing.T) {
	grader := NewAutoGraderService()

	isCorrect, score := grader.Grade(&model.Question{MaxScore: 5}, "anything")
	assert.False(t, isCorrect)
	assert.Zero(t, score)

	isCorrect, score = grader.Grade(&model.Question{CorrectAnswer: strPtr("   "), MaxScore: 5}, "")
	assert.False(t, isCorrect)
	assert.Zero(t, score)
}
