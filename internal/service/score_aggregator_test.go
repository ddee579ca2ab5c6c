package service

import (
	"testing"

	"github.com/hndoan/Lorises/internal/model"
	"github.com/stretchr/testify/assert"
)

func aggregatorFixture() ([]model.Question, []model.Answer, []model.Review) {
	questions := []model.Question{
		{ID: 1, Section: model.SectionReading, IsAutoGradable: true, MaxScore: 5},
		{ID: 2, Section: model.SectionListening, IsAutoGradable: true, MaxScore: 5},
		{ID: 3, Section: model.SectionWriting, MaxScore: 10},
	}
	answers := []model.Answer{
		{QuestionID: 1, AutoScore: floatPtr(5)},
		{QuestionID: 2, AutoScore: floatPtr(0)},
		{QuestionID: 3, Content: "an essay"},
	}
	reviews := []model.Review{
		{QuestionID: 3, Score: 7, MaxScore: 10},
	}
	return questions, answers, reviews
}

func TestAggregateCombinesAutoAndReviewScores(t *testing.T) {
	questions, answers, reviews := aggregatorFixture()
	agg := NewScoreAggregatorService()

	result := agg.Aggregate(questions, answers, reviews, 60)

	assert.Equal(t, 12.0, result.FinalScore)
	assert.Equal(t, 20.0, result.MaxPossibleScore)
	assert.Equal(t, 60.0, result.Percentage)
	assert.True(t, result.IsPassed)
}

func TestAggregateIsDeterministic(t *testing.T) {
	questions, answers, reviews := aggregatorFixture()
	agg := NewScoreAggregatorService()

	first := agg.Aggregate(questions, answers, reviews, 60)
	second := agg.Aggregate(questions, answers, reviews, 60)

	assert.Equal(t, first, second)
}

func TestAggregateBoundsAndThreshold(t *testing.T) {
	agg := NewScoreAggregatorService()

	tests := []struct {
		name      string
		questions []model.Question
		answers   []model.Answer
		reviews   []model.Review
		threshold float64
		wantFinal float64
		wantMax   float64
		wantPct   float64
		wantPass  bool
	}{
		{
			name: "missing review counts as zero",
			questions: []model.Question{
				{ID: 1, IsAutoGradable: true, MaxScore: 5},
				{ID: 2, MaxScore: 10},
			},
			answers:   []model.Answer{{QuestionID: 1, AutoScore: floatPtr(5)}},
			threshold: 60,
			wantFinal: 5, wantMax: 15, wantPct: 100.0 / 3, wantPass: false,
		},
		{
			name:      "score above max is clamped",
			questions: []model.Question{{ID: 1, MaxScore: 10}},
			reviews:   []model.Review{{QuestionID: 1, Score: 25, MaxScore: 10}},
			threshold: 60,
			wantFinal: 10, wantMax: 10, wantPct: 100, wantPass: true,
		},
		{
			name:      "negative score is clamped to zero",
			questions: []model.Question{{ID: 1, MaxScore: 10}},
			reviews:   []model.Review{{QuestionID: 1, Score: -3, MaxScore: 10}},
			threshold: 60,
			wantFinal: 0, wantMax: 10, wantPct: 0, wantPass: false,
		},
		{
			name:      "exactly at threshold passes",
			questions: []model.Question{{ID: 1, MaxScore: 10}},
			reviews:   []model.Review{{QuestionID: 1, Score: 6, MaxScore: 10}},
			threshold: 60,
			wantFinal: 6, wantMax: 10, wantPct: 60, wantPass: true,
		},
		{
			name:      "just below threshold fails",
			questions: []model.Question{{ID: 1, MaxScore: 10}},
			reviews:   []model.Review{{QuestionID: 1, Score: 5.9, MaxScore: 10}},
			threshold: 60,
			wantFinal: 5.9, wantMax: 10, wantPct: 59, wantPass: false,
		},
		{
			name:      "zero max possible score never passes",
			questions: nil,
			threshold: 0,
			wantFinal: 0, wantMax: 0, wantPct: 0, wantPass: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := agg.Aggregate(tt.questions, tt.answers, tt.reviews, tt.threshold)
			assert.InDelta(t, tt.wantFinal, result.FinalScore, 1e-9)
			assert.InDelta(t, tt.wantMax, result.MaxPossibleScore, 1e-9)
			assert.InDelta(t, tt.wantPct, result.Percentage, 1e-9)
			assert.Equal(t, tt.wantPass, result.IsPassed)
		})
	}
}

func TestAggregateFailingScenario(t *testing.T) {
	questions := []model.Question{
		{ID: 1, IsAutoGradable: true, MaxScore: 5},
		{ID: 2, IsAutoGradable: true, MaxScore: 5},
		{ID: 3, MaxScore: 10},
	}
	answers := []model.Answer{
		{QuestionID: 1, AutoScore: floatPtr(5)},
		{QuestionID: 2, AutoScore: floatPtr(0)},
	}
	reviews := []model.Review{{QuestionID: 3, Score: 2, MaxScore: 10}}

	result := NewScoreAggregatorService().Aggregate(questions, answers, reviews, 60)

	assert.Equal(t, 7.0, result.FinalScore)
	assert.Equal(t, 20.0, result.MaxPossibleScore)
	assert.Equal(t, 35.0, result.Percentage)
	assert.False(t, result.IsPassed)
}

func TestThresholdFor(t *testing.T) {
	assert.Equal(t, 60.0, ThresholdFor(nil, 60))
	assert.Equal(t, 60.0, ThresholdFor(&model.TestTemplate{}, 60))
	assert.Equal(t, 75.0, ThresholdFor(&model.TestTemplate{PassThreshold: floatPtr(75)}, 60))
}
