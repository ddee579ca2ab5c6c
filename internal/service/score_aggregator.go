package service

import (
	"github.com/hndoan/Lorises/internal/model"
)

// AggregateResult is the outcome of combining auto-scores and review scores
// across every question of a template.
type AggregateResult struct {
	FinalScore       float64
	MaxPossibleScore float64
	Percentage       float64
	IsPassed         bool
}

// ScoreAggregatorService is a pure computation over already-loaded data; it
// performs no I/O and always yields the same result for the same inputs.
type ScoreAggregatorService interface {
	Aggregate(questions []model.Question, answers []model.Answer, reviews []model.Review, passThreshold float64) AggregateResult
}

type scoreAggregatorService struct{}

func NewScoreAggregatorService() ScoreAggregatorService {
	return &scoreAggregatorService{}
}

// Aggregate sums one score per question: the answer's auto-score for
// auto-gradable questions, the reviewer's score otherwise, each missing score
// counting as zero and each score capped at the question's MaxScore. A
// template with zero max possible score never passes.
func (s *scoreAggregatorService) Aggregate(questions []model.Question, answers []model.Answer, reviews []model.Review, passThreshold float64) AggregateResult {
	autoScores := make(map[uint]float64, len(answers))
	for _, a := range answers {
		if a.AutoScore != nil {
			autoScores[a.QuestionID] = *a.AutoScore
		}
	}
	reviewScores := make(map[uint]float64, len(reviews))
	for _, rv := range reviews {
		reviewScores[rv.QuestionID] = rv.Score
	}

	var result AggregateResult
	for _, q := range questions {
		result.MaxPossibleScore += q.MaxScore

		var score float64
		if q.IsAutoGradable {
			score = autoScores[q.ID]
		} else {
			score = reviewScores[q.ID]
		}
		if score < 0 {
			score = 0
		}
		if score > q.MaxScore {
			score = q.MaxScore
		}
		result.FinalScore += score
	}

	if result.MaxPossibleScore > 0 {
		result.Percentage = result.FinalScore / result.MaxPossibleScore * 100
		result.IsPassed = result.Percentage >= passThreshold
	}
	return result
}

// ThresholdFor resolves the pass threshold for a template, falling back to
// the configured default when the template does not carry its own.
func ThresholdFor(template *model.TestTemplate, defaultThreshold float64) float64 {
	if template != nil && template.PassThreshold != nil {
		return *template.PassThreshold
	}
	return defaultThreshold
}
