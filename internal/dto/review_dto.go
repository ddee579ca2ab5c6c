package dto

// QuestionReviewDTO is one reviewer score for one manually-graded question.
type QuestionReviewDTO struct {
	QuestionID uint    `json:"question_id" binding:"required"`
	Score      float64 `json:"score" binding:"gte=0"`
	Feedback   string  `json:"feedback,omitempty"`
}

// ReviewRequestDTO is the request DTO for a reviewer scoring an instance.
type ReviewRequestDTO struct {
	Reviews []QuestionReviewDTO `json:"reviews" binding:"required,min=1,dive"`
}

// ReviewResultDTO is the aggregation outcome returned to the reviewer.
type ReviewResultDTO struct {
	InstanceID       uint    `json:"instance_id"`
	FinalScore       float64 `json:"final_score"`
	MaxPossibleScore float64 `json:"max_possible_score"`
	Percentage       float64 `json:"percentage"`
	IsPassed         bool    `json:"is_passed"`
}

// ReviewBundleDTO packages everything a reviewer needs to grade an instance:
// the template, its questions, and the learner's answers.
type ReviewBundleDTO struct {
	Instance  InstanceDetailDTO     `json:"instance"`
	Template  TemplateResponseDTO   `json:"template"`
	Questions []QuestionResponseDTO `json:"questions"`
	Answers   []AnswerResponseDTO   `json:"answers"`
}
