package dto

import "time"

// QuestionResponseDTO is used for displaying question details to learners.
// Correct answers are stripped before a learner ever sees a question.
type QuestionResponseDTO struct {
	ID              uint     `json:"id"`
	TemplateID      uint     `json:"template_id"`
	Section         string   `json:"section"`
	Prompt          string   `json:"prompt"`
	Options         []string `json:"options,omitempty"`
	IsAutoGradable  bool     `json:"is_auto_gradable"`
	MaxScore        float64  `json:"max_score"`
	OrderInTemplate int      `json:"order_in_template"`
}

// TemplateResponseDTO is used for displaying full template details.
type TemplateResponseDTO struct {
	ID              uint                  `json:"id"`
	Title           string                `json:"title"`
	Description     string                `json:"description,omitempty"`
	Language        string                `json:"language"`
	Kind            string                `json:"kind"`
	DurationMinutes int                   `json:"duration_minutes"`
	PassThreshold   *float64              `json:"pass_threshold,omitempty"`
	Questions       []QuestionResponseDTO `json:"questions,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
}

// TemplateSummaryDTO is used for listing templates available to learners.
type TemplateSummaryDTO struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Language        string    `json:"language"`
	Kind            string    `json:"kind"`
	DurationMinutes int       `json:"duration_minutes"`
	QuestionCount   int       `json:"question_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// --- Test instance flow ---

// AnswerSubmitDTO is one learner response within a full submission.
type AnswerSubmitDTO struct {
	QuestionID uint    `json:"question_id" binding:"required"`
	Content    string  `json:"content"`
	AudioURL   *string `json:"audio_url,omitempty"`
}

// SubmissionRequestDTO is the request DTO for a learner submitting all
// answers for a test instance.
type SubmissionRequestDTO struct {
	Answers []AnswerSubmitDTO `json:"answers" binding:"required,min=1,dive"`
}

// AnswerResponseDTO is used for displaying individual answer details.
type AnswerResponseDTO struct {
	ID         uint                `json:"id"`
	QuestionID uint                `json:"question_id"`
	Question   QuestionResponseDTO `json:"question,omitempty"`
	Section    string              `json:"section"`
	Content    string              `json:"content"`
	AudioURL   *string             `json:"audio_url,omitempty"`
	IsCorrect  *bool               `json:"is_correct,omitempty"`
	AutoScore  *float64            `json:"auto_score,omitempty"`
}

// InstanceDetailDTO carries the full state of a test instance. The score
// fields stay nil until the instance reaches the reviewed status.
type InstanceDetailDTO struct {
	ID               uint                `json:"id"`
	TemplateID       uint                `json:"template_id"`
	TemplateTitle    string              `json:"template_title,omitempty"`
	UserID           uint                `json:"user_id"`
	Status           string              `json:"status"`
	StartedAt        *time.Time          `json:"started_at,omitempty"`
	SubmittedAt      *time.Time          `json:"submitted_at,omitempty"`
	ReviewedAt       *time.Time          `json:"reviewed_at,omitempty"`
	FinalScore       *float64            `json:"final_score,omitempty"`
	MaxPossibleScore *float64            `json:"max_possible_score,omitempty"`
	Percentage       *float64            `json:"percentage,omitempty"`
	IsPassed         *bool               `json:"is_passed,omitempty"`
	Answers          []AnswerResponseDTO `json:"answers,omitempty"`
}

// InstanceSummaryDTO is for listing a learner's instances.
type InstanceSummaryDTO struct {
	ID          uint       `json:"id"`
	TemplateID  uint       `json:"template_id"`
	UserID      uint       `json:"user_id"`
	Status      string     `json:"status"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	Percentage  *float64   `json:"percentage,omitempty"`
	IsPassed    *bool      `json:"is_passed,omitempty"`
}
