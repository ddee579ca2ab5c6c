package dto

// QuestionCreateDTO is used within TemplateCreateDTO for admin template creation.
type QuestionCreateDTO struct {
	Section         string   `json:"section" binding:"required,oneof=reading writing speaking listening"`
	Prompt          string   `json:"prompt" binding:"required"`
	Options         []string `json:"options,omitempty"`
	CorrectAnswer   *string  `json:"correct_answer,omitempty"`
	IsAutoGradable  bool     `json:"is_auto_gradable"`
	MaxScore        float64  `json:"max_score" binding:"required,gt=0"`
	OrderInTemplate int      `json:"order_in_template" binding:"required,min=1"`
}

// TemplateCreateDTO is for admin to create a new test template with all its questions.
type TemplateCreateDTO struct {
	Title           string              `json:"title" binding:"required"`
	Description     string              `json:"description,omitempty"`
	Language        string              `json:"language" binding:"required"`
	Kind            string              `json:"kind" binding:"required,oneof=demo practice full"`
	DurationMinutes int                 `json:"duration_minutes" binding:"required,gt=0"`
	PassThreshold   *float64            `json:"pass_threshold,omitempty" binding:"omitempty,gte=0,lte=100"`
	Questions       []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

// TemplateUpdateDTO updates template metadata only; questions are managed
// through the dedicated question endpoints.
type TemplateUpdateDTO struct {
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description,omitempty"`
	DurationMinutes int      `json:"duration_minutes" binding:"required,gt=0"`
	PassThreshold   *float64 `json:"pass_threshold,omitempty" binding:"omitempty,gte=0,lte=100"`
}
