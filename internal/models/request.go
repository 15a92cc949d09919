package models

type GenerateFromPromptRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	// Optional project name; the backend picks one when omitted
	Nombre      string    `json:"nombre,omitempty"`
	ProjectType string    `json:"project_type" binding:"required"`
	Config      AppConfig `json:"config,omitempty"`
}

type UpdateAppRequest struct {
	Nombre *string   `json:"nombre,omitempty"`
	Prompt *string   `json:"prompt,omitempty"`
	Config AppConfig `json:"config,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
