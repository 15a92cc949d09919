package models

import (
	"fmt"
	"time"
)

// ProjectType is the target platform a project is generated for.
type ProjectType string

const (
	ProjectTypeFlutter ProjectType = "flutter"
	ProjectTypeAngular ProjectType = "angular"
)

// ParseProjectType validates a caller-supplied project type string.
func ParseProjectType(s string) (ProjectType, error) {
	switch ProjectType(s) {
	case ProjectTypeFlutter, ProjectTypeAngular:
		return ProjectType(s), nil
	}
	return "", fmt.Errorf("invalid project type %q: must be flutter or angular", s)
}

// CreatedVia records how an app record came to exist. It is assigned once
// at creation and carried with the record, never inferred later from which
// optional fields happen to be populated.
type CreatedVia string

const (
	CreatedViaPrompt CreatedVia = "prompt"
	CreatedViaXML    CreatedVia = "xml"
	CreatedViaMockup CreatedVia = "mockup"
	CreatedViaManual CreatedVia = "manual"
)

// AppConfig holds free-form generation options forwarded to the backend as-is.
type AppConfig map[string]interface{}

// App mirrors the mobile-generator service's app record.
type App struct {
	ID          string      `json:"id"`
	Nombre      string      `json:"nombre"`
	Prompt      string      `json:"prompt,omitempty"`
	XML         string      `json:"xml,omitempty"`
	MockupID    string      `json:"mockup_id,omitempty"`
	ProjectType ProjectType `json:"project_type"`
	Config      AppConfig   `json:"config,omitempty"`
	CreatedVia  CreatedVia  `json:"created_via,omitempty"`
	UserID      string      `json:"user_id"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
