package design

import (
	"adstudioAPI/internal/canvas"
	"adstudioAPI/internal/template"
)

type CreateDesignRequest struct {
	Name       string           `json:"name"`
	Channel    template.Channel `json:"channel"`
	TemplateID *string          `json:"templateId,omitempty"`
	Status     template.Status  `json:"status,omitempty"`
	Canvas     *canvas.Canvas   `json:"canvas,omitempty"`
}

// UpdateDesignRequest carries a partial update; nil fields are left
// untouched.
type UpdateDesignRequest struct {
	Name       *string           `json:"name,omitempty"`
	Channel    *template.Channel `json:"channel,omitempty"`
	TemplateID *string           `json:"templateId,omitempty"`
	Status     *template.Status  `json:"status,omitempty"`
	Canvas     *canvas.Canvas    `json:"canvas,omitempty"`
}

// CreateFromTemplateRequest names a design derived from a template; an
// empty name falls back to "<template name> (Design)".
type CreateFromTemplateRequest struct {
	Name string `json:"name,omitempty"`
}

// SaveAsTemplateRequest names a template derived from a design; an empty
// name falls back to "<design name> (Template)".
type SaveAsTemplateRequest struct {
	Name string `json:"name,omitempty"`
}
