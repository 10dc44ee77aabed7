package template

import "adstudioAPI/internal/canvas"

type CreateTemplateRequest struct {
	Name    string         `json:"name"`
	Channel Channel        `json:"channel"`
	Status  Status         `json:"status,omitempty"`
	Canvas  *canvas.Canvas `json:"canvas,omitempty"`
}

// UpdateTemplateRequest carries a partial update; nil fields are left
// untouched.
type UpdateTemplateRequest struct {
	Name    *string        `json:"name,omitempty"`
	Channel *Channel       `json:"channel,omitempty"`
	Status  *Status        `json:"status,omitempty"`
	Canvas  *canvas.Canvas `json:"canvas,omitempty"`
}
