package design

import (
	"time"

	"adstudioAPI/internal/canvas"
	"adstudioAPI/internal/template"
)

// Design is a creative derived from (or created independently of) a
// template. TemplateID is a back-reference only: deleting the template does
// not cascade, and template edits are never reflected here.
type Design struct {
	ID         string           `json:"id"`
	TemplateID *string          `json:"templateId"`
	Name       string           `json:"name"`
	Channel    template.Channel `json:"channel"`
	Status     template.Status  `json:"status"`
	Canvas     *canvas.Canvas   `json:"canvas"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}
