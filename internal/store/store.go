// Package store persists Template and Design records. The rest of the
// application consumes the interfaces here; the canvas attached to a record
// travels through the store as opaque JSON.
package store

import (
	"context"
	"errors"

	"adstudioAPI/internal/design"
	"adstudioAPI/internal/template"
)

// ErrNotFound is returned when a get/update/delete targets an id that is
// absent from the store.
var ErrNotFound = errors.New("record not found")

type TemplateStore interface {
	// ListTemplates returns all templates ordered by updatedAt descending.
	ListTemplates(ctx context.Context) ([]*template.Template, error)
	GetTemplate(ctx context.Context, id string) (*template.Template, error)
	CreateTemplate(ctx context.Context, t *template.Template) error
	// UpdateTemplate replaces the stored record with t, matched by t.ID.
	UpdateTemplate(ctx context.Context, t *template.Template) error
	DeleteTemplate(ctx context.Context, id string) error
}

type DesignStore interface {
	// ListDesigns returns all designs ordered by updatedAt descending.
	ListDesigns(ctx context.Context) ([]*design.Design, error)
	GetDesign(ctx context.Context, id string) (*design.Design, error)
	CreateDesign(ctx context.Context, d *design.Design) error
	// UpdateDesign replaces the stored record with d, matched by d.ID.
	UpdateDesign(ctx context.Context, d *design.Design) error
	DeleteDesign(ctx context.Context, id string) error
}

// Store is the full persistence surface the services are wired against.
type Store interface {
	TemplateStore
	DesignStore
}
