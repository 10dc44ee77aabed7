package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"adstudioAPI/internal/canvas"
	"adstudioAPI/internal/design"
	"adstudioAPI/internal/store"
	"adstudioAPI/internal/template"
)

type DesignService struct {
	designs   store.DesignStore
	templates store.TemplateStore
}

func NewDesignService(designs store.DesignStore, templates store.TemplateStore) *DesignService {
	return &DesignService{designs: designs, templates: templates}
}

func (s *DesignService) ListDesigns(ctx context.Context) ([]*design.Design, error) {
	designs, err := s.designs.ListDesigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("list designs: %w", err)
	}
	return designs, nil
}

func (s *DesignService) GetDesign(ctx context.Context, id string) (*design.Design, error) {
	d, err := s.designs.GetDesign(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get design %s: %w", id, err)
	}
	return d, nil
}

func (s *DesignService) CreateDesign(ctx context.Context, req *design.CreateDesignRequest) (*design.Design, error) {
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}
	if err := validateChannel(req.Channel); err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = template.StatusDraft
	}
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	cv := req.Canvas
	if cv == nil {
		cv = canvas.NewEmptyCanvas(0, 0, "")
	}

	now := time.Now().UTC()
	d := &design.Design{
		ID:         uuid.NewString(),
		TemplateID: req.TemplateID,
		Name:       name,
		Channel:    req.Channel,
		Status:     status,
		Canvas:     cv,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.designs.CreateDesign(ctx, d); err != nil {
		return nil, fmt.Errorf("create design: %w", err)
	}
	return d, nil
}

// UpdateDesign applies the provided fields to an existing design. Validation
// happens up front so a rejected request is never partially applied;
// updatedAt is refreshed on every update.
func (s *DesignService) UpdateDesign(ctx context.Context, id string, req *design.UpdateDesignRequest) (*design.Design, error) {
	var name string
	if req.Name != nil {
		var err error
		if name, err = validateName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Channel != nil {
		if err := validateChannel(*req.Channel); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		if err := validateStatus(*req.Status); err != nil {
			return nil, err
		}
	}

	d, err := s.designs.GetDesign(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update design %s: %w", id, err)
	}

	if req.Name != nil {
		d.Name = name
	}
	if req.Channel != nil {
		d.Channel = *req.Channel
	}
	if req.Status != nil {
		d.Status = *req.Status
	}
	if req.TemplateID != nil {
		d.TemplateID = req.TemplateID
	}
	if req.Canvas != nil {
		d.Canvas = req.Canvas
	}
	d.UpdatedAt = time.Now().UTC()

	if err := s.designs.UpdateDesign(ctx, d); err != nil {
		return nil, fmt.Errorf("update design %s: %w", id, err)
	}
	return d, nil
}

func (s *DesignService) DeleteDesign(ctx context.Context, id string) error {
	if err := s.designs.DeleteDesign(ctx, id); err != nil {
		return fmt.Errorf("delete design %s: %w", id, err)
	}
	return nil
}

// CreateDesignFromTemplate derives a new draft design from a template: the
// canvas is a deep, independent copy (an empty canvas when the template has
// none), channel and templateId are carried over, and from that point on the
// design has no live link to future template edits.
func (s *DesignService) CreateDesignFromTemplate(ctx context.Context, templateID string, req *design.CreateFromTemplateRequest) (*design.Design, error) {
	t, err := s.templates.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("get template %s: %w", templateID, err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = t.Name + " (Design)"
	}

	cv := t.Canvas.Clone()
	if cv == nil {
		cv = canvas.NewEmptyCanvas(0, 0, "")
	}

	now := time.Now().UTC()
	d := &design.Design{
		ID:         uuid.NewString(),
		TemplateID: &t.ID,
		Name:       name,
		Channel:    t.Channel,
		Status:     template.StatusDraft,
		Canvas:     cv,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.designs.CreateDesign(ctx, d); err != nil {
		return nil, fmt.Errorf("create design from template %s: %w", templateID, err)
	}
	return d, nil
}

// SaveDesignAsTemplate is the inverse derivation: a new draft template with
// a deep copy of the design's canvas and no reference back to the design.
func (s *DesignService) SaveDesignAsTemplate(ctx context.Context, designID string, req *design.SaveAsTemplateRequest) (*template.Template, error) {
	d, err := s.designs.GetDesign(ctx, designID)
	if err != nil {
		return nil, fmt.Errorf("get design %s: %w", designID, err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = d.Name + " (Template)"
	}

	cv := d.Canvas.Clone()
	if cv == nil {
		cv = canvas.NewEmptyCanvas(0, 0, "")
	}

	now := time.Now().UTC()
	t := &template.Template{
		ID:        uuid.NewString(),
		Name:      name,
		Channel:   d.Channel,
		Status:    template.StatusDraft,
		Canvas:    cv,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.templates.CreateTemplate(ctx, t); err != nil {
		return nil, fmt.Errorf("save design %s as template: %w", designID, err)
	}
	return t, nil
}
