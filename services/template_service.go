package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"adstudioAPI/internal/canvas"
	"adstudioAPI/internal/store"
	"adstudioAPI/internal/template"
)

type TemplateService struct {
	store store.TemplateStore
}

func NewTemplateService(s store.TemplateStore) *TemplateService {
	return &TemplateService{store: s}
}

func validateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", validationErrorf("name", "is required and must be a non-empty string")
	}
	return trimmed, nil
}

func validateChannel(c template.Channel) error {
	if !c.Valid() {
		return validationErrorf("channel", "must be one of: %s", joinChannels())
	}
	return nil
}

func validateStatus(s template.Status) error {
	if !s.Valid() {
		return validationErrorf("status", "must be one of: %s", joinStatuses())
	}
	return nil
}

func joinChannels() string {
	parts := make([]string, 0, len(template.Channels()))
	for _, c := range template.Channels() {
		parts = append(parts, string(c))
	}
	return strings.Join(parts, ", ")
}

func joinStatuses() string {
	parts := make([]string, 0, len(template.Statuses()))
	for _, s := range template.Statuses() {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ", ")
}

func (s *TemplateService) ListTemplates(ctx context.Context) ([]*template.Template, error) {
	templates, err := s.store.ListTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

func (s *TemplateService) GetTemplate(ctx context.Context, id string) (*template.Template, error) {
	t, err := s.store.GetTemplate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get template %s: %w", id, err)
	}
	return t, nil
}

// CreateTemplate validates the request and stores a new template. A missing
// canvas defaults to an empty one; a missing status defaults to draft.
func (s *TemplateService) CreateTemplate(ctx context.Context, req *template.CreateTemplateRequest) (*template.Template, error) {
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
	t := &template.Template{
		ID:        uuid.NewString(),
		Name:      name,
		Channel:   req.Channel,
		Status:    status,
		Canvas:    cv,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateTemplate(ctx, t); err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	return t, nil
}

// UpdateTemplate applies the provided fields to an existing template. All
// fields are validated before anything is touched, so a rejected request is
// never partially applied. updatedAt is refreshed on every update.
func (s *TemplateService) UpdateTemplate(ctx context.Context, id string, req *template.UpdateTemplateRequest) (*template.Template, error) {
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

	t, err := s.store.GetTemplate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update template %s: %w", id, err)
	}

	if req.Name != nil {
		t.Name = name
	}
	if req.Channel != nil {
		t.Channel = *req.Channel
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	if req.Canvas != nil {
		t.Canvas = req.Canvas
	}
	t.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateTemplate(ctx, t); err != nil {
		return nil, fmt.Errorf("update template %s: %w", id, err)
	}
	return t, nil
}

func (s *TemplateService) DeleteTemplate(ctx context.Context, id string) error {
	if err := s.store.DeleteTemplate(ctx, id); err != nil {
		return fmt.Errorf("delete template %s: %w", id, err)
	}
	return nil
}
