package store

import (
	"context"
	"sort"
	"sync"

	"adstudioAPI/internal/design"
	"adstudioAPI/internal/template"
)

// MemoryStore is a mutex-guarded in-memory Store. It backs the test suite
// and the STORE_DRIVER=memory mode for running the API without Postgres.
// Records are copied on the way in and out so callers can never alias the
// stored state.
type MemoryStore struct {
	mu        sync.RWMutex
	templates map[string]*template.Template
	designs   map[string]*design.Design
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		templates: make(map[string]*template.Template),
		designs:   make(map[string]*design.Design),
	}
}

func copyTemplate(t *template.Template) *template.Template {
	out := *t
	out.Canvas = t.Canvas.Clone()
	return &out
}

func copyDesign(d *design.Design) *design.Design {
	out := *d
	out.Canvas = d.Canvas.Clone()
	if d.TemplateID != nil {
		id := *d.TemplateID
		out.TemplateID = &id
	}
	return &out
}

func (s *MemoryStore) ListTemplates(_ context.Context) ([]*template.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*template.Template, 0, len(s.templates))
	for _, t := range s.templates {
		out = append(out, copyTemplate(t))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) GetTemplate(_ context.Context, id string) (*template.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.templates[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyTemplate(t), nil
}

func (s *MemoryStore) CreateTemplate(_ context.Context, t *template.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.templates[t.ID] = copyTemplate(t)
	return nil
}

func (s *MemoryStore) UpdateTemplate(_ context.Context, t *template.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.templates[t.ID]; !ok {
		return ErrNotFound
	}
	s.templates[t.ID] = copyTemplate(t)
	return nil
}

func (s *MemoryStore) DeleteTemplate(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.templates[id]; !ok {
		return ErrNotFound
	}
	delete(s.templates, id)
	return nil
}

func (s *MemoryStore) ListDesigns(_ context.Context) ([]*design.Design, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*design.Design, 0, len(s.designs))
	for _, d := range s.designs {
		out = append(out, copyDesign(d))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) GetDesign(_ context.Context, id string) (*design.Design, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.designs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyDesign(d), nil
}

func (s *MemoryStore) CreateDesign(_ context.Context, d *design.Design) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.designs[d.ID] = copyDesign(d)
	return nil
}

func (s *MemoryStore) UpdateDesign(_ context.Context, d *design.Design) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.designs[d.ID]; !ok {
		return ErrNotFound
	}
	s.designs[d.ID] = copyDesign(d)
	return nil
}

func (s *MemoryStore) DeleteDesign(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.designs[id]; !ok {
		return ErrNotFound
	}
	delete(s.designs, id)
	return nil
}
