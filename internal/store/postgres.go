package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"adstudioAPI/internal/canvas"
	"adstudioAPI/internal/design"
	"adstudioAPI/internal/template"
)

// PostgresStore persists records in the templates and designs tables, with
// the canvas stored verbatim as jsonb.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func encodeCanvas(c *canvas.Canvas) ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode canvas: %w", err)
	}
	return data, nil
}

func decodeCanvas(data []byte) (*canvas.Canvas, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var c canvas.Canvas
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode canvas: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) ListTemplates(ctx context.Context) ([]*template.Template, error) {
	query := `
	SELECT id, name, channel, status, canvas, created_at, updated_at
	FROM templates
	ORDER BY updated_at DESC
	`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query templates: %w", err)
	}
	defer rows.Close()

	var templates []*template.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	return templates, nil
}

func (s *PostgresStore) GetTemplate(ctx context.Context, id string) (*template.Template, error) {
	query := `
	SELECT id, name, channel, status, canvas, created_at, updated_at
	FROM templates
	WHERE id = $1
	`
	t, err := scanTemplate(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *PostgresStore) CreateTemplate(ctx context.Context, t *template.Template) error {
	canvasJSON, err := encodeCanvas(t.Canvas)
	if err != nil {
		return err
	}
	query := `
	INSERT INTO templates (id, name, channel, status, canvas, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.db.Exec(ctx, query, t.ID, t.Name, t.Channel, t.Status, canvasJSON, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert template: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateTemplate(ctx context.Context, t *template.Template) error {
	canvasJSON, err := encodeCanvas(t.Canvas)
	if err != nil {
		return err
	}
	query := `
	UPDATE templates
	SET name = $2, channel = $3, status = $4, canvas = $5, updated_at = $6
	WHERE id = $1
	`
	tag, err := s.db.Exec(ctx, query, t.ID, t.Name, t.Channel, t.Status, canvasJSON, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteTemplate(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListDesigns(ctx context.Context) ([]*design.Design, error) {
	query := `
	SELECT id, template_id, name, channel, status, canvas, created_at, updated_at
	FROM designs
	ORDER BY updated_at DESC
	`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query designs: %w", err)
	}
	defer rows.Close()

	var designs []*design.Design
	for rows.Next() {
		d, err := scanDesign(rows)
		if err != nil {
			return nil, err
		}
		designs = append(designs, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("read designs: %w", err)
	}
	return designs, nil
}

func (s *PostgresStore) GetDesign(ctx context.Context, id string) (*design.Design, error) {
	query := `
	SELECT id, template_id, name, channel, status, canvas, created_at, updated_at
	FROM designs
	WHERE id = $1
	`
	d, err := scanDesign(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *PostgresStore) CreateDesign(ctx context.Context, d *design.Design) error {
	canvasJSON, err := encodeCanvas(d.Canvas)
	if err != nil {
		return err
	}
	query := `
	INSERT INTO designs (id, template_id, name, channel, status, canvas, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = s.db.Exec(ctx, query, d.ID, d.TemplateID, d.Name, d.Channel, d.Status, canvasJSON, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert design: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateDesign(ctx context.Context, d *design.Design) error {
	canvasJSON, err := encodeCanvas(d.Canvas)
	if err != nil {
		return err
	}
	query := `
	UPDATE designs
	SET template_id = $2, name = $3, channel = $4, status = $5, canvas = $6, updated_at = $7
	WHERE id = $1
	`
	tag, err := s.db.Exec(ctx, query, d.ID, d.TemplateID, d.Name, d.Channel, d.Status, canvasJSON, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update design: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteDesign(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM designs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete design: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTemplate(row pgx.Row) (*template.Template, error) {
	var t template.Template
	var canvasJSON []byte
	err := row.Scan(&t.ID, &t.Name, &t.Channel, &t.Status, &canvasJSON, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if t.Canvas, err = decodeCanvas(canvasJSON); err != nil {
		return nil, err
	}
	return &t, nil
}

func scanDesign(row pgx.Row) (*design.Design, error) {
	var d design.Design
	var canvasJSON []byte
	err := row.Scan(&d.ID, &d.TemplateID, &d.Name, &d.Channel, &d.Status, &canvasJSON, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if d.Canvas, err = decodeCanvas(canvasJSON); err != nil {
		return nil, err
	}
	return &d, nil
}
