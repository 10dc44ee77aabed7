package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adstudioAPI/internal/canvas"
	"adstudioAPI/internal/store"
	"adstudioAPI/internal/template"
)

func TestCreateTemplateDefaults(t *testing.T) {
	svc := NewTemplateService(store.NewMemoryStore())

	created, err := svc.CreateTemplate(context.Background(), &template.CreateTemplateRequest{
		Name:    "  Summer Sale  ",
		Channel: template.ChannelInstagram,
	})
	require.NoError(t, err)

	assert.Equal(t, "Summer Sale", created.Name, "name should be trimmed")
	assert.Equal(t, template.StatusDraft, created.Status, "status should default to draft")
	require.NotNil(t, created.Canvas, "canvas should default to an empty canvas")
	assert.Equal(t, canvas.DefaultWidth, created.Canvas.Width)
	assert.Empty(t, created.Canvas.Layers)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestCreateTemplateValidation(t *testing.T) {
	svc := NewTemplateService(store.NewMemoryStore())
	ctx := context.Background()

	cases := []struct {
		name  string
		req   *template.CreateTemplateRequest
		field string
	}{
		{
			name:  "missing name",
			req:   &template.CreateTemplateRequest{Name: "   ", Channel: template.ChannelFacebook},
			field: "name",
		},
		{
			name:  "invalid channel",
			req:   &template.CreateTemplateRequest{Name: "ok", Channel: "tiktok"},
			field: "channel",
		},
		{
			name:  "invalid status",
			req:   &template.CreateTemplateRequest{Name: "ok", Channel: template.ChannelFacebook, Status: "published"},
			field: "status",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateTemplate(ctx, tc.req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}

	// nothing was persisted by rejected requests
	list, err := svc.ListTemplates(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdateTemplatePartial(t *testing.T) {
	svc := NewTemplateService(store.NewMemoryStore())
	ctx := context.Background()

	created, err := svc.CreateTemplate(ctx, &template.CreateTemplateRequest{
		Name:    "Launch",
		Channel: template.ChannelDisplay,
	})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	status := template.StatusActive
	updated, err := svc.UpdateTemplate(ctx, created.ID, &template.UpdateTemplateRequest{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, template.StatusActive, updated.Status)
	assert.Equal(t, "Launch", updated.Name, "unspecified fields must not change")
	assert.Equal(t, template.ChannelDisplay, updated.Channel)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt), "updatedAt should be refreshed")
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdateTemplateNeverPartiallyApplied(t *testing.T) {
	svc := NewTemplateService(store.NewMemoryStore())
	ctx := context.Background()

	created, err := svc.CreateTemplate(ctx, &template.CreateTemplateRequest{
		Name:    "Original",
		Channel: template.ChannelDisplay,
	})
	require.NoError(t, err)

	name := "Renamed"
	badChannel := template.Channel("myspace")
	_, err = svc.UpdateTemplate(ctx, created.ID, &template.UpdateTemplateRequest{
		Name:    &name,
		Channel: &badChannel,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	got, err := svc.GetTemplate(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", got.Name, "rejected update must not touch the record")
}

func TestTemplateNotFound(t *testing.T) {
	svc := NewTemplateService(store.NewMemoryStore())
	ctx := context.Background()

	_, err := svc.GetTemplate(ctx, "missing")
	assert.True(t, errors.Is(err, store.ErrNotFound))

	name := "x"
	_, err = svc.UpdateTemplate(ctx, "missing", &template.UpdateTemplateRequest{Name: &name})
	assert.True(t, errors.Is(err, store.ErrNotFound))

	err = svc.DeleteTemplate(ctx, "missing")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestUpdateTemplateCanvas(t *testing.T) {
	svc := NewTemplateService(store.NewMemoryStore())
	ctx := context.Background()

	created, err := svc.CreateTemplate(ctx, &template.CreateTemplateRequest{
		Name:    "With Canvas",
		Channel: template.ChannelLinkedIn,
	})
	require.NoError(t, err)

	cv := canvas.AddTextLayer(canvas.NewEmptyCanvas(0, 0, ""), nil)
	updated, err := svc.UpdateTemplate(ctx, created.ID, &template.UpdateTemplateRequest{Canvas: cv})
	require.NoError(t, err)
	require.NotNil(t, updated.Canvas)
	assert.Len(t, updated.Canvas.Layers, 1)

	got, err := svc.GetTemplate(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, got.Canvas.Layers, 1, "canvas should persist through the store")
}
