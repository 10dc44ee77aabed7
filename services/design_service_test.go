package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adstudioAPI/internal/canvas"
	"adstudioAPI/internal/design"
	"adstudioAPI/internal/store"
	"adstudioAPI/internal/template"
)

func newDesignFixture(t *testing.T) (*DesignService, *TemplateService, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore()
	return NewDesignService(s, s), NewTemplateService(s), s
}

func TestCreateDesign(t *testing.T) {
	designs, _, _ := newDesignFixture(t)
	templateID := "tpl-1"

	created, err := designs.CreateDesign(context.Background(), &design.CreateDesignRequest{
		Name:       "Launch Post",
		Channel:    template.ChannelFacebook,
		TemplateID: &templateID,
	})
	require.NoError(t, err)

	assert.Equal(t, template.StatusDraft, created.Status)
	require.NotNil(t, created.TemplateID)
	assert.Equal(t, "tpl-1", *created.TemplateID)
	require.NotNil(t, created.Canvas)
	assert.Empty(t, created.Canvas.Layers)
}

func TestCreateDesignValidation(t *testing.T) {
	designs, _, _ := newDesignFixture(t)

	_, err := designs.CreateDesign(context.Background(), &design.CreateDesignRequest{
		Name:    "",
		Channel: template.ChannelFacebook,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestCreateDesignFromTemplate(t *testing.T) {
	designs, templates, _ := newDesignFixture(t)
	ctx := context.Background()

	cv := canvas.AddTextLayer(canvas.NewEmptyCanvas(0, 0, ""), nil)
	tpl, err := templates.CreateTemplate(ctx, &template.CreateTemplateRequest{
		Name:    "Promo",
		Channel: template.ChannelInstagram,
		Status:  template.StatusActive,
		Canvas:  cv,
	})
	require.NoError(t, err)

	d, err := designs.CreateDesignFromTemplate(ctx, tpl.ID, &design.CreateFromTemplateRequest{})
	require.NoError(t, err)

	assert.Equal(t, "Promo (Design)", d.Name)
	assert.Equal(t, template.ChannelInstagram, d.Channel)
	assert.Equal(t, template.StatusDraft, d.Status, "derived design starts as draft regardless of template status")
	require.NotNil(t, d.TemplateID)
	assert.Equal(t, tpl.ID, *d.TemplateID)
	require.NotNil(t, d.Canvas)
	require.Len(t, d.Canvas.Layers, 1)
}

func TestCreateDesignFromTemplateDeepCopy(t *testing.T) {
	designs, templates, _ := newDesignFixture(t)
	ctx := context.Background()

	cv := canvas.AddTextLayer(canvas.NewEmptyCanvas(0, 0, ""), nil)
	tpl, err := templates.CreateTemplate(ctx, &template.CreateTemplateRequest{
		Name:    "Promo",
		Channel: template.ChannelInstagram,
		Canvas:  cv,
	})
	require.NoError(t, err)

	d, err := designs.CreateDesignFromTemplate(ctx, tpl.ID, &design.CreateFromTemplateRequest{Name: "Derived"})
	require.NoError(t, err)

	// edit the design's canvas and save it back
	layerID := d.Canvas.Layers[0].Base().ID
	text := "edited in design"
	edited := canvas.UpdateLayer(d.Canvas, layerID, &canvas.LayerPatch{Text: &text})
	_, err = designs.UpdateDesign(ctx, d.ID, &design.UpdateDesignRequest{Canvas: edited})
	require.NoError(t, err)

	// the template's stored canvas must be unaffected
	storedTpl, err := templates.GetTemplate(ctx, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Text", storedTpl.Canvas.Layers[0].(canvas.TextLayer).Text)
}

func TestCreateDesignFromTemplateWithoutCanvas(t *testing.T) {
	designs, templates, s := newDesignFixture(t)
	ctx := context.Background()

	tpl, err := templates.CreateTemplate(ctx, &template.CreateTemplateRequest{
		Name:    "Bare",
		Channel: template.ChannelDisplay,
	})
	require.NoError(t, err)

	// force a template with no canvas at all
	tpl.Canvas = nil
	require.NoError(t, s.UpdateTemplate(ctx, tpl))

	d, err := designs.CreateDesignFromTemplate(ctx, tpl.ID, &design.CreateFromTemplateRequest{})
	require.NoError(t, err)
	require.NotNil(t, d.Canvas, "missing template canvas should yield an empty canvas")
	assert.Empty(t, d.Canvas.Layers)
}

func TestCreateDesignFromMissingTemplate(t *testing.T) {
	designs, _, _ := newDesignFixture(t)

	_, err := designs.CreateDesignFromTemplate(context.Background(), "missing", &design.CreateFromTemplateRequest{})
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestSaveDesignAsTemplate(t *testing.T) {
	designs, templates, _ := newDesignFixture(t)
	ctx := context.Background()

	cv := canvas.AddImageLayer(canvas.NewEmptyCanvas(0, 0, ""), nil)
	d, err := designs.CreateDesign(ctx, &design.CreateDesignRequest{
		Name:    "Holiday Banner",
		Channel: template.ChannelDisplay,
		Status:  template.StatusActive,
		Canvas:  cv,
	})
	require.NoError(t, err)

	tpl, err := designs.SaveDesignAsTemplate(ctx, d.ID, &design.SaveAsTemplateRequest{})
	require.NoError(t, err)

	assert.Equal(t, "Holiday Banner (Template)", tpl.Name)
	assert.Equal(t, template.ChannelDisplay, tpl.Channel)
	assert.Equal(t, template.StatusDraft, tpl.Status)
	require.Len(t, tpl.Canvas.Layers, 1)

	// deep copy: editing the design afterwards must not leak into the template
	layerID := d.Canvas.Layers[0].Base().ID
	src := "https://example.com/changed.png"
	edited := canvas.UpdateLayer(d.Canvas, layerID, &canvas.LayerPatch{Src: &src})
	_, err = designs.UpdateDesign(ctx, d.ID, &design.UpdateDesignRequest{Canvas: edited})
	require.NoError(t, err)

	storedTpl, err := templates.GetTemplate(ctx, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "", storedTpl.Canvas.Layers[0].(canvas.ImageLayer).Src)
}

func TestCopySuggestionsDeterministic(t *testing.T) {
	svc := NewCopyService()

	first, err := svc.GenerateSuggestions("spring collection")
	require.NoError(t, err)
	second, err := svc.GenerateSuggestions("spring collection")
	require.NoError(t, err)

	assert.Equal(t, first, second, "same prompt must yield the same suggestions")
	assert.Len(t, first, 3)
	assert.Contains(t, first[0], "Spring collection")
}

func TestCopySuggestionsRejectEmptyPrompt(t *testing.T) {
	svc := NewCopyService()

	_, err := svc.GenerateSuggestions("   ")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "prompt", verr.Field)
}
