package canvas

import (
	"reflect"
	"testing"
)

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }

// threeLayerCanvas builds a canvas with three text layers and returns it
// with the layer ids in insertion order.
func threeLayerCanvas(t *testing.T) (*Canvas, []string) {
	t.Helper()
	c := NewEmptyCanvas(0, 0, "")
	c = AddTextLayer(c, &LayerPatch{Text: str("one")})
	c = AddTextLayer(c, &LayerPatch{Text: str("two")})
	c = AddTextLayer(c, &LayerPatch{Text: str("three")})
	ids := make([]string, len(c.Layers))
	for i, l := range c.Layers {
		ids[i] = l.Base().ID
	}
	return c, ids
}

func TestAddTextLayerDefaults(t *testing.T) {
	c := NewEmptyCanvas(0, 0, "")
	next := AddTextLayer(c, nil)

	if len(next.Layers) != 1 {
		t.Fatalf("expected 1 layer, got %d", len(next.Layers))
	}
	l, ok := next.Layers[0].(TextLayer)
	if !ok {
		t.Fatalf("expected TextLayer, got %T", next.Layers[0])
	}
	if l.ID == "" {
		t.Error("expected generated layer id")
	}
	if l.Type != LayerTypeText {
		t.Errorf("type = %q", l.Type)
	}
	if l.X != 1080.0/2-100 || l.Y != 1080.0/2-25 {
		t.Errorf("expected centered position, got (%v, %v)", l.X, l.Y)
	}
	if l.Width != 200 || l.Height != 50 || l.Rotation != 0 || l.Opacity != 1 {
		t.Errorf("unexpected geometry defaults: %+v", l.BaseLayer)
	}
	if l.Text != "New Text" || l.FontSize != 24 || l.FontWeight != FontWeightNormal ||
		l.Color != "#000000" || l.TextAlign != TextAlignLeft {
		t.Errorf("unexpected text defaults: %+v", l)
	}
	if l.ZIndex != 0 {
		t.Errorf("first layer zIndex = %d, want 0", l.ZIndex)
	}
	if next.SelectedLayerID != l.ID {
		t.Errorf("new layer not selected: %q", next.SelectedLayerID)
	}
	if len(c.Layers) != 0 {
		t.Error("input canvas was mutated")
	}
}

func TestAddTextLayerOverrides(t *testing.T) {
	c := NewEmptyCanvas(0, 0, "")
	weight := FontWeightBold
	next := AddTextLayer(c, &LayerPatch{
		Text:       str("Sale!"),
		FontSize:   f64(36),
		Color:      str("#ff0000"),
		FontWeight: &weight,
		X:          f64(10),
	})

	l := next.Layers[0].(TextLayer)
	if l.Text != "Sale!" || l.FontSize != 36 || l.Color != "#ff0000" || l.FontWeight != FontWeightBold {
		t.Errorf("overrides not applied: %+v", l)
	}
	if l.X != 10 {
		t.Errorf("x override not applied: %v", l.X)
	}
	if l.Y != 1080.0/2-25 {
		t.Errorf("unrelated default lost: %v", l.Y)
	}
}

func TestAddImageLayerDefaults(t *testing.T) {
	c := NewEmptyCanvas(600, 400, "#000000")
	next := AddImageLayer(c, nil)

	l, ok := next.Layers[0].(ImageLayer)
	if !ok {
		t.Fatalf("expected ImageLayer, got %T", next.Layers[0])
	}
	if l.Width != 300 || l.Height != 300 {
		t.Errorf("size = %vx%v, want 300x300", l.Width, l.Height)
	}
	if l.X != 600.0/2-150 || l.Y != 400.0/2-150 {
		t.Errorf("expected centered position, got (%v, %v)", l.X, l.Y)
	}
	if l.Src != "" || l.Fit != ImageFitContain {
		t.Errorf("unexpected image defaults: %+v", l)
	}
	if next.SelectedLayerID != l.ID {
		t.Error("new layer not selected")
	}
}

func TestAddLayerZIndexSequence(t *testing.T) {
	c, _ := threeLayerCanvas(t)
	for i, want := range []int{0, 1, 2} {
		if got := c.Layers[i].Base().ZIndex; got != want {
			t.Errorf("layer %d zIndex = %d, want %d", i, got, want)
		}
	}
}

func TestUnknownIDsAreIdentityNoOps(t *testing.T) {
	c, _ := threeLayerCanvas(t)

	ops := map[string]func(*Canvas) *Canvas{
		"UpdateLayer": func(c *Canvas) *Canvas {
			return UpdateLayer(c, "missing", &LayerPatch{X: f64(1)})
		},
		"DeleteLayer":       func(c *Canvas) *Canvas { return DeleteLayer(c, "missing") },
		"NudgeLayer":        func(c *Canvas) *Canvas { return NudgeLayer(c, "missing", 5, 5) },
		"BringLayerForward": func(c *Canvas) *Canvas { return BringLayerForward(c, "missing") },
		"SendLayerBackward": func(c *Canvas) *Canvas { return SendLayerBackward(c, "missing") },
		"SnapLayerToCanvas": func(c *Canvas) *Canvas { return SnapLayerToCanvas(c, "missing", 10) },
		"SelectLayer":       func(c *Canvas) *Canvas { return SelectLayer(c, "missing") },
	}
	for name, op := range ops {
		if got := op(c); got != c {
			t.Errorf("%s on unknown id returned a new canvas, want identical reference", name)
		}
	}
}

func TestUpdateLayerMergesPatch(t *testing.T) {
	c, ids := threeLayerCanvas(t)
	next := UpdateLayer(c, ids[0], &LayerPatch{X: f64(50), Text: str("updated")})

	if next == c {
		t.Fatal("expected a new canvas")
	}
	l := next.Layers[0].(TextLayer)
	if l.X != 50 || l.Text != "updated" {
		t.Errorf("patch not merged: %+v", l)
	}
	if l.FontSize != 24 {
		t.Errorf("unpatched field changed: %v", l.FontSize)
	}
	// untouched layers keep their identity
	if !reflect.DeepEqual(next.Layers[1], c.Layers[1]) || !reflect.DeepEqual(next.Layers[2], c.Layers[2]) {
		t.Error("untouched layers changed")
	}
	// input not mutated
	if c.Layers[0].(TextLayer).X == 50 {
		t.Error("input canvas was mutated")
	}
}

func TestUpdateLayerIgnoresMismatchedFields(t *testing.T) {
	c := AddImageLayer(NewEmptyCanvas(0, 0, ""), nil)
	id := c.Layers[0].Base().ID

	next := UpdateLayer(c, id, &LayerPatch{Text: str("nope"), Src: str("https://example.com/a.png")})
	l := next.Layers[0].(ImageLayer)
	if l.Src != "https://example.com/a.png" {
		t.Errorf("src not applied: %q", l.Src)
	}
	if l.Type != LayerTypeImage {
		t.Errorf("type changed: %q", l.Type)
	}
}

func TestDeleteLayerSelection(t *testing.T) {
	c, ids := threeLayerCanvas(t)
	// the last added layer is selected
	if c.SelectedLayerID != ids[2] {
		t.Fatalf("precondition: selected = %q", c.SelectedLayerID)
	}

	// deleting an unselected layer keeps the selection
	next := DeleteLayer(c, ids[0])
	if len(next.Layers) != 2 {
		t.Fatalf("expected 2 layers, got %d", len(next.Layers))
	}
	if next.SelectedLayerID != ids[2] {
		t.Errorf("selection changed to %q", next.SelectedLayerID)
	}

	// deleting the selected layer clears the selection
	next = DeleteLayer(next, ids[2])
	if next.SelectedLayerID != "" {
		t.Errorf("selection not cleared: %q", next.SelectedLayerID)
	}
}

func TestSelectLayer(t *testing.T) {
	c, ids := threeLayerCanvas(t)

	next := SelectLayer(c, ids[0])
	if next.SelectedLayerID != ids[0] {
		t.Errorf("selected = %q, want %q", next.SelectedLayerID, ids[0])
	}

	cleared := SelectLayer(next, "")
	if cleared.SelectedLayerID != "" {
		t.Errorf("selection not cleared: %q", cleared.SelectedLayerID)
	}

	// selecting the already-selected layer is an identity no-op
	if got := SelectLayer(next, ids[0]); got != next {
		t.Error("re-selecting returned a new canvas")
	}
}

func TestBringForwardSendBackwardRoundTrip(t *testing.T) {
	c, ids := threeLayerCanvas(t)

	up := BringLayerForward(c, ids[0])
	if up == c {
		t.Fatal("expected forward to produce a new canvas")
	}
	back := SendLayerBackward(up, ids[0])

	for i := range c.Layers {
		want := c.Layers[i].Base().ZIndex
		got := back.Layers[i].Base().ZIndex
		if got != want {
			t.Errorf("layer %d zIndex = %d after round trip, want %d", i, got, want)
		}
	}
}

func TestBringLayerForwardSwapsWithNearestAbove(t *testing.T) {
	c, ids := threeLayerCanvas(t) // zIndex 0, 1, 2

	next := BringLayerForward(c, ids[0])
	if z := layerZ(t, next, ids[0]); z != 1 {
		t.Errorf("target zIndex = %d, want 1", z)
	}
	if z := layerZ(t, next, ids[1]); z != 0 {
		t.Errorf("displaced zIndex = %d, want 0", z)
	}
	// untouched stack member
	if z := layerZ(t, next, ids[2]); z != 2 {
		t.Errorf("topmost zIndex = %d, want 2", z)
	}
}

func TestZOrderBoundariesAreIdentityNoOps(t *testing.T) {
	c, ids := threeLayerCanvas(t)

	if got := BringLayerForward(c, ids[2]); got != c {
		t.Error("forward on topmost layer returned a new canvas")
	}
	if got := SendLayerBackward(c, ids[0]); got != c {
		t.Error("backward on bottom layer returned a new canvas")
	}
}

func TestNudgeLayer(t *testing.T) {
	c, ids := threeLayerCanvas(t)
	before := c.Layers[1].Base()

	next := NudgeLayer(c, ids[1], 3, -7)
	got := next.Layers[1].Base()
	if got.X != before.X+3 || got.Y != before.Y-7 {
		t.Errorf("nudged to (%v, %v), want (%v, %v)", got.X, got.Y, before.X+3, before.Y-7)
	}
}

func layerZ(t *testing.T, c *Canvas, id string) int {
	t.Helper()
	l, idx := c.FindLayer(id)
	if idx < 0 {
		t.Fatalf("layer %q not found", id)
	}
	return l.Base().ZIndex
}

func snapFixture(x, y, w, h float64) (*Canvas, string) {
	c := NewEmptyCanvas(1000, 1000, "")
	c = AddTextLayer(c, &LayerPatch{X: &x, Y: &y, Width: &w, Height: &h})
	return c, c.Layers[0].Base().ID
}

func TestSnapLayerToCanvas(t *testing.T) {
	t.Run("snaps to center within threshold", func(t *testing.T) {
		c, id := snapFixture(395, 100, 200, 50)
		next := SnapLayerToCanvas(c, id, 10)
		if got := next.Layers[0].Base().X; got != 400 {
			t.Errorf("x = %v, want 400", got)
		}
		if got := next.Layers[0].Base().Y; got != 100 {
			t.Errorf("y = %v, want 100 (vertical axis out of range)", got)
		}
	})

	t.Run("snaps near edge to zero", func(t *testing.T) {
		c, id := snapFixture(5, 100, 200, 50)
		next := SnapLayerToCanvas(c, id, 10)
		if got := next.Layers[0].Base().X; got != 0 {
			t.Errorf("x = %v, want 0", got)
		}
	})

	t.Run("snaps far edge to canvas boundary", func(t *testing.T) {
		c, id := snapFixture(795, 100, 200, 50)
		next := SnapLayerToCanvas(c, id, 10)
		if got := next.Layers[0].Base().X; got != 800 {
			t.Errorf("x = %v, want 800", got)
		}
	})

	t.Run("identity no-op when no rule fires", func(t *testing.T) {
		c, id := snapFixture(100, 100, 200, 50)
		if got := SnapLayerToCanvas(c, id, 10); got != c {
			t.Error("expected identical canvas reference")
		}
	})

	t.Run("axes snap independently", func(t *testing.T) {
		c, id := snapFixture(395, 5, 200, 50)
		next := SnapLayerToCanvas(c, id, 10)
		b := next.Layers[0].Base()
		if b.X != 400 || b.Y != 0 {
			t.Errorf("got (%v, %v), want (400, 0)", b.X, b.Y)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		c, id := snapFixture(395, 5, 200, 50)
		once := SnapLayerToCanvas(c, id, 10)
		twice := SnapLayerToCanvas(once, id, 10)
		if twice != once {
			t.Error("second snap changed an already-snapped layer")
		}
	})

	t.Run("zero threshold falls back to default", func(t *testing.T) {
		c, id := snapFixture(5, 100, 200, 50)
		next := SnapLayerToCanvas(c, id, 0)
		if got := next.Layers[0].Base().X; got != 0 {
			t.Errorf("x = %v, want 0", got)
		}
	})
}
