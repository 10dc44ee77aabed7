package canvas

import (
	"math"

	"github.com/google/uuid"
)

// Engine operations are pure: they never mutate their input canvas and
// return a fresh value whenever anything changed. When an operation has no
// effect (unknown layer id, already topmost, nothing within snap range) it
// returns the exact input pointer, which callers use as a cheap "did
// anything change" signal to skip redundant saves and redraws. None of the
// operations fail; invalid references degrade to that identity no-op.

// DefaultSnapThreshold is the pixel distance within which SnapLayerToCanvas
// pulls a layer onto the canvas center or edge.
const DefaultSnapThreshold = 10

// LayerPatch is a partial layer update. Nil fields are left untouched.
// Text-only fields are ignored when patching an image layer and vice versa;
// the type tag itself can never be patched.
type LayerPatch struct {
	X          *float64    `json:"x,omitempty"`
	Y          *float64    `json:"y,omitempty"`
	Width      *float64    `json:"width,omitempty"`
	Height     *float64    `json:"height,omitempty"`
	Rotation   *float64    `json:"rotation,omitempty"`
	Opacity    *float64    `json:"opacity,omitempty"`
	ZIndex     *int        `json:"zIndex,omitempty"`
	Text       *string     `json:"text,omitempty"`
	FontSize   *float64    `json:"fontSize,omitempty"`
	FontWeight *FontWeight `json:"fontWeight,omitempty"`
	Color      *string     `json:"color,omitempty"`
	TextAlign  *TextAlign  `json:"textAlign,omitempty"`
	Src        *string     `json:"src,omitempty"`
	Fit        *ImageFit   `json:"fit,omitempty"`
}

func (p *LayerPatch) apply(l Layer) Layer {
	if p == nil {
		return l
	}

	b := l.Base()
	if p.X != nil {
		b.X = *p.X
	}
	if p.Y != nil {
		b.Y = *p.Y
	}
	if p.Width != nil {
		b.Width = *p.Width
	}
	if p.Height != nil {
		b.Height = *p.Height
	}
	if p.Rotation != nil {
		b.Rotation = *p.Rotation
	}
	if p.Opacity != nil {
		b.Opacity = *p.Opacity
	}
	if p.ZIndex != nil {
		b.ZIndex = *p.ZIndex
	}

	switch t := l.(type) {
	case TextLayer:
		t.BaseLayer = b
		if p.Text != nil {
			t.Text = *p.Text
		}
		if p.FontSize != nil {
			t.FontSize = *p.FontSize
		}
		if p.FontWeight != nil {
			t.FontWeight = *p.FontWeight
		}
		if p.Color != nil {
			t.Color = *p.Color
		}
		if p.TextAlign != nil {
			t.TextAlign = *p.TextAlign
		}
		return t
	case ImageLayer:
		t.BaseLayer = b
		if p.Src != nil {
			t.Src = *p.Src
		}
		if p.Fit != nil {
			t.Fit = *p.Fit
		}
		return t
	}
	return l.withBase(b)
}

// nextZIndex places new layers on top of the existing stack.
func nextZIndex(c *Canvas) int {
	if len(c.Layers) == 0 {
		return 0
	}
	max := c.Layers[0].Base().ZIndex
	for _, l := range c.Layers[1:] {
		if z := l.Base().ZIndex; z > max {
			max = z
		}
	}
	return max + 1
}

func appendLayer(c *Canvas, l Layer) *Canvas {
	out := *c
	out.Layers = make([]Layer, len(c.Layers), len(c.Layers)+1)
	copy(out.Layers, c.Layers)
	out.Layers = append(out.Layers, l)
	out.SelectedLayerID = l.Base().ID
	return &out
}

// AddTextLayer creates a text layer with a generated id, centered on the
// canvas, applies init on top of the defaults, appends it and selects it.
func AddTextLayer(c *Canvas, init *LayerPatch) *Canvas {
	l := TextLayer{
		BaseLayer: BaseLayer{
			ID:      uuid.NewString(),
			Type:    LayerTypeText,
			X:       float64(c.Width)/2 - 100,
			Y:       float64(c.Height)/2 - 25,
			Width:   200,
			Height:  50,
			Opacity: 1,
			ZIndex:  nextZIndex(c),
		},
		Text:       "New Text",
		FontSize:   24,
		FontWeight: FontWeightNormal,
		Color:      "#000000",
		TextAlign:  TextAlignLeft,
	}
	return appendLayer(c, init.apply(l))
}

// AddImageLayer is the image analogue of AddTextLayer: 300x300, centered,
// empty src ("no image yet"), contain fit.
func AddImageLayer(c *Canvas, init *LayerPatch) *Canvas {
	l := ImageLayer{
		BaseLayer: BaseLayer{
			ID:      uuid.NewString(),
			Type:    LayerTypeImage,
			X:       float64(c.Width)/2 - 150,
			Y:       float64(c.Height)/2 - 150,
			Width:   300,
			Height:  300,
			Opacity: 1,
			ZIndex:  nextZIndex(c),
		},
		Src: "",
		Fit: ImageFitContain,
	}
	return appendLayer(c, init.apply(l))
}

// UpdateLayer merges patch onto the matching layer. Other layers keep their
// identity; an unknown id returns the input canvas unchanged.
func UpdateLayer(c *Canvas, layerID string, patch *LayerPatch) *Canvas {
	target, idx := c.FindLayer(layerID)
	if idx < 0 {
		return c
	}

	out := *c
	out.Layers = make([]Layer, len(c.Layers))
	copy(out.Layers, c.Layers)
	out.Layers[idx] = patch.apply(target)
	return &out
}

// DeleteLayer removes the matching layer and clears the selection if it
// pointed at that layer. Unknown ids are an identity no-op.
func DeleteLayer(c *Canvas, layerID string) *Canvas {
	_, idx := c.FindLayer(layerID)
	if idx < 0 {
		return c
	}

	out := *c
	out.Layers = make([]Layer, 0, len(c.Layers)-1)
	out.Layers = append(out.Layers, c.Layers[:idx]...)
	out.Layers = append(out.Layers, c.Layers[idx+1:]...)
	if out.SelectedLayerID == layerID {
		out.SelectedLayerID = ""
	}
	return &out
}

// SelectLayer moves the selection cursor. An empty id clears the selection.
// Ids that do not name an existing layer are rejected as an identity no-op
// so the selection invariant holds.
func SelectLayer(c *Canvas, layerID string) *Canvas {
	if c.SelectedLayerID == layerID {
		return c
	}
	if layerID != "" {
		if _, idx := c.FindLayer(layerID); idx < 0 {
			return c
		}
	}
	out := *c
	out.SelectedLayerID = layerID
	return &out
}

// BringLayerForward swaps the target layer's zIndex with the nearest layer
// above it: an exact two-element transposition, not a renumbering. Identity
// no-op when the layer is already topmost or the id is unknown.
func BringLayerForward(c *Canvas, layerID string) *Canvas {
	return swapZIndex(c, layerID, func(candidate, target, best int) bool {
		return candidate > target && (best == math.MinInt || candidate < best)
	})
}

// SendLayerBackward is the symmetric counterpart of BringLayerForward.
func SendLayerBackward(c *Canvas, layerID string) *Canvas {
	return swapZIndex(c, layerID, func(candidate, target, best int) bool {
		return candidate < target && (best == math.MinInt || candidate > best)
	})
}

// swapZIndex picks the neighbor whose zIndex wins closer(candidate, target,
// bestSoFar) and transposes the two zIndex values. Scanning in insertion
// order makes tie-breaking deterministic.
func swapZIndex(c *Canvas, layerID string, closer func(candidate, target, best int) bool) *Canvas {
	target, idx := c.FindLayer(layerID)
	if idx < 0 {
		return c
	}
	targetZ := target.Base().ZIndex

	neighborIdx := -1
	bestZ := math.MinInt
	for i, l := range c.Layers {
		if i == idx {
			continue
		}
		if z := l.Base().ZIndex; closer(z, targetZ, bestZ) {
			neighborIdx = i
			bestZ = z
		}
	}
	if neighborIdx < 0 {
		return c
	}

	out := *c
	out.Layers = make([]Layer, len(c.Layers))
	copy(out.Layers, c.Layers)

	tb := target.Base()
	tb.ZIndex = bestZ
	out.Layers[idx] = target.withBase(tb)

	nb := c.Layers[neighborIdx].Base()
	nb.ZIndex = targetZ
	out.Layers[neighborIdx] = c.Layers[neighborIdx].withBase(nb)
	return &out
}

// NudgeLayer moves the matching layer by (dx, dy), with UpdateLayer's
// unknown-id semantics.
func NudgeLayer(c *Canvas, layerID string, dx, dy float64) *Canvas {
	target, idx := c.FindLayer(layerID)
	if idx < 0 {
		return c
	}
	b := target.Base()
	x := b.X + dx
	y := b.Y + dy
	return UpdateLayer(c, layerID, &LayerPatch{X: &x, Y: &y})
}

// SnapLayerToCanvas aligns the layer with the canvas center or edges when it
// is within threshold pixels of them. Each axis is evaluated independently
// with center alignment taking precedence over the near edge, and the near
// edge over the far one. A zero or negative threshold means
// DefaultSnapThreshold. Identity no-op when neither axis moves.
func SnapLayerToCanvas(c *Canvas, layerID string, threshold float64) *Canvas {
	if threshold <= 0 {
		threshold = DefaultSnapThreshold
	}
	target, idx := c.FindLayer(layerID)
	if idx < 0 {
		return c
	}
	b := target.Base()

	x := snapAxis(b.X, b.Width, float64(c.Width), threshold)
	y := snapAxis(b.Y, b.Height, float64(c.Height), threshold)
	if x == b.X && y == b.Y {
		return c
	}
	return UpdateLayer(c, layerID, &LayerPatch{X: &x, Y: &y})
}

func snapAxis(pos, size, canvasSize, threshold float64) float64 {
	center := pos + size/2
	canvasCenter := canvasSize / 2
	switch {
	case math.Abs(center-canvasCenter) < threshold:
		return canvasCenter - size/2
	case math.Abs(pos) < threshold:
		return 0
	case math.Abs(pos+size-canvasSize) < threshold:
		return canvasSize - size
	default:
		return pos
	}
}
