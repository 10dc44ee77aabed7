package canvas

import "sort"

// Reference dimensions for list thumbnails. The projection fits the canvas
// into this box with a uniform scale, preserving aspect ratio.
const (
	PreviewRefWidth  = 400
	PreviewRefHeight = 225
)

// Preview is a read-only, scaled projection of a canvas for thumbnail
// display. Layers are ordered bottom to top (ascending zIndex, ties by
// insertion order), so a renderer paints them in slice order.
type Preview struct {
	Empty           bool           `json:"empty"`
	Scale           float64        `json:"scale,omitempty"`
	Width           float64        `json:"width,omitempty"`
	Height          float64        `json:"height,omitempty"`
	BackgroundColor string         `json:"backgroundColor,omitempty"`
	Layers          []PreviewLayer `json:"layers,omitempty"`
}

// PreviewLayer is a flattened layer with position, size and font size
// already multiplied by the preview scale.
type PreviewLayer struct {
	ID       string    `json:"id"`
	Type     LayerType `json:"type"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Rotation float64   `json:"rotation"`
	Opacity  float64   `json:"opacity"`

	// Text fields, set when Type is "text".
	Text       string     `json:"text,omitempty"`
	FontSize   float64    `json:"fontSize,omitempty"`
	FontWeight FontWeight `json:"fontWeight,omitempty"`
	Color      string     `json:"color,omitempty"`
	TextAlign  TextAlign  `json:"textAlign,omitempty"`

	// Image fields, set when Type is "image".
	Src string   `json:"src,omitempty"`
	Fit ImageFit `json:"fit,omitempty"`
}

// RenderPreview projects a canvas into the preview reference box. A nil or
// empty canvas yields an explicit empty preview rather than a default
// render. The input canvas is never mutated or retained.
func RenderPreview(c *Canvas) *Preview {
	if c == nil || len(c.Layers) == 0 {
		return &Preview{Empty: true}
	}

	scaleX := float64(PreviewRefWidth) / float64(c.Width)
	scaleY := float64(PreviewRefHeight) / float64(c.Height)
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}

	ordered := make([]Layer, len(c.Layers))
	copy(ordered, c.Layers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Base().ZIndex < ordered[j].Base().ZIndex
	})

	out := &Preview{
		Scale:           scale,
		Width:           float64(c.Width) * scale,
		Height:          float64(c.Height) * scale,
		BackgroundColor: c.BackgroundColor,
		Layers:          make([]PreviewLayer, 0, len(ordered)),
	}
	for _, l := range ordered {
		b := l.Base()
		pl := PreviewLayer{
			ID:       b.ID,
			Type:     b.Type,
			X:        b.X * scale,
			Y:        b.Y * scale,
			Width:    b.Width * scale,
			Height:   b.Height * scale,
			Rotation: b.Rotation,
			Opacity:  b.Opacity,
		}
		switch t := l.(type) {
		case TextLayer:
			pl.Text = t.Text
			pl.FontSize = t.FontSize * scale
			pl.FontWeight = t.FontWeight
			pl.Color = t.Color
			pl.TextAlign = t.TextAlign
		case ImageLayer:
			pl.Src = t.Src
			pl.Fit = t.Fit
		}
		out.Layers = append(out.Layers, pl)
	}
	return out
}
