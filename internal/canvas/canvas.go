package canvas

import (
	"encoding/json"
	"fmt"
)

const (
	DefaultWidth           = 1080
	DefaultHeight          = 1080
	DefaultBackgroundColor = "#ffffff"
)

type LayerType string

const (
	LayerTypeText  LayerType = "text"
	LayerTypeImage LayerType = "image"
)

type FontWeight string

const (
	FontWeightNormal FontWeight = "normal"
	FontWeightBold   FontWeight = "bold"
)

type TextAlign string

const (
	TextAlignLeft   TextAlign = "left"
	TextAlignCenter TextAlign = "center"
	TextAlignRight  TextAlign = "right"
)

type ImageFit string

const (
	ImageFitContain ImageFit = "contain"
	ImageFitCover   ImageFit = "cover"
	ImageFitFill    ImageFit = "fill"
)

// BaseLayer holds the fields shared by every layer type. Positions are not
// clamped to the canvas bounds; a layer may sit partially or fully outside.
type BaseLayer struct {
	ID       string    `json:"id"`
	Type     LayerType `json:"type"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Rotation float64   `json:"rotation"`
	Opacity  float64   `json:"opacity"`
	ZIndex   int       `json:"zIndex"`
}

// Layer is the tagged union of text and image layers, discriminated by the
// "type" field on the wire. Concrete layers are value types; copying a Layer
// copies the whole layer.
type Layer interface {
	// Base returns a copy of the common layer fields.
	Base() BaseLayer

	withBase(b BaseLayer) Layer
}

type TextLayer struct {
	BaseLayer
	Text       string     `json:"text"`
	FontSize   float64    `json:"fontSize"`
	FontWeight FontWeight `json:"fontWeight"`
	Color      string     `json:"color"`
	TextAlign  TextAlign  `json:"textAlign"`
}

func (l TextLayer) Base() BaseLayer { return l.BaseLayer }

func (l TextLayer) withBase(b BaseLayer) Layer {
	l.BaseLayer = b
	return l
}

type ImageLayer struct {
	BaseLayer
	Src string   `json:"src"`
	Fit ImageFit `json:"fit"`
}

func (l ImageLayer) Base() BaseLayer { return l.BaseLayer }

func (l ImageLayer) withBase(b BaseLayer) Layer {
	l.BaseLayer = b
	return l
}

// Canvas is the document root. Layers are kept in insertion order; display
// order is governed by ZIndex, not slice position. SelectedLayerID is a
// transient UI cursor, empty when nothing is selected, and always refers to
// an existing layer (the engine clears it when that layer is removed).
type Canvas struct {
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	BackgroundColor string  `json:"backgroundColor"`
	Layers          []Layer `json:"layers"`
	SelectedLayerID string  `json:"selectedLayerId,omitempty"`
}

// NewEmptyCanvas returns a canvas with no layers and nothing selected.
// Non-positive dimensions and an empty background fall back to the defaults;
// beyond that, inputs are accepted as given.
func NewEmptyCanvas(width, height int, backgroundColor string) *Canvas {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if backgroundColor == "" {
		backgroundColor = DefaultBackgroundColor
	}
	return &Canvas{
		Width:           width,
		Height:          height,
		BackgroundColor: backgroundColor,
		Layers:          []Layer{},
	}
}

// Clone returns a deep, independent copy. Concrete layers are value types
// with no reference fields, so copying the slice entries is enough.
func (c *Canvas) Clone() *Canvas {
	if c == nil {
		return nil
	}
	out := *c
	out.Layers = make([]Layer, len(c.Layers))
	copy(out.Layers, c.Layers)
	return &out
}

// FindLayer returns the layer with the given id and its slice index, or
// (nil, -1) when no layer matches.
func (c *Canvas) FindLayer(id string) (Layer, int) {
	for i, l := range c.Layers {
		if l.Base().ID == id {
			return l, i
		}
	}
	return nil, -1
}

// UnmarshalJSON decodes the layers array by probing each element's "type"
// discriminator before picking the concrete layer struct.
func (c *Canvas) UnmarshalJSON(data []byte) error {
	type canvasAlias Canvas
	aux := struct {
		*canvasAlias
		Layers []json.RawMessage `json:"layers"`
	}{canvasAlias: (*canvasAlias)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	c.Layers = make([]Layer, 0, len(aux.Layers))
	for _, raw := range aux.Layers {
		layer, err := unmarshalLayer(raw)
		if err != nil {
			return err
		}
		c.Layers = append(c.Layers, layer)
	}
	return nil
}

func unmarshalLayer(raw json.RawMessage) (Layer, error) {
	var probe struct {
		Type LayerType `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("probe layer type: %w", err)
	}

	switch probe.Type {
	case LayerTypeText:
		var l TextLayer
		if err := json.Unmarshal(raw, &l); err != nil {
			return nil, fmt.Errorf("decode text layer: %w", err)
		}
		return l, nil
	case LayerTypeImage:
		var l ImageLayer
		if err := json.Unmarshal(raw, &l); err != nil {
			return nil, fmt.Errorf("decode image layer: %w", err)
		}
		return l, nil
	default:
		return nil, fmt.Errorf("unknown layer type %q", probe.Type)
	}
}
