package canvas

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	placeholderFill   = color.NRGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff}
	placeholderBorder = color.NRGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 0xff}
	emptyFill         = color.NRGBA{R: 0xf3, G: 0xf4, B: 0xf6, A: 0xff}
)

// RenderThumbnailPNG rasterizes the preview projection of a canvas into a
// PNG thumbnail. Image layers are drawn as bordered placeholder boxes (the
// renderer never fetches layer sources), text layers with a fixed bitmap
// face. Rotation is not rasterized. A nil or empty canvas produces a flat
// placeholder image at the reference dimensions.
func RenderThumbnailPNG(c *Canvas) ([]byte, error) {
	p := RenderPreview(c)

	if p.Empty {
		img := image.NewRGBA(image.Rect(0, 0, PreviewRefWidth, PreviewRefHeight))
		draw.Draw(img, img.Bounds(), image.NewUniform(emptyFill), image.Point{}, draw.Src)
		return encodePNG(img)
	}

	w := int(math.Round(p.Width))
	h := int(math.Round(p.Height))
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	bg := parseHexColor(p.BackgroundColor, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	for _, l := range p.Layers {
		rect := image.Rect(
			int(math.Round(l.X)),
			int(math.Round(l.Y)),
			int(math.Round(l.X+l.Width)),
			int(math.Round(l.Y+l.Height)),
		).Intersect(img.Bounds())
		if rect.Empty() {
			continue
		}

		switch l.Type {
		case LayerTypeImage:
			fillRect(img, rect, withOpacity(placeholderFill, l.Opacity))
			strokeRect(img, rect, withOpacity(placeholderBorder, l.Opacity))
		case LayerTypeText:
			drawText(img, rect, l)
		}
	}

	return encodePNG(img)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fillRect(img *image.RGBA, rect image.Rectangle, c color.Color) {
	draw.Draw(img, rect, image.NewUniform(c), image.Point{}, draw.Over)
}

func strokeRect(img *image.RGBA, rect image.Rectangle, c color.Color) {
	fillRect(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+1), c)
	fillRect(img, image.Rect(rect.Min.X, rect.Max.Y-1, rect.Max.X, rect.Max.Y), c)
	fillRect(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+1, rect.Max.Y), c)
	fillRect(img, image.Rect(rect.Max.X-1, rect.Min.Y, rect.Max.X, rect.Max.Y), c)
}

// drawText paints the layer text with the basicfont face, clipped to the
// layer rect, roughly honoring horizontal alignment and vertical centering.
func drawText(img *image.RGBA, rect image.Rectangle, l PreviewLayer) {
	if l.Text == "" {
		return
	}
	col := withOpacity(parseHexColor(l.Color, color.NRGBA{A: 0xff}), l.Opacity)

	face := basicfont.Face7x13
	clip, ok := img.SubImage(rect).(*image.RGBA)
	if !ok {
		return
	}
	d := font.Drawer{
		Dst:  clip,
		Src:  image.NewUniform(col),
		Face: face,
	}

	textWidth := d.MeasureString(l.Text).Ceil()
	x := rect.Min.X
	switch l.TextAlign {
	case TextAlignCenter:
		x = rect.Min.X + (rect.Dx()-textWidth)/2
	case TextAlignRight:
		x = rect.Max.X - textWidth
	}
	if x < rect.Min.X {
		x = rect.Min.X
	}
	y := rect.Min.Y + rect.Dy()/2 + face.Ascent/2

	d.Dot = fixed.P(x, y)
	d.DrawString(l.Text)
}

func withOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	if opacity >= 1 {
		return c
	}
	if opacity < 0 {
		opacity = 0
	}
	c.A = uint8(math.Round(float64(c.A) * opacity))
	return c
}

// parseHexColor understands #rgb, #rrggbb and #rrggbbaa. Anything else
// falls back to the given color.
func parseHexColor(s string, fallback color.NRGBA) color.NRGBA {
	if len(s) == 0 || s[0] != '#' {
		return fallback
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 && len(hex) != 8 {
		return fallback
	}
	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return fallback
	}
	out := color.NRGBA{A: 0xff}
	if len(hex) == 8 {
		out.A = uint8(v)
		v >>= 8
	}
	out.B = uint8(v)
	out.G = uint8(v >> 8)
	out.R = uint8(v >> 16)
	return out
}
