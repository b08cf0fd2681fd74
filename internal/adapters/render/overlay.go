// Package render turns analysis results into PNG charts.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strconv"
	"strings"

	"github.com/samirrijal/olistboard/internal/core/domain"
	"github.com/samirrijal/olistboard/internal/pkg/geospatial"
)

// Maroon is the default marker colour of the customer map.
var Maroon = color.NRGBA{R: 0x80, A: 0xff}

// Overlay draws geographic points onto a background map whose pixel frame
// corresponds exactly to BBox.
type Overlay struct {
	BBox   domain.BoundingBox
	Radius float64
	Color  color.NRGBA
}

// NewOverlay builds an Overlay. alpha in [0,1] replaces the alpha of c.
func NewOverlay(bbox domain.BoundingBox, radius float64, c color.NRGBA, alpha float64) *Overlay {
	c.A = uint8(math.Round(alpha * 255))
	return &Overlay{BBox: bbox, Radius: radius, Color: c}
}

// Compose returns a copy of bg with one marker per point. Markers are
// uniform in size and colour. Points projecting outside the frame are
// drawn off-canvas and therefore invisible; nothing is clamped.
func (o *Overlay) Compose(bg image.Image, points []domain.GeoPoint) *image.RGBA {
	b := bg.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), bg, b.Min, draw.Src)

	src := image.NewUniform(color.NRGBA{R: o.Color.R, G: o.Color.G, B: o.Color.B, A: 0xff})
	for _, px := range geospatial.ProjectAll(points, o.BBox, b.Dx(), b.Dy()) {
		m := newDisc(px.X, px.Y, o.Radius, o.Color.A)
		draw.DrawMask(dst, m.Bounds(), src, image.Point{}, m, m.Bounds().Min, draw.Over)
	}
	return dst
}

// Render composes the overlay and encodes it as PNG.
func (o *Overlay) Render(bg image.Image, points []domain.GeoPoint) ([]byte, error) {
	return encodePNG(o.Compose(bg, points))
}

// disc is an alpha mask shaped like a filled circle centred on (cx, cy).
type disc struct {
	cx, cy, r float64
	alpha     uint8
	rect      image.Rectangle
}

func newDisc(cx, cy, r float64, alpha uint8) *disc {
	return &disc{
		cx: cx, cy: cy, r: r, alpha: alpha,
		rect: image.Rect(
			int(math.Floor(cx-r)), int(math.Floor(cy-r)),
			int(math.Ceil(cx+r))+1, int(math.Ceil(cy+r))+1,
		),
	}
}

func (d *disc) ColorModel() color.Model { return color.AlphaModel }

func (d *disc) Bounds() image.Rectangle { return d.rect }

func (d *disc) At(x, y int) color.Color {
	dx := float64(x) + 0.5 - d.cx
	dy := float64(y) + 0.5 - d.cy
	if dx*dx+dy*dy <= d.r*d.r {
		return color.Alpha{A: d.alpha}
	}
	return color.Alpha{}
}

// ParseColor parses "#rrggbb" (or "rrggbb") into an opaque colour.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func encodePNG(img image.Image) ([]byte, error) {
	encoder := png.Encoder{
		CompressionLevel: png.BestCompression,
	}
	var buf bytes.Buffer
	if err := encoder.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
