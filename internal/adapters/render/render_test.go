package render_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/olistboard/internal/adapters/render"
	"github.com/samirrijal/olistboard/internal/core/domain"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

var unitBox = domain.BoundingBox{LatMin: 0, LatMax: 10, LonMin: 0, LonMax: 10}

func whiteImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

func TestOverlay_EmptyPointsKeepsBackground(t *testing.T) {
	bg := whiteImage(20, 10)
	out := render.NewOverlay(unitBox, 2, render.Maroon, 0.3).Compose(bg, nil)

	require.Equal(t, bg.Bounds(), out.Bounds())
	assert.Equal(t, bg.Pix, out.Pix)
}

func TestOverlay_DrawsMarkerAtProjectedPixel(t *testing.T) {
	bg := whiteImage(100, 100)
	out := render.NewOverlay(unitBox, 2, render.Maroon, 0.3).Compose(bg, []domain.GeoPoint{{Lat: 5, Lon: 5}})

	c := out.RGBAAt(50, 50)
	assert.NotEqual(t, color.RGBA{255, 255, 255, 255}, c, "marker pixel must be tinted")
	assert.Greater(t, c.R, c.G, "tint must lean red")
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, out.RGBAAt(10, 10), "far pixels untouched")
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, bg.RGBAAt(50, 50), "background not mutated")
}

func TestOverlay_BottomLeftCorner(t *testing.T) {
	bg := whiteImage(100, 100)
	out := render.NewOverlay(unitBox, 1.5, render.Maroon, 1).Compose(bg, []domain.GeoPoint{{Lat: 0, Lon: 0}})
	assert.Equal(t, uint8(0x80), out.RGBAAt(0, 99).R)
	assert.Equal(t, uint8(0), out.RGBAAt(0, 99).G)
}

func TestOverlay_OutsideFrameIsInvisible(t *testing.T) {
	bg := whiteImage(50, 50)
	out := render.NewOverlay(unitBox, 2, render.Maroon, 1).Compose(bg, []domain.GeoPoint{{Lat: 40, Lon: -30}})
	assert.Equal(t, bg.Pix, out.Pix)
}

func TestOverlay_RenderEncodesPNG(t *testing.T) {
	data, err := render.NewOverlay(domain.BrazilBounds, 1.5, render.Maroon, 0.3).
		Render(whiteImage(64, 64), []domain.GeoPoint{{Lat: -23.5, Lon: -46.6}})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
}

func TestParseColor(t *testing.T) {
	c, err := render.ParseColor("#800000")
	require.NoError(t, err)
	assert.Equal(t, render.Maroon, c)

	c, err = render.ParseColor("1a2B3c")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x1a, G: 0x2b, B: 0x3c, A: 0xff}, c)

	_, err = render.ParseColor("maroon")
	assert.Error(t, err)
}

func TestRevenueHexbin(t *testing.T) {
	data, err := render.RevenueHexbin([]domain.ProductRevenue{
		{ProductID: "a", TotalRevenue: 1200, SellProbability: 0.01},
		{ProductID: "b", TotalRevenue: 80, SellProbability: 0.2},
		{ProductID: "c", TotalRevenue: 15, SellProbability: 0.05},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))
}

func TestRevenueHexbin_Empty(t *testing.T) {
	data, err := render.RevenueHexbin(nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))
}

func TestRegionSpendChart(t *testing.T) {
	lo, hi := 90.0, 160.0
	data, err := render.RegionSpendChart([]domain.RegionSpend{
		{State: "AC", Mean: 40, Count: 1},
		{State: "SP", Mean: 125, Count: 30, CILow: &lo, CIHigh: &hi},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))
}

func TestRegionSpendChart_Empty(t *testing.T) {
	data, err := render.RegionSpendChart(nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))
}
