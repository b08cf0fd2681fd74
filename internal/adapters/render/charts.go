package render

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/samirrijal/olistboard/internal/analytics"
	"github.com/samirrijal/olistboard/internal/core/domain"
)

// HexbinGridSize is the number of hexagons across the revenue chart.
const HexbinGridSize = 14

// spendHeadroom is added above the largest mean on the spend chart.
const spendHeadroom = 50

func newColorMap(lo, hi float64) palette.ColorMap {
	cm := moreland.SmoothBlueRed()
	if hi <= lo {
		hi = lo + 1
	}
	cm.SetMin(lo)
	cm.SetMax(hi)
	return cm
}

func colorAt(cm palette.ColorMap, v float64) color.Color {
	c, err := cm.At(v)
	if err != nil {
		// Out of range values saturate.
		if v < cm.Min() {
			c, _ = cm.At(cm.Min())
		} else {
			c, _ = cm.At(cm.Max())
		}
	}
	return c
}

func writePlot(p *plot.Plot, w, h vg.Length) ([]byte, error) {
	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return nil, fmt.Errorf("plot writer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write plot: %w", err)
	}
	return buf.Bytes(), nil
}

// RevenueHexbin plots log sell probability against log revenue, binned into
// hexagons coloured by the total revenue that fell into each cell.
func RevenueHexbin(revenues []domain.ProductRevenue) ([]byte, error) {
	xs := make([]float64, len(revenues))
	ys := make([]float64, len(revenues))
	ws := make([]float64, len(revenues))
	for i, r := range revenues {
		xs[i] = math.Log(r.SellProbability)
		ys[i] = math.Log(r.TotalRevenue)
		ws[i] = r.TotalRevenue
	}
	grid := analytics.Hexbin(xs, ys, ws, HexbinGridSize)

	p := plot.New()
	p.Title.Text = "Product Revenue vs. Sell Probability"
	p.X.Label.Text = "Log Sell Probability"
	p.Y.Label.Text = "Log Product Revenue"
	p.Add(plotter.NewGrid())

	cm := newColorMap(0, grid.MaxValue())
	for _, cell := range grid.Cells {
		v := grid.Vertices(cell)
		pts := make(plotter.XYs, len(v))
		for i, c := range v {
			pts[i].X, pts[i].Y = c[0], c[1]
		}
		poly, err := plotter.NewPolygon(pts)
		if err != nil {
			return nil, fmt.Errorf("hexagon: %w", err)
		}
		poly.Color = colorAt(cm, cell.Value)
		poly.LineStyle.Width = 0
		p.Add(poly)
	}
	if len(grid.Cells) > 0 {
		p.X.Min, p.X.Max = grid.XMin-grid.Sx/2, grid.XMax+grid.Sx/2
		p.Y.Min, p.Y.Max = grid.YMin-grid.Sy/3, grid.YMax+grid.Sy/3
	}

	return writePlot(p, 8*vg.Inch, 6*vg.Inch)
}

// errPoints feeds plotter.NewYErrorBars.
type errPoints struct {
	plotter.XYs
	plotter.YErrors
}

// RegionSpendChart plots the mean payment per state, ordered as given,
// with vertical lines for the confidence intervals.
func RegionSpendChart(spends []domain.RegionSpend) ([]byte, error) {
	p := plot.New()
	p.Title.Text = "Mean Transaction per State"
	p.X.Label.Text = "State"
	p.Y.Label.Text = "Mean Transaction (95% CI)"
	p.Add(plotter.NewGrid())

	yMax := 0.0
	for _, s := range spends {
		yMax = math.Max(yMax, s.Mean)
	}
	yMax += spendHeadroom

	names := make([]string, len(spends))
	means := make(plotter.XYs, len(spends))
	var bars errPoints
	for i, s := range spends {
		names[i] = s.State
		means[i].X, means[i].Y = float64(i), s.Mean
		if s.CILow == nil || s.CIHigh == nil {
			continue
		}
		lo := math.Max(*s.CILow, 0)
		hi := math.Min(*s.CIHigh, yMax)
		bars.XYs = append(bars.XYs, plotter.XY{X: float64(i), Y: s.Mean})
		bars.YErrors = append(bars.YErrors, struct{ Low, High float64 }{Low: s.Mean - lo, High: hi - s.Mean})
	}

	if len(bars.XYs) > 0 {
		eb, err := plotter.NewYErrorBars(bars)
		if err != nil {
			return nil, fmt.Errorf("error bars: %w", err)
		}
		eb.LineStyle.Width = vg.Points(0.5)
		eb.CapWidth = 0
		p.Add(eb)
	}

	if len(means) > 0 {
		sc, err := plotter.NewScatter(means)
		if err != nil {
			return nil, fmt.Errorf("scatter: %w", err)
		}
		lo, hi := means[0].Y, means[0].Y
		for _, m := range means {
			lo, hi = math.Min(lo, m.Y), math.Max(hi, m.Y)
		}
		cm := newColorMap(lo, hi)
		sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			return draw.GlyphStyle{
				Color:  colorAt(cm, means[i].Y),
				Radius: vg.Points(5),
				Shape:  draw.CircleGlyph{},
			}
		}
		p.Add(sc)
		p.NominalX(names...)
	}

	p.X.Tick.Label.Rotation = math.Pi / 6
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Min, p.X.Max = -0.5, float64(len(spends))-0.5
	p.Y.Min, p.Y.Max = 0, yMax

	return writePlot(p, 12*vg.Inch, 4*vg.Inch)
}
