package analytics

import (
	"math"
	"sort"
)

// HexCell is one occupied hexagon of a HexGrid.
type HexCell struct {
	X, Y  float64 // centre in data coordinates
	Count int
	Value float64 // sum of the weights that fell into the cell
}

// HexGrid is the result of binning weighted points onto two interleaved
// rectangular lattices whose union forms a hexagonal tiling.
type HexGrid struct {
	XMin, XMax float64
	YMin, YMax float64
	Sx, Sy     float64
	NX, NY     int
	Cells      []HexCell
}

// hexagon corners relative to a centre, in units of (Sx, Sy/3).
var hexUnit = [6][2]float64{
	{0.5, -0.5}, {0.5, 0.5}, {0, 1}, {-0.5, 0.5}, {-0.5, -0.5}, {0, -1},
}

// Vertices returns the six corners of the hexagon centred on c.
func (g *HexGrid) Vertices(c HexCell) [6][2]float64 {
	var v [6][2]float64
	for i, u := range hexUnit {
		v[i][0] = c.X + u[0]*g.Sx
		v[i][1] = c.Y + u[1]*g.Sy/3
	}
	return v
}

// Hexbin bins (xs[i], ys[i]) with weight ws[i] into a grid that is gridsize
// hexagons wide. Points with a non-finite coordinate are skipped. Only
// cells that received at least one point are returned, ordered by centre.
func Hexbin(xs, ys, ws []float64, gridsize int) *HexGrid {
	if gridsize <= 0 {
		gridsize = 1
	}
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}

	px := make([]float64, 0, n)
	py := make([]float64, 0, n)
	pw := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if !finite(xs[i]) || !finite(ys[i]) {
			continue
		}
		w := 1.0
		if i < len(ws) {
			w = ws[i]
		}
		px = append(px, xs[i])
		py = append(py, ys[i])
		pw = append(pw, w)
	}

	nx := gridsize
	ny := int(float64(nx) / math.Sqrt(3))
	if ny < 1 {
		ny = 1
	}
	xmin, xmax := nonsingular(extent(px))
	ymin, ymax := nonsingular(extent(py))
	pad := 1e-9 * (xmax - xmin)
	xmin -= pad
	xmax += pad
	sx := (xmax - xmin) / float64(nx)
	sy := (ymax - ymin) / float64(ny)

	g := &HexGrid{XMin: xmin, XMax: xmax, YMin: ymin, YMax: ymax, Sx: sx, Sy: sy, NX: nx, NY: ny}

	type key struct {
		lattice int
		i, j    int
	}
	cells := make(map[key]*HexCell)
	for k := range px {
		ix := (px[k] - xmin) / sx
		iy := (py[k] - ymin) / sy
		ix1, iy1 := math.RoundToEven(ix), math.RoundToEven(iy)
		ix2, iy2 := math.Floor(ix), math.Floor(iy)
		d1 := (ix-ix1)*(ix-ix1) + 3*(iy-iy1)*(iy-iy1)
		d2 := (ix-ix2-0.5)*(ix-ix2-0.5) + 3*(iy-iy2-0.5)*(iy-iy2-0.5)

		var kk key
		var cx, cy float64
		if d1 < d2 {
			if ix1 < 0 || int(ix1) > nx || iy1 < 0 || int(iy1) > ny {
				continue
			}
			kk = key{1, int(ix1), int(iy1)}
			cx, cy = xmin+ix1*sx, ymin+iy1*sy
		} else {
			if ix2 < 0 || int(ix2) >= nx || iy2 < 0 || int(iy2) >= ny {
				continue
			}
			kk = key{2, int(ix2), int(iy2)}
			cx, cy = xmin+(ix2+0.5)*sx, ymin+(iy2+0.5)*sy
		}
		c, ok := cells[kk]
		if !ok {
			c = &HexCell{X: cx, Y: cy}
			cells[kk] = c
		}
		c.Count++
		c.Value += pw[k]
	}

	g.Cells = make([]HexCell, 0, len(cells))
	for _, c := range cells {
		g.Cells = append(g.Cells, *c)
	}
	sort.Slice(g.Cells, func(i, j int) bool {
		if g.Cells[i].X != g.Cells[j].X {
			return g.Cells[i].X < g.Cells[j].X
		}
		return g.Cells[i].Y < g.Cells[j].Y
	})
	return g
}

// MaxValue returns the largest cell value, or 0 for an empty grid.
func (g *HexGrid) MaxValue() float64 {
	var m float64
	for _, c := range g.Cells {
		if c.Value > m {
			m = c.Value
		}
	}
	return m
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func extent(vs []float64) (lo, hi float64) {
	if len(vs) == 0 {
		return 0, 0
	}
	lo, hi = vs[0], vs[0]
	for _, v := range vs[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// nonsingular widens a degenerate interval by 10% of its magnitude, or to
// [-0.1, 0.1] around zero.
func nonsingular(lo, hi float64) (float64, float64) {
	const expander = 0.1
	if hi-lo > 1e-12*math.Max(math.Abs(lo), math.Abs(hi)) && hi > lo {
		return lo, hi
	}
	if lo == 0 && hi == 0 {
		return -expander, expander
	}
	return lo - expander*math.Abs(lo), hi + expander*math.Abs(hi)
}
