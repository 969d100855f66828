package draw

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/vg"
	vgdraw "gonum.org/v1/plot/vg/draw"

	"github.com/hfutlichao/badcrossbar/pkg/util"
)

// Schematic geometry, in data units of one crosspoint pitch. Bit-line nodes
// sit diagonally below-right of their word-line nodes; the stubs are the
// driver lead entering each word line and the ground lead leaving each bit
// line.
const (
	bitDX      = 0.35
	bitDY      = -0.35
	stubLength = 0.8
	margin     = 0.5
)

func wordXY(i, j, m int) (x, y float64) {
	return float64(j), float64(m - 1 - i)
}

func bitXY(i, j, m int) (x, y float64) {
	return float64(j) + bitDX, float64(m-1-i) + bitDY
}

type segment struct {
	x0, y0, x1, y1 float64
	color          color.Color
}

type dot struct {
	x, y  float64
	color color.Color
}

func colorAt(cmap palette.ColorMap, v float64) (color.Color, error) {
	return cmap.At(util.Clamp(v, cmap.Min(), cmap.Max()))
}

// branchSegments builds one colored segment per branch: the word segment
// feeding each node, the device drop, and the bit segment draining it.
func branchSegments(m, n int, device, word, bit []float64, cmap palette.ColorMap) ([]segment, error) {
	segs := make([]segment, 0, 3*m*n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			wx, wy := wordXY(i, j, m)
			bx, by := bitXY(i, j, m)

			c, err := colorAt(cmap, word[i*n+j])
			if err != nil {
				return nil, err
			}
			fx := wx - stubLength
			if j > 0 {
				fx, _ = wordXY(i, j-1, m)
			}
			segs = append(segs, segment{fx, wy, wx, wy, c})

			c, err = colorAt(cmap, device[i*n+j])
			if err != nil {
				return nil, err
			}
			segs = append(segs, segment{wx, wy, bx, by, c})

			c, err = colorAt(cmap, bit[i*n+j])
			if err != nil {
				return nil, err
			}
			tx, ty := bx, by-stubLength
			if i < m-1 {
				tx, ty = bitXY(i+1, j, m)
			}
			segs = append(segs, segment{bx, by, tx, ty, c})
		}
	}
	return segs, nil
}

// skeletonSegments builds the same wire layout in a uniform light gray,
// used as the backdrop of node-voltage maps.
func skeletonSegments(m, n int) []segment {
	gray := color.Gray{Y: 0xcc}
	segs := make([]segment, 0, 3*m*n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			wx, wy := wordXY(i, j, m)
			bx, by := bitXY(i, j, m)

			fx := wx - stubLength
			if j > 0 {
				fx, _ = wordXY(i, j-1, m)
			}
			segs = append(segs, segment{fx, wy, wx, wy, gray})
			segs = append(segs, segment{wx, wy, bx, by, gray})

			tx, ty := bx, by-stubLength
			if i < m-1 {
				tx, ty = bitXY(i+1, j, m)
			}
			segs = append(segs, segment{bx, by, tx, ty, gray})
		}
	}
	return segs
}

// nodeDots builds one colored marker per word-line and bit-line node.
func nodeDots(m, n int, wordV, bitV []float64, cmap palette.ColorMap) ([]dot, error) {
	dots := make([]dot, 0, 2*m*n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			c, err := colorAt(cmap, wordV[i*n+j])
			if err != nil {
				return nil, err
			}
			wx, wy := wordXY(i, j, m)
			dots = append(dots, dot{wx, wy, c})

			c, err = colorAt(cmap, bitV[i*n+j])
			if err != nil {
				return nil, err
			}
			bx, by := bitXY(i, j, m)
			dots = append(dots, dot{bx, by, c})
		}
	}
	return dots, nil
}

// segmentPlotter strokes precolored line segments in data coordinates.
type segmentPlotter struct {
	segs  []segment
	width vg.Length
}

func (sp *segmentPlotter) Plot(c vgdraw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, s := range sp.segs {
		sty := vgdraw.LineStyle{Color: s.color, Width: sp.width}
		c.StrokeLine2(sty, trX(s.x0), trY(s.y0), trX(s.x1), trY(s.y1))
	}
}

func (sp *segmentPlotter) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, s := range sp.segs {
		xmin = math.Min(xmin, math.Min(s.x0, s.x1))
		xmax = math.Max(xmax, math.Max(s.x0, s.x1))
		ymin = math.Min(ymin, math.Min(s.y0, s.y1))
		ymax = math.Max(ymax, math.Max(s.y0, s.y1))
	}
	return xmin - margin, xmax + margin, ymin - margin, ymax + margin
}

// dotPlotter fills precolored circular markers in data coordinates.
type dotPlotter struct {
	dots   []dot
	radius vg.Length
}

func (dp *dotPlotter) Plot(c vgdraw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, d := range dp.dots {
		x, y := trX(d.x), trY(d.y)
		var p vg.Path
		p.Move(vg.Point{X: x + dp.radius, Y: y})
		p.Arc(vg.Point{X: x, Y: y}, dp.radius, 0, 2*math.Pi)
		p.Close()
		c.SetColor(d.color)
		c.Fill(p)
	}
}

func (dp *dotPlotter) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, d := range dp.dots {
		xmin = math.Min(xmin, d.x)
		xmax = math.Max(xmax, d.x)
		ymin = math.Min(ymin, d.y)
		ymax = math.Max(ymax, d.y)
	}
	return xmin - margin, xmax + margin, ymin - margin, ymax + margin
}
