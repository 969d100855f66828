// Package draw renders crossbar solutions as colored schematics: branch
// currents as line segments along the word lines, bit lines and devices,
// node voltages as filled markers on a gray wire skeleton. Images are
// written with gonum/plot, so the output format follows the file extension
// (.png, .svg, .pdf, ...).
package draw

import (
	"errors"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/vg"

	"github.com/hfutlichao/badcrossbar/pkg/crossbar"
	"github.com/hfutlichao/badcrossbar/pkg/util"
)

// ErrMissingValues indicates that a required result group was suppressed
// during the solve and cannot be rendered.
var ErrMissingValues = errors.New("draw: required value group is missing")

// Options adjusts the rendering. The zero value picks a diverging blue-red
// palette and sizes the canvas from the array dimensions.
type Options struct {
	Palette    palette.ColorMap // nil uses moreland.SmoothBlueRed
	Width      vg.Length        // 0 derives from the column count
	Height     vg.Length        // 0 derives from the row count
	LineWidth  vg.Length        // 0 uses 2pt
	NodeRadius vg.Length        // 0 uses 3pt
}

func (o *Options) withDefaults() Options {
	v := Options{}
	if o != nil {
		v = *o
	}
	if v.Palette == nil {
		v.Palette = moreland.SmoothBlueRed()
	}
	if v.LineWidth == 0 {
		v.LineWidth = vg.Points(2)
	}
	if v.NodeRadius == 0 {
		v.NodeRadius = vg.Points(3)
	}
	return v
}

func (o Options) size(m, n int) (w, h vg.Length) {
	w, h = o.Width, o.Height
	if w == 0 {
		w = vg.Length(n+2) * vg.Centimeter
	}
	if h == 0 {
		h = vg.Length(m+2) * vg.Centimeter
	}
	return w, h
}

// Branches renders the crossbar with every branch colored by the current it
// carries and writes the image to path. Currents averaged over examples
// when the solution holds more than one.
func Branches(currents *crossbar.Currents, path string, opts *Options) error {
	if currents == nil || currents.Device == nil || currents.WordLine == nil || currents.BitLine == nil {
		return ErrMissingValues
	}
	o := opts.withDefaults()

	m, n, _ := currents.Device.Dims()
	device := averageSheet(currents.Device)
	word := averageSheet(currents.WordLine)
	bit := averageSheet(currents.BitLine)

	scaleColorMap(o.Palette, device, word, bit)
	segs, err := branchSegments(m, n, device, word, bit, o.Palette)
	if err != nil {
		return err
	}

	p := plot.New()
	p.HideAxes()
	p.Add(&segmentPlotter{segs: segs, width: o.LineWidth})

	w, h := o.size(m, n)
	return p.Save(w, h, path)
}

// Nodes renders the crossbar wire skeleton with every node colored by its
// voltage and writes the image to path. Voltages are averaged over examples
// when the solution holds more than one.
func Nodes(voltages *crossbar.Voltages, path string, opts *Options) error {
	if voltages == nil || voltages.WordLine == nil || voltages.BitLine == nil {
		return ErrMissingValues
	}
	o := opts.withDefaults()

	m, n, _ := voltages.WordLine.Dims()
	wordV := averageSheet(voltages.WordLine)
	bitV := averageSheet(voltages.BitLine)

	scaleColorMap(o.Palette, wordV, bitV)
	dots, err := nodeDots(m, n, wordV, bitV, o.Palette)
	if err != nil {
		return err
	}

	p := plot.New()
	p.HideAxes()
	p.Add(&segmentPlotter{segs: skeletonSegments(m, n), width: o.LineWidth})
	p.Add(&dotPlotter{dots: dots, radius: o.NodeRadius})

	w, h := o.size(m, n)
	return p.Save(w, h, path)
}

// averageSheet flattens a stack to one row-major m×n sheet, averaging over
// the examples.
func averageSheet(s *crossbar.Stack) []float64 {
	m, n, p := s.Dims()
	sheet := make([]float64, m*n)
	for k := 0; k < p; k++ {
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				sheet[i*n+j] += s.At(i, j, k)
			}
		}
	}
	inv := 1.0 / float64(p)
	for idx := range sheet {
		sheet[idx] *= inv
	}
	return sheet
}

// scaleColorMap spans the palette over the full value range. A flat range
// is widened so the midpoint stays mappable.
func scaleColorMap(cmap palette.ColorMap, groups ...[]float64) {
	lo, hi := util.Bounds(groups...)
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	cmap.SetMin(lo)
	cmap.SetMax(hi)
}
