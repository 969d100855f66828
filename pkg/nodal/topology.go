package nodal

import "gonum.org/v1/gonum/mat"

// Mode selects the node layout of the linear system. Lines with zero
// interconnect resistance are ideal conductors, so their node potentials
// are known in advance and drop out of the unknown vector.
type Mode int

const (
	ModeFull      Mode = iota // both line types resistive, two unknowns per crosspoint
	ModeWordIdeal             // ideal word lines, unknowns are the bit-line nodes
	ModeBitIdeal              // ideal bit lines, unknowns are the word-line nodes
	ModeIdeal                 // both ideal, every branch quantity has a closed form
)

func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeWordIdeal:
		return "word-ideal"
	case ModeBitIdeal:
		return "bit-ideal"
	case ModeIdeal:
		return "ideal"
	}
	return "unknown"
}

// Topology describes one crossbar configuration: device resistances on an
// m×n grid, per-segment interconnect resistances, and an m×p matrix of
// applied voltages (one column per example). It carries no solver state.
type Topology struct {
	Resistances *mat.Dense
	RWord       float64
	RBit        float64
	Applied     *mat.Dense

	rows, cols, examples int
}

func NewTopology(resistances *mat.Dense, rWord, rBit float64, applied *mat.Dense) *Topology {
	m, n := resistances.Dims()
	_, p := applied.Dims()
	return &Topology{
		Resistances: resistances,
		RWord:       rWord,
		RBit:        rBit,
		Applied:     applied,
		rows:        m,
		cols:        n,
		examples:    p,
	}
}

func (t *Topology) Dims() (m, n, p int) {
	return t.rows, t.cols, t.examples
}

func (t *Topology) Mode() Mode {
	switch {
	case t.RWord == 0 && t.RBit == 0:
		return ModeIdeal
	case t.RWord == 0:
		return ModeWordIdeal
	case t.RBit == 0:
		return ModeBitIdeal
	}
	return ModeFull
}

// Unknowns returns the size of the node potential vector.
func (t *Topology) Unknowns() int {
	switch t.Mode() {
	case ModeFull:
		return 2 * t.rows * t.cols
	case ModeIdeal:
		return 0
	}
	return t.rows * t.cols
}

// WordNode returns the unknown index of the word-line node at crosspoint
// (i, j). Valid in full and bit-ideal modes.
func (t *Topology) WordNode(i, j int) int {
	return i*t.cols + j
}

// BitNode returns the unknown index of the bit-line node at crosspoint
// (i, j). Valid in full and word-ideal modes.
func (t *Topology) BitNode(i, j int) int {
	if t.Mode() == ModeWordIdeal {
		return i*t.cols + j
	}
	return t.rows*t.cols + i*t.cols + j
}
