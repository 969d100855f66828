package nodal

import (
	"gonum.org/v1/gonum/mat"

	"github.com/hfutlichao/badcrossbar/pkg/matrix"
)

// Fill assembles the conductance triplets and the source matrix for one
// topology. The source matrix has one column per applied-voltage example.
// In ideal mode there is no system to assemble and both results are nil.
func Fill(t *Topology) (*matrix.COO, *mat.Dense) {
	switch t.Mode() {
	case ModeFull:
		return fillFull(t)
	case ModeWordIdeal:
		return fillWordIdeal(t)
	case ModeBitIdeal:
		return fillBitIdeal(t)
	}
	return nil, nil
}

// conduct stamps conductance g between nodes x and y.
func conduct(a *matrix.COO, x, y int, g float64) {
	a.Add(x, x, g)
	a.Add(y, y, g)
	a.Add(x, y, -g)
	a.Add(y, x, -g)
}

// fillFull lays out two nodes per crosspoint. Word node (i, 0) couples to
// the voltage source through one segment, so its diagonal picks up an extra
// 1/RWord and the source column of I carries the matching injection. Bit
// node (m-1, j) couples to ground the same way through one bit segment.
func fillFull(t *Topology) (*matrix.COO, *mat.Dense) {
	m, n, p := t.Dims()
	a := matrix.NewCOO(2 * m * n)
	gw := 1.0 / t.RWord
	gb := 1.0 / t.RBit

	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			w := t.WordNode(i, j)
			b := t.BitNode(i, j)

			conduct(a, w, b, 1.0/t.Resistances.At(i, j))

			if j == 0 {
				a.Add(w, w, gw) // segment to the driver
			}
			if j < n-1 {
				conduct(a, w, t.WordNode(i, j+1), gw)
			}

			if i < m-1 {
				conduct(a, b, t.BitNode(i+1, j), gb)
			} else {
				a.Add(b, b, gb) // segment to ground
			}
		}
	}

	rhs := mat.NewDense(2*m*n, p, nil)
	for i := 0; i < m; i++ {
		w := t.WordNode(i, 0)
		for k := 0; k < p; k++ {
			rhs.Set(w, k, t.Applied.At(i, k)*gw)
		}
	}

	return a, rhs
}

// fillWordIdeal keeps only the bit-line nodes. Each device hangs off an
// ideal word rail held at the applied voltage, so it enters the system as
// a fixed current injection rather than a conductance.
func fillWordIdeal(t *Topology) (*matrix.COO, *mat.Dense) {
	m, n, p := t.Dims()
	a := matrix.NewCOO(m * n)
	gb := 1.0 / t.RBit

	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			b := t.BitNode(i, j)
			if i < m-1 {
				conduct(a, b, t.BitNode(i+1, j), gb)
			} else {
				a.Add(b, b, gb) // segment to ground
			}
		}
	}

	rhs := mat.NewDense(m*n, p, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			b := t.BitNode(i, j)
			for k := 0; k < p; k++ {
				rhs.Set(b, k, t.Applied.At(i, k)/t.Resistances.At(i, j))
			}
		}
	}

	return a, rhs
}

// fillBitIdeal keeps only the word-line nodes. Each device drains into a
// grounded ideal bit rail, which is a plain conductance to ground and lands
// on the diagonal.
func fillBitIdeal(t *Topology) (*matrix.COO, *mat.Dense) {
	m, n, p := t.Dims()
	a := matrix.NewCOO(m * n)
	gw := 1.0 / t.RWord

	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			w := t.WordNode(i, j)

			a.Add(w, w, 1.0/t.Resistances.At(i, j))

			if j == 0 {
				a.Add(w, w, gw) // segment to the driver
			}
			if j < n-1 {
				conduct(a, w, t.WordNode(i, j+1), gw)
			}
		}
	}

	rhs := mat.NewDense(m*n, p, nil)
	for i := 0; i < m; i++ {
		w := t.WordNode(i, 0)
		for k := 0; k < p; k++ {
			rhs.Set(w, k, t.Applied.At(i, k)*gw)
		}
	}

	return a, rhs
}
