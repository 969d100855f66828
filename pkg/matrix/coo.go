package matrix

// COO accumulates conductance stencil entries as (row, col, value) triplets
// before they are stamped into the solver's linked representation. Duplicate
// coordinates are kept as separate triplets; they sum during stamping.
type COO struct {
	Size int
	rows []int
	cols []int
	vals []float64
}

func NewCOO(size int) *COO {
	return &COO{Size: size}
}

// Add appends a triplet. Indices are zero based.
func (a *COO) Add(i, j int, v float64) {
	a.rows = append(a.rows, i)
	a.cols = append(a.cols, j)
	a.vals = append(a.vals, v)
}

// NNZ returns the number of stored triplets, duplicates included.
func (a *COO) NNZ() int {
	return len(a.vals)
}

// Each calls fn for every stored triplet in insertion order.
func (a *COO) Each(fn func(i, j int, v float64)) {
	for k := range a.vals {
		fn(a.rows[k], a.cols[k], a.vals[k])
	}
}

// Dense sums the triplets into a size×size row-major matrix.
func (a *COO) Dense() []float64 {
	d := make([]float64, a.Size*a.Size)
	for k := range a.vals {
		d[a.rows[k]*a.Size+a.cols[k]] += a.vals[k]
	}
	return d
}

// Symmetric reports whether the summed matrix equals its transpose to
// within tol on every entry.
func (a *COO) Symmetric(tol float64) bool {
	d := a.Dense()
	for i := 0; i < a.Size; i++ {
		for j := i + 1; j < a.Size; j++ {
			diff := d[i*a.Size+j] - d[j*a.Size+i]
			if diff > tol || diff < -tol {
				return false
			}
		}
	}
	return true
}
