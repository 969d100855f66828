package nodal

import "gonum.org/v1/gonum/mat"

// Stack holds an m×n quantity for each of p applied-voltage examples.
// Storage is example major: sheet k occupies data[k*m*n : (k+1)*m*n] in
// row-major order.
type Stack struct {
	rows, cols, examples int
	data                 []float64
}

func NewStack(rows, cols, examples int) *Stack {
	return &Stack{
		rows:     rows,
		cols:     cols,
		examples: examples,
		data:     make([]float64, rows*cols*examples),
	}
}

func (s *Stack) Dims() (rows, cols, examples int) {
	return s.rows, s.cols, s.examples
}

func (s *Stack) At(i, j, k int) float64 {
	return s.data[k*s.rows*s.cols+i*s.cols+j]
}

func (s *Stack) Set(i, j, k int, v float64) {
	s.data[k*s.rows*s.cols+i*s.cols+j] = v
}

// Example returns sheet k as a dense matrix sharing the stack's storage.
func (s *Stack) Example(k int) *mat.Dense {
	sheet := s.rows * s.cols
	return mat.NewDense(s.rows, s.cols, s.data[k*sheet:(k+1)*sheet])
}

// Currents groups the branch currents of a solved crossbar. Output is
// always present with one row per example; the per-branch groups are nil
// when their extraction was suppressed.
type Currents struct {
	Output   *mat.Dense // p×n, current into ground at each bit line end
	Device   *Stack
	WordLine *Stack
	BitLine  *Stack
}

// Voltages groups the node voltages on both line types.
type Voltages struct {
	WordLine *Stack
	BitLine  *Stack
}

// Solution is the full result of one crossbar computation. Voltages is nil
// when node-voltage extraction was suppressed.
type Solution struct {
	Currents *Currents
	Voltages *Voltages
}
