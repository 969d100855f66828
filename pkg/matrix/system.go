package matrix

import (
	"errors"
	"fmt"

	"github.com/edp1096/sparse"

	"github.com/hfutlichao/badcrossbar/internal/consts"
)

// ErrSingular reports that LU factorization could not find a usable pivot.
var ErrSingular = errors.New("matrix: singular system")

// System wraps a sparse solver matrix for one conductance system G·V = I.
// The matrix is stamped once, factored once, then shared by any number of
// back-substitutions.
type System struct {
	Size       int
	m          *sparse.Matrix
	factorings int
}

func NewSystem(size int) (*System, error) {
	config := &sparse.Configuration{
		Real:           true,
		Complex:        false,
		Expandable:     true,
		Translate:      false,
		ModifiedNodal:  true,
		TiesMultiplier: 5,
		PrinterWidth:   140,
		Annotate:       0,
	}

	m, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("creating sparse matrix: %v", err)
	}

	return &System{Size: size, m: m}, nil
}

// Stamp sums accumulated triplets into the solver matrix. Triplet indices
// are zero based; the solver is one based with index 0 reserved for ground.
func (s *System) Stamp(a *COO) {
	a.Each(func(i, j int, v float64) {
		s.m.GetElement(int64(i+1), int64(j+1)).Real += v
	})
}

// Factor orders and factors the stamped matrix in place.
func (s *System) Factor() error {
	s.factorings++
	err := s.m.OrderAndFactor(nil, consts.PivotRelThreshold, consts.PivotAbsThreshold, true)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSingular, err)
	}
	return nil
}

// Factorings returns how many times Factor has run.
func (s *System) Factorings() int { return s.factorings }

// Solve back-substitutes one right-hand side against the factored matrix.
// rhs is one based with length Size+1, as is the returned solution.
func (s *System) Solve(rhs []float64) ([]float64, error) {
	solution, err := s.m.Solve(rhs)
	if err != nil {
		return nil, fmt.Errorf("matrix solve failed: %v", err)
	}
	return solution, nil
}

// Handle returns an independent back-substitution context over the shared
// factorization. A handle owns a private scratch vector, so each goroutine
// of a batched solve gets its own.
func (s *System) Handle() *Handle {
	h := &Handle{m: *s.m}
	h.m.Intermediate = make([]float64, s.m.Size+2)
	return h
}

func (s *System) Destroy() {
	if s.m != nil {
		s.m.Destroy()
	}
}

// Handle is a shallow view of a factored System. Solve writes only the
// handle's own Intermediate scratch; the factored element lists are read,
// never written.
type Handle struct {
	m sparse.Matrix
}

func (h *Handle) Solve(rhs []float64) ([]float64, error) {
	solution, err := h.m.Solve(rhs)
	if err != nil {
		return nil, fmt.Errorf("matrix solve failed: %v", err)
	}
	return solution, nil
}
