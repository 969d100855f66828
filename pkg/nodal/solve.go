package nodal

import (
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/hfutlichao/badcrossbar/pkg/matrix"
)

// Factorization is a factored conductance system ready for repeated
// back-substitution. Factoring happens once; every column of a batched
// solve reuses the same LU data.
type Factorization struct {
	sys  *matrix.System
	size int
}

// Factor stamps the accumulated triplets into a solver matrix and runs the
// LU factorization.
func Factor(a *matrix.COO, size int) (*Factorization, error) {
	sys, err := matrix.NewSystem(size)
	if err != nil {
		return nil, err
	}
	sys.Stamp(a)
	if err := sys.Factor(); err != nil {
		sys.Destroy()
		return nil, err
	}
	return &Factorization{sys: sys, size: size}, nil
}

// Factorings reports how many factorizations have run. It stays at one no
// matter how many columns are solved.
func (f *Factorization) Factorings() int { return f.sys.Factorings() }

func (f *Factorization) Destroy() { f.sys.Destroy() }

// SolveAll back-substitutes every column of rhs against the shared
// factorization and returns the node potentials, one column per example.
// workers caps the number of concurrent column solves; values below two
// solve serially.
func (f *Factorization) SolveAll(rhs *mat.Dense, workers int) (*mat.Dense, error) {
	_, p := rhs.Dims()
	v := mat.NewDense(f.size, p, nil)

	if workers > p {
		workers = p
	}
	if workers < 2 {
		if err := f.solveColumns(f.sys.Solve, rhs, v, 0, p); err != nil {
			return nil, err
		}
		return v, nil
	}

	// Contiguous column ranges, one solve handle per goroutine. Handles
	// share the factored elements read-only and own their scratch space.
	chunk := (p + workers - 1) / workers
	var g errgroup.Group
	for start := 0; start < p; start += chunk {
		end := min(start+chunk, p)
		handle := f.sys.Handle()
		g.Go(func() error {
			return f.solveColumns(handle.Solve, rhs, v, start, end)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return v, nil
}

// solveColumns solves rhs columns [start, end) and writes them into v.
// The solver works on one-based vectors; index 0 is the ground slot.
func (f *Factorization) solveColumns(solve func([]float64) ([]float64, error), rhs, v *mat.Dense, start, end int) error {
	scratch := make([]float64, f.size+1)
	for k := start; k < end; k++ {
		for node := 0; node < f.size; node++ {
			scratch[node+1] = rhs.At(node, k)
		}
		solution, err := solve(scratch)
		if err != nil {
			return err
		}
		for node := 0; node < f.size; node++ {
			v.Set(node, k, solution[node+1])
		}
	}
	return nil
}
