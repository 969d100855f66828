package nodal

import (
	"log/slog"
	"time"
)

// Params tunes one computation. NodeVoltages and AllCurrents choose which
// result groups Extract materializes; output currents are always produced.
type Params struct {
	NodeVoltages bool
	AllCurrents  bool
	Workers      int          // concurrent column solves, below 2 is serial
	Logger       *slog.Logger // nil uses slog.Default()
}

// Compute runs the assemble, factor, solve, extract pipeline for one
// topology.
func Compute(t *Topology, p Params) (*Solution, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m, n, examples := t.Dims()
	mode := t.Mode()
	logger.Debug("assembling crossbar system",
		slog.String("mode", mode.String()),
		slog.Int("rows", m), slog.Int("cols", n),
		slog.Int("examples", examples),
		slog.Int("unknowns", t.Unknowns()))

	// With both line types ideal there is no system to solve; every
	// branch quantity follows from the inputs directly.
	if mode == ModeIdeal {
		return Extract(t, nil, p.NodeVoltages, p.AllCurrents), nil
	}

	a, rhs := Fill(t)
	logger.Debug("stencil assembled", slog.Int("triplets", a.NNZ()))

	started := time.Now()
	fact, err := Factor(a, t.Unknowns())
	if err != nil {
		return nil, err
	}
	defer fact.Destroy()
	logger.Debug("factorization done", slog.Duration("elapsed", time.Since(started)))

	started = time.Now()
	v, err := fact.SolveAll(rhs, p.Workers)
	if err != nil {
		return nil, err
	}
	logger.Debug("back-substitution done",
		slog.Int("columns", examples),
		slog.Duration("elapsed", time.Since(started)))

	return Extract(t, v, p.NodeVoltages, p.AllCurrents), nil
}
