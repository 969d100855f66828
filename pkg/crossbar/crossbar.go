// Package crossbar computes branch currents and node voltages of resistive
// crossbar arrays with interconnect resistance.
//
// A crossbar is m word lines crossing n bit lines with a two-terminal
// resistive device at every intersection. Voltages applied at the word-line
// ends drive currents through the devices into the grounded bit-line ends.
// Solve assembles the nodal system of the array, factors it once, solves it
// for every column of applied voltages and reconstructs all branch currents
// and node potentials. Word or bit lines with zero interconnect resistance
// are treated as ideal conductors and their potentials are not solved for.
package crossbar

import (
	"gonum.org/v1/gonum/mat"

	"github.com/hfutlichao/badcrossbar/pkg/nodal"
)

// Result types are defined by the nodal engine and re-exported here.
type (
	Solution = nodal.Solution
	Currents = nodal.Currents
	Voltages = nodal.Voltages
	Stack    = nodal.Stack
)

// Solve computes the branch currents and node voltages of the crossbar
// described by an m×n grid of device resistances, per-segment interconnect
// resistances along the word and bit lines, and an m×p matrix of applied
// voltages, one column per independent example. opts may be nil for
// defaults.
//
// Returns ErrEmptyInput, ErrNotFinite, ErrNegativeValue, ErrShapeMismatch,
// ErrShortCircuit or ErrUnsupportedZeroResistance when the inputs violate
// the contract, and ErrSingularSystem when the assembled system cannot be
// factored.
func Solve(resistances *mat.Dense, rWord, rBit float64, appliedVoltages *mat.Dense, opts *Options) (*Solution, error) {
	if opts == nil {
		opts = &Options{}
	}
	if err := validate(resistances, rWord, rBit, appliedVoltages); err != nil {
		return nil, err
	}

	t := nodal.NewTopology(resistances, rWord, rBit, appliedVoltages)
	return nodal.Compute(t, nodal.Params{
		NodeVoltages: !opts.OmitNodeVoltages,
		AllCurrents:  !opts.OutputCurrentsOnly,
		Workers:      opts.Workers,
		Logger:       opts.Logger,
	})
}
