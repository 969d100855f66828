package crossbar_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/hfutlichao/badcrossbar/pkg/crossbar"
)

func validResistances() *mat.Dense {
	return mat.NewDense(2, 2, []float64{100, 200, 300, 400})
}

func validApplied() *mat.Dense {
	return mat.NewDense(2, 1, []float64{1.0, 2.0})
}

// TestSolve_InputValidation walks the error taxonomy: each case violates
// exactly one input requirement.
func TestSolve_InputValidation(t *testing.T) {
	cases := []struct {
		name        string
		resistances *mat.Dense
		rWord, rBit float64
		applied     *mat.Dense
		want        error
	}{
		{
			name:        "NilResistances",
			resistances: nil,
			rWord:       1, rBit: 1,
			applied: validApplied(),
			want:    crossbar.ErrEmptyInput,
		},
		{
			name:        "EmptyResistances",
			resistances: &mat.Dense{},
			rWord:       1, rBit: 1,
			applied: validApplied(),
			want:    crossbar.ErrEmptyInput,
		},
		{
			name:        "NilApplied",
			resistances: validResistances(),
			rWord:       1, rBit: 1,
			applied: nil,
			want:    crossbar.ErrEmptyInput,
		},
		{
			name:        "NaNResistance",
			resistances: mat.NewDense(2, 2, []float64{100, math.NaN(), 300, 400}),
			rWord:       1, rBit: 1,
			applied: validApplied(),
			want:    crossbar.ErrNotFinite,
		},
		{
			name:        "InfiniteVoltage",
			resistances: validResistances(),
			rWord:       1, rBit: 1,
			applied: mat.NewDense(2, 1, []float64{1.0, math.Inf(1)}),
			want:    crossbar.ErrNotFinite,
		},
		{
			name:        "NegativeResistance",
			resistances: mat.NewDense(2, 2, []float64{100, -200, 300, 400}),
			rWord:       1, rBit: 1,
			applied: validApplied(),
			want:    crossbar.ErrNegativeValue,
		},
		{
			name:        "RowCountMismatch",
			resistances: validResistances(),
			rWord:       1, rBit: 1,
			applied: mat.NewDense(3, 1, []float64{1, 2, 3}),
			want:    crossbar.ErrShapeMismatch,
		},
		{
			name:        "NaNWordInterconnect",
			resistances: validResistances(),
			rWord:       math.NaN(), rBit: 1,
			applied: validApplied(),
			want:    crossbar.ErrNotFinite,
		},
		{
			name:        "InfiniteBitInterconnect",
			resistances: validResistances(),
			rWord:       1, rBit: math.Inf(1),
			applied: validApplied(),
			want:    crossbar.ErrNotFinite,
		},
		{
			name:        "NegativeWordInterconnect",
			resistances: validResistances(),
			rWord:       -0.5, rBit: 1,
			applied: validApplied(),
			want:    crossbar.ErrNegativeValue,
		},
		{
			name:        "ShortCircuitWithIdealLines",
			resistances: mat.NewDense(2, 2, []float64{100, 0, 300, 400}),
			rWord:       0, rBit: 0,
			applied: validApplied(),
			want:    crossbar.ErrShortCircuit,
		},
		{
			name:        "ZeroDeviceWithResistiveLines",
			resistances: mat.NewDense(2, 2, []float64{100, 0, 300, 400}),
			rWord:       1, rBit: 0,
			applied: validApplied(),
			want:    crossbar.ErrUnsupportedZeroResistance,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sol, err := crossbar.Solve(tc.resistances, tc.rWord, tc.rBit, tc.applied, nil)
			require.Nil(t, sol)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

// TestSolve_AcceptsEdgeValues verifies inputs that look suspicious but are
// legal: negative and zero voltages, zero interconnects.
func TestSolve_AcceptsEdgeValues(t *testing.T) {
	cases := []struct {
		name        string
		rWord, rBit float64
		applied     *mat.Dense
	}{
		{"NegativeVoltages", 1, 1, mat.NewDense(2, 1, []float64{-1.0, -2.5})},
		{"ZeroVoltages", 1, 1, mat.NewDense(2, 1, []float64{0, 0})},
		{"IdealWordLines", 0, 1, validApplied()},
		{"IdealBitLines", 1, 0, validApplied()},
		{"BothIdeal", 0, 0, validApplied()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sol, err := crossbar.Solve(validResistances(), tc.rWord, tc.rBit, tc.applied, nil)
			require.NoError(t, err)
			require.NotNil(t, sol)
		})
	}
}
