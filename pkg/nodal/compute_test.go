package nodal_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/hfutlichao/badcrossbar/pkg/nodal"
)

// testTopology builds an m×n array with spread-out resistances and applied
// voltages of both signs.
func testTopology(m, n, p int, rWord, rBit float64) *nodal.Topology {
	resistances := mat.NewDense(m, n, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			resistances.Set(i, j, 50.0+7.0*float64(i*n+j))
		}
	}
	applied := mat.NewDense(m, p, nil)
	for i := 0; i < m; i++ {
		for k := 0; k < p; k++ {
			v := 1.2 * float64(k+1)
			if i%2 == 1 {
				v = -0.4 * float64(k+1)
			}
			applied.Set(i, k, v)
		}
	}
	return nodal.NewTopology(resistances, rWord, rBit, applied)
}

func computeAll(t *testing.T, topo *nodal.Topology) *nodal.Solution {
	t.Helper()
	sol, err := nodal.Compute(topo, nodal.Params{NodeVoltages: true, AllCurrents: true})
	require.NoError(t, err)
	return sol
}

// requireConservation checks Kirchhoff's current law on the extracted
// quantities: each word segment carries its device plus everything further
// down the line, each bit segment carries its device plus everything from
// above, the output is the last bit segment, and the total driven current
// equals the total output current.
func requireConservation(t *testing.T, topo *nodal.Topology, sol *nodal.Solution) {
	t.Helper()
	m, n, p := topo.Dims()
	cur := sol.Currents

	for k := 0; k < p; k++ {
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				wantWord := cur.Device.At(i, j, k)
				if j < n-1 {
					wantWord += cur.WordLine.At(i, j+1, k)
				}
				require.InDelta(t, wantWord, cur.WordLine.At(i, j, k), 1e-9,
					"word segment (%d,%d) example %d", i, j, k)

				wantBit := cur.Device.At(i, j, k)
				if i > 0 {
					wantBit += cur.BitLine.At(i-1, j, k)
				}
				require.InDelta(t, wantBit, cur.BitLine.At(i, j, k), 1e-9,
					"bit segment (%d,%d) example %d", i, j, k)
			}
		}

		in, out := 0.0, 0.0
		for j := 0; j < n; j++ {
			require.InDelta(t, cur.BitLine.At(m-1, j, k), cur.Output.At(k, j), 1e-9)
			out += cur.Output.At(k, j)
		}
		for i := 0; i < m; i++ {
			in += cur.WordLine.At(i, 0, k)
		}
		require.InDelta(t, in, out, 1e-9, "total current example %d", k)
	}
}

// TestCompute_SeriesPath solves the smallest array, a single 1 kOhm device
// between 10 Ohm segments under 1 V. Every branch carries the series current
// 1/1020 A.
func TestCompute_SeriesPath(t *testing.T) {
	resistances := mat.NewDense(1, 1, []float64{1000.0})
	applied := mat.NewDense(1, 1, []float64{1.0})
	topo := nodal.NewTopology(resistances, 10.0, 10.0, applied)

	sol := computeAll(t, topo)

	series := 1.0 / 1020.0
	require.InDelta(t, series, sol.Currents.Output.At(0, 0), 1e-12)
	require.InDelta(t, series, sol.Currents.Device.At(0, 0, 0), 1e-12)
	require.InDelta(t, series, sol.Currents.WordLine.At(0, 0, 0), 1e-12)
	require.InDelta(t, series, sol.Currents.BitLine.At(0, 0, 0), 1e-12)

	require.InDelta(t, 1010.0/1020.0, sol.Voltages.WordLine.At(0, 0, 0), 1e-12)
	require.InDelta(t, 10.0/1020.0, sol.Voltages.BitLine.At(0, 0, 0), 1e-12)
}

// TestCompute_Conservation runs every mode over several shapes and checks
// that the extracted quantities respect the current law.
func TestCompute_Conservation(t *testing.T) {
	modes := []struct {
		name        string
		rWord, rBit float64
	}{
		{"Full", 2.0, 3.0},
		{"WordIdeal", 0.0, 3.0},
		{"BitIdeal", 2.0, 0.0},
		{"Ideal", 0.0, 0.0},
	}
	shapes := []struct{ m, n int }{
		{3, 4}, {1, 3}, {4, 1}, {1, 1},
	}
	for _, mode := range modes {
		t.Run(mode.name, func(t *testing.T) {
			for _, shape := range shapes {
				topo := testTopology(shape.m, shape.n, 2, mode.rWord, mode.rBit)
				sol := computeAll(t, topo)
				requireConservation(t, topo, sol)
			}
		})
	}
}

// TestCompute_IdealWordLineExact pins the source-relation property: with
// ideal word lines the device currents equal applied voltage over device
// resistance exactly, independent of the bit-line resistance.
func TestCompute_IdealWordLineExact(t *testing.T) {
	resistances := mat.NewDense(1, 2, []float64{100.0, 200.0})
	applied := mat.NewDense(1, 1, []float64{5.0})

	lowRBit := computeAll(t, nodal.NewTopology(resistances, 0.0, 7.0, applied))
	highRBit := computeAll(t, nodal.NewTopology(resistances, 0.0, 900.0, applied))

	require.Equal(t, 5.0/100.0, lowRBit.Currents.Device.At(0, 0, 0))
	require.Equal(t, 5.0/200.0, lowRBit.Currents.Device.At(0, 1, 0))
	require.True(t, mat.Equal(lowRBit.Currents.Device.Example(0), highRBit.Currents.Device.Example(0)))

	require.InDelta(t, 5.0/100.0, lowRBit.Currents.Output.At(0, 0), 1e-15)
	require.InDelta(t, 5.0/200.0, highRBit.Currents.Output.At(0, 1), 1e-15)
}

// TestCompute_IdealClosedForms checks every quantity of the fully ideal mode
// against hand-computed values.
func TestCompute_IdealClosedForms(t *testing.T) {
	resistances := mat.NewDense(2, 2, []float64{100, 200, 300, 400})
	applied := mat.NewDense(2, 1, []float64{2.0, 4.0})
	topo := nodal.NewTopology(resistances, 0.0, 0.0, applied)

	sol := computeAll(t, topo)
	cur := sol.Currents

	require.InDelta(t, 0.02, cur.Device.At(0, 0, 0), 1e-15)
	require.InDelta(t, 0.01, cur.Device.At(0, 1, 0), 1e-15)
	require.InDelta(t, 4.0/300.0, cur.Device.At(1, 0, 0), 1e-15)
	require.InDelta(t, 0.01, cur.Device.At(1, 1, 0), 1e-15)

	// Word segments accumulate rightward demand; bit segments accumulate
	// drained rows.
	require.InDelta(t, 0.03, cur.WordLine.At(0, 0, 0), 1e-15)
	require.InDelta(t, 0.01, cur.WordLine.At(0, 1, 0), 1e-15)
	require.InDelta(t, 4.0/300.0+0.01, cur.WordLine.At(1, 0, 0), 1e-15)
	require.InDelta(t, 0.02, cur.BitLine.At(0, 0, 0), 1e-15)
	require.InDelta(t, 0.02+4.0/300.0, cur.BitLine.At(1, 0, 0), 1e-15)
	require.InDelta(t, 0.02, cur.BitLine.At(1, 1, 0), 1e-15)

	require.InDelta(t, 0.02+4.0/300.0, cur.Output.At(0, 0), 1e-15)
	require.InDelta(t, 0.02, cur.Output.At(0, 1), 1e-15)

	// Word nodes sit at the applied voltages, bit nodes at ground.
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			require.Equal(t, applied.At(i, 0), sol.Voltages.WordLine.At(i, j, 0))
			require.Zero(t, sol.Voltages.BitLine.At(i, j, 0))
		}
	}
}

// TestCompute_BatchMatchesSingle verifies that solving p voltage columns in
// one batch matches p independent single-example solves.
func TestCompute_BatchMatchesSingle(t *testing.T) {
	topo := testTopology(3, 3, 4, 2.0, 3.0)
	batch := computeAll(t, topo)

	m, n, p := topo.Dims()
	for k := 0; k < p; k++ {
		column := mat.NewDense(m, 1, nil)
		for i := 0; i < m; i++ {
			column.Set(i, 0, topo.Applied.At(i, k))
		}
		single := computeAll(t, nodal.NewTopology(topo.Resistances, topo.RWord, topo.RBit, column))

		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				require.InDelta(t, single.Currents.Device.At(i, j, 0),
					batch.Currents.Device.At(i, j, k), 1e-12)
			}
			require.InDelta(t, single.Voltages.WordLine.At(i, 0, 0),
				batch.Voltages.WordLine.At(i, 0, k), 1e-12)
		}
		for j := 0; j < n; j++ {
			require.InDelta(t, single.Currents.Output.At(0, j),
				batch.Currents.Output.At(k, j), 1e-12)
		}
	}
}

// TestCompute_WorkersMatchSerial verifies that concurrent column solves
// reproduce the serial result exactly.
func TestCompute_WorkersMatchSerial(t *testing.T) {
	topo := testTopology(3, 4, 5, 2.0, 3.0)

	serial, err := nodal.Compute(topo, nodal.Params{NodeVoltages: true, AllCurrents: true})
	require.NoError(t, err)
	parallel, err := nodal.Compute(topo, nodal.Params{NodeVoltages: true, AllCurrents: true, Workers: 3})
	require.NoError(t, err)

	require.True(t, mat.Equal(serial.Currents.Output, parallel.Currents.Output))
	_, _, p := topo.Dims()
	for k := 0; k < p; k++ {
		require.True(t, mat.Equal(serial.Currents.Device.Example(k), parallel.Currents.Device.Example(k)))
		require.True(t, mat.Equal(serial.Voltages.BitLine.Example(k), parallel.Voltages.BitLine.Example(k)))
	}
}

// TestCompute_SuppressedGroups verifies that skipping extraction leaves the
// optional groups nil while the output currents survive.
func TestCompute_SuppressedGroups(t *testing.T) {
	topo := testTopology(2, 2, 1, 2.0, 3.0)

	sol, err := nodal.Compute(topo, nodal.Params{})
	require.NoError(t, err)
	require.NotNil(t, sol.Currents.Output)
	require.Nil(t, sol.Currents.Device)
	require.Nil(t, sol.Currents.WordLine)
	require.Nil(t, sol.Currents.BitLine)
	require.Nil(t, sol.Voltages)
}

// TestFactorization_FactorOnce verifies that a batched solve factors once
// and that repeated back-substitution is stable.
func TestFactorization_FactorOnce(t *testing.T) {
	topo := testTopology(2, 2, 5, 2.0, 3.0)
	a, rhs := nodal.Fill(topo)

	fact, err := nodal.Factor(a, topo.Unknowns())
	require.NoError(t, err)
	defer fact.Destroy()

	first, err := fact.SolveAll(rhs, 3)
	require.NoError(t, err)
	second, err := fact.SolveAll(rhs, 0)
	require.NoError(t, err)

	require.Equal(t, 1, fact.Factorings())
	require.True(t, mat.Equal(first, second))

	rows, cols := first.Dims()
	require.Equal(t, topo.Unknowns(), rows)
	require.Equal(t, 5, cols)
}

// TestCompute_NodeVoltageBounds verifies the passive-network property: with
// non-negative drive every node potential stays between ground and the
// largest applied voltage.
func TestCompute_NodeVoltageBounds(t *testing.T) {
	resistances := mat.NewDense(3, 3, []float64{
		120, 80, 200,
		90, 150, 60,
		300, 110, 70,
	})
	applied := mat.NewDense(3, 1, []float64{1.0, 0.5, 2.0})
	topo := nodal.NewTopology(resistances, 1.5, 2.5, applied)

	sol := computeAll(t, topo)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			wv := sol.Voltages.WordLine.At(i, j, 0)
			bv := sol.Voltages.BitLine.At(i, j, 0)
			require.GreaterOrEqual(t, wv, -1e-12)
			require.GreaterOrEqual(t, bv, -1e-12)
			require.LessOrEqual(t, wv, 2.0+1e-12)
			require.LessOrEqual(t, bv, 2.0+1e-12)
		}
	}
}
