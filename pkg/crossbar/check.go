package crossbar

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// validate enforces the input contract before any assembly work starts.
// The first violated requirement aborts the call.
func validate(resistances *mat.Dense, rWord, rBit float64, applied *mat.Dense) error {
	if err := checkMatrix(resistances, "resistances"); err != nil {
		return err
	}
	if err := checkMatrix(applied, "applied voltages"); err != nil {
		return err
	}

	if mat.Min(resistances) < 0 {
		return fmt.Errorf("resistances: %w", ErrNegativeValue)
	}

	rRows, _ := resistances.Dims()
	vRows, _ := applied.Dims()
	if rRows != vRows {
		return ErrShapeMismatch
	}

	for _, r := range []struct {
		name  string
		value float64
	}{
		{"word line interconnect", rWord},
		{"bit line interconnect", rBit},
	} {
		if math.IsNaN(r.value) || math.IsInf(r.value, 0) {
			return fmt.Errorf("%s: %w", r.name, ErrNotFinite)
		}
		if r.value < 0 {
			return fmt.Errorf("%s: %w", r.name, ErrNegativeValue)
		}
	}

	if hasZero(resistances) {
		if rWord == 0 && rBit == 0 {
			return ErrShortCircuit
		}
		return ErrUnsupportedZeroResistance
	}

	return nil
}

func checkMatrix(a *mat.Dense, name string) error {
	if a == nil || a.IsEmpty() {
		return fmt.Errorf("%s: %w", name, ErrEmptyInput)
	}
	rows, cols := a.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := a.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%s: %w", name, ErrNotFinite)
			}
		}
	}
	return nil
}

func hasZero(a *mat.Dense) bool {
	rows, cols := a.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if a.At(i, j) == 0 {
				return true
			}
		}
	}
	return false
}
