package crossbar

import (
	"errors"

	"github.com/hfutlichao/badcrossbar/pkg/matrix"
)

var (
	// ErrEmptyInput indicates a resistance or voltage matrix with no rows
	// or columns.
	ErrEmptyInput = errors.New("crossbar: matrices must have at least one row and one column")
	// ErrNotFinite indicates a NaN or infinite entry or parameter.
	ErrNotFinite = errors.New("crossbar: values must be finite")
	// ErrNegativeValue indicates a negative resistance value.
	ErrNegativeValue = errors.New("crossbar: resistance values must be non-negative")
	// ErrShapeMismatch indicates that the resistance and applied voltage
	// matrices disagree on the number of word lines.
	ErrShapeMismatch = errors.New("crossbar: resistances and applied voltages must have the same number of rows")
	// ErrShortCircuit indicates a zero-resistance device while both
	// interconnect types are ideal, a zero-resistance path end to end.
	ErrShortCircuit = errors.New("crossbar: zero-resistance device short-circuits the array")
	// ErrUnsupportedZeroResistance indicates a zero-resistance device with
	// resistive interconnects; current division at that crosspoint is not
	// well defined in this formulation.
	ErrUnsupportedZeroResistance = errors.New("crossbar: zero-resistance devices are not supported")
)

// ErrSingularSystem reports that the assembled conductance system could not
// be factored, e.g. a topology with no path to ground.
var ErrSingularSystem = matrix.ErrSingular
