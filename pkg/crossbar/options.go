package crossbar

import "log/slog"

// Options adjusts what Solve computes and how. The zero value computes
// every result group with a serial solve.
type Options struct {
	// OmitNodeVoltages skips node-voltage extraction entirely;
	// Solution.Voltages is nil.
	OmitNodeVoltages bool

	// OutputCurrentsOnly skips the device and interconnect current groups,
	// leaving only Currents.Output.
	OutputCurrentsOnly bool

	// Workers caps the number of concurrent column solves when several
	// voltage examples are applied. Values below 2 solve serially.
	Workers int

	// Logger receives progress messages at debug level. Nil uses
	// slog.Default().
	Logger *slog.Logger
}
