package consts

const (
	PivotRelThreshold = 1e-3 // Markowitz relative pivot threshold
	PivotAbsThreshold = 0.0  // Absolute pivot threshold (0 = library default)
)
