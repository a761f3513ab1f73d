package stats

// Minimum cleaned series lengths below which each estimator returns its
// empty or degenerate result.
const (
	MinACFLength          = 10
	MinPACFLength         = MinACFLength
	MinMILength           = 20
	MinStationarityLength = 20
	MinHurstLength        = 50
	MinSeasonalityLength  = 20
)

// Default lag and period limits.
const (
	DefaultMaxLags    = 50
	DefaultMIMaxLags  = 30
	DefaultMaxPeriods = 50
)
