package domain

// Horizon is a fixed checkpoint at which each path snapshots net worth.
type Horizon string

const (
	Horizon6Months Horizon = "6mo"
	Horizon1Year   Horizon = "1yr"
	Horizon5Years  Horizon = "5yr"
	Horizon10Years Horizon = "10yr"
	Horizon20Years Horizon = "20yr"
)

// HorizonCount is the number of fixed horizons.
const HorizonCount = 5

// Horizons lists the fixed horizons in chronological order. Index i of any
// per-horizon array refers to Horizons[i].
var Horizons = [HorizonCount]Horizon{
	Horizon6Months,
	Horizon1Year,
	Horizon5Years,
	Horizon10Years,
	Horizon20Years,
}

// TimeHorizonMonths maps each horizon to its month mark.
var TimeHorizonMonths = [HorizonCount]int{6, 12, 60, 120, 240}

// LongestHorizonMonths is the month mark of the furthest horizon.
const LongestHorizonMonths = 240

// Months returns the month mark of h, or 0 for an unknown horizon.
func (h Horizon) Months() int {
	for i, candidate := range Horizons {
		if candidate == h {
			return TimeHorizonMonths[i]
		}
	}
	return 0
}
