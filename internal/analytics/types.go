package analytics

import (
	"errors"
	"math"
)

// ErrNoData indicates a query against a state with no matching rows.
var ErrNoData = errors.New("no branch data for state")

// StateDensity is the branch density of one state.
type StateDensity struct {
	State              string  `json:"state"`
	BranchCount        int     `json:"branch_count"`
	DensityPer1000SqKm float64 `json:"density_per_1000_sqkm"`
}

// UnderservedCity is a (state, city) group whose branch count falls below
// the analyst-chosen threshold.
type UnderservedCity struct {
	State       string `json:"state"`
	City        string `json:"city"`
	BranchCount int    `json:"branch_count"`
}

// OpportunityScore ranks a state as an expansion candidate.
type OpportunityScore struct {
	State           string  `json:"state"`
	Score           int     `json:"score"`
	CurrentBranches int     `json:"current_branches"`
	BanksPresent    int     `json:"banks_present"`
	CitiesCovered   int     `json:"cities_covered"`
	HHI             float64 `json:"hhi"`
}

// Statistics summarizes a clean branch table.
type Statistics struct {
	TotalBranches   int `json:"total_branches"`
	TotalBanks      int `json:"total_banks"`
	TotalStates     int `json:"total_states"`
	TotalCities     int `json:"total_cities"`
	WithCoordinates int `json:"with_coordinates"`
}

// DistributionEntry is one bar of a branch-count distribution.
type DistributionEntry struct {
	Name        string `json:"name"`
	BranchCount int    `json:"branch_count"`
}

// HHI interpretation bands. Caller-facing; the concentration function
// itself does not enforce them.
const (
	HHICompetitiveBelow  = 1500.0
	HHIConcentratedAbove = 2500.0
)

// MarketType classifies an HHI value into its interpretation band.
func MarketType(hhi float64) string {
	switch {
	case hhi < HHICompetitiveBelow:
		return "Competitive"
	case hhi <= HHIConcentratedAbove:
		return "Moderate"
	default:
		return "Concentrated"
	}
}

// round2 rounds to two decimal places, the precision used by every derived
// metric in this package.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
