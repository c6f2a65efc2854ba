package analytics

import (
	"fmt"

	"branchpulse/internal/config"
	"branchpulse/internal/dataset"
)

// Density computes branches per 1,000 square kilometres for the given
// state. Area comes from the injectable reference table; unknown states
// fall back to the table's default placeholder area, so division by zero
// cannot occur. Returns ErrNoData when the state has no rows.
func Density(records []dataset.Record, state string, areas config.StateAreas) (StateDensity, error) {
	count := 0
	for _, rec := range records {
		if rec.State == state {
			count++
		}
	}

	if count == 0 {
		return StateDensity{}, fmt.Errorf("%w: %q", ErrNoData, state)
	}

	area := areas.Area(state)
	return StateDensity{
		State:              state,
		BranchCount:        count,
		DensityPer1000SqKm: round2(float64(count) / (area / 1000)),
	}, nil
}
