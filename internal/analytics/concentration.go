package analytics

import (
	"fmt"

	"branchpulse/internal/dataset"
)

// Concentration computes the Herfindahl-Hirschman Index for the banks
// operating in the given state: the sum of squared market shares scaled to
// the 0-10000 range, where share is a bank's fraction of the state's
// branch rows. Returns ErrNoData when the state has no rows.
func Concentration(records []dataset.Record, state string) (float64, error) {
	counts := make(map[string]int)
	total := 0
	for _, rec := range records {
		if rec.State != state {
			continue
		}
		counts[rec.Bank]++
		total++
	}

	if total == 0 {
		return 0, fmt.Errorf("%w: %q", ErrNoData, state)
	}

	var hhi float64
	for _, count := range counts {
		share := float64(count) / float64(total)
		hhi += share * share
	}

	return round2(hhi * 10000), nil
}
