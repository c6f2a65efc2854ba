package analytics

import (
	"sort"

	"branchpulse/internal/dataset"
	apperrors "branchpulse/internal/errors"
)

// Underserved finds (state, city) groups with fewer branches than the
// given threshold, sorted ascending by branch count. A null state or city
// is a valid group key. The threshold must be a positive integer; there is
// no upper bound.
func Underserved(records []dataset.Record, threshold int) ([]UnderservedCity, error) {
	if threshold < 1 {
		return nil, apperrors.NewAppValidationError("underserved threshold must be a positive integer")
	}

	type groupKey struct {
		state string
		city  string
	}

	counts := make(map[groupKey]int)
	for _, rec := range records {
		counts[groupKey{state: rec.State, city: rec.City}]++
	}

	underserved := make([]UnderservedCity, 0)
	for key, count := range counts {
		if count < threshold {
			underserved = append(underserved, UnderservedCity{
				State:       key.state,
				City:        key.city,
				BranchCount: count,
			})
		}
	}

	// Equal counts order by (state, city) so output is deterministic.
	sort.Slice(underserved, func(i, j int) bool {
		if underserved[i].BranchCount != underserved[j].BranchCount {
			return underserved[i].BranchCount < underserved[j].BranchCount
		}
		if underserved[i].State != underserved[j].State {
			return underserved[i].State < underserved[j].State
		}
		return underserved[i].City < underserved[j].City
	})

	return underserved, nil
}
