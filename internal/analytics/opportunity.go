package analytics

import (
	"fmt"
	"sort"

	"branchpulse/internal/dataset"
)

// Opportunity scoring weights. These thresholds and point values are part
// of the heuristic's contract: scores must stay exactly reproducible, so
// the values are never tuned in place.
const (
	moderatePresencePoints = 30 // branch count in [10, 50]
	lowPresencePoints      = 10 // branch count below 10
	cityCoveragePoints     = 20 // more than 5 distinct cities
	lowCompetitionPoints   = 25 // fewer than 5 distinct banks
	concentrationPoints    = 25 // HHI above 2500
)

// Score evaluates the expansion-opportunity heuristic for one state. All
// four criteria are independent and summed; the maximum attainable score
// is 100. Returns ErrNoData when the state has no rows.
func Score(records []dataset.Record, state string) (OpportunityScore, error) {
	branches := 0
	banks := make(map[string]struct{})
	cities := make(map[string]struct{})

	for _, rec := range records {
		if rec.State != state {
			continue
		}
		branches++
		if rec.Bank != "" {
			banks[rec.Bank] = struct{}{}
		}
		if rec.City != "" {
			cities[rec.City] = struct{}{}
		}
	}

	if branches == 0 {
		return OpportunityScore{}, fmt.Errorf("%w: %q", ErrNoData, state)
	}

	hhi, err := Concentration(records, state)
	if err != nil {
		return OpportunityScore{}, err
	}

	score := 0

	// Moderate presence: not too crowded, not empty.
	switch {
	case branches >= 10 && branches <= 50:
		score += moderatePresencePoints
	case branches < 10:
		score += lowPresencePoints
	}

	// City coverage potential.
	if len(cities) > 5 {
		score += cityCoveragePoints
	}

	// Low competition.
	if len(banks) < 5 {
		score += lowCompetitionPoints
	}

	// Concentrated market dominated by few players.
	if hhi > HHIConcentratedAbove {
		score += concentrationPoints
	}

	return OpportunityScore{
		State:           state,
		Score:           score,
		CurrentBranches: branches,
		BanksPresent:    len(banks),
		CitiesCovered:   len(cities),
		HHI:             hhi,
	}, nil
}

// Rank scores every state present in the table and returns the results
// sorted by score descending, ties broken by state name for deterministic
// output. Rows with a null state are excluded from the ranking.
func Rank(records []dataset.Record) []OpportunityScore {
	states := make(map[string]struct{})
	for _, rec := range records {
		if rec.State != "" {
			states[rec.State] = struct{}{}
		}
	}

	scores := make([]OpportunityScore, 0, len(states))
	for state := range states {
		score, err := Score(records, state)
		if err != nil {
			continue
		}
		scores = append(scores, score)
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].State < scores[j].State
	})

	return scores
}
