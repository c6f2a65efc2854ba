package analytics

import (
	"sort"

	"branchpulse/internal/dataset"
)

// Stats computes basic statistics over a clean branch table. Null states
// and cities do not contribute to the distinct counts.
func Stats(records []dataset.Record) Statistics {
	banks := make(map[string]struct{})
	states := make(map[string]struct{})
	cities := make(map[string]struct{})
	withCoords := 0

	for _, rec := range records {
		if rec.Bank != "" {
			banks[rec.Bank] = struct{}{}
		}
		if rec.State != "" {
			states[rec.State] = struct{}{}
		}
		if rec.City != "" {
			cities[rec.City] = struct{}{}
		}
		if rec.Latitude != 0 || rec.Longitude != 0 {
			withCoords++
		}
	}

	return Statistics{
		TotalBranches:   len(records),
		TotalBanks:      len(banks),
		TotalStates:     len(states),
		TotalCities:     len(cities),
		WithCoordinates: withCoords,
	}
}

// StateDistribution returns branch counts per state, sorted descending by
// count with ties broken by state name.
func StateDistribution(records []dataset.Record) []DistributionEntry {
	return distribution(records, func(rec dataset.Record) string { return rec.State })
}

// BankDistribution returns branch counts per bank, sorted descending by
// count with ties broken by bank name.
func BankDistribution(records []dataset.Record) []DistributionEntry {
	return distribution(records, func(rec dataset.Record) string { return rec.Bank })
}

func distribution(records []dataset.Record, key func(dataset.Record) string) []DistributionEntry {
	counts := make(map[string]int)
	for _, rec := range records {
		if k := key(rec); k != "" {
			counts[k]++
		}
	}

	entries := make([]DistributionEntry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, DistributionEntry{Name: name, BranchCount: count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].BranchCount != entries[j].BranchCount {
			return entries[i].BranchCount > entries[j].BranchCount
		}
		return entries[i].Name < entries[j].Name
	})

	return entries
}

// Banks returns the sorted list of distinct bank names in the table.
func Banks(records []dataset.Record) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		if rec.Bank != "" {
			seen[rec.Bank] = struct{}{}
		}
	}

	banks := make([]string, 0, len(seen))
	for bank := range seen {
		banks = append(banks, bank)
	}
	sort.Strings(banks)
	return banks
}

// Filter returns the subset of records matching the given selectors. An
// empty selector matches every row; selectors combine with AND.
func Filter(records []dataset.Record, state, city, bank string) []dataset.Record {
	filtered := make([]dataset.Record, 0, len(records))
	for _, rec := range records {
		if state != "" && rec.State != state {
			continue
		}
		if city != "" && rec.City != city {
			continue
		}
		if bank != "" && rec.Bank != bank {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered
}
