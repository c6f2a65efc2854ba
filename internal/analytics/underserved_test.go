package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"branchpulse/internal/dataset"
)

func TestUnderserved(t *testing.T) {
	t.Run("only groups below threshold returned", func(t *testing.T) {
		var records []dataset.Record
		records = repeat(records, branch("Bank", "A", "X"), 1)
		records = repeat(records, branch("Bank", "A", "Y"), 3)
		records = repeat(records, branch("Bank", "B", "Z"), 2)

		got, err := Underserved(records, 2)
		require.NoError(t, err)
		require.Len(t, got, 1, "counts of 3 and 2 are not below threshold 2")
		assert.Equal(t, UnderservedCity{State: "A", City: "X", BranchCount: 1}, got[0])
	})

	t.Run("sorted ascending by count with deterministic ties", func(t *testing.T) {
		var records []dataset.Record
		records = repeat(records, branch("Bank", "Kerala", "Kochi"), 2)
		records = repeat(records, branch("Bank", "Bihar", "Gaya"), 1)
		records = repeat(records, branch("Bank", "Bihar", "Arrah"), 1)
		records = repeat(records, branch("Bank", "Assam", "Jorhat"), 2)

		got, err := Underserved(records, 3)
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, UnderservedCity{State: "Bihar", City: "Arrah", BranchCount: 1}, got[0])
		assert.Equal(t, UnderservedCity{State: "Bihar", City: "Gaya", BranchCount: 1}, got[1])
		assert.Equal(t, UnderservedCity{State: "Assam", City: "Jorhat", BranchCount: 2}, got[2])
		assert.Equal(t, UnderservedCity{State: "Kerala", City: "Kochi", BranchCount: 2}, got[3])
	})

	t.Run("null state and city form their own group", func(t *testing.T) {
		var records []dataset.Record
		records = repeat(records, branch("Bank", "", ""), 1)
		records = repeat(records, branch("Bank", "Kerala", "Kochi"), 5)

		got, err := Underserved(records, 2)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Empty(t, got[0].State)
		assert.Empty(t, got[0].City)
	})

	t.Run("threshold partitions all groups", func(t *testing.T) {
		var records []dataset.Record
		records = repeat(records, branch("Bank", "A", "P"), 1)
		records = repeat(records, branch("Bank", "A", "Q"), 2)
		records = repeat(records, branch("Bank", "A", "R"), 4)

		threshold := 3
		got, err := Underserved(records, threshold)
		require.NoError(t, err)

		returned := make(map[string]int)
		for _, u := range got {
			assert.Less(t, u.BranchCount, threshold)
			returned[u.City] = u.BranchCount
		}
		// The one group not returned has count >= threshold.
		assert.NotContains(t, returned, "R")
		assert.Contains(t, returned, "P")
		assert.Contains(t, returned, "Q")
	})

	t.Run("non-positive threshold rejected", func(t *testing.T) {
		records := repeat(nil, branch("Bank", "A", "X"), 1)

		_, err := Underserved(records, 0)
		assert.Error(t, err)

		_, err = Underserved(records, -2)
		assert.Error(t, err)
	})

	t.Run("empty table yields empty result", func(t *testing.T) {
		got, err := Underserved(nil, 2)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
