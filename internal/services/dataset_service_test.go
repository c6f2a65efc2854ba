package services

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"branchpulse/internal/config"
	"branchpulse/internal/dataset"
)

const combinedFixture = `Bank Name,Branch Name,Location Type,Address,City,State,Latitude,Longitude
State Bank,Kochi Main,Branch,"MG Road, Kochi 682001",Kochi,Kerala,9.9312,76.2673
State Bank,Thrissur,Branch,"Round South, Thrissur 680001",Thrissur,Kerala,10.5276,76.2144
Axis Bank,Kochi Marine,Branch,"Marine Drive, Kochi 682031",Kochi,Kerala,9.9658,76.2421
Axis Bank,Gaya,Branch,"Station Road, Gaya 823001",Gaya,Bihar,24.7955,85.0002
HDFC,Offshore,Branch,Somewhere,Atlantis,Unknown,3.0,60.0
`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestConfig builds a config rooted in temp directories and seeds the
// combined dataset fixture.
func newTestConfig(t *testing.T) *config.Config {
	t.Helper()

	dataDir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = dataDir
	cfg.Paths.ReportsDir = t.TempDir()
	cfg.Paths.LogsDir = t.TempDir()

	source := filepath.Join(dataDir, dataset.CombinedFileName)
	require.NoError(t, os.WriteFile(source, []byte(combinedFixture), 0644))
	return cfg
}

func TestDatasetService_Records(t *testing.T) {
	cfg := newTestConfig(t)
	svc := NewDatasetService(cfg, testLogger())

	records, err := svc.Records(context.Background())
	require.NoError(t, err)
	// The Unknown-state row sits outside the geofence and is dropped.
	require.Len(t, records, 4)
	assert.Equal(t, "State Bank", records[0].Bank)
	assert.Equal(t, "682001", records[0].Pincode)
	assert.False(t, svc.LoadedAt().IsZero())
}

func TestDatasetService_CachesAcrossCalls(t *testing.T) {
	cfg := newTestConfig(t)
	svc := NewDatasetService(cfg, testLogger())

	_, err := svc.Records(context.Background())
	require.NoError(t, err)
	first := svc.LoadedAt()

	_, err = svc.Records(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, svc.LoadedAt(), "second read must hit the cache")
}

func TestDatasetService_Reload(t *testing.T) {
	cfg := newTestConfig(t)
	svc := NewDatasetService(cfg, testLogger())

	records, err := svc.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 4)

	// Shrink the file and reload.
	source := filepath.Join(cfg.GetDataDir(), dataset.CombinedFileName)
	shrunk := `Bank Name,Branch Name,Location Type,Address,City,State,Latitude,Longitude
State Bank,Kochi Main,Branch,"MG Road, Kochi 682001",Kochi,Kerala,9.9312,76.2673
`
	require.NoError(t, os.WriteFile(source, []byte(shrunk), 0644))
	require.NoError(t, svc.Reload(context.Background()))

	records, err = svc.Records(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestDatasetService_MissingSource(t *testing.T) {
	cfg := newTestConfig(t)
	require.NoError(t, os.Remove(filepath.Join(cfg.GetDataDir(), dataset.CombinedFileName)))

	svc := NewDatasetService(cfg, testLogger())
	_, err := svc.Records(context.Background())
	assert.ErrorIs(t, err, ErrDatasetNotFound)
}

func TestDatasetService_Branches(t *testing.T) {
	cfg := newTestConfig(t)
	svc := NewDatasetService(cfg, testLogger())

	kochi, err := svc.Branches(context.Background(), "Kerala", "Kochi", "")
	require.NoError(t, err)
	assert.Len(t, kochi, 2)

	axisKochi, err := svc.Branches(context.Background(), "Kerala", "Kochi", "Axis Bank")
	require.NoError(t, err)
	require.Len(t, axisKochi, 1)
	assert.Equal(t, "Kochi Marine", axisKochi[0].Branch)
}

func TestDatasetService_Banks(t *testing.T) {
	cfg := newTestConfig(t)
	svc := NewDatasetService(cfg, testLogger())

	banks, err := svc.Banks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Axis Bank", "State Bank"}, banks)
}

func TestDatasetService_Stats(t *testing.T) {
	cfg := newTestConfig(t)
	svc := NewDatasetService(cfg, testLogger())

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalBranches)
	assert.Equal(t, 2, stats.TotalBanks)
	assert.Equal(t, 2, stats.TotalStates)
	assert.Equal(t, 3, stats.TotalCities)
	assert.Equal(t, 4, stats.WithCoordinates)
}

func TestDatasetService_Distributions(t *testing.T) {
	cfg := newTestConfig(t)
	svc := NewDatasetService(cfg, testLogger())

	states, err := svc.StateDistribution(context.Background())
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.Equal(t, "Kerala", states[0].Name)
	assert.Equal(t, 3, states[0].BranchCount)

	banks, err := svc.BankDistribution(context.Background())
	require.NoError(t, err)
	require.Len(t, banks, 2)
	assert.Equal(t, "State Bank", banks[0].Name)
}

func TestDatasetService_BankBranches(t *testing.T) {
	cfg := newTestConfig(t)

	perBank := `Bank Name,Branch Name,Location Type,Address,City,State,Latitude,Longitude
Axis Bank,Gaya,Branch,"Station Road, Gaya 823001",Gaya,Bihar,24.7955,85.0002
`
	require.NoError(t, os.WriteFile(
		filepath.Join(cfg.GetDataDir(), "axis_bank.csv"), []byte(perBank), 0644))

	svc := NewDatasetService(cfg, testLogger())

	records, err := svc.BankBranches(context.Background(), "Axis Bank")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Gaya", records[0].City)

	_, err = svc.BankBranches(context.Background(), "No Such Bank")
	assert.ErrorIs(t, err, ErrBankNotFound)
}
