package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoader_LoadCombined(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, CombinedFileName,
		"Bank Name,Branch Name,Address,City,State,Latitude,Longitude\n"+
			"State Bank Of India,Fort,Mumbai Fort 400001,MUMBAI,maharashtra,18.93,72.83\n"+
			"HDFC Bank,Connaught Place,New Delhi 110001,new delhi,delhi,28.63,77.22\n"+
			"HDFC Bank,Atlantis,Lost City,atlantis,nowhere,0.0,0.0\n")

	loader := NewLoader(dir, nil)
	table, err := loader.LoadCombined(context.Background())
	require.NoError(t, err)

	records := Records(table)
	require.Len(t, records, 2, "out-of-box row must be dropped")

	assert.Equal(t, "State Bank Of India", records[0].Bank)
	assert.Equal(t, "Fort", records[0].Branch)
	assert.Equal(t, "Mumbai", records[0].City)
	assert.Equal(t, "Maharashtra", records[0].State)
	assert.Equal(t, "400001", records[0].Pincode)
	assert.InDelta(t, 18.93, records[0].Latitude, 1e-9)
}

func TestLoader_LoadCombined_MissingFile(t *testing.T) {
	loader := NewLoader(t.TempDir(), nil)
	_, err := loader.LoadCombined(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestLoader_LoadBank(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "state_bank_of_india.csv",
		"Bank Name,City,State,Latitude,Longitude\n"+
			"State Bank of India,Kochi,Kerala,9.93,76.26\n")

	loader := NewLoader(dir, nil)
	table, err := loader.LoadBank(context.Background(), "State Bank of India")
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Kerala", Records(table)[0].State)
}

func TestLoader_LoadBank_MissingFile(t *testing.T) {
	loader := NewLoader(t.TempDir(), nil)
	_, err := loader.LoadBank(context.Background(), "No Such Bank")
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestLoader_SkipsMalformedRows(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, CombinedFileName,
		"Bank,City,State,Latitude,Longitude\n"+
			"SBI,Mumbai,Maharashtra,18.93,72.83\n"+
			"short row\n"+
			"SBI,Pune,Maharashtra,18.52,73.85,extra,fields\n"+
			"ICICI,Kochi,Kerala,9.93,76.26\n")

	loader := NewLoader(dir, nil)
	table, err := loader.LoadCombined(context.Background())
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2, "rows with the wrong field count are skipped, not fatal")
}

func TestLoader_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, CombinedFileName, "")

	loader := NewLoader(dir, nil)
	_, err := loader.LoadCombined(context.Background())
	assert.Error(t, err)
}
