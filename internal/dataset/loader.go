package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ErrSourceNotFound indicates the backing file is missing at the expected
// path. It is fatal to that load call and surfaced to the caller.
var ErrSourceNotFound = errors.New("dataset source not found")

// CombinedFileName is the file aggregating all banks in the data directory.
const CombinedFileName = "combined_banks.csv"

// Loader reads branch tables from the configured data directory.
type Loader struct {
	dataDir string
	logger  *slog.Logger
}

// NewLoader creates a loader rooted at the given data directory.
func NewLoader(dataDir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		dataDir: dataDir,
		logger:  logger.With(slog.String("component", "dataset_loader")),
	}
}

// LoadCombined loads and normalizes the combined dataset with all banks.
func (l *Loader) LoadCombined(ctx context.Context) (*Table, error) {
	return l.load(ctx, filepath.Join(l.dataDir, CombinedFileName))
}

// LoadBank loads and normalizes the dataset for a single bank. The file
// name is derived from the bank name, lowercased with spaces replaced by
// underscores.
func (l *Loader) LoadBank(ctx context.Context, bankName string) (*Table, error) {
	filename := strings.ReplaceAll(strings.ToLower(bankName), " ", "_") + ".csv"
	return l.load(ctx, filepath.Join(l.dataDir, filename))
}

// load reads one CSV file and normalizes it. Malformed rows are skipped
// and counted; only a missing file is an error.
func (l *Loader) load(ctx context.Context, path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("dataset %s is empty", path)
		}
		return nil, fmt.Errorf("failed to read dataset header from %s: %w", path, err)
	}

	var rows [][]string
	var skipped int
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Row-level malformation is a silent drop, not an error.
			skipped++
			continue
		}
		if len(row) != len(header) {
			skipped++
			continue
		}
		rows = append(rows, row)
	}

	raw := &Table{Columns: header, Rows: rows}
	clean := Normalize(raw)

	l.logger.InfoContext(ctx, "dataset loaded",
		slog.String("path", path),
		slog.Int("raw_rows", len(rows)),
		slog.Int("clean_rows", len(clean.Rows)),
		slog.Int("skipped_rows", skipped),
		slog.Int("geofenced_rows", len(rows)-len(clean.Rows)),
	)

	return clean, nil
}
