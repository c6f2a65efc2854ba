package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"branchpulse/internal/analytics"
	"branchpulse/internal/config"
	"branchpulse/internal/dataset"
)

// DatasetService owns the clean branch table. The combined CSV is loaded
// once and cached; Reload rebuilds the cache from disk.
type DatasetService struct {
	config *config.Config
	loader *dataset.Loader
	logger *slog.Logger

	mu       sync.RWMutex
	records  []dataset.Record
	loadedAt time.Time
}

// NewDatasetService creates a new dataset service
func NewDatasetService(cfg *config.Config, logger *slog.Logger) *DatasetService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("DatasetService initialized",
		slog.String("data_dir", cfg.GetDataDir()),
		slog.String("reports_dir", cfg.GetReportsDir()))

	return &DatasetService{
		config: cfg,
		loader: dataset.NewLoader(cfg.GetDataDir(), logger),
		logger: logger,
	}
}

// Load reads and normalizes the combined dataset if it is not cached yet.
func (s *DatasetService) Load(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.records != nil
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	return s.Reload(ctx)
}

// Reload rebuilds the cached table from the combined CSV on disk.
func (s *DatasetService) Reload(ctx context.Context) error {
	table, err := s.loader.LoadCombined(ctx)
	if err != nil {
		if errors.Is(err, dataset.ErrSourceNotFound) {
			return fmt.Errorf("%w: %s", ErrDatasetNotFound, dataset.CombinedFileName)
		}
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	records := dataset.Records(table)

	s.mu.Lock()
	s.records = records
	s.loadedAt = time.Now()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "dataset cache refreshed",
		slog.Int("rows", len(records)))
	return nil
}

// Records returns the cached clean table, loading it on first use.
func (s *DatasetService) Records(ctx context.Context) ([]dataset.Record, error) {
	if err := s.Load(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records, nil
}

// LoadedAt reports when the cache was last rebuilt.
func (s *DatasetService) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// RecordCount reports the cached row count without forcing a load.
func (s *DatasetService) RecordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Branches returns the branch subset matching the given selectors. Empty
// selectors match every row.
func (s *DatasetService) Branches(ctx context.Context, state, city, bank string) ([]dataset.Record, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Filter(records, state, city, bank), nil
}

// BankBranches loads one bank's per-bank CSV, bypassing the combined cache.
func (s *DatasetService) BankBranches(ctx context.Context, bank string) ([]dataset.Record, error) {
	table, err := s.loader.LoadBank(ctx, bank)
	if err != nil {
		if errors.Is(err, dataset.ErrSourceNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrBankNotFound, bank)
		}
		return nil, fmt.Errorf("failed to load bank dataset: %w", err)
	}
	return dataset.Records(table), nil
}

// Banks returns the sorted distinct bank names in the dataset.
func (s *DatasetService) Banks(ctx context.Context) ([]string, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Banks(records), nil
}

// Stats returns summary statistics for the dataset.
func (s *DatasetService) Stats(ctx context.Context) (analytics.Statistics, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return analytics.Statistics{}, err
	}
	return analytics.Stats(records), nil
}

// StateDistribution returns branch counts per state, busiest first.
func (s *DatasetService) StateDistribution(ctx context.Context) ([]analytics.DistributionEntry, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.StateDistribution(records), nil
}

// BankDistribution returns branch counts per bank, largest first.
func (s *DatasetService) BankDistribution(ctx context.Context) ([]analytics.DistributionEntry, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.BankDistribution(records), nil
}
