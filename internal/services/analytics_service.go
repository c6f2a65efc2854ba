package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"branchpulse/internal/analytics"
	"branchpulse/internal/config"
	"branchpulse/internal/exporter"
)

// ConcentrationResult carries an HHI value together with its
// interpretation band.
type ConcentrationResult struct {
	State      string  `json:"state"`
	HHI        float64 `json:"hhi"`
	MarketType string  `json:"market_type"`
}

// ReportResult describes a generated market report.
type ReportResult struct {
	Path        string    `json:"path"`
	GeneratedAt time.Time `json:"generated_at"`
	States      int       `json:"states"`
	Underserved int       `json:"underserved_cities"`
}

// AnalyticsService computes market metrics over the cached dataset and
// generates report files.
type AnalyticsService struct {
	data   *DatasetService
	config *config.Config
	areas  config.StateAreas
	excel  *exporter.ExcelReporter
	market *exporter.MarketExporter
	logger *slog.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(data *DatasetService, cfg *config.Config, areas config.StateAreas, logger *slog.Logger) *AnalyticsService {
	if logger == nil {
		logger = slog.Default()
	}
	if areas == nil {
		areas = config.DefaultStateAreas()
	}

	return &AnalyticsService{
		data:   data,
		config: cfg,
		areas:  areas,
		excel:  exporter.NewExcelReporter(cfg.GetReportsDir()),
		market: exporter.NewMarketExporter(cfg.GetReportsDir()),
		logger: logger,
	}
}

// Density computes branch density for one state.
func (s *AnalyticsService) Density(ctx context.Context, state string) (analytics.StateDensity, error) {
	records, err := s.data.Records(ctx)
	if err != nil {
		return analytics.StateDensity{}, err
	}

	density, err := analytics.Density(records, state, s.areas)
	if err != nil {
		return analytics.StateDensity{}, s.mapNoData(err, state)
	}
	return density, nil
}

// Concentration computes the HHI for one state and classifies the market.
func (s *AnalyticsService) Concentration(ctx context.Context, state string) (ConcentrationResult, error) {
	records, err := s.data.Records(ctx)
	if err != nil {
		return ConcentrationResult{}, err
	}

	hhi, err := analytics.Concentration(records, state)
	if err != nil {
		return ConcentrationResult{}, s.mapNoData(err, state)
	}

	return ConcentrationResult{
		State:      state,
		HHI:        hhi,
		MarketType: analytics.MarketType(hhi),
	}, nil
}

// Underserved lists (state, city) groups below the threshold. A threshold
// of zero falls back to the configured default.
func (s *AnalyticsService) Underserved(ctx context.Context, threshold int) ([]analytics.UnderservedCity, error) {
	if threshold == 0 {
		threshold = s.config.Analytics.UnderservedThreshold
	}
	if threshold < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidThreshold, threshold)
	}

	records, err := s.data.Records(ctx)
	if err != nil {
		return nil, err
	}

	cities, err := analytics.Underserved(records, threshold)
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "underserved analysis complete",
		slog.Int("threshold", threshold),
		slog.Int("groups", len(cities)))
	return cities, nil
}

// Opportunity scores one state as an expansion candidate.
func (s *AnalyticsService) Opportunity(ctx context.Context, state string) (analytics.OpportunityScore, error) {
	records, err := s.data.Records(ctx)
	if err != nil {
		return analytics.OpportunityScore{}, err
	}

	score, err := analytics.Score(records, state)
	if err != nil {
		return analytics.OpportunityScore{}, s.mapNoData(err, state)
	}
	return score, nil
}

// Rankings scores every state, best opportunities first. A non-positive
// limit returns the configured number of top entries; limit -1 returns all.
func (s *AnalyticsService) Rankings(ctx context.Context, limit int) ([]analytics.OpportunityScore, error) {
	records, err := s.data.Records(ctx)
	if err != nil {
		return nil, err
	}

	scores := analytics.Rank(records)
	if limit == 0 {
		limit = s.config.Analytics.TopOpportunities
	}
	if limit > 0 && limit < len(scores) {
		scores = scores[:limit]
	}
	return scores, nil
}

// GenerateReport writes the full market report workbook plus companion CSV
// exports into the reports directory.
func (s *AnalyticsService) GenerateReport(ctx context.Context) (ReportResult, error) {
	records, err := s.data.Records(ctx)
	if err != nil {
		return ReportResult{}, err
	}

	scores := analytics.Rank(records)
	densities := make([]analytics.StateDensity, 0, len(scores))
	for _, score := range scores {
		density, err := analytics.Density(records, score.State, s.areas)
		if err != nil {
			continue
		}
		densities = append(densities, density)
	}

	underserved, err := analytics.Underserved(records, s.config.Analytics.UnderservedThreshold)
	if err != nil {
		return ReportResult{}, err
	}

	now := time.Now()
	data := exporter.ReportData{
		GeneratedAt:   now,
		Stats:         analytics.Stats(records),
		Densities:     densities,
		Underserved:   underserved,
		Opportunities: scores,
	}

	name := fmt.Sprintf("market_report_%s.xlsx", now.Format("2006_01_02"))
	path, err := s.excel.WriteReport(name, data)
	if err != nil {
		return ReportResult{}, fmt.Errorf("failed to generate report: %w", err)
	}

	if err := s.market.ExportUnderserved(underserved, "underserved_cities.csv"); err != nil {
		return ReportResult{}, err
	}
	if err := s.market.ExportOpportunities(scores, "opportunity_rankings.csv"); err != nil {
		return ReportResult{}, err
	}

	s.logger.InfoContext(ctx, "market report generated",
		slog.String("path", path),
		slog.Int("states", len(scores)))

	return ReportResult{
		Path:        path,
		GeneratedAt: now,
		States:      len(scores),
		Underserved: len(underserved),
	}, nil
}

// FilteredExport writes the matching branch subset as a CSV file and
// returns its path.
func (s *AnalyticsService) FilteredExport(ctx context.Context, state, city, bank, filename string) (string, int, error) {
	records, err := s.data.Branches(ctx, state, city, bank)
	if err != nil {
		return "", 0, err
	}
	if filename == "" {
		filename = "branches_export.csv"
	}
	if err := s.market.ExportBranches(records, filename); err != nil {
		return "", 0, err
	}
	return filename, len(records), nil
}

// mapNoData converts the analytics empty-subset error into the service
// sentinel so transport can map it to a 404 problem response.
func (s *AnalyticsService) mapNoData(err error, state string) error {
	if errors.Is(err, analytics.ErrNoData) {
		return fmt.Errorf("%w: %q", ErrStateNoData, state)
	}
	return err
}

// Areas exposes the state-area table in use, mainly for reporting.
func (s *AnalyticsService) Areas() config.StateAreas {
	return s.areas
}
