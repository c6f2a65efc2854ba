package http

import (
	"context"

	"branchpulse/internal/analytics"
	"branchpulse/internal/dataset"
	"branchpulse/internal/services"
)

// DataServiceInterface defines the interface for dataset operations
type DataServiceInterface interface {
	Records(ctx context.Context) ([]dataset.Record, error)
	Branches(ctx context.Context, state, city, bank string) ([]dataset.Record, error)
	BankBranches(ctx context.Context, bank string) ([]dataset.Record, error)
	Banks(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) (analytics.Statistics, error)
	StateDistribution(ctx context.Context) ([]analytics.DistributionEntry, error)
	BankDistribution(ctx context.Context) ([]analytics.DistributionEntry, error)
	Reload(ctx context.Context) error
}

// AnalyticsServiceInterface defines the interface for market analytics
type AnalyticsServiceInterface interface {
	Density(ctx context.Context, state string) (analytics.StateDensity, error)
	Concentration(ctx context.Context, state string) (services.ConcentrationResult, error)
	Underserved(ctx context.Context, threshold int) ([]analytics.UnderservedCity, error)
	Opportunity(ctx context.Context, state string) (analytics.OpportunityScore, error)
	Rankings(ctx context.Context, limit int) ([]analytics.OpportunityScore, error)
	GenerateReport(ctx context.Context) (services.ReportResult, error)
	FilteredExport(ctx context.Context, state, city, bank, filename string) (string, int, error)
}

// HealthServiceInterface defines the interface for health probes
type HealthServiceInterface interface {
	Check(ctx context.Context) services.HealthStatus
	Liveness() services.HealthStatus
	Version() services.VersionInfo
}
