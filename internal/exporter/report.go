package exporter

import (
	"fmt"

	"branchpulse/internal/analytics"
	"branchpulse/internal/dataset"
)

// MarketExporter generates CSV exports for branch data and market metrics
type MarketExporter struct {
	csvWriter *CSVWriter
}

// NewMarketExporter creates a new market report exporter
func NewMarketExporter(reportsDir string) *MarketExporter {
	return &MarketExporter{
		csvWriter: NewCSVWriter(reportsDir),
	}
}

// branchHeaders is the column order for branch CSV exports.
var branchHeaders = []string{
	"Bank", "Branch", "Type", "Address", "City", "State",
	"Pincode", "Latitude", "Longitude",
}

// ExportBranches writes a branch subset to a CSV file
func (m *MarketExporter) ExportBranches(records []dataset.Record, filePath string) error {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Bank,
			rec.Branch,
			rec.Type,
			rec.Address,
			rec.City,
			rec.State,
			rec.Pincode,
			formatCoord(rec.Latitude),
			formatCoord(rec.Longitude),
		})
	}

	if err := m.csvWriter.WriteSimpleCSV(filePath, branchHeaders, rows); err != nil {
		return fmt.Errorf("failed to export branches: %w", err)
	}
	return nil
}

// ExportDensity writes per-state density metrics to a CSV file
func (m *MarketExporter) ExportDensity(densities []analytics.StateDensity, filePath string) error {
	headers := []string{"State", "Branch Count", "Density per 1000 sq km"}

	rows := make([][]string, 0, len(densities))
	for _, d := range densities {
		rows = append(rows, []string{
			d.State,
			formatInt(d.BranchCount),
			formatFloat(d.DensityPer1000SqKm),
		})
	}

	if err := m.csvWriter.WriteSimpleCSV(filePath, headers, rows); err != nil {
		return fmt.Errorf("failed to export density: %w", err)
	}
	return nil
}

// ExportUnderserved writes underserved city groups to a CSV file
func (m *MarketExporter) ExportUnderserved(cities []analytics.UnderservedCity, filePath string) error {
	headers := []string{"State", "City", "Branch Count"}

	rows := make([][]string, 0, len(cities))
	for _, c := range cities {
		rows = append(rows, []string{
			c.State,
			c.City,
			formatInt(c.BranchCount),
		})
	}

	if err := m.csvWriter.WriteSimpleCSV(filePath, headers, rows); err != nil {
		return fmt.Errorf("failed to export underserved cities: %w", err)
	}
	return nil
}

// ExportOpportunities writes ranked opportunity scores to a CSV file
func (m *MarketExporter) ExportOpportunities(scores []analytics.OpportunityScore, filePath string) error {
	headers := []string{
		"State", "Score", "Current Branches", "Banks Present",
		"Cities Covered", "HHI", "Market Type",
	}

	rows := make([][]string, 0, len(scores))
	for _, s := range scores {
		rows = append(rows, []string{
			s.State,
			formatInt(s.Score),
			formatInt(s.CurrentBranches),
			formatInt(s.BanksPresent),
			formatInt(s.CitiesCovered),
			formatFloat(s.HHI),
			analytics.MarketType(s.HHI),
		})
	}

	if err := m.csvWriter.WriteSimpleCSV(filePath, headers, rows); err != nil {
		return fmt.Errorf("failed to export opportunities: %w", err)
	}
	return nil
}
