package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"branchpulse/internal/analytics"
)

// ReportData aggregates the analytics outputs that go into a full market
// report workbook.
type ReportData struct {
	GeneratedAt   time.Time
	Stats         analytics.Statistics
	Densities     []analytics.StateDensity
	Underserved   []analytics.UnderservedCity
	Opportunities []analytics.OpportunityScore
}

// ExcelReporter writes multi-sheet market report workbooks
type ExcelReporter struct {
	reportsDir string
}

// NewExcelReporter creates a new Excel report writer
func NewExcelReporter(reportsDir string) *ExcelReporter {
	return &ExcelReporter{reportsDir: reportsDir}
}

const (
	sheetSummary       = "Summary"
	sheetDensity       = "State Density"
	sheetUnderserved   = "Underserved Cities"
	sheetConcentration = "Concentration"
	sheetOpportunities = "Opportunities"
)

// WriteReport builds the workbook and saves it under the reports directory
// (or at filePath directly when absolute). Returns the resolved path.
func (e *ExcelReporter) WriteReport(filePath string, data ReportData) (string, error) {
	fullPath := filePath
	if !filepath.IsAbs(fullPath) {
		fullPath = filepath.Join(e.reportsDir, fullPath)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetSummary)
	e.writeSummary(f, data)

	if _, err := f.NewSheet(sheetDensity); err != nil {
		return "", fmt.Errorf("failed to create sheet %s: %w", sheetDensity, err)
	}
	e.writeDensity(f, data.Densities)

	if _, err := f.NewSheet(sheetUnderserved); err != nil {
		return "", fmt.Errorf("failed to create sheet %s: %w", sheetUnderserved, err)
	}
	e.writeUnderserved(f, data.Underserved)

	if _, err := f.NewSheet(sheetConcentration); err != nil {
		return "", fmt.Errorf("failed to create sheet %s: %w", sheetConcentration, err)
	}
	e.writeConcentration(f, data.Opportunities)

	if _, err := f.NewSheet(sheetOpportunities); err != nil {
		return "", fmt.Errorf("failed to create sheet %s: %w", sheetOpportunities, err)
	}
	e.writeOpportunities(f, data.Opportunities)

	if err := f.SaveAs(fullPath); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	slog.Info("Wrote market report workbook",
		slog.String("path", fullPath),
		slog.Int("states", len(data.Densities)),
		slog.Int("underserved_cities", len(data.Underserved)))

	return fullPath, nil
}

func (e *ExcelReporter) writeSummary(f *excelize.File, data ReportData) {
	rows := [][]interface{}{
		{"Generated At", data.GeneratedAt.Format(time.RFC3339)},
		{"Total Branches", data.Stats.TotalBranches},
		{"Total Banks", data.Stats.TotalBanks},
		{"States Covered", data.Stats.TotalStates},
		{"Cities Covered", data.Stats.TotalCities},
		{"Branches With Coordinates", data.Stats.WithCoordinates},
	}
	for i, row := range rows {
		for j, v := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			f.SetCellValue(sheetSummary, cell, v)
		}
	}
	f.SetColWidth(sheetSummary, "A", "A", 28)
	f.SetColWidth(sheetSummary, "B", "B", 24)
}

func (e *ExcelReporter) writeDensity(f *excelize.File, densities []analytics.StateDensity) {
	writeHeader(f, sheetDensity, []string{"State", "Branch Count", "Density per 1000 sq km"})
	for i, d := range densities {
		row := i + 2
		f.SetCellValue(sheetDensity, fmt.Sprintf("A%d", row), d.State)
		f.SetCellValue(sheetDensity, fmt.Sprintf("B%d", row), d.BranchCount)
		f.SetCellValue(sheetDensity, fmt.Sprintf("C%d", row), d.DensityPer1000SqKm)
	}
}

func (e *ExcelReporter) writeUnderserved(f *excelize.File, cities []analytics.UnderservedCity) {
	writeHeader(f, sheetUnderserved, []string{"State", "City", "Branch Count"})
	for i, c := range cities {
		row := i + 2
		f.SetCellValue(sheetUnderserved, fmt.Sprintf("A%d", row), c.State)
		f.SetCellValue(sheetUnderserved, fmt.Sprintf("B%d", row), c.City)
		f.SetCellValue(sheetUnderserved, fmt.Sprintf("C%d", row), c.BranchCount)
	}
}

func (e *ExcelReporter) writeConcentration(f *excelize.File, scores []analytics.OpportunityScore) {
	writeHeader(f, sheetConcentration, []string{"State", "HHI", "Market Type"})
	for i, s := range scores {
		row := i + 2
		f.SetCellValue(sheetConcentration, fmt.Sprintf("A%d", row), s.State)
		f.SetCellValue(sheetConcentration, fmt.Sprintf("B%d", row), s.HHI)
		f.SetCellValue(sheetConcentration, fmt.Sprintf("C%d", row), analytics.MarketType(s.HHI))
	}
}

func (e *ExcelReporter) writeOpportunities(f *excelize.File, scores []analytics.OpportunityScore) {
	writeHeader(f, sheetOpportunities, []string{
		"State", "Score", "Current Branches", "Banks Present",
		"Cities Covered", "HHI", "Market Type",
	})
	for i, s := range scores {
		row := i + 2
		f.SetCellValue(sheetOpportunities, fmt.Sprintf("A%d", row), s.State)
		f.SetCellValue(sheetOpportunities, fmt.Sprintf("B%d", row), s.Score)
		f.SetCellValue(sheetOpportunities, fmt.Sprintf("C%d", row), s.CurrentBranches)
		f.SetCellValue(sheetOpportunities, fmt.Sprintf("D%d", row), s.BanksPresent)
		f.SetCellValue(sheetOpportunities, fmt.Sprintf("E%d", row), s.CitiesCovered)
		f.SetCellValue(sheetOpportunities, fmt.Sprintf("F%d", row), s.HHI)
		f.SetCellValue(sheetOpportunities, fmt.Sprintf("G%d", row), analytics.MarketType(s.HHI))
	}
}

func writeHeader(f *excelize.File, sheet string, headers []string) {
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
		f.SetColWidth(sheet, string(rune('A'+i)), string(rune('A'+i)), 22)
	}
}
