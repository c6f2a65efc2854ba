// Package exporter provides CSV and Excel export functionality for branch
// data and market analytics.
//
// This package contains three main components:
//
// CSVWriter: Core CSV writing functionality with support for headers,
// streaming, and UTF-8 BOM for Excel compatibility.
//
// MarketExporter: Writes branch subsets and per-state metrics (density,
// underserved cities, opportunity scores) as individual CSV files.
//
// ExcelReporter: Builds a multi-sheet market report workbook combining
// the summary statistics and all per-state metrics.
//
// Example usage:
//
//	market := exporter.NewMarketExporter(cfg.GetReportsDir())
//	err := market.ExportUnderserved(cities, "underserved.csv")
//
//	excel := exporter.NewExcelReporter(cfg.GetReportsDir())
//	path, err := excel.WriteReport("market_report.xlsx", data)
package exporter
