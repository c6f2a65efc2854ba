// Package services contains the business logic layer between the HTTP
// transport and the dataset/analytics packages.
//
// DatasetService caches the normalized branch table and answers data
// queries; AnalyticsService computes market metrics over that cache and
// generates report files; HealthService evaluates process and dependency
// health for the API probes.
package services
