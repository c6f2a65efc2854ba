// Package config provides centralized configuration management for the
// branch analytics service. It handles loading configuration from multiple
// sources, validation, and provides a type-safe API for accessing
// configuration values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (configs/config.yaml)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern BRANCHPULSE_* for namespacing:
//
//	BRANCHPULSE_SERVER_PORT=8080
//	BRANCHPULSE_PATHS_DATA_DIR=data/sample
//	BRANCHPULSE_LOGGING_LEVEL=info
//	BRANCHPULSE_ANALYTICS_UNDERSERVED_THRESHOLD=2
//
// # State Areas
//
// The reference table mapping state names to areas in square kilometres is
// injectable: a YAML file pointed at by BRANCHPULSE_PATHS_AREAS_FILE is
// merged over the built-in defaults, so alternate region sets can be
// substituted without code changes. Unknown states resolve to
// DefaultStateArea.
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	areas, err := config.LoadStateAreas(cfg.Paths.AreasFile)
package config
