// Package dataset loads and normalizes bank branch tables.
//
// The package is the single entry point for raw data: it reads
// comma-delimited branch files from the data directory, converges
// heterogeneous source schemas onto one canonical schema, and applies the
// cleaning rules that every downstream analytic depends on:
//
//	1. Column standardization (trim, underscores to spaces, title case,
//	   fixed rename table).
//	2. Coordinate coercion (non-numeric latitude/longitude become null).
//	3. Geofencing (rows outside the India bounding box are dropped).
//	4. Pincode derivation (first standalone 6-digit sequence in Address).
//	5. Text normalization for State and City, including coercion of the
//	   literal string "Nan" back to a true null.
//
// Normalization is a pure function of its input table and is idempotent:
// normalizing an already-clean table yields the identical table. Malformed
// rows are skipped during load, never surfaced as errors; a missing source
// file is the only fatal condition (ErrSourceNotFound).
package dataset
