// Package analytics provides stateless market-structure queries over a
// clean branch table: branch density per state, underserved-city
// detection, Herfindahl-Hirschman concentration, and an additive
// expansion-opportunity heuristic, plus dataset statistics and
// distributions for the overview dashboard.
//
// Every function is a pure, single-pass computation over its inputs. No
// function mutates the table it receives, so concurrent callers are safe.
// Queries against a state with no rows return ErrNoData instead of
// propagating an undefined numeric value.
//
// The opportunity-scoring weights are a deliberate, auditable heuristic.
// The thresholds and point values must stay exactly as implemented so that
// scores remain reproducible across runs.
package analytics
