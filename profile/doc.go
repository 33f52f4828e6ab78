// Package profile loads a voyage profile — vessel geometry, hydrostatic
// table, tank catalog, gate file and stage list — from a single YAML
// document and materializes the validated engine configuration.
//
// The profile is the only ingestion path: every signed longitudinal
// position in the file (aft positive, forward negative) is converted
// through coord.FromMidship here, and every domain validation (table
// monotonicity, tank bounds, gate definitions) runs before an engine is
// ever constructed. A profile that loads is a profile that runs.
package profile
