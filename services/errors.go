// Package services provides the aggregation, query and export logic for
// itemized statements generated from quantity tables.
package services

import "errors"

// Sentinel errors for the statement lifecycle. Handlers translate these into
// HTTP responses with errors.Is.
var (
	// ErrNoQuantityItems is returned when the source quantity table contains
	// zero items, so no statement row could ever be produced.
	ErrNoQuantityItems = errors.New("quantity table has no items")

	// ErrQuantityOverflow is returned when a running group sum leaves the
	// representable range. The whole aggregation is discarded.
	ErrQuantityOverflow = errors.New("aggregated quantity out of range")

	// ErrTooManyRows is returned when aggregation would produce more rows
	// than a single statement may hold.
	ErrTooManyRows = errors.New("too many statement rows")

	// ErrDuplicateName is returned when a statement name is already taken
	// within the same project.
	ErrDuplicateName = errors.New("statement name already exists in project")

	// ErrVersionConflict is returned when a delete request carries a stale
	// version token. The caller must reload and retry.
	ErrVersionConflict = errors.New("statement version conflict")

	// ErrExportFailed wraps any failure while rendering an export payload.
	// Nothing partial is ever returned alongside it.
	ErrExportFailed = errors.New("export generation failed")
)
