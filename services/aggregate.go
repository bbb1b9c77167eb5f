package services

import (
	"sort"
	"strings"
)

// Quantities are handled as int64 hundredths throughout ("cents"), so sums
// stay exact. Conversion to decimal strings happens only at the boundary
// (see format.go).
const (
	// MinQuantityCents and MaxQuantityCents bound every running group sum:
	// -999999.99 .. 9999999.99.
	MinQuantityCents int64 = -99_999_999
	MaxQuantityCents int64 = 999_999_999

	// MaxStatementRows caps the number of rows a single statement may hold.
	MaxStatementRows = 2000
)

// QuantityItem is one measured line item read from a quantity table.
type QuantityItem struct {
	CustomCategory string
	WorkType       string
	Name           string
	Specification  string
	Unit           string
	QuantityCents  int64
}

// GroupKey is the composite key items are merged on. All five fields are
// normalized (see normalizeKeyField) before comparison.
type GroupKey struct {
	CustomCategory string
	WorkType       string
	Name           string
	Specification  string
	Unit           string
}

// StatementRow is one aggregated row of an itemized statement. Rows are
// immutable once a statement is created.
type StatementRow struct {
	CustomCategory string
	WorkType       string
	Name           string
	Specification  string
	Unit           string
	QuantityCents  int64
}

// Key returns the row's group key.
func (r StatementRow) Key() GroupKey {
	return GroupKey{
		CustomCategory: r.CustomCategory,
		WorkType:       r.WorkType,
		Name:           r.Name,
		Specification:  r.Specification,
		Unit:           r.Unit,
	}
}

// normalizeKeyField maps absent and blank values to one canonical empty
// string so that a missing work type and an empty work type land in the same
// group.
func normalizeKeyField(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

// keyOf builds the normalized group key for an item.
func keyOf(item QuantityItem) GroupKey {
	return GroupKey{
		CustomCategory: normalizeKeyField(item.CustomCategory),
		WorkType:       normalizeKeyField(item.WorkType),
		Name:           normalizeKeyField(item.Name),
		Specification:  normalizeKeyField(item.Specification),
		Unit:           normalizeKeyField(item.Unit),
	}
}

// Aggregate merges quantity items by group key and sums their quantities.
//
// The running sum of every group is checked against
// [MinQuantityCents, MaxQuantityCents] after each accumulation; the first
// violation aborts the whole aggregation with ErrQuantityOverflow and no rows
// are returned. An empty input fails with ErrNoQuantityItems, and more than
// MaxStatementRows distinct keys fail with ErrTooManyRows.
//
// Rows come back in the default statement order: ascending bytewise on
// (custom category, work type, name, specification, unit), which places the
// normalized empty value first. Every later query or export that has no
// explicit sort falls back to this order.
func Aggregate(items []QuantityItem) ([]StatementRow, error) {
	if len(items) == 0 {
		return nil, ErrNoQuantityItems
	}

	sums := make(map[GroupKey]int64)
	for _, item := range items {
		key := keyOf(item)
		sum := sums[key] + item.QuantityCents
		if sum < MinQuantityCents || sum > MaxQuantityCents {
			return nil, ErrQuantityOverflow
		}
		sums[key] = sum
	}

	if len(sums) > MaxStatementRows {
		return nil, ErrTooManyRows
	}

	rows := make([]StatementRow, 0, len(sums))
	for key, sum := range sums {
		rows = append(rows, StatementRow{
			CustomCategory: key.CustomCategory,
			WorkType:       key.WorkType,
			Name:           key.Name,
			Specification:  key.Specification,
			Unit:           key.Unit,
			QuantityCents:  sum,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return defaultRowLess(rows[i], rows[j])
	})

	return rows, nil
}

// defaultRowLess orders rows bytewise on the key fields. Unit is the final
// tiebreaker so rows that differ only in unit have a deterministic order.
func defaultRowLess(a, b StatementRow) bool {
	if a.CustomCategory != b.CustomCategory {
		return a.CustomCategory < b.CustomCategory
	}
	if a.WorkType != b.WorkType {
		return a.WorkType < b.WorkType
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	if a.Specification != b.Specification {
		return a.Specification < b.Specification
	}
	return a.Unit < b.Unit
}
