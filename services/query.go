package services

import (
	"sort"
	"strings"
)

// Page sizes are fixed: statement rows paginate at 50, lists of statements
// themselves at 20.
const (
	RowPageSize       = 50
	StatementPageSize = 20
)

// Column identifies a statement row column for filtering and sorting.
type Column string

const (
	ColCategory      Column = "custom_category"
	ColWorkType      Column = "work_type"
	ColName          Column = "name"
	ColSpecification Column = "specification"
	ColUnit          Column = "unit"
	ColQuantity      Column = "quantity"
)

// FilterColumns lists the textual columns a substring filter may target.
var FilterColumns = []Column{ColCategory, ColWorkType, ColName, ColSpecification, ColUnit}

// SortColumns lists the columns a sort may target.
var SortColumns = []Column{ColCategory, ColWorkType, ColName, ColSpecification, ColUnit, ColQuantity}

// SortDirection is the direction of the single active sort column.
type SortDirection string

const (
	SortNone SortDirection = ""
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// QueryState is the immutable filter+sort state a query or export runs under.
// It is threaded explicitly through every pipeline call; the pipeline itself
// holds no session state.
type QueryState struct {
	// Filters holds per-column substring filters. Matching is
	// case-insensitive and filters on different columns combine with AND.
	// Empty values impose no constraint.
	Filters map[Column]string

	// SortColumn and SortDir describe the at-most-one active sort. With
	// SortNone the default aggregation order is kept.
	SortColumn Column
	SortDir    SortDirection
}

// QueryResult is one page of a filtered, sorted row set plus its pagination
// metadata. TotalCount and TotalPages describe the filtered set, not the
// full statement.
type QueryResult struct {
	PageRows    []StatementRow
	TotalCount  int
	TotalPages  int
	CurrentPage int
}

// NextSortState returns the sort state after a click on the given column:
// an inactive column becomes the ascending sort, a second click on the
// active column flips it to descending, and a third click on it clears the
// sort back to the default order.
func NextSortState(state QueryState, clicked Column) QueryState {
	next := QueryState{Filters: state.Filters}
	switch {
	case state.SortColumn != clicked:
		next.SortColumn = clicked
		next.SortDir = SortAsc
	case state.SortDir == SortAsc:
		next.SortColumn = clicked
		next.SortDir = SortDesc
	default:
		next.SortColumn = ""
		next.SortDir = SortNone
	}
	return next
}

// FilterAndSort applies the filter and sort stages over rows, which must be
// in default order. Exports consume this exact output, so a visible page and
// its export always agree byte for byte.
func FilterAndSort(rows []StatementRow, state QueryState) []StatementRow {
	matched := make([]StatementRow, 0, len(rows))
	for _, row := range rows {
		if matchesFilters(row, state.Filters) {
			matched = append(matched, row)
		}
	}

	if state.SortColumn == "" || state.SortDir == SortNone {
		return matched
	}

	// Stable sort keeps the default-order relative position of equal keys.
	sort.SliceStable(matched, func(i, j int) bool {
		less, equal := compareColumn(matched[i], matched[j], state.SortColumn)
		if equal {
			return false
		}
		if state.SortDir == SortDesc {
			return !less
		}
		return less
	})

	return matched
}

// RunQuery executes the full filter -> sort -> paginate pipeline. Pages are
// 1-indexed; a page beyond the end yields an empty page with correct
// metadata rather than an error.
func RunQuery(rows []StatementRow, state QueryState, page, pageSize int) QueryResult {
	matched := FilterAndSort(rows, state)

	if pageSize <= 0 {
		pageSize = RowPageSize
	}
	if page < 1 {
		page = 1
	}

	totalCount := len(matched)
	totalPages := (totalCount + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	end := start + pageSize
	var pageRows []StatementRow
	if start < totalCount {
		if end > totalCount {
			end = totalCount
		}
		pageRows = matched[start:end]
	}

	return QueryResult{
		PageRows:    pageRows,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		CurrentPage: page,
	}
}

func matchesFilters(row StatementRow, filters map[Column]string) bool {
	for col, needle := range filters {
		if needle == "" {
			continue
		}
		val := columnText(row, col)
		if !strings.Contains(strings.ToLower(val), strings.ToLower(needle)) {
			return false
		}
	}
	return true
}

func columnText(row StatementRow, col Column) string {
	switch col {
	case ColCategory:
		return row.CustomCategory
	case ColWorkType:
		return row.WorkType
	case ColName:
		return row.Name
	case ColSpecification:
		return row.Specification
	case ColUnit:
		return row.Unit
	}
	return ""
}

// compareColumn reports whether a sorts before b on col, and whether the two
// values are equal. Quantity compares numerically, text columns bytewise.
func compareColumn(a, b StatementRow, col Column) (less, equal bool) {
	if col == ColQuantity {
		return a.QuantityCents < b.QuantityCents, a.QuantityCents == b.QuantityCents
	}
	av, bv := columnText(a, col), columnText(b, col)
	return av < bv, av == bv
}
