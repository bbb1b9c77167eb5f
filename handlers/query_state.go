package handlers

import (
	"fmt"
	"net/url"
	"strconv"

	"quantitydesk/services"
)

// filterParams maps query string parameters onto filterable columns.
var filterParams = map[string]services.Column{
	"cat":  services.ColCategory,
	"work": services.ColWorkType,
	"name": services.ColName,
	"spec": services.ColSpecification,
	"unit": services.ColUnit,
}

// parseQueryState builds the explicit query state for a rows or export
// request from URL parameters. Unknown sort columns and directions are
// rejected so malformed requests never reach the pipeline.
func parseQueryState(q url.Values) (services.QueryState, error) {
	state := services.QueryState{Filters: make(map[services.Column]string)}

	for param, col := range filterParams {
		if v := q.Get(param); v != "" {
			state.Filters[col] = v
		}
	}

	sortParam := q.Get("sort")
	if sortParam == "" {
		return state, nil
	}

	valid := false
	for _, col := range services.SortColumns {
		if string(col) == sortParam {
			valid = true
			break
		}
	}
	if !valid {
		return services.QueryState{}, fmt.Errorf("unknown sort column %q", sortParam)
	}
	state.SortColumn = services.Column(sortParam)

	switch q.Get("dir") {
	case "", "asc":
		state.SortDir = services.SortAsc
	case "desc":
		state.SortDir = services.SortDesc
	default:
		return services.QueryState{}, fmt.Errorf("invalid sort direction %q", q.Get("dir"))
	}

	return state, nil
}

// parsePage reads the 1-indexed page parameter, defaulting to 1.
func parsePage(q url.Values) (int, error) {
	raw := q.Get("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, fmt.Errorf("invalid page %q", raw)
	}
	return page, nil
}
