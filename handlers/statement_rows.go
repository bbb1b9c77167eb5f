package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quantitydesk/services"
)

// HandleStatementRows returns a handler that serves one page of a statement's
// rows through the filter -> sort -> paginate pipeline. The same filter and
// sort parameters drive the export routes, so what a caller sees on a page is
// exactly what an export of that query contains.
func HandleStatementRows(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		statementID := e.Request.PathValue("id")

		statement, err := findStatement(app, projectID, statementID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Statement not found")
		}

		query := e.Request.URL.Query()
		state, err := parseQueryState(query)
		if err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}
		page, err := parsePage(query)
		if err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		rows, err := loadStatementRows(app, statement.Id)
		if err != nil {
			log.Printf("statement_rows: could not load rows for %s: %v", statement.Id, err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		result := services.RunQuery(rows, state, page, services.RowPageSize)

		return e.JSON(http.StatusOK, map[string]any{
			"rows":        rowsJSON(result.PageRows),
			"totalCount":  result.TotalCount,
			"totalPages":  result.TotalPages,
			"currentPage": result.CurrentPage,
		})
	}
}
