package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quantitydesk/services"
)

// HandleStatementList returns a handler that lists a project's non-deleted
// statements, newest first, paginated at 20 per page.
func HandleStatementList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		page, err := parsePage(e.Request.URL.Query())
		if err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		records, err := app.FindRecordsByFilter(
			"itemized_statements",
			"project = {:projectId} && deleted = false",
			"-created",
			0, 0,
			map[string]any{"projectId": projectID},
		)
		if err != nil {
			log.Printf("statement_list: could not query statements: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		totalCount := len(records)
		pageSize := services.StatementPageSize
		totalPages := (totalCount + pageSize - 1) / pageSize

		start := (page - 1) * pageSize
		end := start + pageSize
		var pageRecords []*core.Record
		if start < totalCount {
			if end > totalCount {
				end = totalCount
			}
			pageRecords = records[start:end]
		}

		items := make([]map[string]any, len(pageRecords))
		for i, rec := range pageRecords {
			items[i] = statementJSON(rec)
		}

		return e.JSON(http.StatusOK, map[string]any{
			"statements":  items,
			"totalCount":  totalCount,
			"totalPages":  totalPages,
			"currentPage": page,
		})
	}
}

// HandleStatementView returns a handler that serves a single statement header.
func HandleStatementView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		statementID := e.Request.PathValue("id")

		statement, err := findStatement(app, projectID, statementID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Statement not found")
		}

		return e.JSON(http.StatusOK, statementJSON(statement))
	}
}
