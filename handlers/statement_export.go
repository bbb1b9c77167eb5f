package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quantitydesk/services"
)

// buildStatementExportData assembles the export payload for a statement under
// the given query state: the full filtered and sorted row set, never a page.
func buildStatementExportData(app core.App, statement *core.Record, state services.QueryState) (services.ExportData, error) {
	rows, err := loadStatementRows(app, statement.Id)
	if err != nil {
		return services.ExportData{}, fmt.Errorf("load rows: %w", err)
	}

	createdDate := ""
	if dt := statement.GetDateTime("created"); !dt.IsZero() {
		createdDate = dt.Time().Format("2006-01-02")
	}

	return services.ExportData{
		StatementName:   statement.GetString("name"),
		SourceTableName: statement.GetString("source_table_name"),
		CreatedDate:     createdDate,
		Rows:            services.FilterAndSort(rows, state),
	}, nil
}

// HandleStatementExportExcel returns a handler that downloads a statement as
// a spreadsheet. The file is generated completely before any byte is written,
// so a failed export produces an error response instead of a partial file.
func HandleStatementExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		statement, state, ok := exportRequest(app, e)
		if !ok {
			return nil
		}

		data, err := buildStatementExportData(app, statement, state)
		if err != nil {
			log.Printf("statement_export: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate export")
		}

		xlsxBytes, err := services.GenerateStatementExcel(data)
		if err != nil {
			log.Printf("statement_export: failed to generate excel: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := services.ExportFilename(data.StatementName, "xlsx", time.Now())
		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleStatementExportClipboard returns a handler that serves the statement
// as tab-separated UTF-8 text for the caller's clipboard.
func HandleStatementExportClipboard(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		statement, state, ok := exportRequest(app, e)
		if !ok {
			return nil
		}

		data, err := buildStatementExportData(app, statement, state)
		if err != nil {
			log.Printf("statement_export: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate export")
		}

		text, err := services.GenerateClipboardText(data)
		if err != nil {
			log.Printf("statement_export: failed to generate clipboard text: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate clipboard text")
		}

		e.Response.Header().Set("Content-Type", "text/plain; charset=utf-8")
		return e.String(http.StatusOK, text)
	}
}

// HandleStatementExportPDF returns a handler that downloads a statement as a
// PDF document.
func HandleStatementExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		statement, state, ok := exportRequest(app, e)
		if !ok {
			return nil
		}

		data, err := buildStatementExportData(app, statement, state)
		if err != nil {
			log.Printf("statement_export: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate export")
		}

		pdfBytes, err := services.GenerateStatementPDF(data)
		if err != nil {
			log.Printf("statement_export: failed to generate pdf: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := services.ExportFilename(data.StatementName, "pdf", time.Now())
		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// exportRequest resolves the statement and query state shared by all export
// routes. When ok is false the error response has already been written and
// the handler must return nil.
func exportRequest(app *pocketbase.PocketBase, e *core.RequestEvent) (statement *core.Record, state services.QueryState, ok bool) {
	projectID := e.Request.PathValue("projectId")
	statementID := e.Request.PathValue("id")

	statement, err := findStatement(app, projectID, statementID)
	if err != nil {
		apiError(e, http.StatusNotFound, "Statement not found")
		return nil, services.QueryState{}, false
	}

	state, err = parseQueryState(e.Request.URL.Query())
	if err != nil {
		apiError(e, http.StatusBadRequest, err.Error())
		return nil, services.QueryState{}, false
	}

	return statement, state, true
}
