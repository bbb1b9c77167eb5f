// Package handlers wires the itemized statement HTTP routes onto PocketBase.
package handlers

import (
	"errors"

	"github.com/pocketbase/pocketbase/core"

	"quantitydesk/services"
)

// errStatementNotFound marks lookups of unknown, foreign-project or logically
// deleted statements. Handlers answer it with 404.
var errStatementNotFound = errors.New("statement not found")

// apiError writes a JSON error body with the given status.
func apiError(e *core.RequestEvent, status int, message string) error {
	return e.JSON(status, map[string]string{"error": message})
}

// findStatement loads a non-deleted statement belonging to the given project.
// Logically deleted statements are invisible to every read path.
func findStatement(app core.App, projectID, statementID string) (*core.Record, error) {
	record, err := app.FindRecordById("itemized_statements", statementID)
	if err != nil {
		return nil, errStatementNotFound
	}
	if record.GetString("project") != projectID || record.GetBool("deleted") {
		return nil, errStatementNotFound
	}
	return record, nil
}

// loadStatementRows fetches a statement's rows in their stored default order.
func loadStatementRows(app core.App, statementID string) ([]services.StatementRow, error) {
	records, err := app.FindRecordsByFilter(
		"statement_rows",
		"statement = {:statementId}",
		"sort_order",
		0, 0,
		map[string]any{"statementId": statementID},
	)
	if err != nil {
		return nil, err
	}

	rows := make([]services.StatementRow, len(records))
	for i, rec := range records {
		rows[i] = services.StatementRow{
			CustomCategory: rec.GetString("custom_category"),
			WorkType:       rec.GetString("work_type"),
			Name:           rec.GetString("name"),
			Specification:  rec.GetString("specification"),
			Unit:           rec.GetString("unit"),
			QuantityCents:  int64(rec.GetFloat("quantity_cents")),
		}
	}
	return rows, nil
}

// statementJSON renders a statement header for API responses. The version
// value is the token delete requests must echo back.
func statementJSON(record *core.Record) map[string]any {
	return map[string]any{
		"id":              record.Id,
		"name":            record.GetString("name"),
		"sourceTableName": record.GetString("source_table_name"),
		"itemCount":       record.GetInt("item_count"),
		"version":         record.GetInt("version"),
		"created":         record.GetDateTime("created").String(),
		"updated":         record.GetDateTime("updated").String(),
	}
}

// rowJSON renders one statement row. Quantities leave the system as fixed
// 2-decimal strings; the int64 hundredths stay internal.
func rowJSON(r services.StatementRow) map[string]any {
	return map[string]any{
		"customCategory": r.CustomCategory,
		"workType":       r.WorkType,
		"name":           r.Name,
		"specification":  r.Specification,
		"quantity":       services.FormatQuantity(r.QuantityCents),
		"unit":           r.Unit,
	}
}

func rowsJSON(rows []services.StatementRow) []map[string]any {
	out := make([]map[string]any, len(rows))
	for i, r := range rows {
		out[i] = rowJSON(r)
	}
	return out
}
