package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quantitydesk/services"
)

// createStatementRequest is the strict shape of a create payload.
type createStatementRequest struct {
	Name            string `json:"name"`
	QuantityTableID string `json:"quantityTableId"`
}

// HandleStatementCreate returns a handler that generates an itemized
// statement from a quantity table.
//
// Items are read once, aggregated in memory, and the header plus every row
// are committed in a single transaction: afterwards either the whole
// statement is visible or none of it. The saved rows are a detached copy, so
// later edits to the quantity table never change the statement.
func HandleStatementCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		var req createStatementRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("statement_create: could not parse body: %v", err)
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		name := strings.TrimSpace(req.Name)
		if name == "" || len(name) > 200 {
			return apiError(e, http.StatusBadRequest, "Statement name must be 1-200 characters")
		}
		if req.QuantityTableID == "" {
			return apiError(e, http.StatusBadRequest, "Missing quantity table ID")
		}

		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		table, err := app.FindRecordById("quantity_tables", req.QuantityTableID)
		if err != nil || table.GetString("project") != projectID {
			return apiError(e, http.StatusNotFound, "Quantity table not found")
		}

		items, err := loadQuantityItems(app, table.Id)
		if err != nil {
			log.Printf("statement_create: could not load items for table %s: %v", table.Id, err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		rows, err := services.Aggregate(items)
		switch {
		case errors.Is(err, services.ErrNoQuantityItems):
			return apiError(e, http.StatusUnprocessableEntity, "Quantity table has no items")
		case errors.Is(err, services.ErrQuantityOverflow):
			return apiError(e, http.StatusUnprocessableEntity, "Aggregated quantity is out of range")
		case errors.Is(err, services.ErrTooManyRows):
			return apiError(e, http.StatusUnprocessableEntity,
				fmt.Sprintf("Statement would exceed %d rows", services.MaxStatementRows))
		case err != nil:
			log.Printf("statement_create: aggregation failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		var statement *core.Record
		txErr := app.RunInTransaction(func(txApp core.App) error {
			// Name uniqueness is checked inside the transaction so two
			// concurrent creates cannot both pass.
			existing, err := txApp.FindRecordsByFilter(
				"itemized_statements",
				"project = {:projectId} && name = {:name} && deleted = false",
				"", 1, 0,
				map[string]any{"projectId": projectID, "name": name},
			)
			if err != nil {
				return fmt.Errorf("check duplicate name: %w", err)
			}
			if len(existing) > 0 {
				return services.ErrDuplicateName
			}

			statementsCol, err := txApp.FindCollectionByNameOrId("itemized_statements")
			if err != nil {
				return fmt.Errorf("find itemized_statements collection: %w", err)
			}

			statement = core.NewRecord(statementsCol)
			statement.Set("project", projectID)
			statement.Set("name", name)
			statement.Set("source_table", table.Id)
			statement.Set("source_table_name", table.GetString("name"))
			statement.Set("item_count", len(rows))
			statement.Set("version", 1)
			statement.Set("deleted", false)
			if err := txApp.Save(statement); err != nil {
				return fmt.Errorf("save statement: %w", err)
			}

			rowsCol, err := txApp.FindCollectionByNameOrId("statement_rows")
			if err != nil {
				return fmt.Errorf("find statement_rows collection: %w", err)
			}

			for i, r := range rows {
				row := core.NewRecord(rowsCol)
				row.Set("statement", statement.Id)
				row.Set("sort_order", i+1)
				row.Set("custom_category", r.CustomCategory)
				row.Set("work_type", r.WorkType)
				row.Set("name", r.Name)
				row.Set("specification", r.Specification)
				row.Set("unit", r.Unit)
				row.Set("quantity_cents", r.QuantityCents)
				if err := txApp.Save(row); err != nil {
					return fmt.Errorf("save row %d: %w", i+1, err)
				}
			}

			return nil
		})

		if errors.Is(txErr, services.ErrDuplicateName) {
			return apiError(e, http.StatusConflict, "A statement with this name already exists in the project")
		}
		if txErr != nil {
			log.Printf("statement_create: transaction failed: %v", txErr)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		firstPage := services.RunQuery(rows, services.QueryState{}, 1, services.RowPageSize)

		return e.JSON(http.StatusCreated, map[string]any{
			"statement":   statementJSON(statement),
			"rows":        rowsJSON(firstPage.PageRows),
			"totalCount":  firstPage.TotalCount,
			"totalPages":  firstPage.TotalPages,
			"currentPage": firstPage.CurrentPage,
		})
	}
}

// loadQuantityItems reads every item of a quantity table in group order then
// item order, which fixes the accumulation sequence the overflow check runs
// over.
func loadQuantityItems(app core.App, tableID string) ([]services.QuantityItem, error) {
	groups, err := app.FindRecordsByFilter(
		"quantity_groups",
		"quantity_table = {:tableId}",
		"sort_order",
		0, 0,
		map[string]any{"tableId": tableID},
	)
	if err != nil {
		return nil, fmt.Errorf("load groups: %w", err)
	}

	var items []services.QuantityItem
	for _, group := range groups {
		records, err := app.FindRecordsByFilter(
			"quantity_items",
			"quantity_group = {:groupId}",
			"sort_order",
			0, 0,
			map[string]any{"groupId": group.Id},
		)
		if err != nil {
			return nil, fmt.Errorf("load items for group %s: %w", group.Id, err)
		}
		for _, rec := range records {
			items = append(items, services.QuantityItem{
				CustomCategory: rec.GetString("custom_category"),
				WorkType:       rec.GetString("work_type"),
				Name:           rec.GetString("name"),
				Specification:  rec.GetString("specification"),
				Unit:           rec.GetString("unit"),
				QuantityCents:  int64(rec.GetFloat("quantity_cents")),
			})
		}
	}

	return items, nil
}
