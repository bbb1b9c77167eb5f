// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quantitydesk/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestProject creates a project record with the given name and returns it.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("status", "active")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return record
}

// CreateTestQuantityTable creates a quantity table linked to a project.
func CreateTestQuantityTable(t *testing.T, app *pocketbase.PocketBase, projectID, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quantity_tables")
	if err != nil {
		t.Fatalf("failed to find quantity_tables collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("name", name)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quantity table: %v", err)
	}

	return record
}

// CreateTestQuantityGroup creates a group inside a quantity table.
func CreateTestQuantityGroup(t *testing.T, app *pocketbase.PocketBase, tableID, name string, sortOrder int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quantity_groups")
	if err != nil {
		t.Fatalf("failed to find quantity_groups collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("quantity_table", tableID)
	record.Set("name", name)
	record.Set("sort_order", sortOrder)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quantity group: %v", err)
	}

	return record
}

// TestItem describes a quantity item for CreateTestQuantityItem.
type TestItem struct {
	CustomCategory string
	WorkType       string
	Name           string
	Specification  string
	Unit           string
	QuantityCents  int64
}

// CreateTestQuantityItem creates a quantity item inside a group.
func CreateTestQuantityItem(t *testing.T, app *pocketbase.PocketBase, groupID string, sortOrder int, item TestItem) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quantity_items")
	if err != nil {
		t.Fatalf("failed to find quantity_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("quantity_group", groupID)
	record.Set("sort_order", sortOrder)
	record.Set("custom_category", item.CustomCategory)
	record.Set("work_type", item.WorkType)
	record.Set("name", item.Name)
	record.Set("specification", item.Specification)
	record.Set("unit", item.Unit)
	record.Set("quantity_cents", item.QuantityCents)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quantity item: %v", err)
	}

	return record
}

// CreateTestTableWithItems creates a quantity table with one group holding
// the given items, returning the table record.
func CreateTestTableWithItems(t *testing.T, app *pocketbase.PocketBase, projectID, tableName string, items []TestItem) *core.Record {
	t.Helper()

	table := CreateTestQuantityTable(t, app, projectID, tableName)
	group := CreateTestQuantityGroup(t, app, table.Id, "Group 1", 1)
	for i, item := range items {
		CreateTestQuantityItem(t, app, group.Id, i+1, item)
	}
	return table
}

// CreateTestStatement creates an itemized statement header plus rows,
// bypassing the aggregation path. Rows are saved in the given order with
// 1-based sort_order.
func CreateTestStatement(t *testing.T, app *pocketbase.PocketBase, projectID, name string, rows []TestItem) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("itemized_statements")
	if err != nil {
		t.Fatalf("failed to find itemized_statements collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("name", name)
	record.Set("source_table_name", "test source table")
	record.Set("item_count", len(rows))
	record.Set("version", 1)
	record.Set("deleted", false)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test statement: %v", err)
	}

	rowsCol, err := app.FindCollectionByNameOrId("statement_rows")
	if err != nil {
		t.Fatalf("failed to find statement_rows collection: %v", err)
	}

	for i, r := range rows {
		row := core.NewRecord(rowsCol)
		row.Set("statement", record.Id)
		row.Set("sort_order", i+1)
		row.Set("custom_category", r.CustomCategory)
		row.Set("work_type", r.WorkType)
		row.Set("name", r.Name)
		row.Set("specification", r.Specification)
		row.Set("unit", r.Unit)
		row.Set("quantity_cents", r.QuantityCents)
		if err := app.Save(row); err != nil {
			t.Fatalf("failed to save test statement row: %v", err)
		}
	}

	return record
}
