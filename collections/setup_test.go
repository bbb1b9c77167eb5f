package collections_test

import (
	"testing"

	"quantitydesk/collections"
	"quantitydesk/testhelpers"
)

// expectedCollections is the full list of collections that Setup() must create.
var expectedCollections = []string{
	"projects",
	"quantity_tables",
	"quantity_groups",
	"quantity_items",
	"itemized_statements",
	"statement_rows",
}

func TestSetup_AllCollectionsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q not found after Setup(): %v", name, err)
			continue
		}
		if col.Name != name {
			t.Errorf("expected collection name %q, got %q", name, col.Name)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t) // Setup() already called once via NewTestApp

	// Collect IDs from first run
	ids := make(map[string]string)
	for _, name := range expectedCollections {
		col, _ := app.FindCollectionByNameOrId(name)
		ids[name] = col.Id
	}

	// Run Setup() again
	collections.Setup(app)

	// IDs should not change
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q missing after second Setup(): %v", name, err)
			continue
		}
		if col.Id != ids[name] {
			t.Errorf("collection %q was recreated: id %q -> %q", name, ids[name], col.Id)
		}
	}
}

func TestSetup_StatementFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	col, err := app.FindCollectionByNameOrId("itemized_statements")
	if err != nil {
		t.Fatalf("itemized_statements not found: %v", err)
	}

	for _, field := range []string{"project", "name", "source_table_name", "item_count", "version", "deleted", "created", "updated"} {
		if col.Fields.GetByName(field) == nil {
			t.Errorf("itemized_statements missing field %q", field)
		}
	}
}
