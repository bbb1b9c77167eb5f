package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the projects, quantity_tables,
// quantity_groups, quantity_items, itemized_statements and statement_rows
// collections exist.
//
// Quantities are stored as integer hundredths (quantity_cents) so group sums
// stay exact; display strings are produced only at the boundary.
func Setup(app *pocketbase.PocketBase) {
	projects := ensureCollection(app, "projects", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"active", "completed", "on_hold"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	quantityTables := ensureCollection(app, "quantity_tables", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	quantityGroups := ensureCollection(app, "quantity_groups", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "quantity_table",
			Required:      true,
			CollectionId:  quantityTables.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: false})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
	})

	ensureCollection(app, "quantity_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "quantity_group",
			Required:      true,
			CollectionId:  quantityGroups.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "custom_category", Required: false})
		c.Fields.Add(&core.TextField{Name: "work_type", Required: false})
		c.Fields.Add(&core.TextField{Name: "name", Required: false})
		c.Fields.Add(&core.TextField{Name: "specification", Required: false})
		c.Fields.Add(&core.TextField{Name: "unit", Required: false})
		c.Fields.Add(&core.NumberField{Name: "quantity_cents", Required: false, OnlyInt: true})
	})

	statements := ensureCollection(app, "itemized_statements", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true, Min: 1, Max: 200})
		// Display-only snapshot of the source table's name. Reads never join
		// back to quantity_tables, so later source edits cannot leak in.
		c.Fields.Add(&core.TextField{Name: "source_table_name", Required: false})
		c.Fields.Add(&core.RelationField{
			Name:         "source_table",
			Required:     false,
			CollectionId: quantityTables.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.NumberField{Name: "item_count", Required: true, OnlyInt: true})
		c.Fields.Add(&core.NumberField{Name: "version", Required: true, OnlyInt: true})
		c.Fields.Add(&core.BoolField{Name: "deleted"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "statement_rows", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "statement",
			Required:      true,
			CollectionId:  statements.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		// Position in the default aggregation order, assigned once at
		// creation. Rows are never updated afterwards.
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true, OnlyInt: true})
		c.Fields.Add(&core.TextField{Name: "custom_category", Required: false})
		c.Fields.Add(&core.TextField{Name: "work_type", Required: false})
		c.Fields.Add(&core.TextField{Name: "name", Required: false})
		c.Fields.Add(&core.TextField{Name: "specification", Required: false})
		c.Fields.Add(&core.TextField{Name: "unit", Required: false})
		c.Fields.Add(&core.NumberField{Name: "quantity_cents", Required: false, OnlyInt: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
