package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type itemDef struct {
	sortOrder      int
	customCategory string
	workType       string
	name           string
	specification  string
	unit           string
	quantityCents  int64
}

type groupDef struct {
	sortOrder int
	name      string
	items     []itemDef
}

type tableDef struct {
	name   string
	groups []groupDef
}

// seedTable is a small but realistic quantity table: repeated group keys
// across groups (so generated statements actually merge rows), a blank
// category item, and 2-decimal quantities.
var seedTable = tableDef{
	name: "Structural takeoff rev.2",
	groups: []groupDef{
		{
			sortOrder: 1,
			name:      "Foundations",
			items: []itemDef{
				{1, "Civil", "Excavation", "Topsoil strip", "150mm depth", "m3", 4250},
				{2, "Civil", "Excavation", "Trench dig", "600x900", "m3", 1875},
				{3, "Civil", "Concrete", "Footing", "C30/37", "m3", 3200},
				{4, "Civil", "Rebar", "Footing mesh", "A393", "m2", 16400},
			},
		},
		{
			sortOrder: 2,
			name:      "Ground floor",
			items: []itemDef{
				{1, "Civil", "Concrete", "Footing", "C30/37", "m3", 1150},
				{2, "Civil", "Concrete", "Slab", "C25/30 150mm", "m3", 7825},
				{3, "", "Formwork", "Slab edge", "", "m", 5400},
			},
		},
		{
			sortOrder: 3,
			name:      "Frame",
			items: []itemDef{
				{1, "Structural", "Steelwork", "Column", "HEB 200", "t", 1240},
				{2, "Structural", "Steelwork", "Beam", "IPE 300", "t", 2185},
				{3, "Structural", "Steelwork", "Beam", "IPE 300", "t", 915},
			},
		},
	},
}

// Seed creates a demo project with one quantity table so a fresh instance
// has data to generate statements from. It is a no-op when any project
// already exists.
func Seed(app *pocketbase.PocketBase) error {
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("find projects collection: %w", err)
	}

	existing, err := app.FindAllRecords(projectsCol)
	if err != nil {
		return fmt.Errorf("query projects: %w", err)
	}
	if len(existing) > 0 {
		log.Println("Seed: projects already exist, skipping.")
		return nil
	}

	project := core.NewRecord(projectsCol)
	project.Set("name", "Riverside Warehouse")
	project.Set("status", "active")
	if err := app.Save(project); err != nil {
		return fmt.Errorf("save project: %w", err)
	}

	tablesCol, err := app.FindCollectionByNameOrId("quantity_tables")
	if err != nil {
		return fmt.Errorf("find quantity_tables collection: %w", err)
	}
	groupsCol, err := app.FindCollectionByNameOrId("quantity_groups")
	if err != nil {
		return fmt.Errorf("find quantity_groups collection: %w", err)
	}
	itemsCol, err := app.FindCollectionByNameOrId("quantity_items")
	if err != nil {
		return fmt.Errorf("find quantity_items collection: %w", err)
	}

	table := core.NewRecord(tablesCol)
	table.Set("project", project.Id)
	table.Set("name", seedTable.name)
	if err := app.Save(table); err != nil {
		return fmt.Errorf("save quantity table: %w", err)
	}

	for _, g := range seedTable.groups {
		group := core.NewRecord(groupsCol)
		group.Set("quantity_table", table.Id)
		group.Set("name", g.name)
		group.Set("sort_order", g.sortOrder)
		if err := app.Save(group); err != nil {
			return fmt.Errorf("save group %q: %w", g.name, err)
		}

		for _, it := range g.items {
			item := core.NewRecord(itemsCol)
			item.Set("quantity_group", group.Id)
			item.Set("sort_order", it.sortOrder)
			item.Set("custom_category", it.customCategory)
			item.Set("work_type", it.workType)
			item.Set("name", it.name)
			item.Set("specification", it.specification)
			item.Set("unit", it.unit)
			item.Set("quantity_cents", it.quantityCents)
			if err := app.Save(item); err != nil {
				return fmt.Errorf("save item %q: %w", it.name, err)
			}
		}
	}

	log.Printf("Seed: created project %q with quantity table %q", project.GetString("name"), table.GetString("name"))
	return nil
}
