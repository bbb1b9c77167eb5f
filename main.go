package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quantitydesk/collections"
	"quantitydesk/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Itemized statements ─────────────────────────────────
		se.Router.POST("/projects/{projectId}/statements", handlers.HandleStatementCreate(app))
		se.Router.GET("/projects/{projectId}/statements", handlers.HandleStatementList(app))

		// Export routes (before the generic /{id} route)
		se.Router.GET("/projects/{projectId}/statements/{id}/export/excel", handlers.HandleStatementExportExcel(app))
		se.Router.GET("/projects/{projectId}/statements/{id}/export/clipboard", handlers.HandleStatementExportClipboard(app))
		se.Router.GET("/projects/{projectId}/statements/{id}/export/pdf", handlers.HandleStatementExportPDF(app))

		// Row listing with filter/sort/pagination
		se.Router.GET("/projects/{projectId}/statements/{id}/rows", handlers.HandleStatementRows(app))

		// Header view and optimistic delete
		se.Router.GET("/projects/{projectId}/statements/{id}", handlers.HandleStatementView(app))
		se.Router.DELETE("/projects/{projectId}/statements/{id}", handlers.HandleStatementDelete(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
