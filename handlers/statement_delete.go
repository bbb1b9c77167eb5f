package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quantitydesk/services"
)

// deleteStatementRequest carries the version token the caller last observed.
type deleteStatementRequest struct {
	Version int `json:"version"`
}

// HandleStatementDelete returns a handler that logically deletes a statement
// under optimistic concurrency control.
//
// No lock is held between the caller's earlier read and this write: the
// stored version is compared inside the transaction, and a mismatch rejects
// the request with 409 and changes nothing. The loser reloads current state
// and retries with the fresh token.
func HandleStatementDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		statementID := e.Request.PathValue("id")

		var req deleteStatementRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("statement_delete: could not parse body: %v", err)
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		if req.Version < 1 {
			return apiError(e, http.StatusBadRequest, "Missing version token")
		}

		if _, err := findStatement(app, projectID, statementID); err != nil {
			return apiError(e, http.StatusNotFound, "Statement not found")
		}

		txErr := app.RunInTransaction(func(txApp core.App) error {
			// Re-fetch inside the transaction; the handler-level lookup may
			// already be stale.
			statement, err := txApp.FindRecordById("itemized_statements", statementID)
			if err != nil {
				return errStatementNotFound
			}
			if statement.GetBool("deleted") {
				return errStatementNotFound
			}
			if statement.GetInt("version") != req.Version {
				return services.ErrVersionConflict
			}

			statement.Set("deleted", true)
			statement.Set("version", req.Version+1)
			if err := txApp.Save(statement); err != nil {
				return fmt.Errorf("save delete marker: %w", err)
			}
			return nil
		})

		switch {
		case errors.Is(txErr, services.ErrVersionConflict):
			return apiError(e, http.StatusConflict, "Statement was modified by someone else. Reload and try again.")
		case errors.Is(txErr, errStatementNotFound):
			return apiError(e, http.StatusNotFound, "Statement not found")
		case txErr != nil:
			log.Printf("statement_delete: transaction failed for %s: %v", statementID, txErr)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusOK, map[string]string{"status": "deleted"})
	}
}
