package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase"

	"quantitydesk/testhelpers"
)

func listStatements(t *testing.T, app *pocketbase.PocketBase, projectID, query string) *httptest.ResponseRecorder {
	t.Helper()

	handler := HandleStatementList(app)
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/projects/%s/statements%s", projectID, query), nil)
	req.SetPathValue("projectId", projectID)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestHandleStatementList_Basic(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "List Project")
	testhelpers.CreateTestStatement(t, app, proj.Id, "First", []testhelpers.TestItem{{Name: "x"}})
	testhelpers.CreateTestStatement(t, app, proj.Id, "Second", []testhelpers.TestItem{{Name: "y"}})

	rec := listStatements(t, app, proj.Id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["totalCount"] != float64(2) || body["totalPages"] != float64(1) {
		t.Errorf("metadata = %v", body)
	}
	if len(body["statements"].([]any)) != 2 {
		t.Errorf("expected 2 statements, got %d", len(body["statements"].([]any)))
	}
}

func TestHandleStatementList_ExcludesDeleted(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Hide Project")
	testhelpers.CreateTestStatement(t, app, proj.Id, "Visible", []testhelpers.TestItem{{Name: "x"}})
	gone := testhelpers.CreateTestStatement(t, app, proj.Id, "Hidden", []testhelpers.TestItem{{Name: "y"}})

	if rec := deleteStatement(t, app, proj.Id, gone.Id, 1); rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d", rec.Code)
	}

	body := decodeBody(t, listStatements(t, app, proj.Id, ""))
	if body["totalCount"] != float64(1) {
		t.Errorf("totalCount = %v, want 1 after logical delete", body["totalCount"])
	}
	statements := body["statements"].([]any)
	if statements[0].(map[string]any)["name"] != "Visible" {
		t.Errorf("unexpected visible statement: %v", statements[0])
	}
}

func TestHandleStatementList_PaginatesAtTwenty(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Many Project")
	for i := 0; i < 25; i++ {
		testhelpers.CreateTestStatement(t, app, proj.Id, fmt.Sprintf("Statement %02d", i), []testhelpers.TestItem{{Name: "x"}})
	}

	page1 := decodeBody(t, listStatements(t, app, proj.Id, "?page=1"))
	if len(page1["statements"].([]any)) != 20 || page1["totalPages"] != float64(2) {
		t.Errorf("page1 = %d statements / %v pages, want 20/2", len(page1["statements"].([]any)), page1["totalPages"])
	}

	page2 := decodeBody(t, listStatements(t, app, proj.Id, "?page=2"))
	if len(page2["statements"].([]any)) != 5 {
		t.Errorf("page2 = %d statements, want 5", len(page2["statements"].([]any)))
	}
}

func TestHandleStatementList_ProjectNotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	rec := listStatements(t, app, "nonexistent", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
