package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/xuri/excelize/v2"

	"quantitydesk/testhelpers"
)

func exportStatement(t *testing.T, app *pocketbase.PocketBase, projectID, statementID, format, query string) *httptest.ResponseRecorder {
	t.Helper()

	url := fmt.Sprintf("/projects/%s/statements/%s/export/%s%s", projectID, statementID, format, query)
	req := httptest.NewRequest(http.MethodGet, url, nil)
	req.SetPathValue("projectId", projectID)
	req.SetPathValue("id", statementID)
	rec := httptest.NewRecorder()

	var err error
	switch format {
	case "excel":
		err = HandleStatementExportExcel(app)(newTestRequestEvent(app, req, rec))
	case "clipboard":
		err = HandleStatementExportClipboard(app)(newTestRequestEvent(app, req, rec))
	case "pdf":
		err = HandleStatementExportPDF(app)(newTestRequestEvent(app, req, rec))
	default:
		t.Fatalf("unknown format %q", format)
	}
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func exportFixture(t *testing.T, app *pocketbase.PocketBase) (projectID, statementID string) {
	t.Helper()

	proj := testhelpers.CreateTestProject(t, app, "Export Project")
	items := make([]testhelpers.TestItem, 60)
	for i := range items {
		work := "Steelwork"
		if i%2 == 1 {
			work = "Concrete"
		}
		items[i] = testhelpers.TestItem{
			WorkType:      work,
			Name:          fmt.Sprintf("row-%02d", i),
			Unit:          "m3",
			QuantityCents: int64(i * 25),
		}
	}
	statement := testhelpers.CreateTestStatement(t, app, proj.Id, "Export Me", items)
	return proj.Id, statement.Id
}

func TestHandleStatementExportExcel_CoversAllFilteredRows(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	projectID, statementID := exportFixture(t, app)

	// 60 rows exceed one page; the export must still carry all of them.
	rec := exportStatement(t, app, projectID, statementID, "excel", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Export-Me_") || !strings.Contains(cd, ".xlsx") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("response is not valid Excel: %v", err)
	}
	defer f.Close()

	xlRows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(xlRows) != 61 {
		t.Errorf("sheet has %d rows, want 60 data rows + header", len(xlRows))
	}
}

func TestHandleStatementExportExcel_AppliesFilters(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	projectID, statementID := exportFixture(t, app)

	rec := exportStatement(t, app, projectID, statementID, "excel", "?work=steel")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("response is not valid Excel: %v", err)
	}
	defer f.Close()

	xlRows, _ := f.GetRows(f.GetSheetName(0))
	if len(xlRows) != 31 {
		t.Errorf("filtered export has %d rows, want 30 data rows + header", len(xlRows))
	}
}

func TestHandleStatementExportClipboard_Content(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Clip Project")
	statement := testhelpers.CreateTestStatement(t, app, proj.Id, "Clip Me", []testhelpers.TestItem{
		{CustomCategory: "Civil", WorkType: "Concrete", Name: "Slab", Specification: "C30", Unit: "m3", QuantityCents: 750},
	})

	rec := exportStatement(t, app, proj.Id, statement.Id, "clipboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q", ct)
	}

	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if lines[0] != "Category\tWork Type\tName\tSpecification\tQuantity\tUnit" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "Civil\tConcrete\tSlab\tC30\t7.50\tm3" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestHandleStatementExportClipboard_SortMatchesRowsRoute(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Match Project")
	statement := testhelpers.CreateTestStatement(t, app, proj.Id, "Matching", []testhelpers.TestItem{
		{Name: "B"}, {Name: "A"}, {Name: "C"},
	})

	rec := exportStatement(t, app, proj.Id, statement.Id, "clipboard", "?sort=name&dir=desc")
	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	names := make([]string, 0, 3)
	for _, line := range lines[1:] {
		names = append(names, strings.Split(line, "\t")[2])
	}
	if names[0] != "C" || names[1] != "B" || names[2] != "A" {
		t.Errorf("export order = %v, want [C B A]", names)
	}
}

func TestHandleStatementExportPDF_Basic(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	projectID, statementID := exportFixture(t, app)

	rec := exportStatement(t, app, projectID, statementID, "pdf", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if body := rec.Body.Bytes(); len(body) < 5 || string(body[:5]) != "%PDF-" {
		t.Error("response does not start with PDF header")
	}
}

func TestHandleStatementExport_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "No Export Project")

	for _, format := range []string{"excel", "clipboard", "pdf"} {
		if rec := exportStatement(t, app, proj.Id, "nonexistent", format, ""); rec.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", format, rec.Code)
		}
	}
}

func TestHandleStatementExport_InvalidQueryState(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	projectID, statementID := exportFixture(t, app)

	rec := exportStatement(t, app, projectID, statementID, "excel", "?sort=bogus")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
