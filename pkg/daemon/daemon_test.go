package daemon

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"diptab/pkg/config"
	"diptab/pkg/dip"
	"diptab/pkg/events"
	"diptab/pkg/session"
)

func newTestRouter() *gin.Engine {
	conf = config.NewFileFromConfig(&config.RawFileConfig{}, "")
	hub = events.NewHub()
	store = session.New(hub)
	return setupRoutes()
}

func do(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRecordLifecycle(t *testing.T) {
	router := newTestRouter()

	w := do(t, router, "POST", "/records", `{"kg":"100","dip":"2.0"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("add record: status %d, body %s", w.Code, w.Body.String())
	}
	do(t, router, "POST", "/records", `{"kg":"130","dip":"5.0"}`)

	w = do(t, router, "GET", "/records", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get records: status %d", w.Code)
	}
	var records []dip.Record
	if err := json.Unmarshal(w.Body.Bytes(), &records); err != nil {
		t.Fatalf("unmarshal records: %v", err)
	}
	if len(records) != 2 || records[1].KG != 130 || records[1].DIPMM != 50 {
		t.Fatalf("unexpected records: %+v", records)
	}

	w = do(t, router, "PUT", "/records/1", `{"kg":"135","dip":"5.0"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update record: status %d, body %s", w.Code, w.Body.String())
	}

	w = do(t, router, "DELETE", "/records/0", "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete record: status %d", w.Code)
	}

	if store.Len() != 1 {
		t.Fatalf("store has %d records, want 1", store.Len())
	}

	w = do(t, router, "DELETE", "/records", "")
	if w.Code != http.StatusOK || store.Len() != 0 {
		t.Fatalf("clear records: status %d, len %d", w.Code, store.Len())
	}
}

func TestUpdateMissingRecordIs404(t *testing.T) {
	router := newTestRouter()

	w := do(t, router, "PUT", "/records/3", `{"kg":"1","dip":"1"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestMalformedNumbersDegradeToZero(t *testing.T) {
	router := newTestRouter()

	w := do(t, router, "POST", "/records", `{"kg":"oops","dip":""}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	var r dip.Record
	if err := json.Unmarshal(w.Body.Bytes(), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.KG != 0 || r.DIP != 0 {
		t.Errorf("record = %+v, want zeros", r)
	}
}

func TestGetTable(t *testing.T) {
	router := newTestRouter()
	do(t, router, "POST", "/records", `{"kg":"100","dip":"2.0"}`)
	do(t, router, "POST", "/records", `{"kg":"130","dip":"5.0"}`)

	w := do(t, router, "GET", "/table?mode=kg", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var table dip.Table
	if err := json.Unmarshal(w.Body.Bytes(), &table); err != nil {
		t.Fatalf("unmarshal table: %v", err)
	}
	if len(table.Rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(table.Rows))
	}
	if table.Rows[1].Cells[0] != 110 {
		t.Errorf("value at 3.0 = %v, want 110", table.Rows[1].Cells[0])
	}
}

func TestGetTableEmptySession(t *testing.T) {
	router := newTestRouter()

	w := do(t, router, "GET", "/table", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var table dip.Table
	if err := json.Unmarshal(w.Body.Bytes(), &table); err != nil {
		t.Fatalf("unmarshal table: %v", err)
	}
	if len(table.Rows) != 0 {
		t.Errorf("rows = %d, want 0 for empty session", len(table.Rows))
	}
}

func TestGetTableEmptyModeParamUsesDefault(t *testing.T) {
	router := newTestRouter()
	do(t, router, "POST", "/records", `{"kg":"100","dip":"2.0"}`)

	// Clients that leave the mode unset send no parameter, but a bare
	// "?mode=" must behave the same: configured default, not a 400.
	w := do(t, router, "GET", "/table?mode=", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for an empty mode value", w.Code)
	}
	var table dip.Table
	if err := json.Unmarshal(w.Body.Bytes(), &table); err != nil {
		t.Fatalf("unmarshal table: %v", err)
	}
	if len(table.Rows) != 1 || table.Rows[0].Cells[0] != 100 {
		t.Errorf("unexpected table for default mode: %+v", table.Rows)
	}
}

func TestGetTableInvalidMode(t *testing.T) {
	router := newTestRouter()

	w := do(t, router, "GET", "/table?mode=gallons", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestExportCSV(t *testing.T) {
	router := newTestRouter()
	do(t, router, "POST", "/records", `{"kg":"100","dip":"2.0"}`)
	do(t, router, "POST", "/records", `{"kg":"130","dip":"5.0"}`)

	w := do(t, router, "GET", "/export/csv?mode=kg", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type = %q, want text/csv", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "DIP,0,1,2,3,4,5,6,7,8,9\n") {
		t.Errorf("csv body does not start with the header row: %q", w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "output_kg.csv") {
		t.Errorf("content disposition = %q", cd)
	}
}

func TestExportPDFRaw(t *testing.T) {
	router := newTestRouter()
	do(t, router, "POST", "/records", `{"kg":"100","dip":"2.0"}`)

	w := do(t, router, "GET", "/export/pdf?mode=litre&raw=true", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF-") {
		t.Errorf("body is not a pdf")
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "output_raw.pdf") {
		t.Errorf("content disposition = %q, want the raw filename", cd)
	}
}

func TestGetVersion(t *testing.T) {
	router := newTestRouter()

	w := do(t, router, "GET", "/version", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
