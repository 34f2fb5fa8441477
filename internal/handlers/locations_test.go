package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"survey_registry/internal/models"
	"survey_registry/internal/service"
)

func TestLocationHandlers_AddAndListWoredas(t *testing.T) {
	loc := &mockLocations{
		addWoredaID: 5,
		listResp: []models.Woreda{
			{ID: 1, Name: "Bahir Dar Zuria", Kebeles: []models.Kebele{{ID: 10, Name: "Sebatamit", WoredaID: 1}}},
		},
	}
	r := newTestRouter(&service.Service{
		Directory: &mockDirectory{loginOK: true},
		Locations: loc,
	})

	body := bytes.NewBufferString(`{"name":"Mecha"}`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, apiRequest(http.MethodPost, "/api/v1/locations/woredas", body))
	if w.Code != http.StatusCreated {
		t.Fatalf("add woreda status=%d, body=%s", w.Code, w.Body.String())
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if int(m["id"].(float64)) != 5 {
		t.Fatalf("expected id=5, got %v", m["id"])
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, apiRequest(http.MethodGet, "/api/v1/locations/woredas", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("list status=%d", w.Code)
	}
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if int(m["count"].(float64)) != 1 {
		t.Fatalf("expected count=1, got %v", m["count"])
	}

	// empty name → 400 from service validation
	loc.addWoredaErr = service.ErrWoredaNameRequired
	body = bytes.NewBufferString(`{"name":" "}`)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, apiRequest(http.MethodPost, "/api/v1/locations/woredas", body))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestLocationHandlers_RenameDeleteAndKebeles(t *testing.T) {
	loc := &mockLocations{addKebeleID: 10}
	r := newTestRouter(&service.Service{
		Directory: &mockDirectory{loginOK: true},
		Locations: loc,
	})

	body := bytes.NewBufferString(`{"name":"Mecha"}`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, apiRequest(http.MethodPut, "/api/v1/locations/woredas/2", body))
	if w.Code != http.StatusOK {
		t.Fatalf("rename status=%d, body=%s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, apiRequest(http.MethodDelete, "/api/v1/locations/woredas/2", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("delete woreda status=%d", w.Code)
	}

	body = bytes.NewBufferString(`{"name":"Sebatamit"}`)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, apiRequest(http.MethodPost, "/api/v1/locations/woredas/1/kebeles", body))
	if w.Code != http.StatusCreated {
		t.Fatalf("add kebele status=%d, body=%s", w.Code, w.Body.String())
	}
	if loc.lastAddKebele != 1 {
		t.Fatalf("expected woreda id=1 for kebele, got %d", loc.lastAddKebele)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, apiRequest(http.MethodDelete, "/api/v1/locations/kebeles/10", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("delete kebele status=%d", w.Code)
	}
}

func TestExportHandler_FarmersCSV(t *testing.T) {
	exp := &mockExporter{
		csv:  "Name,Type,Woreda,Kebele,Phone,Audio URL\nAbebe,,,Sebatamit,,\n",
		rows: 1,
	}
	r := newTestRouter(&service.Service{
		Directory: &mockDirectory{loginOK: true},
		Exporter:  exp,
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, apiRequest(http.MethodGet, "/api/v1/export/farmers.csv", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("export status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="survey_records.csv"` {
		t.Fatalf("unexpected content disposition %q", cd)
	}
	if w.Body.String() != exp.csv {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
}
