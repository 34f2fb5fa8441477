package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"survey_registry/internal/models"
	"survey_registry/internal/service"

	"github.com/gorilla/websocket"
)

func TestWSRecords_InitialSnapshot(t *testing.T) {
	reg := &mockRegistry{
		listResp: []models.Farmer{
			{ID: 1, Name: "Abebe", Kebele: "Sebatamit"},
			{ID: 2, Name: "Tigist", Kebele: "Meshenti"},
		},
	}
	r := newTestRouter(&service.Service{Registry: reg})

	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v (resp=%v)", err, resp)
	}
	defer func() { _ = conn.Close() }()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var env struct {
		Type string `json:"type"`
		Data struct {
			Count  int             `json:"count"`
			Latest []models.Farmer `json:"latest"`
		} `json:"data"`
	}
	if err := json.Unmarshal(msg, &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if env.Type != "records" {
		t.Fatalf("expected type 'records', got %q", env.Type)
	}
	if env.Data.Count != 2 {
		t.Fatalf("expected count=2, got %d", env.Data.Count)
	}
	if len(env.Data.Latest) != 2 {
		t.Fatalf("expected 2 latest records, got %d", len(env.Data.Latest))
	}
}
