package diag

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
)

type payload struct {
	Tick uint64 `json:"tick"`
	Mode string `json:"mode"`
}

func TestSnapshotEndpoint(t *testing.T) {
	s := NewServer(nil, nil)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/diagnostics")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("empty server returned %d", resp.StatusCode)
	}

	s.Publish(payload{Tick: 42, Mode: "playing"})

	resp, err = http.Get(srv.URL + "/diagnostics")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d after publish", resp.StatusCode)
	}
	var got payload
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Tick != 42 || got.Mode != "playing" {
		t.Fatalf("snapshot %+v", got)
	}
}

func TestStreamReceivesPublishes(t *testing.T) {
	s := NewServer(nil, nil)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()
	defer s.Close()

	s.Publish(payload{Tick: 1, Mode: "menu"})

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// The latest snapshot is replayed on connect.
	var got payload
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if got.Tick != 1 {
		t.Fatalf("initial tick %d, want 1", got.Tick)
	}

	s.Publish(payload{Tick: 2, Mode: "playing"})
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read push: %v", err)
	}
	if got.Tick != 2 || got.Mode != "playing" {
		t.Fatalf("pushed %+v", got)
	}
}
