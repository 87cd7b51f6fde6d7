// Package diag serves the optional debugging surface: a JSON snapshot of the
// simulation and a websocket stream of the same payload, pushed once per
// broadcast. It is enabled only when the shell is given a listen address.
package diag

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"chronosta/internal/telemetry"
)

const writeWait = 5 * time.Second

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Server fans simulation snapshots out to debugging clients. Publish is
// called from the game loop; handler goroutines only read the latest payload.
type Server struct {
	logger  telemetry.Logger
	metrics telemetry.Metrics

	mu          sync.Mutex
	latest      []byte
	subscribers map[*subscriber]struct{}
}

func NewServer(logger telemetry.Logger, metrics telemetry.Metrics) *Server {
	if metrics == nil {
		metrics = telemetry.NopMetrics()
	}
	return &Server{
		logger:      logger,
		metrics:     metrics,
		subscribers: make(map[*subscriber]struct{}),
	}
}

// Handler returns the mux serving /diagnostics and /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/diagnostics", s.handleSnapshot)
	mux.HandleFunc("/ws", s.handleStream)
	return mux
}

// Publish records the latest snapshot and pushes it to every stream client.
// Clients whose writes fail are dropped.
func (s *Server) Publish(snapshot any) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		if s.logger != nil {
			s.logger.Printf("diag: marshal snapshot: %v", err)
		}
		return
	}
	s.metrics.Add(telemetry.CounterDiagFrames, 1)

	s.mu.Lock()
	s.latest = data
	subs := make([]*subscriber, 0, len(s.subscribers))
	for sub := range s.subscribers {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub.mu.Lock()
		sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		err := sub.conn.WriteMessage(websocket.TextMessage, data)
		sub.mu.Unlock()
		if err != nil {
			s.metrics.Add(telemetry.CounterDiagSendErrors, 1)
			if s.logger != nil {
				s.logger.Printf("diag: push failed: %v", err)
			}
			s.drop(sub)
		}
	}
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	data := s.latest
	s.mu.Unlock()
	if data == nil {
		http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Local debugging surface only.
		return true
	},
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if s.logger != nil {
			s.logger.Printf("diag: upgrade failed: %v", err)
		}
		return
	}

	sub := &subscriber{conn: conn}
	s.mu.Lock()
	s.subscribers[sub] = struct{}{}
	initial := s.latest
	s.mu.Unlock()

	if initial != nil {
		sub.mu.Lock()
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		err := conn.WriteMessage(websocket.TextMessage, initial)
		sub.mu.Unlock()
		if err != nil {
			s.drop(sub)
			return
		}
	}

	// Drain (and discard) client frames so pings are answered and closes
	// are noticed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.drop(sub)
				return
			}
		}
	}()
}

func (s *Server) drop(sub *subscriber) {
	s.mu.Lock()
	_, ok := s.subscribers[sub]
	delete(s.subscribers, sub)
	s.mu.Unlock()
	if ok {
		sub.conn.Close()
	}
}

// Close disconnects every client.
func (s *Server) Close() {
	s.mu.Lock()
	subs := make([]*subscriber, 0, len(s.subscribers))
	for sub := range s.subscribers {
		subs = append(subs, sub)
	}
	s.subscribers = make(map[*subscriber]struct{})
	s.mu.Unlock()
	for _, sub := range subs {
		sub.conn.Close()
	}
}
