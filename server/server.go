package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/railscope/stationboard/engine"
	"github.com/railscope/stationboard/model"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard state is read-only and public to its renderers.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server is the HTTP/websocket surface for browser renderers.
type Server struct {
	store *engine.Store
	sched *engine.Scheduler
	hub   *Hub
	addr  string
}

// New creates a server over the given store and scheduler.
func New(store *engine.Store, sched *engine.Scheduler, addr string) *Server {
	return &Server{
		store: store,
		sched: sched,
		hub:   NewHub(),
		addr:  addr,
	}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/state", s.handleState).Methods("GET", "OPTIONS")
	api.HandleFunc("/stations", s.handleStations).Methods("GET", "OPTIONS")
	api.HandleFunc("/station", s.handleSelectStation).Methods("POST", "OPTIONS")
	r.HandleFunc("/ws", s.handleWS)
	r.Use(corsMiddleware)
	return r
}

// Run serves until ctx is cancelled, pushing every store update to the hub.
func (s *Server) Run(ctx context.Context) error {
	go s.hub.Run(ctx)

	sub, cancel := s.store.Subscribe()
	defer cancel()
	go func() {
		for snap := range sub {
			s.hub.BroadcastSnapshot(snap)
		}
	}()

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("stationboard: serving dashboard state on %s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleStations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"stations": model.Stations,
		"selected": s.sched.Station(),
	})
}

func (s *Server) handleSelectStation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Station model.Station `json:"station"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !model.ValidStation(req.Station) {
		http.Error(w, "unknown station", http.StatusBadRequest)
		return
	}
	s.sched.SelectStation(req.Station)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("stationboard: websocket upgrade failed: %v", err)
		return
	}
	// Full sync on connect, then live pushes.
	initial, err := json.Marshal(snapshotMessage{
		Type:      "snapshot",
		Data:      s.store.Snapshot(),
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		conn.Close()
		return
	}
	s.hub.newClient(conn, initial)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("stationboard: response encode error: %v", err)
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
