// internal/httpapi/server.go
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const banner = "Growatt Solar Inverter to MQTT Gateway"

// Server exposes the latest telemetry record, a live websocket stream
// and Prometheus metrics.
type Server struct {
	listen string
	server *http.Server
	router *mux.Router
	hub    *hub
	logger zerolog.Logger

	upgrader websocket.Upgrader

	mu     sync.RWMutex
	latest string
}

func New(listen string, gatherer prometheus.Gatherer) *Server {
	s := &Server{
		listen: listen,
		router: mux.NewRouter(),
		hub:    newHub(),
		logger: log.With().Str("component", "http").Logger(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/latest", s.handleLatest).Methods(http.MethodGet)
	s.router.HandleFunc("/ws", s.handleWS)
	if gatherer != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.router }

// Telemetry stores the record for /latest and pushes it to websocket clients.
func (s *Server) Telemetry(record string) {
	s.mu.Lock()
	s.latest = record
	s.mu.Unlock()

	s.hub.broadcast([]byte(record))
}

// Start begins listening in the background.
func (s *Server) Start() {
	s.server = &http.Server{
		Addr:              s.listen,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		s.logger.Info().Str("listen", s.listen).Msg("starting HTTP server")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("HTTP server failed")
		}
	}()
}

// Shutdown stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(banner))
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	latest := s.latest
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if latest == "" {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error": "No readings available yet",
		})
		return
	}
	_, _ = w.Write([]byte(latest))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}
	s.hub.add(conn)
}
