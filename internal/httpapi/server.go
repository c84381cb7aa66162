package httpapi

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ent0n29/iris/internal/config"
	"github.com/ent0n29/iris/internal/observability"
	"github.com/ent0n29/iris/internal/schedule"
)

// Server exposes the read-only companion API next to the dialog loop: health,
// metrics, the stored schedule, and a live transcript feed.
type Server struct {
	cfg      config.Config
	store    schedule.Store
	hub      *Hub
	metrics  *observability.Metrics
	upgrader websocket.Upgrader
}

func New(cfg config.Config, store schedule.Store, hub *Hub, metrics *observability.Metrics) *Server {
	return &Server{
		cfg:     cfg,
		store:   store,
		hub:     hub,
		metrics: metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				// Only allow browser websocket connections from the same
				// origin unless explicitly opened up. Non-browser clients
				// omit Origin and are allowed.
				if cfg.AllowAnyOrigin {
					return true
				}
				origin := strings.TrimSpace(r.Header.Get("Origin"))
				if origin == "" {
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				if u.Scheme != "http" && u.Scheme != "https" {
					return false
				}
				return strings.EqualFold(u.Host, r.Host)
			},
		},
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		observability.MetricsHandler().ServeHTTP(w, r)
	})

	r.Get("/v1/schedules", s.handleListSchedules)
	r.Get("/v1/transcript/ws", s.handleTranscriptWS)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
	})
}

func (s *Server) handleListSchedules(w http.ResponseWriter, r *http.Request) {
	status := schedule.StatusPending
	switch raw := strings.TrimSpace(r.URL.Query().Get("status")); raw {
	case "", string(schedule.StatusPending):
	case string(schedule.StatusDone):
		status = schedule.StatusDone
	case "all":
		status = ""
	default:
		respondError(w, http.StatusBadRequest, "invalid_status", "status must be pending, done or all")
		return
	}

	tasks, err := s.store.List(r.Context(), status)
	if err != nil {
		if s.metrics != nil {
			s.metrics.StoreErrors.WithLabelValues("list").Inc()
		}
		respondError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	if tasks == nil {
		tasks = []schedule.Task{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

// handleTranscriptWS streams every conversation turn appended after the
// subscription as JSON text frames. The feed is read-only; inbound frames are
// consumed only to notice disconnects.
func (s *Server) handleTranscriptWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	turns, cancel := s.hub.Subscribe()
	defer cancel()

	// Reader goroutine: discard client frames, surface the close.
	readerGone := make(chan struct{})
	go func() {
		defer close(readerGone)
		conn.SetReadLimit(1 << 10)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-readerGone:
			return
		case <-r.Context().Done():
			return
		case turn, ok := <-turns:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(turn); err != nil {
				return
			}
		}
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}
