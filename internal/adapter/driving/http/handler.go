package http

import (
	"io"
	"net/http"

	"github.com/Wyydra/rendezvous/internal/adapter/driven/gateway/ws"
	"github.com/Wyydra/rendezvous/internal/config"
	"github.com/Wyydra/rendezvous/internal/core/port"
	"github.com/Wyydra/rendezvous/internal/core/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

const StatusMessage = "WebRTC Signaling Server is running"

type Handler struct {
	RelayService *service.RelayService
	Hub          *ws.Hub
	Metrics      port.RelayMetrics

	cfg      config.Config
	upgrader websocket.Upgrader
}

func NewHandler(relayService *service.RelayService, hub *ws.Hub, metrics port.RelayMetrics, cfg config.Config) *Handler {
	return &Handler{
		RelayService: relayService,
		Hub:          hub,
		Metrics:      metrics,
		cfg:          cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// peers are identified by public key, not by origin
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", h.ServeRoot)

	return r
}

// ServeRoot hands websocket upgrades to the signaling transport and answers
// anything else with a liveness string.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	if websocket.IsWebSocketUpgrade(r) {
		h.ServeWS(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, StatusMessage)
}
