package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Wyydra/rendezvous/internal/adapter/driven/gateway/ws"
	"github.com/Wyydra/rendezvous/internal/core/domain"
	"github.com/Wyydra/rendezvous/internal/core/port"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const PublicKeyParam = "publicKey"

// HTTP handler
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Error while upgrading ws")
		return
	}

	client := ws.NewClient(conn, ws.ClientConfig{
		SendQueueSize: h.cfg.SendQueueSize,
		WriteWait:     h.cfg.WriteWait,
		PingInterval:  h.cfg.PingInterval,
	})
	go client.WritePump()

	identity := domain.Identity(r.URL.Query().Get(PublicKeyParam))

	l := log.With().Str("client_id", client.ID().String()).Logger()
	l.Info().Msg("New client connected")

	if !h.Hub.Register(client) {
		client.Close(domain.CloseShutdown)
		return
	}

	if err := h.RelayService.Connect(r.Context(), client, identity); err != nil {
		if errors.Is(err, domain.ErrMissingIdentity) {
			l.Warn().Msg("User connected without public key")
		} else {
			l.Error().Err(err).Msg("Failed to register user")
		}
		h.Hub.Unregister(client)
		client.Close(domain.CloseMissingIdentity)
		return
	}
	l = l.With().Str("public_key", identity.String()).Logger()

	defer func() {
		l.Info().Msg("Client disconnected")
		h.RelayService.Disconnect(r.Context(), client)
		h.Hub.Unregister(client)
		client.Close(domain.CloseNormal)
	}()

	conn.SetReadLimit(int64(h.cfg.MaxMessageBytes))
	_ = conn.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	})

	limiter := rate.NewLimiter(rate.Limit(h.cfg.MessagesPerSecond), h.cfg.MessageBurst)

	// listening for browser
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				l.Error().Err(err).Msg("Unexpected close error")
			}
			break
		}

		if !limiter.Allow() {
			h.Metrics.EventDropped("", port.DropRateLimited)
			l.Debug().Msg("Rate limit exceeded, dropping message")
			continue
		}

		var msg domain.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			h.Metrics.EventDropped("", port.DropMalformed)
			l.Debug().Err(err).Msg("Invalid message")
			continue
		}

		if err := h.RelayService.HandleEvent(r.Context(), client, msg); err != nil {
			l.Debug().Err(err).Str("event", string(msg.Event)).Msg("Event dropped")
		}
	}
}
