package ws

import (
	"sync"

	"github.com/Wyydra/rendezvous/internal/core/domain"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Hub tracks every open socket, registered or not, so shutdown can close
// them all.
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	quit       chan struct{}
	stopOnce   sync.Once
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.quit:
			log.Info().Int("count", len(h.clients)).Msg("Closing all client connections")
			lo.ForEach(lo.Keys(h.clients), func(client *Client, _ int) {
				client.Close(domain.CloseShutdown)
			})
			clear(h.clients)
			return

		case client := <-h.register:
			h.clients[client] = struct{}{}
			log.Debug().Int("count", len(h.clients)).Str("client_id", client.ID().String()).Msg("Client attached")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				log.Debug().Int("count", len(h.clients)).Str("client_id", client.ID().String()).Msg("Client detached")
			}
		}
	}
}

// Register reports false once the hub is stopped; the caller should close
// the client.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.quit:
		return false
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.quit:
	}
}

func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.quit)
	})
}
