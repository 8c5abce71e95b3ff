package ws

import (
	"sync"
	"time"

	"github.com/Wyydra/rendezvous/internal/core/domain"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type ClientConfig struct {
	SendQueueSize int
	WriteWait     time.Duration
	PingInterval  time.Duration
}

// Client implements port.Connection on top of a websocket. Outbound
// messages go through a bounded queue drained by WritePump, so Send never
// waits on a slow peer.
type Client struct {
	id   domain.ConnID
	conn *websocket.Conn
	cfg  ClientConfig

	send chan domain.Message
	done chan struct{}

	closeOnce   sync.Once
	closeReason domain.CloseReason
}

func NewClient(conn *websocket.Conn, cfg ClientConfig) *Client {
	if cfg.SendQueueSize <= 0 {
		cfg.SendQueueSize = 1
	}
	return &Client{
		id:   domain.NewConnID(),
		conn: conn,
		cfg:  cfg,
		send: make(chan domain.Message, cfg.SendQueueSize),
		done: make(chan struct{}),
	}
}

func (c *Client) ID() domain.ConnID {
	return c.id
}

func (c *Client) Send(msg domain.Message) error {
	select {
	case <-c.done:
		return domain.ErrConnectionClosed
	default:
	}

	select {
	case c.send <- msg:
		return nil
	default:
		log.Warn().Str("client_id", c.id.String()).Str("event", string(msg.Event)).Msg("Send queue full, dropping message")
		return domain.ErrSendQueueFull
	}
}

// Close asks WritePump to send a close frame and release the socket. Only
// the first reason is kept.
func (c *Client) Close(reason domain.CloseReason) error {
	c.closeOnce.Do(func() {
		c.closeReason = reason
		close(c.done)
	})
	return nil
}

func (c *Client) Done() <-chan struct{} {
	return c.done
}

// WritePump owns every write to the socket. It returns once the client is
// closed or a write fails.
func (c *Client) WritePump() {
	var ping <-chan time.Time
	if c.cfg.PingInterval > 0 {
		ticker := time.NewTicker(c.cfg.PingInterval)
		defer ticker.Stop()
		ping = ticker.C
	}
	defer c.conn.Close()

	for {
		select {
		case <-c.done:
			WriteClose(c.conn, closeCode(c.closeReason), string(c.closeReason), c.cfg.WriteWait)
			return

		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(c.deadline())
			if err := c.conn.WriteJSON(msg); err != nil {
				log.Debug().Err(err).Str("client_id", c.id.String()).Msg("Write failed")
				c.Close(domain.CloseNormal)
				return
			}

		case <-ping:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, c.deadline()); err != nil {
				log.Debug().Err(err).Str("client_id", c.id.String()).Msg("Ping failed")
				c.Close(domain.CloseNormal)
				return
			}
		}
	}
}

func (c *Client) deadline() time.Time {
	if c.cfg.WriteWait <= 0 {
		return time.Time{}
	}
	return time.Now().Add(c.cfg.WriteWait)
}

// WriteClose sends a close frame without waiting for the peer's reply.
func WriteClose(conn *websocket.Conn, code int, reason string, wait time.Duration) {
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(wait))
}

func closeCode(reason domain.CloseReason) int {
	switch reason {
	case domain.CloseMissingIdentity, domain.CloseSuperseded:
		return websocket.ClosePolicyViolation
	case domain.CloseShutdown:
		return websocket.CloseGoingAway
	default:
		return websocket.CloseNormalClosure
	}
}
