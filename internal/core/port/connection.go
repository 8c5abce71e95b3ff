package port

//go:generate go run go.uber.org/mock/mockgen -source=connection.go -destination=mocks/mock_connection.go -package=mocks

import "github.com/Wyydra/rendezvous/internal/core/domain"

// Connection is a live duplex channel to one endpoint. Send must not block.
type Connection interface {
	ID() domain.ConnID
	Send(msg domain.Message) error
	Close(reason domain.CloseReason) error
}
