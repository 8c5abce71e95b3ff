package domain

import "errors"

var (
	ErrMissingIdentity  = errors.New("missing public key")
	ErrUnregistered     = errors.New("connection has no registered identity")
	ErrUnknownEvent     = errors.New("unknown event")
	ErrInvalidPayload   = errors.New("invalid payload")
	ErrSelfTarget       = errors.New("event targets its own sender")
	ErrSendQueueFull    = errors.New("send queue full")
	ErrConnectionClosed = errors.New("connection closed")
)

// CloseReason is sent to a client in the close frame when the server ends
// its connection.
type CloseReason string

const (
	CloseNormal          CloseReason = ""
	CloseMissingIdentity CloseReason = "missing publicKey"
	CloseSuperseded      CloseReason = "superseded"
	CloseShutdown        CloseReason = "server shutting down"
)
