package domain

import (
	"github.com/google/uuid"
)

// Identity is the public key an endpoint presents when it connects. It is
// opaque to the server.
type Identity string

func (id Identity) String() string {
	return string(id)
}

func (id Identity) IsZero() bool {
	return id == ""
}

// ConnID identifies one live connection. It is reported to the client as
// its socketId.
type ConnID uuid.UUID

func NewConnID() ConnID {
	return ConnID(uuid.New())
}

func (id ConnID) String() string {
	return uuid.UUID(id).String()
}
