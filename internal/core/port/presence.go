package port

import "github.com/Wyydra/rendezvous/internal/core/domain"

type PresenceRegistry interface {
	// Register binds identity to conn, replacing any previous binding.
	// It returns the connection that was superseded, or nil.
	Register(identity domain.Identity, conn Connection) Connection
	Resolve(identity domain.Identity) (Connection, bool)
	IdentityOf(conn Connection) (domain.Identity, bool)
	// Unregister removes conn's binding and reports the identity it held.
	// It returns false when conn was already removed or superseded.
	Unregister(conn Connection) (domain.Identity, bool)
	Len() int
}
