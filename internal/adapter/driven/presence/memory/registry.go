package memory

import (
	"slices"
	"sync"

	"github.com/Wyydra/rendezvous/internal/core/domain"
	"github.com/Wyydra/rendezvous/internal/core/port"
	"github.com/samber/lo"
)

// Registry is the in-memory presence directory. Both directions are updated
// under one lock so a lookup never sees half of a registration.
type Registry struct {
	mu         sync.RWMutex
	byIdentity map[domain.Identity]port.Connection
	byConn     map[domain.ConnID]domain.Identity
}

func NewRegistry() *Registry {
	return &Registry{
		byIdentity: make(map[domain.Identity]port.Connection),
		byConn:     make(map[domain.ConnID]domain.Identity),
	}
}

func (r *Registry) Register(identity domain.Identity, conn port.Connection) port.Connection {
	r.mu.Lock()
	defer r.mu.Unlock()

	connID := conn.ID()

	// conn was bound to another identity: drop that forward entry
	if prev, ok := r.byConn[connID]; ok && prev != identity {
		delete(r.byIdentity, prev)
	}

	old, had := r.byIdentity[identity]
	r.byIdentity[identity] = conn
	r.byConn[connID] = identity

	if had && old.ID() != connID {
		delete(r.byConn, old.ID())
		return old
	}
	return nil
}

func (r *Registry) Resolve(identity domain.Identity) (port.Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.byIdentity[identity]
	return conn, ok
}

func (r *Registry) IdentityOf(conn port.Connection) (domain.Identity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	identity, ok := r.byConn[conn.ID()]
	return identity, ok
}

func (r *Registry) Unregister(conn port.Connection) (domain.Identity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	connID := conn.ID()
	identity, ok := r.byConn[connID]
	if !ok {
		return "", false
	}
	delete(r.byConn, connID)

	if cur, ok := r.byIdentity[identity]; ok && cur.ID() == connID {
		delete(r.byIdentity, identity)
	}
	return identity, true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byIdentity)
}

// Identities returns the registered identities in sorted order.
func (r *Registry) Identities() []domain.Identity {
	r.mu.RLock()
	ids := lo.Keys(r.byIdentity)
	r.mu.RUnlock()

	slices.Sort(ids)
	return ids
}
