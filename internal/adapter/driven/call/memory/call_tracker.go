package memory

import (
	"sync"

	"github.com/Wyydra/rendezvous/internal/core/domain"
)

// CallTracker records which identities are negotiating and with whom.
// Pairs are symmetric: peers[a] == b iff peers[b] == a.
type CallTracker struct {
	mu    sync.RWMutex
	peers map[domain.Identity]domain.Identity
}

func NewCallTracker() *CallTracker {
	return &CallTracker{
		peers: make(map[domain.Identity]domain.Identity),
	}
}

// TryBeginNegotiation pairs initiator and target unless target is already
// negotiating with someone else. A repeated offer between the same pair is
// accepted so calls can renegotiate.
func (t *CallTracker) TryBeginNegotiation(initiator, target domain.Identity) domain.Admission {
	t.mu.Lock()
	defer t.mu.Unlock()

	if initiator == target {
		return domain.Admission{Result: domain.AdmissionTargetBusy}
	}
	if peer, busy := t.peers[target]; busy && peer != initiator {
		return domain.Admission{Result: domain.AdmissionTargetBusy}
	}

	var released domain.Identity
	if prev, ok := t.peers[initiator]; ok && prev != target {
		t.unpairLocked(initiator)
		released = prev
	}

	t.peers[initiator] = target
	t.peers[target] = initiator

	return domain.Admission{Result: domain.AdmissionAccepted, Released: released}
}

// EndNegotiation sets a and b idle. A peer outside the pair that was
// negotiating with a or b is unpaired too and returned.
func (t *CallTracker) EndNegotiation(a, b domain.Identity) []domain.Release {
	t.mu.Lock()
	defer t.mu.Unlock()

	var released []domain.Release
	for _, id := range []domain.Identity{a, b} {
		if peer, ok := t.unpairLocked(id); ok && peer != a && peer != b {
			released = append(released, domain.Release{Peer: peer, With: id})
		}
	}
	return released
}

func (t *CallTracker) EndAllFor(identity domain.Identity) (domain.Identity, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.unpairLocked(identity)
}

func (t *CallTracker) State(identity domain.Identity) domain.CallState {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if _, ok := t.peers[identity]; ok {
		return domain.CallNegotiating
	}
	return domain.CallIdle
}

func (t *CallTracker) Peer(identity domain.Identity) (domain.Identity, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	peer, ok := t.peers[identity]
	return peer, ok
}

func (t *CallTracker) unpairLocked(identity domain.Identity) (domain.Identity, bool) {
	peer, ok := t.peers[identity]
	if !ok {
		return "", false
	}
	delete(t.peers, identity)
	if t.peers[peer] == identity {
		delete(t.peers, peer)
	}
	return peer, true
}
