package port

import "github.com/Wyydra/rendezvous/internal/core/domain"

type CallTracker interface {
	TryBeginNegotiation(initiator, target domain.Identity) domain.Admission
	// EndNegotiation sets a and b idle and reports any third identity that
	// lost its pairing with one of them.
	EndNegotiation(a, b domain.Identity) []domain.Release
	// EndAllFor clears identity and returns the peer it was negotiating with.
	EndAllFor(identity domain.Identity) (domain.Identity, bool)
	State(identity domain.Identity) domain.CallState
}
