package port

//go:generate go run go.uber.org/mock/mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks

import "github.com/Wyydra/rendezvous/internal/core/domain"

// Drop reasons reported to RelayMetrics.
const (
	DropUserNotFound = "user_not_found"
	DropBusy         = "busy"
	DropMalformed    = "malformed"
	DropUnknownEvent = "unknown_event"
	DropUnregistered = "unregistered"
	DropQueueFull    = "queue_full"
	DropClosed       = "closed"
	DropRateLimited  = "rate_limited"
)

type RelayMetrics interface {
	IdentityRegistered()
	IdentityUnregistered()
	EventRelayed(event domain.EventName)
	EventDropped(event domain.EventName, reason string)
}
