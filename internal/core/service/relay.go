package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Wyydra/rendezvous/internal/core/domain"
	"github.com/Wyydra/rendezvous/internal/core/port"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// RelayService decides, for every inbound event, whether it is delivered,
// to whom, and what the sender hears back when it is not.
type RelayService struct {
	presence port.PresenceRegistry
	calls    port.CallTracker
	metrics  port.RelayMetrics
	validate *validator.Validate
}

func NewRelayService(presence port.PresenceRegistry, calls port.CallTracker, metrics port.RelayMetrics) *RelayService {
	return &RelayService{
		presence: presence,
		calls:    calls,
		metrics:  metrics,
		validate: validator.New(),
	}
}

// Connect binds identity to conn and acknowledges it. A connection that was
// previously bound to the same identity is closed.
func (s *RelayService) Connect(ctx context.Context, conn port.Connection, identity domain.Identity) error {
	if identity.IsZero() {
		return domain.ErrMissingIdentity
	}

	superseded := s.presence.Register(identity, conn)
	s.metrics.IdentityRegistered()

	log.Info().
		Str("public_key", identity.String()).
		Str("socket_id", conn.ID().String()).
		Msg("User registered")

	if err := s.send(conn, domain.EventRegistered, domain.Registered{
		SocketID:  conn.ID().String(),
		PublicKey: identity,
	}); err != nil {
		log.Warn().Err(err).Str("public_key", identity.String()).Msg("Failed to acknowledge registration")
	}

	if superseded != nil {
		log.Info().
			Str("public_key", identity.String()).
			Str("socket_id", superseded.ID().String()).
			Msg("Closing superseded connection")
		if err := superseded.Close(domain.CloseSuperseded); err != nil {
			log.Debug().Err(err).Msg("Failed to close superseded connection")
		}
	}
	return nil
}

// Disconnect purges conn. If its identity was negotiating, the peer is freed
// and told the call ended.
func (s *RelayService) Disconnect(ctx context.Context, conn port.Connection) {
	identity, ok := s.presence.Unregister(conn)
	if !ok {
		return
	}
	s.metrics.IdentityUnregistered()

	log.Info().
		Str("public_key", identity.String()).
		Str("socket_id", conn.ID().String()).
		Msg("User unregistered")

	// identity already came back on another connection; its calls are live
	if _, back := s.presence.Resolve(identity); back {
		return
	}

	peer, paired := s.calls.EndAllFor(identity)
	if !paired {
		return
	}
	s.notifyEnded(identity, peer)
}

// HandleEvent relays one inbound message. The returned error describes why a
// message was dropped; it is never reported to any client.
func (s *RelayService) HandleEvent(ctx context.Context, conn port.Connection, msg domain.Message) error {
	from, ok := s.presence.IdentityOf(conn)
	if !ok {
		s.metrics.EventDropped(msg.Event, port.DropUnregistered)
		return fmt.Errorf("%w: %s", domain.ErrUnregistered, conn.ID())
	}

	var err error
	switch msg.Event {
	case domain.EventOffer:
		err = s.offer(conn, from, msg.Data)
	case domain.EventAnswer:
		err = s.answer(conn, from, msg.Data)
	case domain.EventICECandidate:
		err = s.candidate(conn, from, msg.Data)
	case domain.EventCallRejected, domain.EventCallEnded:
		err = s.hangup(from, msg.Event, msg.Data)
	case domain.EventRequestOffer:
		err = s.requestOffer(conn, from, msg.Data)
	default:
		s.metrics.EventDropped(msg.Event, port.DropUnknownEvent)
		return fmt.Errorf("%w: %q", domain.ErrUnknownEvent, msg.Event)
	}

	if errors.Is(err, domain.ErrInvalidPayload) {
		s.metrics.EventDropped(msg.Event, port.DropMalformed)
	}
	return err
}

func (s *RelayService) offer(sender port.Connection, from domain.Identity, data json.RawMessage) error {
	req, err := decode[domain.OfferRequest](s.validate, from, data)
	if err != nil {
		return err
	}

	if _, ok := s.presence.Resolve(req.To); !ok {
		return s.reject(sender, domain.EventOffer, domain.EventUserNotFound, req.To)
	}

	admission := s.calls.TryBeginNegotiation(from, req.To)
	if !admission.Accepted() {
		log.Debug().Str("from", from.String()).Str("to", req.To.String()).Msg("Target busy")
		return s.reject(sender, domain.EventOffer, domain.EventBusy, req.To)
	}
	if !admission.Released.IsZero() {
		s.notifyEnded(from, admission.Released)
	}

	// the target may have left between the lookup and the admission
	target, ok := s.presence.Resolve(req.To)
	if !ok {
		s.calls.EndNegotiation(from, req.To)
		return s.reject(sender, domain.EventOffer, domain.EventUserNotFound, req.To)
	}

	log.Debug().Str("from", from.String()).Str("to", req.To.String()).Msg("Relaying offer")
	return s.forward(target, domain.EventOffer, domain.OfferEvent{
		From:     from,
		SDP:      req.SDP,
		CallType: req.CallType,
	})
}

func (s *RelayService) answer(sender port.Connection, from domain.Identity, data json.RawMessage) error {
	req, err := decode[domain.AnswerRequest](s.validate, from, data)
	if err != nil {
		return err
	}

	target, ok := s.presence.Resolve(req.To)
	if !ok {
		return s.reject(sender, domain.EventAnswer, domain.EventUserNotFound, req.To)
	}

	log.Debug().Str("from", from.String()).Str("to", req.To.String()).Msg("Relaying answer")
	return s.forward(target, domain.EventAnswer, domain.AnswerEvent{From: from, SDP: req.SDP})
}

func (s *RelayService) candidate(sender port.Connection, from domain.Identity, data json.RawMessage) error {
	req, err := decode[domain.CandidateRequest](s.validate, from, data)
	if err != nil {
		return err
	}

	target, ok := s.presence.Resolve(req.To)
	if !ok {
		return s.reject(sender, domain.EventICECandidate, domain.EventUserNotFound, req.To)
	}

	return s.forward(target, domain.EventICECandidate, domain.CandidateEvent{From: from, Candidate: req.Candidate})
}

// hangup handles call-rejected and call-ended. Both sides become idle even
// when the target is gone.
func (s *RelayService) hangup(from domain.Identity, event domain.EventName, data json.RawMessage) error {
	req, err := decode[domain.HangupRequest](s.validate, from, data)
	if err != nil {
		return err
	}

	for _, r := range s.calls.EndNegotiation(from, req.To) {
		s.notifyEnded(r.With, r.Peer)
	}

	target, ok := s.presence.Resolve(req.To)
	if !ok {
		return nil
	}

	log.Debug().Str("from", from.String()).Str("to", req.To.String()).Str("event", string(event)).Msg("Relaying hangup")
	return s.forward(target, event, domain.PeerEvent{From: from})
}

func (s *RelayService) requestOffer(sender port.Connection, from domain.Identity, data json.RawMessage) error {
	req, err := decode[domain.RequestOfferRequest](s.validate, from, data)
	if err != nil {
		return err
	}

	target, ok := s.presence.Resolve(req.From)
	if !ok {
		return s.reject(sender, domain.EventRequestOffer, domain.EventUserNotFound, req.From)
	}

	return s.forward(target, domain.EventRequestOffer, domain.PeerEvent{From: from})
}

// notifyEnded frees peer from a negotiation with gone and tells it so.
func (s *RelayService) notifyEnded(gone, peer domain.Identity) {
	target, ok := s.presence.Resolve(peer)
	if !ok {
		return
	}

	log.Debug().Str("from", gone.String()).Str("to", peer.String()).Msg("Notifying peer of ended call")
	if err := s.forward(target, domain.EventCallEnded, domain.PeerEvent{From: gone}); err != nil {
		log.Warn().Err(err).Str("public_key", peer.String()).Msg("Failed to notify peer")
	}
}

// reject answers the sender of event with a user-not-found or busy error.
func (s *RelayService) reject(sender port.Connection, event, reply domain.EventName, to domain.Identity) error {
	reason := port.DropUserNotFound
	if reply == domain.EventBusy {
		reason = port.DropBusy
	}
	s.metrics.EventDropped(event, reason)

	return s.send(sender, reply, domain.TargetEvent{To: to})
}

func (s *RelayService) forward(target port.Connection, event domain.EventName, payload any) error {
	if err := s.send(target, event, payload); err != nil {
		return err
	}
	s.metrics.EventRelayed(event)
	return nil
}

func (s *RelayService) send(conn port.Connection, event domain.EventName, payload any) error {
	msg, err := domain.NewMessage(event, payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", event, err)
	}

	if err := conn.Send(msg); err != nil {
		reason := port.DropClosed
		if errors.Is(err, domain.ErrSendQueueFull) {
			reason = port.DropQueueFull
		}
		s.metrics.EventDropped(event, reason)
		return fmt.Errorf("send %s to %s: %w", event, conn.ID(), err)
	}
	return nil
}

type targeted interface {
	Target() domain.Identity
}

func decode[T targeted](validate *validator.Validate, from domain.Identity, data json.RawMessage) (T, error) {
	var req T
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	if err := validate.Struct(req); err != nil {
		return req, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	if req.Target() == from {
		return req, fmt.Errorf("%w: %w", domain.ErrInvalidPayload, domain.ErrSelfTarget)
	}
	return req, nil
}
