package domain

import (
	"encoding/json"
)

type EventName string

const (
	EventRegistered   EventName = "registered"
	EventOffer        EventName = "offer"
	EventAnswer       EventName = "answer"
	EventICECandidate EventName = "ice-candidate"
	EventCallRejected EventName = "call-rejected"
	EventCallEnded    EventName = "call-ended"
	EventRequestOffer EventName = "request-offer"
	EventUserNotFound EventName = "user-not-found"
	EventBusy         EventName = "busy"
)

// Message is one frame on the wire in either direction.
type Message struct {
	Event EventName       `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func NewMessage(event EventName, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Event: event, Data: data}, nil
}

// Inbound payloads. sdp, candidate, callType and callerId are never parsed.

type OfferRequest struct {
	To       Identity        `json:"to" validate:"required"`
	SDP      json.RawMessage `json:"sdp"`
	CallType json.RawMessage `json:"callType"`
	CallerID json.RawMessage `json:"callerId,omitempty"`
}

func (r OfferRequest) Target() Identity { return r.To }

type AnswerRequest struct {
	To  Identity        `json:"to" validate:"required"`
	SDP json.RawMessage `json:"sdp"`
}

func (r AnswerRequest) Target() Identity { return r.To }

type CandidateRequest struct {
	To        Identity        `json:"to" validate:"required"`
	Candidate json.RawMessage `json:"candidate"`
}

func (r CandidateRequest) Target() Identity { return r.To }

// HangupRequest carries call-rejected and call-ended.
type HangupRequest struct {
	To Identity `json:"to" validate:"required"`
}

func (r HangupRequest) Target() Identity { return r.To }

// RequestOfferRequest names, in From, the identity asked to send an offer.
type RequestOfferRequest struct {
	From Identity `json:"from" validate:"required"`
}

func (r RequestOfferRequest) Target() Identity { return r.From }

// Outbound payloads.

type Registered struct {
	SocketID  string   `json:"socketId"`
	PublicKey Identity `json:"publicKey"`
}

type OfferEvent struct {
	From     Identity        `json:"from"`
	SDP      json.RawMessage `json:"sdp,omitempty"`
	CallType json.RawMessage `json:"callType,omitempty"`
}

type AnswerEvent struct {
	From Identity        `json:"from"`
	SDP  json.RawMessage `json:"sdp,omitempty"`
}

type CandidateEvent struct {
	From      Identity        `json:"from"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
}

// PeerEvent carries call-rejected, call-ended and request-offer.
type PeerEvent struct {
	From Identity `json:"from"`
}

// TargetEvent carries user-not-found and busy back to the sender.
type TargetEvent struct {
	To Identity `json:"to"`
}
