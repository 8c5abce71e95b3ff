package domain

type CallState int

const (
	CallIdle CallState = iota
	CallNegotiating
)

func (s CallState) String() string {
	switch s {
	case CallIdle:
		return "idle"
	case CallNegotiating:
		return "negotiating"
	default:
		return "unknown"
	}
}

type AdmissionResult int

const (
	AdmissionAccepted AdmissionResult = iota
	AdmissionTargetBusy
)

// Admission is the outcome of asking to start a negotiation.
//
// Released is set when the initiator was still paired with someone else; that
// pairing is dissolved by the admission and the released identity should be
// told the call is over.
type Admission struct {
	Result   AdmissionResult
	Released Identity
}

func (a Admission) Accepted() bool {
	return a.Result == AdmissionAccepted
}

// Release names a peer whose negotiation with With was dissolved as a side
// effect of ending someone else's.
type Release struct {
	Peer Identity
	With Identity
}
