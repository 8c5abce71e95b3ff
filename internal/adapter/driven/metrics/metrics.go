package metrics

import (
	"net/http"

	"github.com/Wyydra/rendezvous/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rendezvous"

// Prometheus implements port.RelayMetrics.
type Prometheus struct {
	registered   prometheus.Counter
	unregistered prometheus.Counter
	relayed      *prometheus.CounterVec
	dropped      *prometheus.CounterVec
}

// NewPrometheus registers the relay collectors on reg. online reports the
// number of identities currently present.
func NewPrometheus(reg prometheus.Registerer, online func() int) *Prometheus {
	m := &Prometheus{
		registered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Identities registered.",
		}),
		unregistered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unregistrations_total",
			Help:      "Identities removed on disconnect.",
		}),
		relayed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_relayed_total",
			Help:      "Events delivered to their target.",
		}, []string{"event"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dropped_total",
			Help:      "Events not delivered, by reason.",
		}, []string{"event", "reason"}),
	}

	reg.MustRegister(m.registered, m.unregistered, m.relayed, m.dropped)
	if online != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "identities_online",
			Help:      "Identities with a live connection.",
		}, func() float64 {
			return float64(online())
		}))
	}
	return m
}

func (m *Prometheus) IdentityRegistered() {
	m.registered.Inc()
}

func (m *Prometheus) IdentityUnregistered() {
	m.unregistered.Inc()
}

func (m *Prometheus) EventRelayed(event domain.EventName) {
	m.relayed.WithLabelValues(eventLabel(event)).Inc()
}

func (m *Prometheus) EventDropped(event domain.EventName, reason string) {
	m.dropped.WithLabelValues(eventLabel(event), reason).Inc()
}

// Handler serves the collectors gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// eventLabel bounds label cardinality: names a client invents are folded
// into "unknown".
func eventLabel(event domain.EventName) string {
	switch event {
	case domain.EventRegistered, domain.EventOffer, domain.EventAnswer,
		domain.EventICECandidate, domain.EventCallRejected, domain.EventCallEnded,
		domain.EventRequestOffer, domain.EventUserNotFound, domain.EventBusy:
		return string(event)
	default:
		return "unknown"
	}
}
