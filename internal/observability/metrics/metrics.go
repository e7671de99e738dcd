package metrics

import "github.com/prometheus/client_golang/prometheus"

// DialogueMetrics exposes counters for the dialogue and booking flows.
type DialogueMetrics struct {
	messagesTotal  *prometheus.CounterVec
	bookingsTotal  *prometheus.CounterVec
	documentsTotal prometheus.Counter
	chunksTotal    prometheus.Counter
}

func NewDialogueMetrics(reg prometheus.Registerer) *DialogueMetrics {
	m := &DialogueMetrics{
		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "docchat",
			Subsystem: "dialogue",
			Name:      "messages_total",
			Help:      "Inbound messages by routing decision",
		}, []string{"route"}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "docchat",
			Subsystem: "booking",
			Name:      "attempts_total",
			Help:      "Booking attempts by outcome",
		}, []string{"outcome"}),
		documentsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "docchat",
			Subsystem: "rag",
			Name:      "documents_ingested_total",
			Help:      "Documents accepted for indexing",
		}),
		chunksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "docchat",
			Subsystem: "rag",
			Name:      "chunks_ingested_total",
			Help:      "Chunks produced by the splitter",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.messagesTotal, m.bookingsTotal, m.documentsTotal, m.chunksTotal)
	return m
}

// ObserveRoute records which branch the router took for a message.
func (m *DialogueMetrics) ObserveRoute(route string) {
	if m == nil {
		return
	}
	m.messagesTotal.WithLabelValues(route).Inc()
}

// ObserveBooking records a booking attempt outcome.
func (m *DialogueMetrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(outcome).Inc()
}

// ObserveIngest records one ingested document and its chunk count.
func (m *DialogueMetrics) ObserveIngest(chunks int) {
	if m == nil {
		return
	}
	m.documentsTotal.Inc()
	m.chunksTotal.Add(float64(chunks))
}
