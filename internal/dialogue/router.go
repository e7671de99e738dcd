package dialogue

import (
	"context"
	"strings"

	"github.com/docchat-ai/docchat/internal/observability/metrics"
	"github.com/docchat-ai/docchat/pkg/logging"
)

// Answerer is the document-Q&A collaborator. Failures are caught and turned
// into a user-facing message; they never crash the dialogue.
type Answerer interface {
	Answer(ctx context.Context, query string) (string, error)
}

// Booker handles free-text booking requests.
type Booker interface {
	Book(ctx context.Context, s *Session, text string) (string, error)
}

// Trigger keyword sets, checked in this order. Substring matching by
// deliberate design: a message matching both sets takes the collection
// branch because it is checked first.
var (
	collectTriggers = []string{"call me", "contact me"}
	bookingTriggers = []string{"book", "schedule", "appointment", "meeting"}
)

// Router dispatches each inbound message: continue an in-progress
// collection, trigger collection, trigger booking, or fall through to
// document Q&A.
type Router struct {
	collector *Collector
	booker    Booker
	qa        Answerer
	dates     DateExtractor
	metrics   *metrics.DialogueMetrics
	logger    *logging.Logger
}

// NewRouter wires the dispatcher.
func NewRouter(collector *Collector, booker Booker, qa Answerer, dates DateExtractor, m *metrics.DialogueMetrics, logger *logging.Logger) *Router {
	if logger == nil {
		logger = logging.Default()
	}
	return &Router{
		collector: collector,
		booker:    booker,
		qa:        qa,
		dates:     dates,
		metrics:   m,
		logger:    logger,
	}
}

// Route processes one message against the session and returns the reply.
func (r *Router) Route(ctx context.Context, s *Session, message string) string {
	lower := strings.ToLower(message)

	// 1. An in-progress collection consumes every message verbatim.
	if s.Collecting() {
		r.metrics.ObserveRoute("collecting")
		return r.collector.ProcessInput(ctx, s, message)
	}

	// 2. Contact-request triggers.
	if containsAny(lower, collectTriggers) {
		r.metrics.ObserveRoute("collect_start")
		return r.collector.Start(s)
	}

	// 3. Booking triggers. With a recognizable date the orchestrator takes
	// over; without one we skip straight to collection.
	if containsAny(lower, bookingTriggers) {
		if _, ok := r.dates.Extract(message); ok {
			r.metrics.ObserveRoute("booking")
			reply, err := r.booker.Book(ctx, s, message)
			if err != nil {
				r.logger.Error("router: booking failed", "session_id", s.ID, "error", err)
				return msgBookingErrored
			}
			return reply
		}
		r.metrics.ObserveRoute("collect_start")
		return r.collector.Start(s)
	}

	// 4. Everything else is a document question.
	r.metrics.ObserveRoute("qa")
	answer, err := r.qa.Answer(ctx, message)
	if err != nil {
		r.logger.Error("router: qa failed", "session_id", s.ID, "error", err)
		return msgQAFailed
	}
	return answer
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
