package booking

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/docchat-ai/docchat/internal/appointments"
	"github.com/docchat-ai/docchat/internal/contacts"
	"github.com/docchat-ai/docchat/internal/dialogue"
	"github.com/docchat-ai/docchat/internal/observability/metrics"
	"github.com/docchat-ai/docchat/internal/schedule"
	"github.com/docchat-ai/docchat/pkg/logging"
)

var bookingTracer = otel.Tracer("docchat.internal.booking")

// User-facing messages for each way a booking request can stop short.
const (
	msgNoDate            = "I couldn't understand the date. Please use a format like 'next Monday' or 'YYYY-MM-DD'."
	msgPickTime          = "Please specify a time (e.g., 'at 2:00 PM')."
	msgContactSaveFailed = "We couldn't save your information. Please try again later."
	msgSlotJustTaken     = "Sorry, that slot was just taken."
)

// DateExtractor parses free text into an ISO date.
type DateExtractor interface {
	Extract(text string) (string, bool)
}

// SlotSource answers availability for a date.
type SlotSource interface {
	AvailableSlots(ctx context.Context, date string) ([]string, error)
}

// ContactResolver finds or creates the contact row behind a session.
type ContactResolver interface {
	Create(ctx context.Context, rec *contacts.Record) (string, error)
	FindIDByIdentity(ctx context.Context, name, phone, email string) (string, error)
	MarkConfirmed(ctx context.Context, id string) error
}

// SlotBooker inserts confirmed appointments.
type SlotBooker interface {
	Create(ctx context.Context, contactID, date, timeStr string) (*appointments.Appointment, error)
}

// CollectionStarter hands the conversation over to the contact-collection
// flow when a booking arrives before contact info exists.
type CollectionStarter interface {
	Start(s *dialogue.Session) string
}

// Orchestrator handles one-shot booking requests ("book me for tomorrow at
// 3 PM"). It walks an early-return funnel: extract a date, make sure contact
// info exists, check availability, resolve the contact row, then book.
type Orchestrator struct {
	dates     DateExtractor
	slots     SlotSource
	contacts  ContactResolver
	appts     SlotBooker
	collector CollectionStarter
	metrics   *metrics.DialogueMetrics
	logger    *logging.Logger
}

// NewOrchestrator wires the funnel.
func NewOrchestrator(dates DateExtractor, slots SlotSource, contactStore ContactResolver, appts SlotBooker, collector CollectionStarter, m *metrics.DialogueMetrics, logger *logging.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.Default()
	}
	return &Orchestrator{
		dates:     dates,
		slots:     slots,
		contacts:  contactStore,
		appts:     appts,
		collector: collector,
		metrics:   m,
		logger:    logger,
	}
}

// Book processes a free-text booking request against the session. The
// returned string is always safe to show the user; a non-nil error means an
// infrastructure failure the caller should wrap.
func (o *Orchestrator) Book(ctx context.Context, s *dialogue.Session, text string) (string, error) {
	ctx, span := bookingTracer.Start(ctx, "booking.book")
	defer span.End()
	span.SetAttributes(attribute.String("docchat.session_id", s.ID))

	date, ok := o.dates.Extract(text)
	if !ok || !schedule.IsValidDate(date) {
		o.metrics.ObserveBooking("no_date")
		return msgNoDate, nil
	}
	span.SetAttributes(attribute.String("docchat.date", date))

	// No contact info yet: stash what the request already told us and let
	// the collection flow pick it back up at the date question.
	if !s.HasContactInfo() {
		s.PendingDate = date
		if t, ok := schedule.ExtractClockTime(text); ok {
			s.PendingTime = t
		}
		o.metrics.ObserveBooking("needs_contact")
		return o.collector.Start(s), nil
	}

	available, err := o.slots.AvailableSlots(ctx, date)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("booking: availability lookup: %w", err)
	}
	if len(available) == 0 {
		o.metrics.ObserveBooking("date_full")
		return dialogue.AvailabilityMenu(date, nil), nil
	}

	timeStr, ok := schedule.ExtractClockTime(text)
	if !ok {
		o.metrics.ObserveBooking("needs_time")
		return dialogue.AvailabilityMenu(date, available) + "\n" + msgPickTime, nil
	}
	if !slotAvailable(available, timeStr) {
		o.metrics.ObserveBooking("slot_unavailable")
		return dialogue.UnavailableTimeMenu(timeStr, date, available), nil
	}

	contactID, err := o.resolveContact(ctx, s, date, timeStr)
	if err != nil {
		span.RecordError(err)
		o.logger.Error("booking: contact resolution failed", "session_id", s.ID, "error", err)
		o.metrics.ObserveBooking("contact_save_failed")
		return msgContactSaveFailed, nil
	}
	s.ContactID = contactID

	if _, err := o.appts.Create(ctx, contactID, date, timeStr); err != nil {
		if errors.Is(err, appointments.ErrSlotTaken) {
			// Lost the race since the availability check.
			o.metrics.ObserveBooking("slot_taken")
			refreshed, lerr := o.slots.AvailableSlots(ctx, date)
			if lerr != nil {
				refreshed = nil
			}
			return msgSlotJustTaken + "\n" + dialogue.AvailabilityMenu(date, refreshed), nil
		}
		span.RecordError(err)
		return "", fmt.Errorf("booking: insert: %w", err)
	}

	// Status tracking only; the booking itself already succeeded.
	if err := o.contacts.MarkConfirmed(ctx, contactID); err != nil {
		o.logger.Error("booking: confirm status failed", "contact_id", contactID, "error", err)
	}

	o.metrics.ObserveBooking("booked")
	o.logger.Info("booking: appointment scheduled",
		"session_id", s.ID,
		"contact_id", contactID,
		"date", date,
		"time", timeStr,
	)

	return fmt.Sprintf("Your appointment is booked for %s at %s.\nName: %s\nPhone: %s\nEmail: %s",
		schedule.FormatDate(date), timeStr, s.Name, s.Phone, s.Email), nil
}

// resolveContact returns the contact row id for the session, preferring the
// id remembered on the session, then an identity lookup, then a fresh insert.
func (o *Orchestrator) resolveContact(ctx context.Context, s *dialogue.Session, date, timeStr string) (string, error) {
	if s.ContactID != "" {
		return s.ContactID, nil
	}

	id, err := o.contacts.FindIDByIdentity(ctx, s.Name, s.Phone, s.Email)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, contacts.ErrNotFound) {
		return "", err
	}

	rec := &contacts.Record{
		Name:   s.Name,
		Phone:  s.Phone,
		Email:  s.Email,
		Date:   date,
		Time:   timeStr,
		Status: contacts.StatusPending,
	}
	return o.contacts.Create(ctx, rec)
}

func slotAvailable(slots []string, t string) bool {
	for _, s := range slots {
		if s == t {
			return true
		}
	}
	return false
}
