package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/docchat-ai/docchat/internal/appointments"
	"github.com/docchat-ai/docchat/internal/contacts"
	"github.com/docchat-ai/docchat/internal/schedule"
	"github.com/docchat-ai/docchat/pkg/logging"
)

// DateExtractor parses free text into an ISO date.
type DateExtractor interface {
	Extract(text string) (string, bool)
}

// ContactSaver persists completed contact records and tracks their status.
type ContactSaver interface {
	Create(ctx context.Context, rec *contacts.Record) (string, error)
	MarkConfirmed(ctx context.Context, id string) error
}

// SlotBooker inserts confirmed appointments.
type SlotBooker interface {
	Create(ctx context.Context, contactID, date, timeStr string) (*appointments.Appointment, error)
}

// SlotSource answers availability for a date.
type SlotSource interface {
	AvailableSlots(ctx context.Context, date string) ([]string, error)
}

// Collector walks a session through the fixed name -> phone -> email ->
// date -> time collection flow, validating each field and persisting the
// completed record.
type Collector struct {
	dates    DateExtractor
	slots    SlotSource
	contacts ContactSaver
	appts    SlotBooker
	logger   *logging.Logger
}

// NewCollector wires the collection flow.
func NewCollector(dates DateExtractor, slots SlotSource, contactStore ContactSaver, appts SlotBooker, logger *logging.Logger) *Collector {
	if logger == nil {
		logger = logging.Default()
	}
	return &Collector{
		dates:    dates,
		slots:    slots,
		contacts: contactStore,
		appts:    appts,
		logger:   logger,
	}
}

// Start begins (or restarts) the collection flow. Any previously collected
// fields are discarded; there is no resume.
func (c *Collector) Start(s *Session) string {
	s.resetCollection()
	s.Current = FieldName
	return promptName
}

// ProcessInput advances the flow with one user message and returns the
// reply. The router only calls this while s.Collecting() is true.
func (c *Collector) ProcessInput(ctx context.Context, s *Session, input string) string {
	switch s.Current {
	case FieldName:
		s.Name = strings.TrimSpace(input)
		if s.Name == "" {
			return promptName
		}
		s.Current = FieldPhone
		return promptPhone

	case FieldPhone:
		phone, ok := contacts.NormalizePhone(input)
		if !ok {
			return promptPhoneRetry
		}
		s.Phone = phone
		s.Current = FieldEmail
		return promptEmail

	case FieldEmail:
		email := strings.TrimSpace(input)
		if !contacts.ValidEmail(email) {
			return promptEmailRetry
		}
		s.Email = email
		s.Current = FieldDate
		if reply, ok := c.consumePending(ctx, s); ok {
			return reply
		}
		return promptDate

	case FieldDate:
		date, ok := c.dates.Extract(input)
		if !ok {
			return promptDateRetry
		}
		s.Date = date
		s.Current = FieldTime
		return promptTime

	case FieldTime:
		return c.finishWithTime(ctx, s, input)
	}

	// FieldNone: the router gates on Collecting(), so this is unreachable
	// in normal operation.
	return promptName
}

// consumePending applies a date/time stashed by an earlier booking request,
// skipping the questions the user already answered.
func (c *Collector) consumePending(ctx context.Context, s *Session) (string, bool) {
	if s.PendingDate == "" || !schedule.IsValidDate(s.PendingDate) {
		s.PendingDate = ""
		s.PendingTime = ""
		return "", false
	}

	s.Date = s.PendingDate
	s.PendingDate = ""
	s.Current = FieldTime

	if s.PendingTime != "" {
		pending := s.PendingTime
		s.PendingTime = ""
		return c.finishWithTime(ctx, s, pending), true
	}

	return fmt.Sprintf("I have your appointment date as %s. %s",
		schedule.FormatDate(s.Date), promptTime), true
}

// finishWithTime validates the chosen time against current availability,
// persists the record, and books the slot.
func (c *Collector) finishWithTime(ctx context.Context, s *Session, input string) string {
	timeStr, ok := schedule.ParseClockTime(input)
	if !ok {
		return promptTimeRetry
	}

	// Availability is recomputed here, never cached from an earlier turn.
	available, err := c.slots.AvailableSlots(ctx, s.Date)
	if err != nil {
		c.logger.Error("collector: availability lookup failed", "session_id", s.ID, "error", err)
		s.Current = FieldNone
		return msgSaveFailed
	}
	if !containsSlot(available, timeStr) {
		return UnavailableTimeMenu(timeStr, s.Date, available)
	}

	s.Time = timeStr

	if s.ContactID == "" {
		rec := &contacts.Record{
			Name:   s.Name,
			Phone:  s.Phone,
			Email:  s.Email,
			Date:   s.Date,
			Time:   s.Time,
			Status: contacts.StatusPending,
		}
		id, err := c.contacts.Create(ctx, rec)
		if err != nil {
			c.logger.Error("collector: save failed", "session_id", s.ID, "error", err)
			s.Current = FieldNone
			return msgSaveFailed
		}
		s.ContactID = id
	}

	if _, err := c.appts.Create(ctx, s.ContactID, s.Date, s.Time); err != nil {
		if errors.Is(err, appointments.ErrSlotTaken) {
			// Lost the race since the availability check; re-list and let
			// the user pick again. The saved contact is reused on retry.
			refreshed, lerr := c.slots.AvailableSlots(ctx, s.Date)
			if lerr != nil {
				refreshed = nil
			}
			return msgSlotJustTaken + "\n" + AvailabilityMenu(s.Date, refreshed)
		}
		c.logger.Error("collector: booking failed", "session_id", s.ID, "error", err)
		s.Current = FieldNone
		return msgBookingFailed
	}

	// Status tracking only; the booking itself already succeeded.
	if err := c.contacts.MarkConfirmed(ctx, s.ContactID); err != nil {
		c.logger.Error("collector: confirm status failed", "contact_id", s.ContactID, "error", err)
	}

	c.logger.Info("collector: appointment scheduled",
		"session_id", s.ID,
		"contact_id", s.ContactID,
		"date", s.Date,
		"time", s.Time,
	)

	reply := fmt.Sprintf("Thank you %s! Your appointment is scheduled on %s (%s) at %s.",
		s.Name, s.Date, schedule.WeekdayName(s.Date), s.Time)

	s.Current = FieldNone
	s.Date = ""
	s.Time = ""
	s.PendingDate = ""
	s.PendingTime = ""
	return reply
}

func containsSlot(slots []string, t string) bool {
	for _, s := range slots {
		if s == t {
			return true
		}
	}
	return false
}
