package schedule

import (
	"context"
	"errors"
	"fmt"
)

// SlotGrid is the fixed set of daily appointment start times: nine hourly
// slots from 09:00 to 17:00 inclusive.
var SlotGrid = []string{
	"09:00", "10:00", "11:00",
	"12:00", "13:00", "14:00",
	"15:00", "16:00", "17:00",
}

// ErrInvalidDate is returned when a date string is not valid YYYY-MM-DD.
var ErrInvalidDate = errors.New("schedule: invalid date, expected YYYY-MM-DD")

// AppointmentSource reports which slots are already confirmed for a date.
type AppointmentSource interface {
	BookedTimes(ctx context.Context, date string) ([]string, error)
}

// Ledger answers slot availability questions against the appointment store.
type Ledger struct {
	appts AppointmentSource
}

// NewLedger creates a ledger backed by the given appointment source.
func NewLedger(appts AppointmentSource) *Ledger {
	if appts == nil {
		panic("schedule: appointment source required")
	}
	return &Ledger{appts: appts}
}

// AvailableSlots returns the slot grid minus every slot already confirmed
// for the date, preserving grid order. The date is validated first.
func (l *Ledger) AvailableSlots(ctx context.Context, date string) ([]string, error) {
	if !IsValidDate(date) {
		return nil, ErrInvalidDate
	}

	booked, err := l.appts.BookedTimes(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("schedule: load booked slots: %w", err)
	}

	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	available := make([]string, 0, len(SlotGrid))
	for _, slot := range SlotGrid {
		if _, ok := taken[slot]; !ok {
			available = append(available, slot)
		}
	}
	return available, nil
}
