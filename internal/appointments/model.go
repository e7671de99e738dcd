package appointments

import (
	"errors"
	"time"
)

// Appointment status values.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Appointment is one booked (date, time) slot. At most one confirmed
// appointment may exist per (date, time); the storage layer enforces this
// with a partial unique index.
type Appointment struct {
	ID        string    `json:"id"`
	ContactID string    `json:"contact_id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Time      string    `json:"time"` // HH:MM, 24-hour
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

var (
	// ErrSlotTaken is returned when a confirmed appointment already holds
	// the requested (date, time) slot. Callers translate it into a
	// "that slot was just taken" reply.
	ErrSlotTaken = errors.New("appointment slot already taken")

	// ErrNotFound is returned when no confirmed appointment matches an id.
	ErrNotFound = errors.New("appointment not found")
)
