package contacts

import "time"

// Record status values. A record starts pending and is marked confirmed
// once an appointment is booked against it.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
)

// Record is a completed contact collection: identity plus the appointment
// date/time gathered in the same flow. Immutable once persisted except for
// status.
type Record struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"` // 10-15 digits, no formatting characters
	Email     string    `json:"email"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Time      string    `json:"time"` // HH:MM, 24-hour
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
