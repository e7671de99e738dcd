package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the Postgres error code raised when the partial unique
// index on (date, time) WHERE status='confirmed' rejects an insert.
const uniqueViolation = "23505"

// DB is the subset of pgxpool.Pool the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores appointments.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository initializes a repo backed by pgx.
func NewPostgresRepository(db DB) *PostgresRepository {
	if db == nil {
		panic("appointments: db required")
	}
	return &PostgresRepository{db: db}
}

// Create inserts one confirmed appointment. The availability check happens
// at the caller; the unique index is the backstop that turns a lost
// check-then-act race into ErrSlotTaken instead of a double booking.
func (r *PostgresRepository) Create(ctx context.Context, contactID, date, timeStr string) (*Appointment, error) {
	id := uuid.NewString()
	query := `
		INSERT INTO appointments (id, user_id, date, time, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	var createdAt time.Time
	err := r.db.QueryRow(ctx, query, id, contactID, date, timeStr, StatusConfirmed, time.Now().UTC()).
		Scan(&createdAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("appointments: insert failed: %w", err)
	}

	return &Appointment{
		ID:        id,
		ContactID: contactID,
		Date:      date,
		Time:      timeStr,
		Status:    StatusConfirmed,
		CreatedAt: createdAt,
	}, nil
}

// BookedTimes returns the confirmed slot times for a date, in slot order.
func (r *PostgresRepository) BookedTimes(ctx context.Context, date string) ([]string, error) {
	query := `
		SELECT time FROM appointments
		WHERE date = $1 AND status = $2
		ORDER BY time ASC
	`
	rows, err := r.db.Query(ctx, query, date, StatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("appointments: select booked failed: %w", err)
	}
	defer rows.Close()

	var times []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("appointments: scan failed: %w", err)
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

// Cancel marks an appointment cancelled, freeing its slot.
func (r *PostgresRepository) Cancel(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE appointments SET status = $1 WHERE id = $2 AND status = $3`,
		StatusCancelled, id, StatusConfirmed)
	if err != nil {
		return fmt.Errorf("appointments: cancel failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
