package contacts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository needs. pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores contact records in the user_data table.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository initializes a repo backed by pgx.
func NewPostgresRepository(db DB) *PostgresRepository {
	if db == nil {
		panic("contacts: db required")
	}
	return &PostgresRepository{db: db}
}

// Create inserts a completed record and returns its id. All five collected
// fields must be present.
func (r *PostgresRepository) Create(ctx context.Context, rec *Record) (string, error) {
	if rec.Name == "" || rec.Phone == "" || rec.Email == "" || rec.Date == "" || rec.Time == "" {
		return "", ErrIncomplete
	}

	id := uuid.NewString()
	status := rec.Status
	if status == "" {
		status = StatusPending
	}

	query := `
		INSERT INTO user_data (id, name, phone, email, date, time, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		rec.Name,
		rec.Phone,
		rec.Email,
		rec.Date,
		rec.Time,
		status,
		time.Now().UTC(),
	).Scan(&createdAt); err != nil {
		return "", fmt.Errorf("contacts: insert failed: %w", err)
	}

	rec.ID = id
	rec.Status = status
	rec.CreatedAt = createdAt
	return id, nil
}

// FindIDByIdentity looks up the most recent record matching the
// name+phone+email tuple. Sessions that already carry a contact id should
// prefer it; this lookup exists for sessions that arrived with contact info
// but no stored id.
func (r *PostgresRepository) FindIDByIdentity(ctx context.Context, name, phone, email string) (string, error) {
	query := `
		SELECT id FROM user_data
		WHERE name = $1 AND phone = $2 AND email = $3
		ORDER BY created_at DESC
		LIMIT 1
	`
	var id string
	if err := r.db.QueryRow(ctx, query, name, phone, email).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("contacts: identity lookup failed: %w", err)
	}
	return id, nil
}

// MarkConfirmed flips a record's status once its appointment is booked.
func (r *PostgresRepository) MarkConfirmed(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `UPDATE user_data SET status = $1 WHERE id = $2`, StatusConfirmed, id)
	if err != nil {
		return fmt.Errorf("contacts: confirm failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListRecent returns the newest records first, for operator review.
func (r *PostgresRepository) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, name, phone, email, date, time, status, created_at
		FROM user_data
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("contacts: list failed: %w", err)
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Phone, &rec.Email,
			&rec.Date, &rec.Time, &rec.Status, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("contacts: scan failed: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
