package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *PostgresRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewPostgresRepository(mock)
}

func TestCreateConfirmedAppointment(t *testing.T) {
	mock, repo := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO appointments").
		WithArgs(pgxmock.AnyArg(), "contact-1", "2025-06-20", "14:00", StatusConfirmed, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))

	appt, err := repo.Create(context.Background(), "contact-1", "2025-06-20", "14:00")
	require.NoError(t, err)
	assert.Equal(t, "contact-1", appt.ContactID)
	assert.Equal(t, StatusConfirmed, appt.Status)
	assert.NotEmpty(t, appt.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTranslatesUniqueViolation(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO appointments").
		WithArgs(pgxmock.AnyArg(), "contact-1", "2025-06-20", "14:00", StatusConfirmed, pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "appointments_confirmed_slot_idx"})

	_, err := repo.Create(context.Background(), "contact-1", "2025-06-20", "14:00")
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestBookedTimes(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery("SELECT time FROM appointments").
		WithArgs("2025-06-20", StatusConfirmed).
		WillReturnRows(pgxmock.NewRows([]string{"time"}).AddRow("10:00").AddRow("15:00"))

	times, err := repo.BookedTimes(context.Background(), "2025-06-20")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "15:00"}, times)
}

func TestBookedTimesEmpty(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery("SELECT time FROM appointments").
		WithArgs("2025-06-21", StatusConfirmed).
		WillReturnRows(pgxmock.NewRows([]string{"time"}))

	times, err := repo.BookedTimes(context.Background(), "2025-06-21")
	require.NoError(t, err)
	assert.Empty(t, times)
}

func TestCancel(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec("UPDATE appointments SET status").
		WithArgs(StatusCancelled, "appt-1", StatusConfirmed).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.Cancel(context.Background(), "appt-1"))
}

func TestCancelMissingRow(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec("UPDATE appointments SET status").
		WithArgs(StatusCancelled, "nope", StatusConfirmed).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	assert.ErrorIs(t, repo.Cancel(context.Background(), "nope"), ErrNotFound)
}
