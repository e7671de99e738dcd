package contacts

import (
	"context"
	"testing"
	"time"

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

func TestCreateInsertsRecord(t *testing.T) {
	mock, repo := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO user_data").
		WithArgs(pgxmock.AnyArg(), "Jane Doe", "1234567890", "jane@example.com",
			"2025-06-20", "14:00", StatusPending, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))

	rec := &Record{
		Name:  "Jane Doe",
		Phone: "1234567890",
		Email: "jane@example.com",
		Date:  "2025-06-20",
		Time:  "14:00",
	}
	id, err := repo.Create(context.Background(), rec)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, StatusPending, rec.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRejectsIncompleteRecord(t *testing.T) {
	_, repo := newMockRepo(t)

	_, err := repo.Create(context.Background(), &Record{Name: "Jane"})
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestFindIDByIdentity(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery("SELECT id FROM user_data").
		WithArgs("Jane Doe", "1234567890", "jane@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("contact-1"))

	id, err := repo.FindIDByIdentity(context.Background(), "Jane Doe", "1234567890", "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "contact-1", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindIDByIdentityNotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery("SELECT id FROM user_data").
		WithArgs("Ghost", "0000000000", "ghost@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	_, err := repo.FindIDByIdentity(context.Background(), "Ghost", "0000000000", "ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkConfirmed(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec("UPDATE user_data SET status").
		WithArgs(StatusConfirmed, "contact-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.MarkConfirmed(context.Background(), "contact-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkConfirmedMissingRow(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec("UPDATE user_data SET status").
		WithArgs(StatusConfirmed, "nope").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	assert.ErrorIs(t, repo.MarkConfirmed(context.Background(), "nope"), ErrNotFound)
}

func TestListRecent(t *testing.T) {
	mock, repo := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT id, name, phone, email").
		WithArgs(2).
		WillReturnRows(pgxmock.NewRows(
			[]string{"id", "name", "phone", "email", "date", "time", "status", "created_at"}).
			AddRow("c2", "B", "2222222222", "b@x.co", "2025-06-21", "10:00", StatusPending, now).
			AddRow("c1", "A", "1111111111", "a@x.co", "2025-06-20", "09:00", StatusConfirmed, now.Add(-time.Hour)))

	records, err := repo.ListRecent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "c2", records[0].ID)
	assert.Equal(t, StatusConfirmed, records[1].Status)
}
