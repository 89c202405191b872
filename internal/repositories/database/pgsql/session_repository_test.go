package pgsql

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinkeep/pinkeep_app/internal/apperrors"
	"github.com/pinkeep/pinkeep_app/internal/core/domain"
)

func TestPgxSessionRepository_CreateSession(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	session := domain.SessionRecord{
		SessionID: "sess-1",
		UserID:    "u1",
		Data:      map[string]string{"theme": "dark"},
		ExpiresAt: now.Add(24 * time.Hour),
		CreatedAt: now,
	}

	mock.ExpectExec(`INSERT INTO sessions`).
		WithArgs("sess-1", "u1", []byte(`{"theme":"dark"}`), session.ExpiresAt, session.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := newPgxSessionRepository(mock)
	require.NoError(t, repo.CreateSession(context.Background(), session))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxSessionRepository_CreateSession_NilDataStoresEmptyObject(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	session := domain.SessionRecord{
		SessionID: "sess-1",
		UserID:    "u1",
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
	}

	mock.ExpectExec(`INSERT INTO sessions`).
		WithArgs("sess-1", "u1", []byte(`{}`), session.ExpiresAt, session.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := newPgxSessionRepository(mock)
	require.NoError(t, repo.CreateSession(context.Background(), session))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxSessionRepository_FindSessionByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	expiresAt := now.Add(24 * time.Hour)
	rows := pgxmock.NewRows([]string{"session_id", "user_id", "data", "expires_at", "created_at"}).
		AddRow("sess-1", "u1", []byte(`{"theme":"dark"}`), expiresAt, now)
	mock.ExpectQuery(`SELECT session_id, user_id, data, expires_at, created_at FROM sessions WHERE session_id`).
		WithArgs("sess-1").
		WillReturnRows(rows)

	repo := newPgxSessionRepository(mock)
	got, err := repo.FindSessionByID(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, map[string]string{"theme": "dark"}, got.Data)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxSessionRepository_FindSessionByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT session_id, user_id, data, expires_at, created_at FROM sessions`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"session_id", "user_id", "data", "expires_at", "created_at"}))

	repo := newPgxSessionRepository(mock)
	_, err = repo.FindSessionByID(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxSessionRepository_DeleteSession(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM sessions WHERE session_id`).
		WithArgs("sess-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM sessions WHERE session_id`).
		WithArgs("sess-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := newPgxSessionRepository(mock)

	deleted, err := repo.DeleteSession(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.True(t, deleted)

	// Second delete of the same id removes nothing but is not an error.
	deleted, err = repo.DeleteSession(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.False(t, deleted)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxSessionRepository_IsValidSession(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("sess-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	repo := newPgxSessionRepository(mock)
	valid, err := repo.IsValidSession(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.True(t, valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxSessionRepository_DeleteExpiredSessions(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM sessions WHERE expires_at`).
		WillReturnResult(pgxmock.NewResult("DELETE", 7))

	repo := newPgxSessionRepository(mock)
	n, err := repo.DeleteExpiredSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
