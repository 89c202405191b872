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

func testResetToken(now time.Time) domain.PasswordResetToken {
	return domain.PasswordResetToken{
		TokenID:   "tok-1",
		UserID:    "u1",
		TokenHash: "aa11bb22cc33",
		ExpiresAt: now.Add(15 * time.Minute),
		CreatedAt: now,
	}
}

func TestPgxPasswordResetRepository_CreateSupersedingResetToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	token := testResetToken(now)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT user_id FROM users WHERE user_id = \$1 FOR UPDATE`).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow("u1"))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM password_reset_tokens`).
		WithArgs("u1", token.CreatedAt.Add(-time.Hour)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(`UPDATE password_reset_tokens SET expires_at = created_at WHERE user_id`).
		WithArgs("u1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`INSERT INTO password_reset_tokens`).
		WithArgs("tok-1", "u1", "aa11bb22cc33", token.ExpiresAt, token.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()
	mock.ExpectRollback() // deferred rollback after commit is a no-op

	repo := newPgxPasswordResetRepository(mock)
	require.NoError(t, repo.CreateSupersedingResetToken(context.Background(), token, 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxPasswordResetRepository_CreateSupersedingResetToken_RateLimited(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	token := testResetToken(now)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT user_id FROM users WHERE user_id = \$1 FOR UPDATE`).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow("u1"))
	// Three tokens already issued inside the window: the fourth is refused.
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM password_reset_tokens`).
		WithArgs("u1", token.CreatedAt.Add(-time.Hour)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectRollback()

	repo := newPgxPasswordResetRepository(mock)
	err = repo.CreateSupersedingResetToken(context.Background(), token, 3)
	assert.ErrorIs(t, err, apperrors.ErrTooManyResetRequests)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxPasswordResetRepository_CreateSupersedingResetToken_UnknownUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	token := testResetToken(now)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT user_id FROM users WHERE user_id = \$1 FOR UPDATE`).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}))
	mock.ExpectRollback()

	repo := newPgxPasswordResetRepository(mock)
	err = repo.CreateSupersedingResetToken(context.Background(), token, 3)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxPasswordResetRepository_FindResetTokenByHash(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	rows := pgxmock.NewRows([]string{"token_id", "user_id", "token_hash", "expires_at", "created_at"}).
		AddRow("tok-1", "u1", "aa11bb22cc33", now.Add(15*time.Minute), now)
	mock.ExpectQuery(`SELECT token_id, user_id, token_hash, expires_at, created_at FROM password_reset_tokens WHERE token_hash = \$1 AND expires_at > created_at`).
		WithArgs("aa11bb22cc33").
		WillReturnRows(rows)

	repo := newPgxPasswordResetRepository(mock)
	got, err := repo.FindResetTokenByHash(context.Background(), "aa11bb22cc33")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got.TokenID)
	assert.Equal(t, "u1", got.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxPasswordResetRepository_FindResetTokenByHash_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT token_id, user_id, token_hash, expires_at, created_at FROM password_reset_tokens`).
		WithArgs("unknown-hash").
		WillReturnRows(pgxmock.NewRows([]string{"token_id", "user_id", "token_hash", "expires_at", "created_at"}))

	repo := newPgxPasswordResetRepository(mock)
	_, err = repo.FindResetTokenByHash(context.Background(), "unknown-hash")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxPasswordResetRepository_DeleteResetToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM password_reset_tokens WHERE token_id`).
		WithArgs("tok-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	repo := newPgxPasswordResetRepository(mock)
	deleted, err := repo.DeleteResetToken(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxPasswordResetRepository_IsValidResetToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("aa11bb22cc33").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	repo := newPgxPasswordResetRepository(mock)
	valid, err := repo.IsValidResetToken(context.Background(), "aa11bb22cc33")
	require.NoError(t, err)
	assert.False(t, valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxPasswordResetRepository_DeleteExpiredResetTokens(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM password_reset_tokens WHERE expires_at`).
		WillReturnResult(pgxmock.NewResult("DELETE", 4))

	repo := newPgxPasswordResetRepository(mock)
	n, err := repo.DeleteExpiredResetTokens(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
