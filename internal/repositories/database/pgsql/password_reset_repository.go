package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pinkeep/pinkeep_app/internal/apperrors"
	"github.com/pinkeep/pinkeep_app/internal/core/domain"
	portsrepo "github.com/pinkeep/pinkeep_app/internal/core/ports/repositories"
	"github.com/pinkeep/pinkeep_app/internal/models"
)

// rateLimitWindow is the interval over which reset requests are counted.
const rateLimitWindow = time.Hour

type PgxPasswordResetRepository struct {
	db PGXQuerier
}

func newPgxPasswordResetRepository(db PGXQuerier) portsrepo.PasswordResetRepositoryFacade {
	return &PgxPasswordResetRepository{db: db}
}

var _ portsrepo.PasswordResetRepositoryFacade = (*PgxPasswordResetRepository)(nil)

func toDomainResetToken(m models.PasswordResetToken) domain.PasswordResetToken {
	return domain.PasswordResetToken{
		TokenID:   m.TokenID,
		UserID:    m.UserID,
		TokenHash: m.TokenHash,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}
}

const resetTokenColumns = `token_id, user_id, token_hash, expires_at, created_at`

func (r *PgxPasswordResetRepository) FindResetTokenByHash(ctx context.Context, tokenHash string) (*domain.PasswordResetToken, error) {
	// Superseded rows (expires_at = created_at) read as missing, so a replaced
	// token is "invalid" to callers while a merely expired one is still found.
	query := `SELECT ` + resetTokenColumns + ` FROM password_reset_tokens WHERE token_hash = $1 AND expires_at > created_at;`
	var m models.PasswordResetToken
	err := r.db.QueryRow(ctx, query, tokenHash).Scan(
		&m.TokenID,
		&m.UserID,
		&m.TokenHash,
		&m.ExpiresAt,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reset token: %w", err)
	}
	d := toDomainResetToken(m)
	return &d, nil
}

func (r *PgxPasswordResetRepository) FindResetTokensByUserID(ctx context.Context, userID string) ([]domain.PasswordResetToken, error) {
	query := `SELECT ` + resetTokenColumns + ` FROM password_reset_tokens WHERE user_id = $1 ORDER BY created_at DESC;`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reset tokens: %w", err)
	}
	defer rows.Close()

	tokens := []domain.PasswordResetToken{}
	for rows.Next() {
		var m models.PasswordResetToken
		if err := rows.Scan(&m.TokenID, &m.UserID, &m.TokenHash, &m.ExpiresAt, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reset token row: %w", err)
		}
		tokens = append(tokens, toDomainResetToken(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating reset token rows: %w", rows.Err())
	}
	return tokens, nil
}

func (r *PgxPasswordResetRepository) CreateResetToken(ctx context.Context, token domain.PasswordResetToken) error {
	query := `
        INSERT INTO password_reset_tokens (token_id, user_id, token_hash, expires_at, created_at)
        VALUES ($1, $2, $3, $4, $5);
    `
	_, err := r.db.Exec(ctx, query, token.TokenID, token.UserID, token.TokenHash, token.ExpiresAt, token.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}
	return nil
}

// CreateSupersedingResetToken runs the rate-limit count, the supersede update,
// and the insert in one transaction holding a row lock on the user, so two
// concurrent requests for the same user serialize instead of both passing the
// count check.
func (r *PgxPasswordResetRepository) CreateSupersedingResetToken(ctx context.Context, token domain.PasswordResetToken, maxRecent int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin reset token transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	var lockedID string
	err = tx.QueryRow(ctx, `SELECT user_id FROM users WHERE user_id = $1 FOR UPDATE;`, token.UserID).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock user row: %w", err)
	}

	var recent int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM password_reset_tokens WHERE user_id = $1 AND created_at > $2;`,
		token.UserID, token.CreatedAt.Add(-rateLimitWindow),
	).Scan(&recent)
	if err != nil {
		return fmt.Errorf("failed to count recent reset tokens: %w", err)
	}
	if recent >= maxRecent {
		return apperrors.ErrTooManyResetRequests
	}

	// At most one usable token per user: issuing invalidates all prior tokens
	// in place rather than deleting them, so they keep counting against the
	// hourly limit until the expiry sweep removes them. A superseded row is
	// marked by expires_at = created_at, a state no live token can reach.
	if _, err := tx.Exec(ctx,
		`UPDATE password_reset_tokens SET expires_at = created_at WHERE user_id = $1 AND expires_at > created_at;`,
		token.UserID,
	); err != nil {
		return fmt.Errorf("failed to supersede prior reset tokens: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO password_reset_tokens (token_id, user_id, token_hash, expires_at, created_at) VALUES ($1, $2, $3, $4, $5);`,
		token.TokenID, token.UserID, token.TokenHash, token.ExpiresAt, token.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reset token: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit reset token transaction: %w", err)
	}
	return nil
}

func (r *PgxPasswordResetRepository) DeleteResetToken(ctx context.Context, tokenID string) (bool, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM password_reset_tokens WHERE token_id = $1;`, tokenID)
	if err != nil {
		return false, fmt.Errorf("failed to delete reset token: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *PgxPasswordResetRepository) DeleteResetTokensByUserID(ctx context.Context, userID string) (bool, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM password_reset_tokens WHERE user_id = $1;`, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete reset tokens for user: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *PgxPasswordResetRepository) IsValidResetToken(ctx context.Context, tokenHash string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM password_reset_tokens WHERE token_hash = $1 AND expires_at > now());`
	var valid bool
	if err := r.db.QueryRow(ctx, query, tokenHash).Scan(&valid); err != nil {
		return false, fmt.Errorf("failed to check reset token validity: %w", err)
	}
	return valid, nil
}

func (r *PgxPasswordResetRepository) DeleteExpiredResetTokens(ctx context.Context) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM password_reset_tokens WHERE expires_at <= now();`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired reset tokens: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
