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

type PgxAPITokenRepository struct {
	db PGXQuerier
}

func newPgxAPITokenRepository(db PGXQuerier) portsrepo.APITokenRepository {
	return &PgxAPITokenRepository{db: db}
}

var _ portsrepo.APITokenRepository = (*PgxAPITokenRepository)(nil)

func toDomainAPIToken(m models.APIToken) domain.APIToken {
	d := domain.APIToken{
		TokenID:   m.TokenID,
		UserID:    m.UserID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
	if m.ExpiresAt.Valid {
		t := m.ExpiresAt.Time
		d.ExpiresAt = &t
	}
	if m.LastUsedAt.Valid {
		t := m.LastUsedAt.Time
		d.LastUsedAt = &t
	}
	return d
}

const apiTokenColumns = `token_id, user_id, name, expires_at, last_used_at, created_at`

func (r *PgxAPITokenRepository) Create(ctx context.Context, token *domain.APIToken) error {
	query := `
        INSERT INTO api_tokens (token_id, user_id, name, expires_at, created_at)
        VALUES ($1, $2, $3, $4, $5);
    `
	_, err := r.db.Exec(ctx, query, token.TokenID, token.UserID, token.Name, token.ExpiresAt, token.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create API token: %w", err)
	}
	return nil
}

func (r *PgxAPITokenRepository) FindByID(ctx context.Context, tokenID string) (*domain.APIToken, error) {
	query := `SELECT ` + apiTokenColumns + ` FROM api_tokens WHERE token_id = $1;`
	var m models.APIToken
	err := r.db.QueryRow(ctx, query, tokenID).Scan(
		&m.TokenID,
		&m.UserID,
		&m.Name,
		&m.ExpiresAt,
		&m.LastUsedAt,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find API token: %w", err)
	}
	d := toDomainAPIToken(m)
	return &d, nil
}

func (r *PgxAPITokenRepository) FindByUserID(ctx context.Context, userID string) ([]domain.APIToken, error) {
	query := `SELECT ` + apiTokenColumns + ` FROM api_tokens WHERE user_id = $1 ORDER BY created_at DESC;`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query API tokens: %w", err)
	}
	defer rows.Close()

	tokens := []domain.APIToken{}
	for rows.Next() {
		var m models.APIToken
		if err := rows.Scan(&m.TokenID, &m.UserID, &m.Name, &m.ExpiresAt, &m.LastUsedAt, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan API token row: %w", err)
		}
		tokens = append(tokens, toDomainAPIToken(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating API token rows: %w", rows.Err())
	}
	return tokens, nil
}

func (r *PgxAPITokenRepository) TouchLastUsed(ctx context.Context, tokenID string, usedAt time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE api_tokens SET last_used_at = $1 WHERE token_id = $2;`, usedAt, tokenID)
	if err != nil {
		return fmt.Errorf("failed to touch API token: %w", err)
	}
	return nil
}

func (r *PgxAPITokenRepository) Delete(ctx context.Context, tokenID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM api_tokens WHERE token_id = $1;`, tokenID)
	if err != nil {
		return fmt.Errorf("failed to delete API token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAPITokenRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM api_tokens WHERE user_id = $1;`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete API tokens for user: %w", err)
	}
	return nil
}
