package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pinkeep/pinkeep_app/internal/apperrors"
	"github.com/pinkeep/pinkeep_app/internal/core/domain"
	portsrepo "github.com/pinkeep/pinkeep_app/internal/core/ports/repositories"
	"github.com/pinkeep/pinkeep_app/internal/models"
)

type PgxSessionRepository struct {
	db PGXQuerier
}

func newPgxSessionRepository(db PGXQuerier) portsrepo.SessionRepositoryFacade {
	return &PgxSessionRepository{db: db}
}

var _ portsrepo.SessionRepositoryFacade = (*PgxSessionRepository)(nil)

func toModelSession(d domain.SessionRecord) (models.SessionRecord, error) {
	m := models.SessionRecord{
		SessionID: d.SessionID,
		UserID:    d.UserID,
		ExpiresAt: d.ExpiresAt,
		CreatedAt: d.CreatedAt,
	}
	data := d.Data
	if data == nil {
		data = map[string]string{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return models.SessionRecord{}, fmt.Errorf("failed to marshal session data: %w", err)
	}
	m.Data = raw
	return m, nil
}

func toDomainSession(m models.SessionRecord) (domain.SessionRecord, error) {
	d := domain.SessionRecord{
		SessionID: m.SessionID,
		UserID:    m.UserID,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}
	if len(m.Data) > 0 {
		if err := json.Unmarshal(m.Data, &d.Data); err != nil {
			return domain.SessionRecord{}, fmt.Errorf("failed to unmarshal session data: %w", err)
		}
	}
	if d.Data == nil {
		d.Data = map[string]string{}
	}
	return d, nil
}

const sessionColumns = `session_id, user_id, data, expires_at, created_at`

func (r *PgxSessionRepository) CreateSession(ctx context.Context, session domain.SessionRecord) error {
	m, err := toModelSession(session)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO sessions (session_id, user_id, data, expires_at, created_at)
        VALUES ($1, $2, $3, $4, $5);
    `
	_, err = r.db.Exec(ctx, query, m.SessionID, m.UserID, m.Data, m.ExpiresAt, m.CreatedAt)
	if err != nil {
		if isPgErrorCode(err, foreignKeyViolationCode) {
			// Unknown user; callers see a generic creation failure.
			return fmt.Errorf("failed to create session: %w", apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *PgxSessionRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.SessionRecord, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE session_id = $1;`
	var m models.SessionRecord
	err := r.db.QueryRow(ctx, query, sessionID).Scan(
		&m.SessionID,
		&m.UserID,
		&m.Data,
		&m.ExpiresAt,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find session by ID %s: %w", sessionID, err)
	}
	d, err := toDomainSession(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PgxSessionRepository) UpdateSession(ctx context.Context, sessionID string, update portsrepo.SessionUpdate) (*domain.SessionRecord, error) {
	// COALESCE keeps absent fields untouched: nil parameters arrive as NULL.
	var rawData []byte
	if update.Data != nil {
		var err error
		rawData, err = json.Marshal(*update.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal session data: %w", err)
		}
	}
	query := `
        UPDATE sessions
        SET data = COALESCE($1, data), expires_at = COALESCE($2, expires_at)
        WHERE session_id = $3
        RETURNING ` + sessionColumns + `;
    `
	var m models.SessionRecord
	err := r.db.QueryRow(ctx, query, rawData, update.ExpiresAt, sessionID).Scan(
		&m.SessionID,
		&m.UserID,
		&m.Data,
		&m.ExpiresAt,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update session %s: %w", sessionID, err)
	}
	d, err := toDomainSession(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PgxSessionRepository) DeleteSession(ctx context.Context, sessionID string) (bool, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE session_id = $1;`, sessionID)
	if err != nil {
		return false, fmt.Errorf("failed to delete session: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *PgxSessionRepository) DeleteSessionsByUserID(ctx context.Context, userID string) (bool, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1;`, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete sessions for user: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *PgxSessionRepository) IsValidSession(ctx context.Context, sessionID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM sessions WHERE session_id = $1 AND expires_at > now());`
	var valid bool
	if err := r.db.QueryRow(ctx, query, sessionID).Scan(&valid); err != nil {
		return false, fmt.Errorf("failed to check session validity: %w", err)
	}
	return valid, nil
}

func (r *PgxSessionRepository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= now();`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
