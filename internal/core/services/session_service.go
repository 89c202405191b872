package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pinkeep/pinkeep_app/internal/core/domain"
	portsrepo "github.com/pinkeep/pinkeep_app/internal/core/ports/repositories"
	portssvc "github.com/pinkeep/pinkeep_app/internal/core/ports/services"
)

// sessionService implements SessionSvcFacade over the session repository.
type sessionService struct {
	sessionRepo portsrepo.SessionRepositoryFacade
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(sessionRepo portsrepo.SessionRepositoryFacade) portssvc.SessionSvcFacade {
	return &sessionService{sessionRepo: sessionRepo}
}

func (s *sessionService) CreateSession(ctx context.Context, userID string, data map[string]string, ttl time.Duration) (*domain.SessionRecord, error) {
	now := time.Now()
	record := domain.SessionRecord{
		SessionID: uuid.NewString(),
		UserID:    userID,
		Data:      data,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if err := s.sessionRepo.CreateSession(ctx, record); err != nil {
		// A missing user surfaces here as a foreign-key violation; callers get
		// a generic creation error either way.
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &record, nil
}

func (s *sessionService) GetSession(ctx context.Context, sessionID string) (*domain.SessionRecord, error) {
	return s.sessionRepo.FindSessionByID(ctx, sessionID)
}

func (s *sessionService) UpdateSession(ctx context.Context, sessionID string, update portsrepo.SessionUpdate) (*domain.SessionRecord, error) {
	return s.sessionRepo.UpdateSession(ctx, sessionID, update)
}

func (s *sessionService) DeleteSession(ctx context.Context, sessionID string) (bool, error) {
	return s.sessionRepo.DeleteSession(ctx, sessionID)
}

func (s *sessionService) DeleteSessionsByUserID(ctx context.Context, userID string) (bool, error) {
	return s.sessionRepo.DeleteSessionsByUserID(ctx, userID)
}

func (s *sessionService) IsValidSession(ctx context.Context, sessionID string) (bool, error) {
	return s.sessionRepo.IsValidSession(ctx, sessionID)
}

func (s *sessionService) SweepExpired(ctx context.Context) (int64, error) {
	return s.sessionRepo.DeleteExpiredSessions(ctx)
}
