package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/pinkeep/pinkeep_app/internal/core/domain"
	portsrepo "github.com/pinkeep/pinkeep_app/internal/core/ports/repositories"
	portssvc "github.com/pinkeep/pinkeep_app/internal/core/ports/services"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) FindUserByEmailHash(ctx context.Context, emailHash string) (*domain.User, error) {
	args := m.Called(ctx, emailHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, userID string, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}
func (m *MockUserRepository) UpdateEmailHash(ctx context.Context, userID string, emailHash string) error {
	args := m.Called(ctx, userID, emailHash)
	return args.Error(0)
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

// --- Mock SessionRepository ---
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) CreateSession(ctx context.Context, session domain.SessionRecord) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}
func (m *MockSessionRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.SessionRecord, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionRecord), args.Error(1)
}
func (m *MockSessionRepository) UpdateSession(ctx context.Context, sessionID string, update portsrepo.SessionUpdate) (*domain.SessionRecord, error) {
	args := m.Called(ctx, sessionID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionRecord), args.Error(1)
}
func (m *MockSessionRepository) DeleteSession(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}
func (m *MockSessionRepository) DeleteSessionsByUserID(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockSessionRepository) IsValidSession(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}
func (m *MockSessionRepository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ portsrepo.SessionRepositoryFacade = (*MockSessionRepository)(nil)

// --- Mock PasswordResetRepository ---
type MockPasswordResetRepository struct {
	mock.Mock
}

func (m *MockPasswordResetRepository) FindResetTokenByHash(ctx context.Context, tokenHash string) (*domain.PasswordResetToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PasswordResetToken), args.Error(1)
}
func (m *MockPasswordResetRepository) FindResetTokensByUserID(ctx context.Context, userID string) ([]domain.PasswordResetToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PasswordResetToken), args.Error(1)
}
func (m *MockPasswordResetRepository) CreateResetToken(ctx context.Context, token domain.PasswordResetToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
func (m *MockPasswordResetRepository) CreateSupersedingResetToken(ctx context.Context, token domain.PasswordResetToken, maxRecent int) error {
	args := m.Called(ctx, token, maxRecent)
	return args.Error(0)
}
func (m *MockPasswordResetRepository) DeleteResetToken(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}
func (m *MockPasswordResetRepository) DeleteResetTokensByUserID(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockPasswordResetRepository) IsValidResetToken(ctx context.Context, tokenHash string) (bool, error) {
	args := m.Called(ctx, tokenHash)
	return args.Bool(0), args.Error(1)
}
func (m *MockPasswordResetRepository) DeleteExpiredResetTokens(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ portsrepo.PasswordResetRepositoryFacade = (*MockPasswordResetRepository)(nil)

// --- Mock APITokenRepository ---
type MockAPITokenRepository struct {
	mock.Mock
}

func (m *MockAPITokenRepository) Create(ctx context.Context, token *domain.APIToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
func (m *MockAPITokenRepository) FindByID(ctx context.Context, tokenID string) (*domain.APIToken, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIToken), args.Error(1)
}
func (m *MockAPITokenRepository) FindByUserID(ctx context.Context, userID string) ([]domain.APIToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.APIToken), args.Error(1)
}
func (m *MockAPITokenRepository) TouchLastUsed(ctx context.Context, tokenID string, usedAt time.Time) error {
	args := m.Called(ctx, tokenID, usedAt)
	return args.Error(0)
}
func (m *MockAPITokenRepository) Delete(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}
func (m *MockAPITokenRepository) DeleteByUserID(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

var _ portsrepo.APITokenRepository = (*MockAPITokenRepository)(nil)

// --- Mock EmailSender ---
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendPasswordResetEmail(ctx context.Context, email, plaintextToken, resetURLBase string) error {
	args := m.Called(ctx, email, plaintextToken, resetURLBase)
	return args.Error(0)
}

var _ portssvc.EmailSender = (*MockEmailSender)(nil)

// --- Mock SessionService ---
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) CreateSession(ctx context.Context, userID string, data map[string]string, ttl time.Duration) (*domain.SessionRecord, error) {
	args := m.Called(ctx, userID, data, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionRecord), args.Error(1)
}
func (m *MockSessionService) GetSession(ctx context.Context, sessionID string) (*domain.SessionRecord, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionRecord), args.Error(1)
}
func (m *MockSessionService) UpdateSession(ctx context.Context, sessionID string, update portsrepo.SessionUpdate) (*domain.SessionRecord, error) {
	args := m.Called(ctx, sessionID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionRecord), args.Error(1)
}
func (m *MockSessionService) DeleteSession(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}
func (m *MockSessionService) DeleteSessionsByUserID(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockSessionService) IsValidSession(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}
func (m *MockSessionService) SweepExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ portssvc.SessionSvcFacade = (*MockSessionService)(nil)

// --- Mock PasswordResetService ---
type MockPasswordResetService struct {
	mock.Mock
}

func (m *MockPasswordResetService) RequestReset(ctx context.Context, email, resetURLBase string) (string, error) {
	args := m.Called(ctx, email, resetURLBase)
	return args.String(0), args.Error(1)
}
func (m *MockPasswordResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	args := m.Called(ctx, token, newPassword)
	return args.Error(0)
}
func (m *MockPasswordResetService) ValidateResetToken(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}
func (m *MockPasswordResetService) SweepExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ portssvc.PasswordResetSvcFacade = (*MockPasswordResetService)(nil)
