package services

import (
	"log/slog"

	portsrepo "github.com/pinkeep/pinkeep_app/internal/core/ports/repositories"
	portssvc "github.com/pinkeep/pinkeep_app/internal/core/ports/services"
	"github.com/pinkeep/pinkeep_app/internal/platform/config"
	"github.com/pinkeep/pinkeep_app/internal/utils"
)

// NewContainer creates the service container with properly initialized dependencies.
func NewContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, logger *slog.Logger) *portssvc.ServiceContainer {
	var email portssvc.EmailSender
	if cfg.SMTPAddr != "" {
		email = NewSMTPEmailSender(cfg.SMTPAddr, cfg.SMTPFrom)
	} else {
		email = NewLogEmailSender(logger)
	}

	codec := utils.NewSessionTokenCodec(cfg.SessionTokenSecret)

	sessionSvc := NewSessionService(repos.SessionRepo)
	resetSvc := NewPasswordResetService(
		repos.PasswordResetRepo,
		repos.UserRepo,
		repos.SessionRepo,
		email,
		cfg.ResetTokenExpiryDuration,
		cfg.ResetMaxRequestsPerHour,
	)

	return &portssvc.ServiceContainer{
		User:          NewUserService(repos.UserRepo),
		Auth:          NewAuthService(repos.UserRepo, sessionSvc, resetSvc, codec, cfg.SessionTokenExpiryDuration, cfg.SessionRecordExpiryDuration),
		Session:       sessionSvc,
		PasswordReset: resetSvc,
		APIToken:      NewAPITokenService(repos.APITokenRepo, cfg.APITokenSecret, cfg.APITokenIssuer),
	}
}

// Compile-time interface checks.
var (
	_ portssvc.AuthSvcFacade          = (*authService)(nil)
	_ portssvc.SessionSvcFacade       = (*sessionService)(nil)
	_ portssvc.PasswordResetSvcFacade = (*passwordResetService)(nil)
	_ portssvc.UserSvcFacade          = (*userService)(nil)
	_ portssvc.APITokenSvc            = (*apiTokenService)(nil)
)
