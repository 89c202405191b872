package pgsql

import (
	portsrepo "github.com/pinkeep/pinkeep_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgx-backed repositories over a shared pool.
func NewRepositoryProvider(db PGXQuerier) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:          newPgxUserRepository(db),
		SessionRepo:       newPgxSessionRepository(db),
		PasswordResetRepo: newPgxPasswordResetRepository(db),
		APITokenRepo:      newPgxAPITokenRepository(db),
	}
}
