package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// container at startup.
type RepositoryProvider struct {
	UserRepo          UserRepositoryFacade
	SessionRepo       SessionRepositoryFacade
	PasswordResetRepo PasswordResetRepositoryFacade
	APITokenRepo      APITokenRepository
}
