package domain

// User represents a user of the application in the domain.
//
// The store never holds a plaintext email; EmailHash is a one-way digest of the
// normalized address, kept only so reset requests can locate the account.
type User struct {
	UserID       string  `json:"userID"` // Primary Key (UUID)
	Username     string  `json:"username"`
	PasswordHash string  `json:"-"`
	EmailHash    *string `json:"-"` // nil when the user never registered an email
	AuditFields
}
