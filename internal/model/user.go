package model

import "time"

// User represents an administrative account as stored in the `users`
// table. Only admins have accounts; the public site requires none.
// Both Username and Email carry unique indexes, which the seeding
// logic relies on to stay idempotent under concurrent cold starts.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  Email        – unique email address, used for password resets.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
}

// PasswordResetToken models an entry in the `password_reset_tokens`
// table. Each token belongs to one user, is consumed at most once and
// is swept at startup once expired. The token value itself is a random
// opaque string with a unique index.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  Token     – random opaque token value (unique).
//  CreatedAt – timestamp of creation.
//  ExpiresAt – expiration timestamp.
//  IsUsed    – whether the token was already consumed.
type PasswordResetToken struct {
	ID        uint64    // password_reset_tokens.id
	UserID    uint64    // password_reset_tokens.user_id
	Token     string    // password_reset_tokens.token
	CreatedAt time.Time // password_reset_tokens.created_at
	ExpiresAt time.Time // password_reset_tokens.expires_at
	IsUsed    bool      // password_reset_tokens.is_used
}
