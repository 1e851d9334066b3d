package model

import "time"

// Role values stored in users.role. ADMIN may manage the space
// catalog; USER may browse and reserve.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column. Deleted
// accounts are kept for history: DeletedAt is set instead of
// removing the row, and repository lookups exclude soft-deleted
// users unless stated otherwise.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Role         – USER or ADMIN.
//  Username     – display name.
//  Email        – unique email address (stored lower-cased).
//  PasswordHash – bcrypt hashed password.
//  PhoneNumber  – contact phone number.
//  DeletedAt    – soft-delete timestamp (nil while the account is active).
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64     // users.id
	Role         string     // users.role
	Username     string     // users.username
	Email        string     // users.email
	PasswordHash string     // users.password_hash
	PhoneNumber  string     // users.phone_number
	DeletedAt    *time.Time // users.deleted_at (nullable)
	CreatedAt    time.Time  // users.created_at
}

// IsDeleted reports whether the account has been withdrawn.
func (u User) IsDeleted() bool { return u.DeletedAt != nil }

// RefreshToken models the single live row per user in the
// `refresh_tokens` table. The plain token is never stored; only its
// SHA-256 hash. Every signup/login/reissue replaces the user's row
// wholesale, so at most one refresh token is valid per user at any
// time.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token (unique).
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64    // refresh_tokens.id
	UserID    uint64    // refresh_tokens.user_id
	TokenHash string    // refresh_tokens.token_hash
	ExpiresAt time.Time // refresh_tokens.expires_at
	CreatedAt time.Time // refresh_tokens.created_at
}
