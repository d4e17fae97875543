package types

import "time"

// User represents an account in the system.
type User struct {
	// ID is the unique identifier of the user, assigned by the store on
	// creation and immutable afterward.
	ID int `json:"id" db:"id"`

	// Username is the unique login name chosen by the user. Uniqueness is
	// case-sensitive.
	Username string `json:"username" db:"username"`

	// Email is the user's email address, unique across all users.
	Email string `json:"email" db:"email"`

	// PasswordHash stores the hashed representation of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the user account.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// UserUpdate is a partial patch applied to an existing user. A nil field
// leaves the corresponding value unchanged.
type UserUpdate struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}
