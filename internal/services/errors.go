package services

import "errors"

// Business-rule failures surfaced to handlers. Conflict errors mean the value
// is already held by a different user; ErrPasswordUnchanged means the new
// password verifies against the stored hash.
var (
	ErrUsernameTaken     = errors.New("this username is already taken")
	ErrEmailTaken        = errors.New("this email is already taken")
	ErrPasswordUnchanged = errors.New("the password must be different than the old one")
)
