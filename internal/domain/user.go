package domain

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

// Password length limits. The upper bound is bcrypt's input limit.
const (
	MinPasswordLength = 3
	MaxPasswordLength = 72
)

// Common user validation errors
var (
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 3 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyPasswordDigest = errors.New("password digest cannot be empty")
)

var emailValidator = validator.New()

// User is a registered user of the tracker. A user may be the assignee of any number of tasks.
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	FirstName      *string   `json:"firstName,omitempty"`
	LastName       *string   `json:"lastName,omitempty"`
	PasswordDigest string    `json:"-"` // bcrypt digest, never serialized
	CreatedAt      time.Time `json:"createdAt"`
}

// Validate checks that the user can be persisted.
// The password digest must already be set; plaintext passwords are checked with ValidatePassword.
func (u *User) Validate() error {
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}
	if u.PasswordDigest == "" {
		return NewValidationError("password", "is required", ErrEmptyPasswordDigest)
	}
	return nil
}

// ValidateEmail checks that email is present and well formed.
func ValidateEmail(email string) error {
	if email == "" {
		return NewValidationError("email", "is required", ErrEmptyEmail)
	}
	if err := emailValidator.Var(email, "email"); err != nil {
		return NewValidationError("email", "is not a valid address", ErrInvalidEmail)
	}
	return nil
}

// ValidatePassword checks the plaintext password length before it is hashed.
func ValidatePassword(password string) error {
	switch {
	case len(password) < MinPasswordLength:
		return NewValidationError("password", "is too short", ErrPasswordTooShort)
	case len(password) > MaxPasswordLength:
		return NewValidationError("password", "is too long", ErrPasswordTooLong)
	}
	return nil
}
