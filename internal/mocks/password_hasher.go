package mocks

import (
	"errors"
	"strings"
)

// ErrPasswordMismatch is returned by MockPasswordHasher.Compare for a wrong password.
var ErrPasswordMismatch = errors.New("mock: password does not match")

// MockPasswordHasher is a fast, reversible stand-in for the bcrypt hasher.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(digest, password string) error
}

const mockDigestPrefix = "hashed:"

// Hash implements the PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return mockDigestPrefix + password, nil
}

// Compare implements the PasswordHasher interface
func (m *MockPasswordHasher) Compare(digest, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(digest, password)
	}
	if strings.TrimPrefix(digest, mockDigestPrefix) != password {
		return ErrPasswordMismatch
	}
	return nil
}
