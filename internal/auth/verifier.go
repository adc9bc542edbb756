// Package auth decides whether a presented password belongs to a user.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"sales-crm/internal/tokenstore"
)

// ErrMismatch is returned when a password does not match the enrolled one.
var ErrMismatch = errors.New("auth: credentials do not match")

// Verifier is the credential policy consulted at login.
type Verifier interface {
	// Verify checks password for the user. A nil error means accepted.
	Verify(userID, password string) error
	// Enroll records the password of a newly created user.
	Enroll(userID, password string) error
	// Revoke forgets the user's credentials.
	Revoke(userID string) error
}

// BcryptVerifier keeps bcrypt hashes in the credential store.
type BcryptVerifier struct {
	store tokenstore.CredentialStore
	cost  int
}

func NewBcryptVerifier(store tokenstore.CredentialStore) *BcryptVerifier {
	return &BcryptVerifier{store: store, cost: bcrypt.DefaultCost}
}

func (v *BcryptVerifier) Enroll(userID, password string) error {
	if password == "" {
		return errors.New("auth: password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), v.cost)
	if err != nil {
		return fmt.Errorf("auth: hash password: %w", err)
	}
	return v.store.SavePasswordHash(userID, hash)
}

func (v *BcryptVerifier) Verify(userID, password string) error {
	hash, err := v.store.PasswordHash(userID)
	if errors.Is(err, tokenstore.ErrNotFound) {
		return ErrMismatch
	}
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return ErrMismatch
	}
	return nil
}

func (v *BcryptVerifier) Revoke(userID string) error {
	return v.store.DeletePasswordHash(userID)
}

// NoCheckVerifier accepts any password. It reproduces the legacy behaviour where
// a login only needs an existing active username.
type NoCheckVerifier struct{}

func (NoCheckVerifier) Verify(string, string) error { return nil }
func (NoCheckVerifier) Enroll(string, string) error { return nil }
func (NoCheckVerifier) Revoke(string) error         { return nil }

var (
	_ Verifier = (*BcryptVerifier)(nil)
	_ Verifier = NoCheckVerifier{}
)
