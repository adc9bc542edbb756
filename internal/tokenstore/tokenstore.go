package tokenstore

import (
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/buntdb"
)

// ErrNotFound is returned when no value is stored under the requested user.
var ErrNotFound = errors.New("tokenstore: not found")

type TokenStore interface {
	SaveIDToken(userID string, token string, expiresAt time.Time) error
	GetIDToken(userID string) (string, error)
	DeleteIDToken(userID string) error
	RevocationStore
}

// RevocationStore remembers session tokens that were logged out before they expired.
type RevocationStore interface {
	RevokeToken(tokenID string, expiresAt time.Time) error
	IsRevoked(tokenID string) (bool, error)
}

// CredentialStore keeps one password hash per user.
type CredentialStore interface {
	SavePasswordHash(userID string, hash []byte) error
	PasswordHash(userID string) ([]byte, error)
	DeletePasswordHash(userID string) error
}

type BuntDBTokenStore struct {
	DB *buntdb.DB
}

// NewBuntDBTokenStore opens the buntDB database at the given path. ":memory:" keeps it in RAM.
func NewBuntDBTokenStore(path string) (*BuntDBTokenStore, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, err
	}
	return &BuntDBTokenStore{DB: db}, nil
}

func (s *BuntDBTokenStore) Close() error {
	return s.DB.Close()
}

func idTokenKey(userID string) string {
	return "id_token:" + userID
}

func passwordKey(userID string) string {
	return "password:" + userID
}

func revokedKey(tokenID string) string {
	return "revoked:" + tokenID
}

// SaveIDToken stores the token with an expiry.
func (s *BuntDBTokenStore) SaveIDToken(userID string, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt).Round(time.Second)
	if ttl <= 0 {
		return fmt.Errorf("id token for %s already expired", userID)
	}
	return s.set(idTokenKey(userID), token, &buntdb.SetOptions{Expires: true, TTL: ttl})
}

// GetIDToken retrieves the token by user ID.
func (s *BuntDBTokenStore) GetIDToken(userID string) (string, error) {
	return s.get(idTokenKey(userID))
}

// DeleteIDToken removes a stored token.
func (s *BuntDBTokenStore) DeleteIDToken(userID string) error {
	return s.del(idTokenKey(userID))
}

// RevokeToken marks a token id as logged out until the token would have
// expired anyway. Expired tokens need no entry.
func (s *BuntDBTokenStore) RevokeToken(tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return errors.New("token has no id")
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	ttl = ttl.Truncate(time.Second) + time.Second
	return s.set(revokedKey(tokenID), expiresAt.UTC().Format(time.RFC3339), &buntdb.SetOptions{Expires: true, TTL: ttl})
}

func (s *BuntDBTokenStore) IsRevoked(tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	_, err := s.get(revokedKey(tokenID))
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SavePasswordHash stores a hash without expiry, replacing any previous one.
func (s *BuntDBTokenStore) SavePasswordHash(userID string, hash []byte) error {
	return s.set(passwordKey(userID), string(hash), nil)
}

func (s *BuntDBTokenStore) PasswordHash(userID string) ([]byte, error) {
	v, err := s.get(passwordKey(userID))
	if err != nil {
		return nil, err
	}
	return []byte(v), nil
}

func (s *BuntDBTokenStore) DeletePasswordHash(userID string) error {
	return s.del(passwordKey(userID))
}

func (s *BuntDBTokenStore) set(key, value string, opts *buntdb.SetOptions) error {
	return s.DB.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(key, value, opts)
		return err
	})
}

func (s *BuntDBTokenStore) get(key string) (string, error) {
	var value string
	err := s.DB.View(func(tx *buntdb.Tx) error {
		val, err := tx.Get(key)
		if err != nil {
			return err
		}
		value = val
		return nil
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("tokenstore get %s: %w", key, err)
	}
	return value, nil
}

func (s *BuntDBTokenStore) del(key string) error {
	return s.DB.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(key)
		if err != nil && !errors.Is(err, buntdb.ErrNotFound) {
			return err
		}
		return nil
	})
}

var (
	_ TokenStore      = (*BuntDBTokenStore)(nil)
	_ CredentialStore = (*BuntDBTokenStore)(nil)
	_ RevocationStore = (*BuntDBTokenStore)(nil)
)
