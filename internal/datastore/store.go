// Package datastore is the generic CRUD boundary to the relational store.
// Records cross it as snake_case rows; nothing above the converters sees them.
package datastore

import (
	"context"
	"errors"
	"fmt"

	"sales-crm/internal/models"
)

// Row is one record keyed by its snake_case column names.
type Row map[string]any

// ID returns the row's id column as a string.
func (r Row) ID() string {
	if v, ok := r["id"].(string); ok {
		return v
	}
	return ""
}

// Store is the contract every persistence backend satisfies.
type Store interface {
	// Select returns every row of the collection matching pred. A nil pred matches all rows.
	Select(ctx context.Context, coll models.Collection, pred Predicate) ([]Row, error)
	// Insert writes one row and returns it as stored, with server-assigned id and defaults.
	Insert(ctx context.Context, coll models.Collection, row Row) (Row, error)
	// Update merges the given columns into the row with the given id.
	Update(ctx context.Context, coll models.Collection, id string, row Row) error
	// Delete removes every row matching pred and returns how many were removed.
	Delete(ctx context.Context, coll models.Collection, pred Predicate) (int64, error)
	Ping(ctx context.Context) error
}

// Transactor is implemented by stores that can run several operations all-or-nothing.
type Transactor interface {
	WithTx(ctx context.Context, fn func(tx Store) error) error
}

// FetchAll loads a whole collection.
func FetchAll(ctx context.Context, s Store, coll models.Collection) ([]Row, error) {
	return s.Select(ctx, coll, nil)
}

// StoreError wraps any failure reported by the persistence layer.
type StoreError struct {
	Op         string
	Collection models.Collection
	Err        error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrUnknownColumn     = errors.New("unknown column")
	ErrEmptyPredicate    = errors.New("delete requires a predicate")
)

// IsStoreError reports whether err came from the persistence layer.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
