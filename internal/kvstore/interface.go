// Package kvstore implements the durable key/blob store the whole
// application persists into: a flat namespace of string keys, opaque
// values, and a byte quota that writes can trip.
package kvstore

import (
	"context"
	"errors"
)

// Well-known keys. Registry and session are independent keys; the store
// provides no transactional guarantee across them.
const (
	KeyRegistry = "users"
	KeySession  = "session"
	KeyTheme    = "theme"
)

// ErrQuotaExceeded is returned by Set when a write would push the store past
// its configured byte quota. The write is not applied.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Repository describes the key-value operations the store exposes.
type Repository interface {
	// Get returns the value for key, or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set writes value under key, replacing any previous value.
	// Fails with ErrQuotaExceeded when the write would exceed the quota.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns every key with its value.
	List(ctx context.Context) (map[string][]byte, error)

	// Clear removes every key.
	Clear(ctx context.Context) error

	// UsedBytes reports the summed size of all stored values.
	UsedBytes(ctx context.Context) (int64, error)
}
