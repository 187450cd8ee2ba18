// Package storage persists small named records for a single local user.
package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrInvalidKey = errors.New("invalid record key")
)

var keyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

//go:generate mockgen -source=store.go -destination=../mocks/storage/mock_store.go -package=mock_storage

// Store is a key-value store of serialized records.
// Put replaces the whole value or leaves the previous value intact.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

func validateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
