// Package kv defines the key-value persistence contract used by the stores
// and provides in-memory and SQL-backed implementations.
package kv

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyKey is returned when an operation is attempted without a key.
var ErrEmptyKey = errors.New("kv: key must not be empty")

// Backend persists JSON-serialisable values under string keys.
type Backend interface {
	// Get decodes the value stored under key into dst. It reports false
	// when the key is absent, leaving dst untouched.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Remove(ctx context.Context, key string) error
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	return nil
}
