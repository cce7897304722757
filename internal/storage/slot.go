package storage

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned by Slot.Read when nothing was ever written
	// under the key.
	ErrNotFound = errors.New("slot not found")
	// ErrInvalidKey is returned for empty keys or keys that could escape
	// the backend namespace.
	ErrInvalidKey = errors.New("invalid slot key")
)

// Slot is a named durable key-value location holding one serialized value
// per key.
type Slot interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
}

// ValidateKey rejects keys that are empty or contain path separators.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return ErrInvalidKey
	}
	return nil
}
