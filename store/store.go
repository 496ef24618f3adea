// Package store provides durable key-value slots for the save record.
// Every backend stores opaque bytes under a string key; the engine only
// ever uses one key.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("save slot not found")

// Slot is a durable single-value key-value store.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
