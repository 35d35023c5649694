package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Fetch when no blob exists at the key.
// Callers use it to distinguish "fresh ledger" from a real storage failure.
var ErrNotFound = errors.New("blob not found")

// Store is a blob store addressed by string keys inside a fixed bucket.
type Store interface {
	// Fetch returns the raw blob at key, or ErrNotFound.
	Fetch(ctx context.Context, key string) ([]byte, error)
	// Put overwrites (or creates) the blob at key. Last writer wins.
	Put(ctx context.Context, key string, data []byte) error
	// Ping checks that the backing bucket is reachable.
	Ping(ctx context.Context) error
}
