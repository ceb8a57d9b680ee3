package storage

import (
	"context"
	"errors"
	"io"
)

// Error classes every backend failure is folded into. Implementations
// wrap these with %w so callers can branch with errors.Is; the wrapped
// detail is for logs only and must never reach an HTTP response body.
var (
	ErrInvalidKey   = errors.New("storage: invalid key")
	ErrUnauthorized = errors.New("storage: unauthorized")
	ErrUnreachable  = errors.New("storage: backend unreachable")
	ErrWriteFailed  = errors.New("storage: write failed")
)

// Backend persists raw bytes under a key and returns an opaque location
// that can later be resolved back to the written content.
type Backend interface {
	// Put writes the full content of r under key, or fails without
	// leaving a partially written object observable. size is the number
	// of bytes r will yield, or -1 if unknown.
	Put(ctx context.Context, key string, r io.Reader, size int64) (location string, err error)

	// Exists reports whether a location written by this backend still
	// resolves to content. Diagnostics and tests only, not the hot path.
	Exists(ctx context.Context, location string) (bool, error)
}
