package object

import (
	"context"
	"io"
)

// Store defines the contract for persisting pipeline artifacts at fixed keys.
// Artifacts are written whole and overwritten in place; keys are the only
// index.
type Store interface {
	Save(ctx context.Context, key string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, error)
}
