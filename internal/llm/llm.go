package llm

import (
	"context"
	"errors"
)

// Request carries one completion call: a fully assembled prompt plus output
// controls. The prompt is opaque to the provider.
type Request struct {
	Prompt          string
	MaxOutputTokens int
	Temperature     *float32
}

// Client abstracts the external text-completion service. Implementations
// block until the full response text is available.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("completion client not configured")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, req Request) (string, error) {
	_ = ctx
	_ = req
	return "", ErrNotConfigured
}
