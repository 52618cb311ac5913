package model

import "context"

// EmbedderInterface converts text into a fixed-length vector. Implementations
// are injected into the services so tests can substitute fakes.
type EmbedderInterface interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
