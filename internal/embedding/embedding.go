// Package embedding provides vector representations of text for semantic
// routing.
package embedding

import "context"

// Embedder produces embedding vectors. Implementations are stateless apart
// from configuration and safe for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
