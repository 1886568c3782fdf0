package assistantports

import "context"

// Embedder generates a fixed-dimension vector for a text. Embedding failure
// is non-fatal to a request: the semantic tier is skipped and the entry is
// stored without a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}
