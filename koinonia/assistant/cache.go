package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	ports "github.com/koinonia-app/koinonia/koinonia/assistant/ports"
)

// DefaultSimilarityThreshold is the minimum cosine similarity for a semantic
// cache hit. Tunable through configuration; do not change the default without
// sign-off, downstream answer quality was validated against it.
const DefaultSimilarityThreshold = 0.92

// ExactCache is the first cache tier: O(1) lookup by the question hash.
type ExactCache struct {
	store ports.AnswerStore
	now   func() time.Time
}

// NewExactCache creates the exact tier over an answer store.
func NewExactCache(store ports.AnswerStore) *ExactCache {
	return &ExactCache{store: store, now: time.Now}
}

// Lookup returns the entry stored under hash, or nil on miss. A hit bumps
// the entry's hit count and last-hit timestamp before returning.
func (c *ExactCache) Lookup(ctx context.Context, hash string) (*ports.CacheEntry, error) {
	entry, err := c.store.GetByHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("exact cache lookup: %w", err)
	}
	if entry == nil {
		return nil, nil
	}
	if err := c.store.RecordHit(ctx, entry.ID, c.now().UTC()); err != nil {
		return nil, fmt.Errorf("record exact cache hit: %w", err)
	}
	entry.HitCount++
	return entry, nil
}

// SemanticCache is the second cache tier: nearest-neighbor search over stored
// embeddings, accepting only matches at or above the similarity threshold.
type SemanticCache struct {
	store     ports.AnswerStore
	threshold float64
	logger    zerolog.Logger
	now       func() time.Time
}

// NewSemanticCache creates the semantic tier. threshold <= 0 falls back to
// DefaultSimilarityThreshold.
func NewSemanticCache(store ports.AnswerStore, threshold float64, logger zerolog.Logger) *SemanticCache {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	return &SemanticCache{store: store, threshold: threshold, logger: logger, now: time.Now}
}

// Lookup finds the most similar stored entry, optionally restricted to a
// category, and returns it only when its cosine similarity is >= the
// threshold. A hit gets the same bookkeeping as the exact tier; the new
// question's hash is NOT aliased onto the matched entry, so each distinct
// paraphrase re-triggers a semantic search on its next occurrence.
func (c *SemanticCache) Lookup(ctx context.Context, embedding []float32, category Category) (*ports.CacheEntry, error) {
	if len(embedding) == 0 {
		return nil, nil
	}

	match, err := c.store.NearestNeighbor(ctx, embedding, string(category))
	if err != nil {
		return nil, fmt.Errorf("semantic cache lookup: %w", err)
	}
	if match == nil {
		return nil, nil
	}
	if match.Similarity < c.threshold {
		c.logger.Debug().
			Float64("similarity", match.Similarity).
			Float64("threshold", c.threshold).
			Msg("best semantic candidate below threshold")
		return nil, nil
	}

	if err := c.store.RecordHit(ctx, match.Entry.ID, c.now().UTC()); err != nil {
		return nil, fmt.Errorf("record semantic cache hit: %w", err)
	}
	match.Entry.HitCount++
	return match.Entry, nil
}
