package assistant

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	ports "github.com/koinonia-app/koinonia/koinonia/assistant/ports"
)

const (
	// DefaultMinAnswerLength filters out too-short answers, which are
	// assumed to be low-value or error fragments.
	DefaultMinAnswerLength = 50

	// DefaultCacheTTL pushes expiry a year out; retention is enforced by a
	// separate process, never by this layer.
	DefaultCacheTTL = 365 * 24 * time.Hour
)

// questionProfile carries everything computed about the question at request
// time, so the writer can persist without re-deriving any of it.
type questionProfile struct {
	raw        string
	normalized string
	hash       string
	category   Category
	embedding  []float32 // nil when the embedding provider failed
}

// CacheWriter persists a freshly produced live answer into the cache.
type CacheWriter struct {
	store     ports.AnswerStore
	minLength int
	ttl       time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewCacheWriter creates a writer. minLength <= 0 and ttl <= 0 fall back to
// the defaults.
func NewCacheWriter(store ports.AnswerStore, minLength int, ttl time.Duration, logger zerolog.Logger) *CacheWriter {
	if minLength <= 0 {
		minLength = DefaultMinAnswerLength
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CacheWriter{store: store, minLength: minLength, ttl: ttl, logger: logger, now: time.Now}
}

// Persist stores the answer once a live stream has flushed. Answers below
// the minimum length are skipped. Failures are logged and swallowed; the
// response has already been delivered and must not be affected.
func (w *CacheWriter) Persist(ctx context.Context, q questionProfile, answer, model string) {
	if len(answer) < w.minLength {
		w.logger.Debug().
			Int("length", len(answer)).
			Int("min_length", w.minLength).
			Msg("answer too short to cache")
		return
	}

	now := w.now().UTC()
	entry := &ports.CacheEntry{
		ID:                 uuid.NewString(),
		Question:           q.raw,
		NormalizedQuestion: q.normalized,
		QuestionHash:       q.hash,
		Embedding:          q.embedding,
		Category:           string(q.category),
		Answer:             answer,
		Model:              model,
		TokenEstimate:      estimateTokens(answer),
		CreatedAt:          now,
		LastHitAt:          now,
		ExpiresAt:          now.Add(w.ttl),
	}

	if err := w.store.Insert(ctx, entry); err != nil {
		w.logger.Warn().Err(err).Str("hash", q.hash).Msg("cache write failed")
	}
}

// estimateTokens is the rough chars/4 heuristic. It is an estimate for
// metering, not a billing-grade count; swap in a real tokenizer if that
// ever matters downstream.
func estimateTokens(s string) int {
	if len(s) == 0 {
		return 0
	}
	return (len(s) + 3) / 4
}
