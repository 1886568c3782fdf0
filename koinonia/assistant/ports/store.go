package assistantports

import (
	"context"
	"time"
)

// CacheEntry is one answered question in the shared answer cache.
// The question hash is unique across entries; Embedding is nil when the
// embedding provider failed at write time.
type CacheEntry struct {
	ID                 string
	Question           string
	NormalizedQuestion string
	QuestionHash       string
	Embedding          []float32
	Category           string
	Answer             string
	Model              string
	TokenEstimate      int
	HitCount           int
	CreatedAt          time.Time
	LastHitAt          time.Time
	ExpiresAt          time.Time
}

// RateLimitRecord counts a user's requests within one calendar day.
// Day is formatted YYYY-MM-DD (UTC); at most one record exists per
// (user, day) pair.
type RateLimitRecord struct {
	UserID        string
	TenantID      string
	Day           string
	Count         int
	LastRequestAt time.Time
}

// Match is a nearest-neighbor candidate with its cosine similarity.
type Match struct {
	Entry      *CacheEntry
	Similarity float64
}

// AnswerStore persists cache entries. This layer never deletes entries;
// expiry is advisory and enforced by a retention process elsewhere.
type AnswerStore interface {
	// GetByHash returns the entry for an exact question hash, or nil on miss.
	GetByHash(ctx context.Context, hash string) (*CacheEntry, error)

	// Insert stores a new entry, silently ignoring a hash collision
	// (insert-or-ignore on the unique question hash).
	Insert(ctx context.Context, entry *CacheEntry) error

	// RecordHit bumps the hit counter and last-hit timestamp of an entry.
	RecordHit(ctx context.Context, id string, at time.Time) error

	// NearestNeighbor returns the single most similar stored embedding,
	// optionally restricted to a category (empty = unrestricted), or nil
	// when no entry with an embedding exists. Thresholding is the caller's
	// concern.
	NearestNeighbor(ctx context.Context, embedding []float32, category string) (*Match, error)
}

// RateLimitStore persists daily request counters.
type RateLimitStore interface {
	// Get returns the record for (userID, day), or nil when the user has
	// not asked anything that day.
	Get(ctx context.Context, userID, day string) (*RateLimitRecord, error)

	// Upsert writes the record, replacing any existing one for the same
	// (userID, day).
	Upsert(ctx context.Context, rec *RateLimitRecord) error
}
