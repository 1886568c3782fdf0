package adapters

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"

	ports "github.com/koinonia-app/koinonia/koinonia/assistant/ports"
)

// LibSQLStore implements AnswerStore and RateLimitStore over an embedded
// libsql database. Embeddings are stored as JSON arrays; the nearest-neighbor
// search is a brute-force cosine scan, which is adequate at the cache sizes
// this layer sees (thousands of entries, not millions).
type LibSQLStore struct {
	db *sql.DB
}

// NewLibSQLStore creates a store over an already-migrated connection.
func NewLibSQLStore(db *sql.DB) *LibSQLStore {
	return &LibSQLStore{db: db}
}

const entryColumns = `id, question, normalized_question, question_hash, embedding, category,
	answer, model, token_estimate, hit_count, created_at, last_hit_at, expires_at`

// GetByHash returns the entry stored under an exact question hash, nil on miss.
func (s *LibSQLStore) GetByHash(ctx context.Context, hash string) (*ports.CacheEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM answer_cache WHERE question_hash = ?`, hash)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cache entry by hash: %w", err)
	}
	return entry, nil
}

// Insert stores a new entry; a duplicate question hash is silently ignored.
func (s *LibSQLStore) Insert(ctx context.Context, e *ports.CacheEntry) error {
	var embedding any
	if len(e.Embedding) > 0 {
		blob, err := json.Marshal(e.Embedding)
		if err != nil {
			return fmt.Errorf("encode embedding: %w", err)
		}
		embedding = string(blob)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO answer_cache (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Question, e.NormalizedQuestion, e.QuestionHash, embedding, e.Category,
		e.Answer, e.Model, e.TokenEstimate, e.HitCount, e.CreatedAt, e.LastHitAt, e.ExpiresAt)
	if err != nil {
		return fmt.Errorf("insert cache entry: %w", err)
	}
	return nil
}

// RecordHit bumps hit_count and last_hit_at for an entry.
func (s *LibSQLStore) RecordHit(ctx context.Context, id string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE answer_cache SET hit_count = hit_count + 1, last_hit_at = ? WHERE id = ?`, at, id)
	if err != nil {
		return fmt.Errorf("record cache hit: %w", err)
	}
	return nil
}

// NearestNeighbor scans stored embeddings and returns the most similar entry
// by cosine similarity, or nil when nothing with an embedding exists.
func (s *LibSQLStore) NearestNeighbor(ctx context.Context, embedding []float32, category string) (*ports.Match, error) {
	query := `SELECT ` + entryColumns + ` FROM answer_cache WHERE embedding IS NOT NULL`
	args := []any{}
	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("scan embeddings: %w", err)
	}
	defer rows.Close()

	target := toFloat64(embedding)

	var best *ports.Match
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cache entry: %w", err)
		}
		if len(entry.Embedding) != len(embedding) {
			continue
		}
		score := cosineSimilarity(target, toFloat64(entry.Embedding))
		if best == nil || score > best.Similarity {
			best = &ports.Match{Entry: entry, Similarity: score}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cache entries: %w", err)
	}
	return best, nil
}

// Get returns the rate-limit record for (userID, day), nil when absent.
func (s *LibSQLStore) Get(ctx context.Context, userID, day string) (*ports.RateLimitRecord, error) {
	rec := &ports.RateLimitRecord{}
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, tenant_id, day, count, last_request_at
		FROM rate_limits WHERE user_id = ? AND day = ?`, userID, day).
		Scan(&rec.UserID, &rec.TenantID, &rec.Day, &rec.Count, &rec.LastRequestAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get rate limit record: %w", err)
	}
	return rec, nil
}

// Upsert writes the rate-limit record for its (userID, day) key.
func (s *LibSQLStore) Upsert(ctx context.Context, rec *ports.RateLimitRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rate_limits (user_id, tenant_id, day, count, last_request_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, day) DO UPDATE SET
			count = excluded.count,
			last_request_at = excluded.last_request_at`,
		rec.UserID, rec.TenantID, rec.Day, rec.Count, rec.LastRequestAt)
	if err != nil {
		return fmt.Errorf("upsert rate limit record: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*ports.CacheEntry, error) {
	e := &ports.CacheEntry{}
	var embedding sql.NullString
	if err := row.Scan(
		&e.ID, &e.Question, &e.NormalizedQuestion, &e.QuestionHash, &embedding, &e.Category,
		&e.Answer, &e.Model, &e.TokenEstimate, &e.HitCount, &e.CreatedAt, &e.LastHitAt, &e.ExpiresAt,
	); err != nil {
		return nil, err
	}
	if embedding.Valid && embedding.String != "" {
		if err := json.Unmarshal([]byte(embedding.String), &e.Embedding); err != nil {
			return nil, fmt.Errorf("decode embedding: %w", err)
		}
	}
	return e, nil
}

// cosineSimilarity computes dot(a,b)/(|a|*|b|), 0 for degenerate vectors.
func cosineSimilarity(a, b []float64) float64 {
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

var (
	_ ports.AnswerStore    = (*LibSQLStore)(nil)
	_ ports.RateLimitStore = (*LibSQLStore)(nil)
)
