package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() questionProfile {
	normalized := Normalize("O que é fé?")
	return questionProfile{
		raw:        "O que é fé?",
		normalized: normalized,
		hash:       HashQuestion(normalized),
		category:   CategoryFaith,
		embedding:  []float32{0.1, 0.2, 0.3},
	}
}

func TestCacheWriter_PersistsLongAnswer(t *testing.T) {
	store := newMemAnswerStore()
	writer := NewCacheWriter(store, 50, 0, zerolog.Nop())
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	writer.now = func() time.Time { return now }

	answer := strings.Repeat("fé ", 30) // well past the minimum
	q := testProfile()
	writer.Persist(context.Background(), q, answer, "gpt-4o-mini")

	require.Equal(t, 1, store.inserted)
	entry := store.byHash[q.hash]
	require.NotNil(t, entry)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, q.raw, entry.Question)
	assert.Equal(t, q.normalized, entry.NormalizedQuestion)
	assert.Equal(t, string(CategoryFaith), entry.Category)
	assert.Equal(t, q.embedding, entry.Embedding)
	assert.Equal(t, answer, entry.Answer)
	assert.Equal(t, "gpt-4o-mini", entry.Model)
	assert.Equal(t, (len(answer)+3)/4, entry.TokenEstimate)
	assert.Equal(t, now, entry.CreatedAt)
	assert.Equal(t, now.Add(DefaultCacheTTL), entry.ExpiresAt)
}

func TestCacheWriter_SkipsShortAnswer(t *testing.T) {
	store := newMemAnswerStore()
	writer := NewCacheWriter(store, 50, DefaultCacheTTL, zerolog.Nop())

	writer.Persist(context.Background(), testProfile(), strings.Repeat("x", 30), "gpt-4o-mini")

	assert.Equal(t, 0, store.inserted, "30-char answer is below the 50-char minimum")
}

func TestCacheWriter_NilEmbeddingAllowed(t *testing.T) {
	store := newMemAnswerStore()
	writer := NewCacheWriter(store, 50, DefaultCacheTTL, zerolog.Nop())

	q := testProfile()
	q.embedding = nil
	writer.Persist(context.Background(), q, strings.Repeat("resposta ", 10), "gpt-4o-mini")

	require.Equal(t, 1, store.inserted)
	assert.Nil(t, store.byHash[q.hash].Embedding)
}

func TestCacheWriter_SwallowsWriteFailure(t *testing.T) {
	store := newMemAnswerStore()
	store.insertErr = errors.New("disk full")
	writer := NewCacheWriter(store, 50, DefaultCacheTTL, zerolog.Nop())

	assert.NotPanics(t, func() {
		writer.Persist(context.Background(), testProfile(), strings.Repeat("resposta ", 10), "gpt-4o-mini")
	})
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, estimateTokens(""))
	assert.Equal(t, 1, estimateTokens("abc"))
	assert.Equal(t, 1, estimateTokens("abcd"))
	assert.Equal(t, 2, estimateTokens("abcde"))
	assert.Equal(t, 25, estimateTokens(strings.Repeat("x", 100)))
}
