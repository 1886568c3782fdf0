package assistant

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"

	ports "github.com/koinonia-app/koinonia/koinonia/assistant/ports"
)

// AskRequest is one inbound question with its conversation so far. The last
// message must be from the user; everything before it is context forwarded
// verbatim to the provider on a live call.
type AskRequest struct {
	Credential string
	Messages   []ports.PromptMessage
}

// Service is the answer caching and deduplication layer. It holds no mutable
// request state of its own; cache entries and rate-limit counters live behind
// the injected stores, so the service is safe for concurrent use.
type Service struct {
	identity ports.IdentityResolver
	embedder ports.Embedder
	provider ports.CompletionProvider
	meter    ports.ConsumptionLogger

	limiter  *DailyLimiter
	exact    *ExactCache
	semantic *SemanticCache
	writer   *CacheWriter

	system      string
	replayDelay time.Duration
	logger      zerolog.Logger

	bg conc.WaitGroup
}

// NewService wires the layer from its collaborators. system is the fixed
// instruction sent upstream on live calls; its content is owned elsewhere.
func NewService(
	identity ports.IdentityResolver,
	embedder ports.Embedder,
	provider ports.CompletionProvider,
	meter ports.ConsumptionLogger,
	limiter *DailyLimiter,
	exact *ExactCache,
	semantic *SemanticCache,
	writer *CacheWriter,
	system string,
	replayDelay time.Duration,
	logger zerolog.Logger,
) *Service {
	if replayDelay <= 0 {
		replayDelay = DefaultReplayDelay
	}
	return &Service{
		identity:    identity,
		embedder:    embedder,
		provider:    provider,
		meter:       meter,
		limiter:     limiter,
		exact:       exact,
		semantic:    semantic,
		writer:      writer,
		system:      system,
		replayDelay: replayDelay,
		logger:      logger,
	}
}

// Ask answers a question, preferring the exact then the semantic cache tier
// and only then the live provider. The returned channel delivers partial text
// chunks ending in an explicit Done marker regardless of which path served
// the answer. Failures before the first chunk come back as a single *Error;
// a live upstream failure mid-stream terminates the stream via Chunk.Err.
func (s *Service) Ask(ctx context.Context, req *AskRequest) (<-chan Chunk, error) {
	question, err := lastUserQuestion(req)
	if err != nil {
		return nil, err
	}

	id, settings, err := s.identity.Resolve(ctx, req.Credential)
	if err != nil {
		return nil, &Error{Kind: KindValidation, Message: "could not resolve identity", Cause: err}
	}

	if _, err := s.limiter.CheckAndConsume(ctx, id, settings); err != nil {
		return nil, err
	}

	q := questionProfile{raw: question}
	q.normalized = Normalize(question)
	q.hash = HashQuestion(q.normalized)
	q.category = Classify(q.normalized)

	log := s.logger.With().
		Str("tenant_id", id.TenantID).
		Str("category", string(q.category)).
		Str("hash", q.hash).
		Logger()

	if entry, err := s.exact.Lookup(ctx, q.hash); err != nil {
		log.Warn().Err(err).Msg("exact cache lookup failed")
	} else if entry != nil {
		log.Debug().Int("hit_count", entry.HitCount).Msg("exact cache hit")
		s.record(ctx, id, ports.SourceExactCache, entry, q.category)
		return ReplayStream(ctx, entry.Answer, s.replayDelay), nil
	}

	// Embedding failure is non-fatal: skip the semantic tier and go live.
	embedding, err := s.embedder.Embed(ctx, q.normalized)
	if err != nil {
		log.Warn().Err(err).Msg("embedding failed, skipping semantic cache")
		embedding = nil
	}
	q.embedding = embedding

	if len(embedding) > 0 {
		if entry, err := s.semantic.Lookup(ctx, embedding, q.category); err != nil {
			log.Warn().Err(err).Msg("semantic cache lookup failed")
		} else if entry != nil {
			log.Debug().Str("matched_hash", entry.QuestionHash).Msg("semantic cache hit")
			s.record(ctx, id, ports.SourceSemanticCache, entry, q.category)
			return ReplayStream(ctx, entry.Answer, s.replayDelay), nil
		}
	}

	upstream, err := s.provider.Stream(ctx, s.system, req.Messages)
	if err != nil {
		return nil, upstreamError(err)
	}

	model := s.provider.Model()
	out := relayStream(ctx, upstream, func(answer string) {
		s.record(ctx, id, ports.SourceLive, &ports.CacheEntry{Model: model, TokenEstimate: estimateTokens(answer)}, q.category)
		// Detach from the request context: the caller may disconnect right
		// after the final chunk, and the write must still land.
		bgCtx := context.WithoutCancel(ctx)
		s.bg.Go(func() {
			s.writer.Persist(bgCtx, q, answer, model)
		})
	})
	return out, nil
}

// Close waits for in-flight background cache writes to finish.
func (s *Service) Close() {
	s.bg.Wait()
}

func (s *Service) record(ctx context.Context, id ports.Identity, source ports.AnswerSource, entry *ports.CacheEntry, category Category) {
	s.meter.Record(ctx, ports.ConsumptionEvent{
		UserID:        id.UserID,
		TenantID:      id.TenantID,
		Source:        source,
		Model:         entry.Model,
		Category:      string(category),
		TokenEstimate: entry.TokenEstimate,
	})
}

func lastUserQuestion(req *AskRequest) (string, error) {
	if req == nil || len(req.Messages) == 0 {
		return "", validationError("conversation is empty")
	}
	last := req.Messages[len(req.Messages)-1]
	if last.Role != "user" {
		return "", validationError("last message must be from the user")
	}
	question := strings.TrimSpace(last.Content)
	if question == "" {
		return "", validationError("question is empty")
	}
	return question, nil
}
