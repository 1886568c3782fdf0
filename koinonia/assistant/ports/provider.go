package assistantports

import (
	"context"
	"fmt"
)

// PromptMessage represents a single chat message in the conversation history.
type PromptMessage struct {
	Role    string // "system", "user", "assistant"
	Content string
}

// CompletionChunk is the provider's streaming delta. Err is set on the final
// chunk when the upstream stream terminated abnormally mid-flight.
type CompletionChunk struct {
	DeltaText string
	Done      bool
	Err       error
}

// CompletionProvider is the abstraction for the upstream streaming model.
// Stream must honor ctx cancellation by aborting the upstream call and
// closing the returned channel.
type CompletionProvider interface {
	Stream(ctx context.Context, system string, messages []PromptMessage) (<-chan CompletionChunk, error)
	Model() string
}

// UpstreamErrorKind distinguishes the three upstream failure classes this
// layer propagates verbatim. No retry or backoff happens here.
type UpstreamErrorKind string

const (
	// UpstreamThrottled means the provider asked us to retry later.
	UpstreamThrottled UpstreamErrorKind = "upstream_throttled"
	// UpstreamQuotaExhausted means the provider account is out of quota or
	// billing; terminal for the tenant until administrative action.
	UpstreamQuotaExhausted UpstreamErrorKind = "upstream_quota_exhausted"
	// UpstreamFailure is any other provider failure; retryable at the
	// caller's discretion.
	UpstreamFailure UpstreamErrorKind = "upstream_failure"
)

// UpstreamError wraps a provider failure with its distinguishing kind.
type UpstreamError struct {
	Kind    UpstreamErrorKind
	Message string
	Cause   error
}

func (e *UpstreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Cause }
