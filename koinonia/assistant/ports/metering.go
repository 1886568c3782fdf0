package assistantports

import "context"

// AnswerSource says where a served answer came from.
type AnswerSource string

const (
	SourceExactCache    AnswerSource = "cache_exact"
	SourceSemanticCache AnswerSource = "cache_semantic"
	SourceLive          AnswerSource = "live"
)

// ConsumptionEvent records one served answer for metering.
type ConsumptionEvent struct {
	UserID        string
	TenantID      string
	Source        AnswerSource
	Model         string
	Category      string
	TokenEstimate int
}

// ConsumptionLogger is fire-and-forget metering. Implementations must not
// block the request path and must swallow their own failures; nothing in
// this layer consults what was recorded.
type ConsumptionLogger interface {
	Record(ctx context.Context, ev ConsumptionEvent)
}
