package adapters

import (
	"context"

	"github.com/rs/zerolog"

	ports "github.com/koinonia-app/koinonia/koinonia/assistant/ports"
)

// ZerologConsumptionLogger records served answers as structured log events.
// Purely observational: nothing reads these back, and a dropped event is not
// an error anyone hears about.
type ZerologConsumptionLogger struct {
	logger zerolog.Logger
}

// NewZerologConsumptionLogger creates a consumption logger.
func NewZerologConsumptionLogger(logger zerolog.Logger) *ZerologConsumptionLogger {
	return &ZerologConsumptionLogger{logger: logger}
}

// Record logs one consumption event. Never blocks, never fails the caller.
func (l *ZerologConsumptionLogger) Record(_ context.Context, ev ports.ConsumptionEvent) {
	l.logger.Info().
		Str("event", "assistant_consumption").
		Str("user_id", ev.UserID).
		Str("tenant_id", ev.TenantID).
		Str("source", string(ev.Source)).
		Str("model", ev.Model).
		Str("category", ev.Category).
		Int("token_estimate", ev.TokenEstimate).
		Msg("answer served")
}

// Ensure ZerologConsumptionLogger implements the ConsumptionLogger interface.
var _ ports.ConsumptionLogger = (*ZerologConsumptionLogger)(nil)
