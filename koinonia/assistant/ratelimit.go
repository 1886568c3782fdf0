package assistant

import (
	"context"
	"fmt"
	"time"

	ports "github.com/koinonia-app/koinonia/koinonia/assistant/ports"
)

// DefaultDailyLimit applies when a tenant has no explicit daily quota.
const DefaultDailyLimit = 50

// DailyLimiter enforces the per-user, per-calendar-day question quota.
// Counters live in the injected store keyed on (user, day), so the quota
// implicitly resets at UTC midnight without any cleanup.
type DailyLimiter struct {
	store        ports.RateLimitStore
	defaultLimit int
	now          func() time.Time
}

// NewDailyLimiter creates a limiter. defaultLimit <= 0 falls back to
// DefaultDailyLimit.
func NewDailyLimiter(store ports.RateLimitStore, defaultLimit int) *DailyLimiter {
	if defaultLimit <= 0 {
		defaultLimit = DefaultDailyLimit
	}
	return &DailyLimiter{store: store, defaultLimit: defaultLimit, now: time.Now}
}

// CheckAndConsume verifies the tenant allows the assistant and that the user
// still has quota today, then consumes one request. The updated count is
// persisted before the request proceeds. Returns the remaining quota after
// consumption.
//
// The read-then-upsert is deliberately not atomic: concurrent requests from
// the same user in the same instant can transiently exceed the limit. That
// matches the source behavior and is an accepted consistency gap, not a bug
// to harden away here.
func (l *DailyLimiter) CheckAndConsume(ctx context.Context, id ports.Identity, settings ports.TenantSettings) (int, error) {
	if !settings.AssistantEnabled {
		return 0, &Error{Kind: KindAssistantDisabled, Message: "assistant is disabled for this tenant"}
	}

	limit := settings.DailyQuestionLimit
	if limit <= 0 {
		limit = l.defaultLimit
	}

	now := l.now().UTC()
	day := now.Format("2006-01-02")

	rec, err := l.store.Get(ctx, id.UserID, day)
	if err != nil {
		return 0, fmt.Errorf("read rate limit record: %w", err)
	}
	if rec == nil {
		rec = &ports.RateLimitRecord{UserID: id.UserID, TenantID: id.TenantID, Day: day}
	}

	if rec.Count >= limit {
		return 0, &Error{
			Kind:      KindQuotaExceeded,
			Message:   fmt.Sprintf("daily question limit of %d reached", limit),
			Limit:     limit,
			Remaining: 0,
		}
	}

	rec.Count++
	rec.LastRequestAt = now
	if err := l.store.Upsert(ctx, rec); err != nil {
		return 0, fmt.Errorf("persist rate limit record: %w", err)
	}

	return limit - rec.Count, nil
}
