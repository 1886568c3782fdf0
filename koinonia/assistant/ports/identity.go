package assistantports

import "context"

// Identity is the resolved caller.
type Identity struct {
	UserID   string
	TenantID string
}

// TenantSettings carries the per-tenant assistant configuration.
// DailyQuestionLimit <= 0 means "use the configured default".
type TenantSettings struct {
	AssistantEnabled   bool
	DailyQuestionLimit int
}

// IdentityResolver maps an auth credential to a user, a tenant, and the
// tenant's assistant settings. Session management lives behind this port.
type IdentityResolver interface {
	Resolve(ctx context.Context, credential string) (Identity, TenantSettings, error)
}
