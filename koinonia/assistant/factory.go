package assistant

import (
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/koinonia-app/koinonia/koinonia/assistant/adapters"
	ports "github.com/koinonia-app/koinonia/koinonia/assistant/ports"
	"github.com/koinonia-app/koinonia/koinonia/config"
)

// Factory wires a Service from configuration. The identity resolver,
// embedder, and completion provider are app-level collaborators and are
// injected rather than constructed here.
type Factory struct {
	cfg    *config.Config
	db     *sql.DB
	logger zerolog.Logger
}

// NewFactory creates a factory over a migrated database connection.
func NewFactory(cfg *config.Config, db *sql.DB, logger zerolog.Logger) *Factory {
	return &Factory{cfg: cfg, db: db, logger: logger}
}

// CreateService builds a fully wired Service.
func (f *Factory) CreateService(
	identity ports.IdentityResolver,
	embedder ports.Embedder,
	provider ports.CompletionProvider,
	system string,
) *Service {
	store := adapters.NewLibSQLStore(f.db)
	meter := adapters.NewZerologConsumptionLogger(f.logger)
	a := f.cfg.Assistant

	return NewService(
		identity,
		embedder,
		provider,
		meter,
		NewDailyLimiter(store, a.DailyQuestionLimit),
		NewExactCache(store),
		NewSemanticCache(store, a.SimilarityThreshold, f.logger),
		NewCacheWriter(store, a.MinAnswerLength, a.CacheTTL, f.logger),
		system,
		a.ReplayTokenDelay,
		f.logger,
	)
}
