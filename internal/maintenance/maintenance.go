// Package maintenance runs periodic background tasks as Go tickers and the
// post-ingestion hooks.
package maintenance

import (
	"context"
	"log/slog"
	"time"
)

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	CatchUpInterval time.Duration // Sweep for rebuilds whose NOTIFY was missed
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		CatchUpInterval: 5 * time.Minute,
	}
}

// Versioner reports a value that changes whenever either collection is
// rewritten. *store.Postgres and *store.Memory implement it.
type Versioner interface {
	DatasetVersion(ctx context.Context) (string, error)
}

// Advancer drops cached responses built from an older dataset version.
// *cache.Cache implements it.
type Advancer interface {
	Advance(version string) int
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, v Versioner, a Advancer, cfg Config, logger *slog.Logger) {
	logger.Info("Maintenance tickers started", "catchup", cfg.CatchUpInterval)

	if cfg.CatchUpInterval > 0 {
		t := time.NewTicker(cfg.CatchUpInterval)
		defer t.Stop()

		sweep := NewCatchUp(v, a, logger)
		sweep.Run(ctx) // record the starting version
		go runLoop(ctx, t.C, func() { sweep.Run(ctx) })
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// Task implementations
// --------------------------------------------------------------------------

// CatchUp advances the cache to the current dataset version, dropping
// responses from rebuilds whose notification the listener missed.
type CatchUp struct {
	versioner Versioner
	cache     Advancer
	logger    *slog.Logger
	last      string
	primed    bool
}

// NewCatchUp creates a sweep. The first Run stamps the cache with the
// starting version and reports no change.
func NewCatchUp(v Versioner, a Advancer, logger *slog.Logger) *CatchUp {
	return &CatchUp{versioner: v, cache: a, logger: logger}
}

// Run compares the current version with the last one seen and reports
// whether it changed.
func (c *CatchUp) Run(ctx context.Context) bool {
	version, err := c.versioner.DatasetVersion(ctx)
	if err != nil {
		c.logger.Warn("Catch-up sweep: failed to read dataset version", "error", err)
		return false
	}

	changed := c.primed && version != c.last
	c.last = version
	c.primed = true

	removed := c.cache.Advance(version)
	if !changed {
		return false
	}
	c.logger.Info("Catch-up sweep: dataset changed, cache advanced",
		"version", version, "removed", removed)
	return true
}
