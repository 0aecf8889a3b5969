package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/albapepper/matchday-data/internal/provider/breakdown"
	"github.com/albapepper/matchday-data/internal/provider/easycoach"
	"github.com/albapepper/matchday-data/internal/store"
)

// MatchSource is the league API. *easycoach.Client implements it.
type MatchSource interface {
	ListMatches(ctx context.Context) ([]easycoach.Listing, error)
	GetMatch(ctx context.Context, matchID string) (*easycoach.MatchDetail, error)
}

// MatchPipelineOptions configures a MatchPipeline.
type MatchPipelineOptions struct {
	// CDNHosts is the allow-list for detail video streams.
	CDNHosts []string
	// BreakdownFile is the path of the breakdown export. Empty skips the
	// breakdown step.
	BreakdownFile string
	Breakdown     breakdown.MatchOptions
}

// MatchPipeline rebuilds the match collection from the league API and then
// merges the breakdown match on top.
type MatchPipeline struct {
	source MatchSource
	store  store.MatchStore
	opts   MatchPipelineOptions
	logger *slog.Logger
}

// NewMatchPipeline creates a pipeline.
func NewMatchPipeline(source MatchSource, st store.MatchStore, opts MatchPipelineOptions, logger *slog.Logger) *MatchPipeline {
	return &MatchPipeline{source: source, store: st, opts: opts, logger: logger}
}

// Run lists, clears, inserts every listed match, then upserts the breakdown
// match. Source failures degrade to less data; only a failed clear (or a
// cancelled context) aborts the run.
func (p *MatchPipeline) Run(ctx context.Context) (SeedResult, error) {
	var result SeedResult

	// 1. List
	p.logger.Info("Phase 1/3: Fetching match list...")
	listings, err := p.source.ListMatches(ctx)
	if err != nil {
		p.logger.Warn("Match list unavailable, continuing without API matches", "error", err)
		listings = nil
	}
	p.logger.Info("Match list fetched", "count", len(listings))

	// 2. Clear
	removed, err := p.store.DeleteAllMatches(ctx)
	if err != nil {
		return result, fmt.Errorf("clear matches: %w", err)
	}
	p.logger.Info("Cleared match collection", "removed", removed)

	// 3. Details + insert
	p.logger.Info("Phase 2/3: Ingesting API matches...")
	for i, l := range listings {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		id := l.GameID.String()
		if id == "" {
			result.AddErrorf("listing %d has no game_id", i)
			continue
		}

		detail, err := p.source.GetMatch(ctx, id)
		if err != nil {
			p.logger.Warn("Match detail unavailable, inserting without lineups", "match_id", id, "error", err)
			detail = nil
		}

		m := easycoach.NormalizeMatch(l, detail, p.opts.CDNHosts)
		if err := p.store.InsertMatch(ctx, m); err != nil {
			result.AddErrorf("insert match %s: %v", id, err)
			continue
		}
		result.MatchesInserted++

		if result.MatchesInserted%25 == 0 {
			p.logger.Info("Match progress", "count", result.MatchesInserted)
		}
	}
	p.logger.Info("API matches done", "inserted", result.MatchesInserted)

	// 4-5. Breakdown
	p.logger.Info("Phase 3/3: Merging breakdown match...")
	p.mergeBreakdown(ctx, &result)

	count, err := p.store.CountMatches(ctx)
	if err != nil {
		result.AddErrorf("count matches: %v", err)
		count = result.MatchesInserted + result.MatchesUpserted
	}
	result.MatchesPersisted = count

	p.logger.Info("Match ingestion complete", "summary", result.Summary())
	return result, nil
}

func (p *MatchPipeline) mergeBreakdown(ctx context.Context, result *SeedResult) {
	if p.opts.BreakdownFile == "" {
		p.logger.Info("No breakdown file configured, skipping")
		return
	}

	rec, err := breakdown.Load(p.opts.BreakdownFile)
	if errors.Is(err, breakdown.ErrNotFound) {
		p.logger.Info("Breakdown file not found, skipping", "path", p.opts.BreakdownFile)
		return
	}
	if err != nil {
		result.AddErrorf("load breakdown: %v", err)
		return
	}

	events := breakdown.ExtractEvents(rec)
	m := breakdown.NormalizeMatch(p.opts.Breakdown, rec, events)
	if err := p.store.UpsertMatch(ctx, m); err != nil {
		result.AddErrorf("upsert breakdown match %s: %v", m.ID, err)
		return
	}
	result.MatchesUpserted++
	p.logger.Info("Breakdown match upserted", "match_id", m.ID, "events", len(events))
}
