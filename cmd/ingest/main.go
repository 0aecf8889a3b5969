// Command ingest is the Matchday data ingestion CLI.
//
// Usage:
//
//	matchday-ingest matches
//	matchday-ingest matches --breakdown ./breakdown_game_1061429_league_726.json
//	matchday-ingest players
//	matchday-ingest all --dry-run
//
// The matches command must run before players: players are aggregated from
// the stored match documents.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/matchday-data/internal/config"
	"github.com/albapepper/matchday-data/internal/db"
	"github.com/albapepper/matchday-data/internal/maintenance"
	"github.com/albapepper/matchday-data/internal/provider/breakdown"
	"github.com/albapepper/matchday-data/internal/provider/easycoach"
	"github.com/albapepper/matchday-data/internal/seed"
	"github.com/albapepper/matchday-data/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "matchday-ingest",
		Short: "Matchday data ingestion CLI",
	}

	root.AddCommand(matchesCmd())
	root.AddCommand(playersCmd())
	root.AddCommand(allCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// commands
// --------------------------------------------------------------------------

type options struct {
	breakdownFile string
	dryRun        bool
	skillSeed     uint64
	seeded        bool
}

func (o *options) bind(cmd *cobra.Command, withBreakdown, withSkills bool) {
	if withBreakdown {
		cmd.Flags().StringVar(&o.breakdownFile, "breakdown", "", "Breakdown file path (default $BREAKDOWN_FILE)")
	}
	if withSkills {
		cmd.Flags().Uint64Var(&o.skillSeed, "skill-seed", 0, "Seed for reproducible skill values")
	}
	cmd.Flags().BoolVar(&o.dryRun, "dry-run", false, "Write to an in-memory store instead of Postgres")
}

func matchesCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "matches",
		Short: "Rebuild the match collection from the league API and breakdown file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(opts.dryRun, false, func(ctx context.Context, cfg *config.Config, t *target) error {
				_, err := ingestMatches(ctx, cfg, t.matches, opts)
				if err != nil {
					return err
				}
				t.notify(ctx, config.MatchesTable)
				return nil
			})
		},
	}
	opts.bind(cmd, true, false)
	return cmd
}

func playersCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Rebuild the player collection from stored matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.seeded = cmd.Flags().Changed("skill-seed")
			return runSeed(opts.dryRun, true, func(ctx context.Context, cfg *config.Config, t *target) error {
				if _, err := aggregatePlayers(ctx, t.source, t.players, opts); err != nil {
					return err
				}
				t.notify(ctx, config.PlayersTable)
				return nil
			})
		},
	}
	opts.bind(cmd, false, true)
	return cmd
}

func allCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Rebuild matches, then players",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.seeded = cmd.Flags().Changed("skill-seed")
			return runSeed(opts.dryRun, false, func(ctx context.Context, cfg *config.Config, t *target) error {
				if _, err := ingestMatches(ctx, cfg, t.matches, opts); err != nil {
					return err
				}
				t.notify(ctx, config.MatchesTable)

				// Aggregate from what was just written.
				if _, err := aggregatePlayers(ctx, t.matches, t.players, opts); err != nil {
					return err
				}
				t.notify(ctx, config.PlayersTable)
				return nil
			})
		},
	}
	opts.bind(cmd, true, true)
	return cmd
}

// --------------------------------------------------------------------------
// runs
// --------------------------------------------------------------------------

func ingestMatches(ctx context.Context, cfg *config.Config, ms store.MatchStore, opts options) (seed.SeedResult, error) {
	if cfg.EasyCoachAPIURL == "" {
		logger.Warn("EASYCOACH_API_URL not set, league API requests will fail")
	}
	client := easycoach.NewClient(easycoach.ClientConfig{
		BaseURL:           cfg.EasyCoachAPIURL,
		Token:             cfg.EasyCoachAPIToken,
		LeagueID:          cfg.EasyCoachLeagueID,
		SeasonID:          cfg.EasyCoachSeasonID,
		RequestsPerMinute: cfg.EasyCoachRequestsPerMinute,
		Timeout:           cfg.EasyCoachTimeout,
	}, logger)

	file := cfg.BreakdownFile
	if opts.breakdownFile != "" {
		file = opts.breakdownFile
	}

	pipeline := seed.NewMatchPipeline(client, ms, seed.MatchPipelineOptions{
		CDNHosts:      cfg.VideoCDNHosts,
		BreakdownFile: file,
		Breakdown: breakdown.MatchOptions{
			MatchID:     cfg.BreakdownMatchID,
			Competition: cfg.CompetitionLabel(),
			VideoURL:    cfg.BreakdownVideoURL,
		},
	}, logger)

	start := time.Now()
	result, err := pipeline.Run(ctx)
	if err != nil {
		return result, fmt.Errorf("ingest matches: %w", err)
	}
	logger.Info("Match ingestion finished",
		"duration", time.Since(start).Round(time.Millisecond),
		"summary", result.Summary())
	logErrors(result)
	return result, nil
}

func aggregatePlayers(ctx context.Context, ms store.MatchStore, ps store.PlayerStore, opts options) (seed.SeedResult, error) {
	var skillSeed *uint64
	if opts.seeded {
		skillSeed = &opts.skillSeed
	}
	agg := seed.NewPlayerAggregator(ms, ps, seed.NewSkillGenerator(skillSeed), logger)

	start := time.Now()
	result, err := agg.Run(ctx)
	if err != nil {
		return result, fmt.Errorf("aggregate players: %w", err)
	}
	logger.Info("Player aggregation finished",
		"duration", time.Since(start).Round(time.Millisecond),
		"summary", result.Summary())
	logErrors(result)
	return result, nil
}

func logErrors(result seed.SeedResult) {
	for _, e := range result.Errors {
		logger.Error("seed error", "error", e)
	}
}

// --------------------------------------------------------------------------
// helpers
// --------------------------------------------------------------------------

// target is where a run reads and writes. In a dry run writes go to memory
// while the players command still reads the real match collection; source,
// pg and pool are nil when the run never needs Postgres.
type target struct {
	matches store.MatchStore // written by the match pipeline
	source  store.MatchStore // read by the players command
	players store.PlayerStore
	pg      *store.Postgres
	pool    *db.Pool
	dryRun  bool
}

// notify refreshes table statistics and tells API instances to drop cached
// responses. Failures only cost freshness, so they are logged.
func (t *target) notify(ctx context.Context, collection string) {
	if t.dryRun || t.pg == nil {
		return
	}
	_ = maintenance.AnalyzeTables(ctx, t.pool.Pool, logger, collection)
	if err := t.pg.NotifyRebuilt(ctx, collection); err != nil {
		logger.Warn("Rebuild notification failed", "collection", collection, "error", err)
	}
}

// runSeed prepares the target and runs fn. readsStored marks commands that
// read the stored match collection, which a dry run still takes from
// Postgres. Other dry runs never connect.
func runSeed(dryRun, readsStored bool, fn func(ctx context.Context, cfg *config.Config, t *target) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if dryRun && !readsStored {
		mem := store.NewMemory()
		logger.Info("Dry run: writes go to an in-memory store, database not used")
		return fn(ctx, config.FromEnv(), &target{matches: mem, players: mem, dryRun: true})
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	pg := store.NewPostgres(pool.Pool)
	t := &target{matches: pg, source: pg, players: pg, pg: pg, pool: pool, dryRun: dryRun}
	if dryRun {
		mem := store.NewMemory()
		t.matches = mem
		t.players = mem
		logger.Info("Dry run: writes go to an in-memory store")
	}

	return fn(ctx, cfg, t)
}
