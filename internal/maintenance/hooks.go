package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AnalyzeTables refreshes planner statistics for the given tables. A rebuild
// deletes and rewrites every row, so call this after a successful run.
func AnalyzeTables(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger, tables ...string) error {
	for _, t := range tables {
		start := time.Now()
		_, err := pool.Exec(ctx, fmt.Sprintf("ANALYZE %s", t))
		dur := time.Since(start).Round(time.Millisecond)

		if err != nil {
			logger.Warn("Failed to analyze table",
				"table", t, "duration", dur, "error", err)
			return fmt.Errorf("analyze %s: %w", t, err)
		}
		logger.Info("Analyzed table", "table", t, "duration", dur)
	}
	return nil
}
