// Package listener provides a Postgres LISTEN/NOTIFY consumer that keeps the
// API response cache in step with ingestion. It holds a dedicated pgx
// connection (not from the pool) listening on the dataset_rebuilt channel.
//
// The ingest CLI sends pg_notify('dataset_rebuilt', <collection>) after it
// rebuilds a collection; every API instance then drops the cached responses
// read from that collection.
package listener

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/matchday-data/internal/config"
)

const (
	reconnectBackoff = 5 * time.Second
	maxReconnect     = 30 * time.Second
)

// Invalidator drops the cached responses of a collection, or all of them
// for "". *cache.Cache implements it.
type Invalidator interface {
	Invalidate(collection string) int
}

// Start opens a dedicated connection and listens on the rebuild channel. It
// reconnects automatically on connection loss. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, dbURL string, cache Invalidator, logger *slog.Logger) {
	backoff := reconnectBackoff

	for {
		err := listenLoop(ctx, dbURL, cache, logger)
		if ctx.Err() != nil {
			logger.Info("Rebuild listener stopped (context cancelled)")
			return
		}

		logger.Error("Rebuild listener disconnected, reconnecting...",
			"error", err, "backoff", backoff)

		select {
		case <-time.After(backoff):
			backoff = min(backoff*2, maxReconnect)
		case <-ctx.Done():
			return
		}
	}
}

// listenLoop runs a single listen session. Returns when the connection drops
// or the context is cancelled.
func listenLoop(ctx context.Context, dbURL string, cache Invalidator, logger *slog.Logger) error {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	_, err = conn.Exec(ctx, "LISTEN "+config.RebuildChannel)
	if err != nil {
		return fmt.Errorf("LISTEN %s: %w", config.RebuildChannel, err)
	}
	logger.Info("Rebuild listener connected", "channel", config.RebuildChannel)

	// A rebuild may have finished while we were disconnected.
	HandleRebuilt(cache, "", logger)

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}
		HandleRebuilt(cache, notification.Payload, logger)
	}
}

// HandleRebuilt drops the responses built from a rebuilt collection. An
// empty payload drops everything.
func HandleRebuilt(cache Invalidator, collection string, logger *slog.Logger) {
	removed := cache.Invalidate(collection)
	logger.Info("Dataset rebuilt, cache invalidated",
		"collection", collection, "removed", removed)
}
