package listener

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/matchday-data/internal/cache"
)

func TestHandleRebuilt_InvalidatesCollection(t *testing.T) {
	c := cache.New(true)
	c.Set(cache.MatchListKey(), []byte("{}"))
	c.Set(cache.PlayerKey("1"), []byte("{}"))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	HandleRebuilt(c, "players", logger)
	_, _, ok := c.Get(cache.PlayerKey("1"))
	assert.False(t, ok)
	_, _, ok = c.Get(cache.MatchListKey())
	assert.True(t, ok)

	HandleRebuilt(c, "", logger)
	assert.Empty(t, c.Stats().Entries)
}

func TestStart_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		// Nothing listens on this port; the loop backs off until cancelled.
		Start(ctx, "postgres://user@127.0.0.1:1/none?connect_timeout=1", cache.New(false), slog.New(slog.NewTextHandler(io.Discard, nil)))
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		require.Fail(t, "listener did not stop")
	}
}
