package easycoach

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(ClientConfig{
		BaseURL:  srv.URL,
		Token:    "secret",
		LeagueID: 726,
		SeasonID: 26,
		Timeout:  2 * time.Second,
	}, nil)
}

func TestClient_ListMatches(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/league", r.URL.Path)
		assert.Equal(t, "726", r.URL.Query().Get("league_id"))
		assert.Equal(t, "26", r.URL.Query().Get("season_id"))
		assert.Equal(t, "secret", r.URL.Query().Get("user_token"))
		w.Write([]byte(`{"status":"ok","matches":[{"game_id":1001,"date":"17/08/24","hour":"08:30","result":"2-1"}]}`))
	})

	matches, err := client.ListMatches(t.Context())
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "1001", matches[0].GameID.String())
	assert.Equal(t, "2-1", matches[0].Result.String())
}

func TestClient_ListMatches_StatusNotOK(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","message":"bad token"}`))
	})

	_, err := client.ListMatches(t.Context())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStatusNotOK))
}

func TestClient_ListMatches_HTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := client.ListMatches(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_GetMatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/match", r.URL.Path)
		assert.Equal(t, "A1", r.URL.Query().Get("match_id"))
		w.Write([]byte(detailJSON))
	})

	detail, err := client.GetMatch(t.Context(), "A1")
	require.NoError(t, err)
	require.Len(t, detail.Teams, 2)
	assert.Equal(t, "https://d1.cloudfront.net/pano.m3u8", detail.MatchDetails.Video.PanoHLS)
}

func TestClient_GetMatch_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := client.GetMatch(t.Context(), "A1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_TransportFailure(t *testing.T) {
	client := NewClient(ClientConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}, nil)

	_, err := client.ListMatches(t.Context())
	require.Error(t, err)
}
