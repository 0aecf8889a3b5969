// Package easycoach provides the HTTP client and match normalization for the
// EasyCoach league API.
//
// EasyCoach uses token auth (user_token query parameter) and wraps every
// payload in {"status": "ok", ...}. Any other status means "no data".
// Rate limiting is handled via a token bucket limiter.
package easycoach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	leaguePath = "/league"
	matchPath  = "/match"
	statusOK   = "ok"
)

// ErrStatusNotOK is returned when the API answers with a non-"ok" status.
var ErrStatusNotOK = errors.New("easycoach: status not ok")

// ClientConfig configures a Client.
type ClientConfig struct {
	BaseURL           string
	Token             string
	LeagueID          int
	SeasonID          int
	RequestsPerMinute int
	Timeout           time.Duration
	HTTPClient        *http.Client
}

// Client is the HTTP client for the league list and match detail endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	leagueID   int
	seasonID   int
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates an EasyCoach HTTP client with rate limiting and a fixed
// per-request timeout.
func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Limit(float64(cfg.RequestsPerMinute) / 60.0)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		leagueID:   cfg.LeagueID,
		seasonID:   cfg.SeasonID,
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
	}
}

// ListMatches fetches every match of the configured league season.
func (c *Client) ListMatches(ctx context.Context) ([]Listing, error) {
	params := url.Values{}
	params.Set("league_id", strconv.Itoa(c.leagueID))
	params.Set("season_id", strconv.Itoa(c.seasonID))

	var resp LeagueResponse
	if err := c.get(ctx, leaguePath, params, &resp); err != nil {
		return nil, err
	}
	if resp.Status != statusOK {
		return nil, fmt.Errorf("%s: %w (status=%q)", leaguePath, ErrStatusNotOK, resp.Status)
	}
	c.logger.Debug("Fetched league matches", "count", len(resp.Matches))
	return resp.Matches, nil
}

// GetMatch fetches lineups and video metadata for one match.
func (c *Client) GetMatch(ctx context.Context, matchID string) (*MatchDetail, error) {
	params := url.Values{}
	params.Set("match_id", matchID)

	var detail MatchDetail
	if err := c.get(ctx, matchPath, params, &detail); err != nil {
		return nil, err
	}
	if detail.Status != statusOK {
		return nil, fmt.Errorf("%s %s: %w (status=%q)", matchPath, matchID, ErrStatusNotOK, detail.Status)
	}
	return &detail, nil
}

// get performs a rate-limited GET request and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("user_token", c.token)

	u := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("EasyCoach %s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
