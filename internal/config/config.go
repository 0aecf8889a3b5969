// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/ingest.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Table names: single source of truth for the schema bootstrap
// --------------------------------------------------------------------------

const (
	MatchesTable = "matches"
	PlayersTable = "players"
)

// RebuildChannel is the LISTEN/NOTIFY channel the ingest CLI signals after a
// collection has been rebuilt.
const RebuildChannel = "dataset_rebuilt"

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Cache
	CacheEnabled bool

	// EasyCoach league API
	EasyCoachAPIURL            string
	EasyCoachAPIToken          string
	EasyCoachLeagueID          int
	EasyCoachSeasonID          int
	EasyCoachRequestsPerMinute int
	EasyCoachTimeout           time.Duration
	VideoCDNHosts              []string

	// Manually curated breakdown match
	BreakdownFile     string
	BreakdownMatchID  string
	BreakdownVideoURL string
}

// DefaultBreakdownVideoURL is the panoramic stream recorded for the
// breakdown match.
const DefaultBreakdownVideoURL = "https://dn3dopmbo1yw3.cloudfront.net/ifaLeagues/68f7f50964d66d80d7584b32/venue_hls/pano_hls/pano_hls.m3u8"

// ErrNoDatabaseURL is returned by Load when no database URL is set.
var ErrNoDatabaseURL = errors.New("DATABASE_URL or MATCHDAY_DATABASE_URL must be set")

// Load reads configuration from environment variables with sensible defaults
// and requires a database URL.
func Load() (*Config, error) {
	cfg := FromEnv()
	if cfg.DatabaseURL == "" {
		return nil, ErrNoDatabaseURL
	}
	return cfg, nil
}

// FromEnv reads configuration without requiring a database URL. Runs that
// never touch Postgres, such as a dry-run match ingest, use it.
func FromEnv() *Config {
	leagueID := envInt("EASYCOACH_LEAGUE_ID", 726)

	return &Config{
		DatabaseURL:    envOr("DATABASE_URL", envOr("MATCHDAY_DATABASE_URL", "")),
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 1),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 5000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{"*"}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CacheEnabled: envBool("CACHE_ENABLED", true),

		EasyCoachAPIURL:            strings.TrimRight(envOr("EASYCOACH_API_URL", ""), "/"),
		EasyCoachAPIToken:          envOr("EASYCOACH_API_TOKEN", ""),
		EasyCoachLeagueID:          leagueID,
		EasyCoachSeasonID:          envInt("EASYCOACH_SEASON_ID", 26),
		EasyCoachRequestsPerMinute: envInt("EASYCOACH_REQUESTS_PER_MINUTE", 120),
		EasyCoachTimeout:           time.Duration(envInt("EASYCOACH_TIMEOUT_SECONDS", 10)) * time.Second,
		VideoCDNHosts:              envList("VIDEO_CDN_HOSTS", []string{"cloudfront"}),

		BreakdownFile:     envOr("BREAKDOWN_FILE", fmt.Sprintf("breakdown_game_1061429_league_%d.json", leagueID)),
		BreakdownMatchID:  envOr("BREAKDOWN_MATCH_ID", "1061429"),
		BreakdownVideoURL: envOr("BREAKDOWN_VIDEO_URL", DefaultBreakdownVideoURL),
	}
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// CompetitionLabel is the competition name recorded on the breakdown match.
func (c *Config) CompetitionLabel() string {
	return fmt.Sprintf("League %d", c.EasyCoachLeagueID)
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
