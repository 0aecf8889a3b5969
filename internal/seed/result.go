// Package seed rebuilds the match and player collections.
package seed

import "fmt"

// SeedResult tracks counts and errors from a seeding operation.
type SeedResult struct {
	MatchesInserted  int
	MatchesUpserted  int
	MatchesPersisted int
	PlayersInserted  int
	Errors           []string
}

// Add merges another SeedResult into this one. MatchesPersisted is a
// collection count, so the latest non-zero value wins.
func (r *SeedResult) Add(other SeedResult) {
	r.MatchesInserted += other.MatchesInserted
	r.MatchesUpserted += other.MatchesUpserted
	if other.MatchesPersisted != 0 {
		r.MatchesPersisted = other.MatchesPersisted
	}
	r.PlayersInserted += other.PlayersInserted
	r.Errors = append(r.Errors, other.Errors...)
}

// AddError records an error message.
func (r *SeedResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// AddErrorf records a formatted error message.
func (r *SeedResult) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the seed operation.
func (r *SeedResult) Summary() string {
	return fmt.Sprintf(
		"matches_inserted=%d matches_upserted=%d matches=%d players=%d errors=%d",
		r.MatchesInserted, r.MatchesUpserted,
		r.MatchesPersisted, r.PlayersInserted,
		len(r.Errors),
	)
}
