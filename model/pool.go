package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultLeadMinutes is how many minutes before kickoff guessing closes
	// unless the pool configures otherwise.
	DefaultLeadMinutes = 30

	// DefaultOpenWindowHours is how many hours before kickoff guessing opens
	// unless the pool configures otherwise.
	DefaultOpenWindowHours = 48

	// MaxMatchesInRanking caps how many recent matches are attached to each
	// leaderboard entry. The cap never affects the score sum.
	MaxMatchesInRanking = 50
)

type GuessPool struct {
	ID              int32
	UUID            uuid.UUID
	Name            string
	Slug            string
	OwnerID         int32
	Private         bool
	NewMatches      bool
	UpdatedMatches  bool
	LeadMinutes     int32
	OpenWindowHours int32
	Created         time.Time
}

// MatchOpenForGuesses applies the pool's configured guess window to a match.
func (p *GuessPool) MatchOpenForGuesses(m *Match, now time.Time) bool {
	return m.OpenForGuesses(now, p.LeadMinutes, p.OpenWindowHours)
}

// PoolFlag identifies the per-pool booleans toggled when the match feed
// creates or updates matches involving the pool.
type PoolFlag string

const (
	FlagNewMatches     PoolFlag = "new_matches"
	FlagUpdatedMatches PoolFlag = "updated_matches"
)

// Slugify turns a pool name into its URL slug: lower case, runs of
// non-alphanumeric characters collapsed into single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
