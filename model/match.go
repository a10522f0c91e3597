package model

import (
	"fmt"
	"time"
)

type MatchStatus string

const (
	StatusNotStarted        MatchStatus = "NS"
	StatusFirstHalf         MatchStatus = "1H"
	StatusHalftime          MatchStatus = "HT"
	StatusSecondHalf        MatchStatus = "2H"
	StatusFinished          MatchStatus = "FT"
	StatusFinishedExtraTime MatchStatus = "AET"
	StatusFinishedPenalties MatchStatus = "PEN"
)

var (
	InProgressStatuses = []MatchStatus{StatusFirstHalf, StatusHalftime, StatusSecondHalf}
	FinishedStatuses   = []MatchStatus{StatusFinished, StatusFinishedExtraTime, StatusFinishedPenalties}

	// InProgressAndFinishedStatuses are the statuses of matches that count
	// towards rankings. Not-yet-started matches never contribute.
	InProgressAndFinishedStatuses = []MatchStatus{
		StatusFirstHalf, StatusHalftime, StatusSecondHalf,
		StatusFinished, StatusFinishedExtraTime, StatusFinishedPenalties,
	}
)

// ParseMatchStatus maps the short status codes used by the result feed to a
// MatchStatus. Unknown codes are treated as not started.
func ParseMatchStatus(s string) MatchStatus {
	switch MatchStatus(s) {
	case StatusFirstHalf, StatusHalftime, StatusSecondHalf,
		StatusFinished, StatusFinishedExtraTime, StatusFinishedPenalties:
		return MatchStatus(s)
	default:
		return StatusNotStarted
	}
}

type Match struct {
	ID            int32
	DataSourceID  int32
	CompetitionID int32
	HomeTeam      *Team
	AwayTeam      *Team
	Kickoff       time.Time
	Status        MatchStatus
	HomeGoals     *int32
	AwayGoals     *int32
	DoubleScore   bool
}

func (m *Match) String() string {
	if m.HomeTeam == nil || m.AwayTeam == nil {
		return fmt.Sprintf("match %d", m.ID)
	}
	return fmt.Sprintf("%s x %s", m.HomeTeam.Name, m.AwayTeam.Name)
}

func (m *Match) IsFinished() bool {
	for _, s := range FinishedStatuses {
		if m.Status == s {
			return true
		}
	}
	return false
}

func (m *Match) IsInProgress() bool {
	for _, s := range InProgressStatuses {
		if m.Status == s {
			return true
		}
	}
	return false
}

func (m *Match) HasResult() bool {
	return m.HomeGoals != nil && m.AwayGoals != nil
}

// ResultString formats the result as "2 x 1", or returns "" while the match
// has no result.
func (m *Match) ResultString() string {
	if !m.HasResult() {
		return ""
	}
	return fmt.Sprintf("%d x %d", *m.HomeGoals, *m.AwayGoals)
}

// OpenForGuesses reports whether the match currently accepts guesses. A match
// is open from openWindowHours before kickoff until leadMinutes before
// kickoff. The same predicate decides whether a guess is still editable and
// whether it must be hidden from other guessers. With a zero-length window
// the match is never open.
func (m *Match) OpenForGuesses(now time.Time, leadMinutes, openWindowHours int32) bool {
	return m.Kickoff.After(now.Add(time.Duration(leadMinutes)*time.Minute)) &&
		!m.Kickoff.After(now.Add(time.Duration(openWindowHours)*time.Hour))
}

const (
	regularMatchDurationMinutes = 90
	matchTimeLimitMinutes       = 150
)

// UpdateStatus applies a status reported by the result feed. A match still
// reported in the second half more than 150 minutes after kickoff with at
// least 90 elapsed minutes is forced to finished, because the feed stops
// updating some fixtures.
func (m *Match) UpdateStatus(status MatchStatus, elapsedMinutes int, now time.Time) {
	m.Status = status

	limit := m.Kickoff.Add(matchTimeLimitMinutes * time.Minute)
	if !now.Before(limit) && elapsedMinutes >= regularMatchDurationMinutes && m.Status == StatusSecondHalf {
		m.Status = StatusFinished
	}
}
