package model

type Guesser struct {
	ID                   int32
	UserID               string
	Name                 string
	Email                string
	SupportedTeamID      *int32
	ReceiveNotifications bool
}

type Guess struct {
	ID           int32
	GuesserID    int32
	MatchID      int32
	HomeGoals    int32
	AwayGoals    int32
	Score        int32
	Consolidated bool
}

// EvaluateAndConsolidate re-scores the guess against the match's current
// result and reports whether an evaluation happened. A match without a result
// is a no-op, not an error, since that is the normal state before kickoff.
// The guess is consolidated only once the match is finished; until then the
// score keeps tracking a match in progress and a later result correction
// still re-evaluates.
func (g *Guess) EvaluateAndConsolidate(m *Match) bool {
	if !m.HasResult() {
		return false
	}

	g.Score = EvaluateScore(g.HomeGoals, g.AwayGoals, *m.HomeGoals, *m.AwayGoals, m.DoubleScore)
	if m.IsFinished() {
		g.Consolidated = true
	}
	return true
}

// GuessInput is one submitted guess from a form batch. Goal values come in as
// raw strings so that validation stays with the intake logic.
type GuessInput struct {
	MatchID   int32
	HomeGoals string
	AwayGoals string
}

// GuessSubmissionResult reports what happened to a single match of a
// submitted batch. A rejected match never aborts the rest of the batch.
type GuessSubmissionResult struct {
	MatchID  int32
	Accepted bool
	Reason   string
}
