package model

import (
	"testing"
	"time"
)

func matchWithResult(home, away int32, status MatchStatus, double bool) *Match {
	return &Match{
		ID:          1,
		Kickoff:     time.Date(2024, time.March, 10, 16, 0, 0, 0, time.UTC),
		Status:      status,
		HomeGoals:   &home,
		AwayGoals:   &away,
		DoubleScore: double,
	}
}

func TestGuessEvaluateAndConsolidate_noResultIsNoop(t *testing.T) {
	g := &Guess{HomeGoals: 2, AwayGoals: 1, Score: 3}
	m := &Match{ID: 1, Status: StatusNotStarted}

	if g.EvaluateAndConsolidate(m) {
		t.Errorf("expected no evaluation for a match without a result")
	}
	if g.Score != 3 {
		t.Errorf("expected score to stay at 3, got %d", g.Score)
	}
	if g.Consolidated {
		t.Errorf("expected guess to stay unconsolidated")
	}
}

func TestGuessEvaluateAndConsolidate_inProgressTracksWithoutConsolidating(t *testing.T) {
	g := &Guess{HomeGoals: 2, AwayGoals: 0}

	m := matchWithResult(1, 0, StatusFirstHalf, false)
	if !g.EvaluateAndConsolidate(m) {
		t.Fatalf("expected an evaluation")
	}
	if g.Score != 5 {
		t.Errorf("expected score 5 while 1x0, got %d", g.Score)
	}
	if g.Consolidated {
		t.Errorf("guess must not consolidate while the match is in progress")
	}

	// The score keeps tracking the match as goals come in.
	m = matchWithResult(2, 0, StatusSecondHalf, false)
	g.EvaluateAndConsolidate(m)
	if g.Score != 10 {
		t.Errorf("expected score 10 at 2x0, got %d", g.Score)
	}
	if g.Consolidated {
		t.Errorf("guess must not consolidate while the match is in progress")
	}
}

func TestGuessEvaluateAndConsolidate_finishedConsolidates(t *testing.T) {
	for _, status := range FinishedStatuses {
		t.Run(string(status), func(t *testing.T) {
			g := &Guess{HomeGoals: 1, AwayGoals: 1}
			m := matchWithResult(1, 1, status, false)

			g.EvaluateAndConsolidate(m)
			if g.Score != 10 {
				t.Errorf("expected score 10, got %d", g.Score)
			}
			if !g.Consolidated {
				t.Errorf("expected guess to consolidate on a finished match")
			}
		})
	}
}

func TestGuessEvaluateAndConsolidate_doubleScore(t *testing.T) {
	g := &Guess{HomeGoals: 1, AwayGoals: 0}
	m := matchWithResult(1, 0, StatusFinished, true)

	g.EvaluateAndConsolidate(m)
	if g.Score != 20 {
		t.Errorf("expected doubled score 20, got %d", g.Score)
	}
}

// A corrected result on an already finished match still re-evaluates the
// guess; consolidation does not freeze it.
func TestGuessEvaluateAndConsolidate_correctionReevaluates(t *testing.T) {
	g := &Guess{HomeGoals: 2, AwayGoals: 0}

	g.EvaluateAndConsolidate(matchWithResult(2, 0, StatusFinished, false))
	if g.Score != 10 || !g.Consolidated {
		t.Fatalf("expected a consolidated 10, got score=%d consolidated=%v", g.Score, g.Consolidated)
	}

	g.EvaluateAndConsolidate(matchWithResult(2, 2, StatusFinished, false))
	if g.Score != 1 {
		t.Errorf("expected corrected score 1, got %d", g.Score)
	}
}
