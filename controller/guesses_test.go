package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eldersantoss/palpiteiros/model"
)

func TestSubmitGuesses_windowAndValidation(t *testing.T) {
	ctx := context.Background()
	ctrl := newTestController(t, nil, nil)
	now := testDB.Clock.Now()

	owner := newTestGuesser(t, ctx)
	pool := newTestPool(t, ctx, ctrl, owner.ID)

	open := newTestMatch(t, ctx, now.Add(2*time.Hour))
	tooSoon := newTestMatch(t, ctx, now.Add(10*time.Minute))
	tooFar := newTestMatch(t, ctx, now.Add(72*time.Hour))

	inputs := []model.GuessInput{
		{MatchID: open.ID, HomeGoals: "2", AwayGoals: "1"},
		{MatchID: tooSoon.ID, HomeGoals: "1", AwayGoals: "0"},
		{MatchID: tooFar.ID, HomeGoals: "1", AwayGoals: "0"},
		{MatchID: open.ID, HomeGoals: "two", AwayGoals: "1"},
		{MatchID: open.ID, HomeGoals: "1", AwayGoals: "-1"},
	}
	results, err := ctrl.SubmitGuesses(ctx, pool, owner.ID, inputs, false)
	if err != nil {
		t.Fatalf("error submitting guesses: %v", err)
	}
	if len(results) != len(inputs) {
		t.Fatalf("expected %d results, got %d", len(inputs), len(results))
	}

	expected := []bool{true, false, false, false, false}
	for i, res := range results {
		if res.Accepted != expected[i] {
			t.Errorf("input %d - expected accepted=%v, got %v (%s)", i, expected[i], res.Accepted, res.Reason)
		}
	}

	// The accepted guess shows up with the open matches.
	matches, err := ctrl.OpenMatches(ctx, pool, owner.ID)
	if err != nil {
		t.Fatalf("error getting open matches: %v", err)
	}
	var found *model.Guess
	for _, mg := range matches {
		if mg.Match.ID == open.ID {
			found = mg.Guess
		}
		if mg.Match.ID == tooSoon.ID || mg.Match.ID == tooFar.ID {
			t.Errorf("match %d should not be open", mg.Match.ID)
		}
	}
	if found == nil {
		t.Fatalf("expected a guess for the open match")
	}
	if found.HomeGoals != 2 || found.AwayGoals != 1 {
		t.Errorf("unexpected guess: %d x %d", found.HomeGoals, found.AwayGoals)
	}
}

func TestSubmitGuesses_replaceAndReplicate(t *testing.T) {
	ctx := context.Background()
	ctrl := newTestController(t, nil, nil)
	now := testDB.Clock.Now()

	guesser := newTestGuesser(t, ctx)
	poolA := newTestPool(t, ctx, ctrl, guesser.ID)
	poolB := newTestPool(t, ctx, ctrl, guesser.ID)
	m := newTestMatch(t, ctx, now.Add(3*time.Hour))

	// Exclusive mode touches only the submission pool.
	inputs := []model.GuessInput{{MatchID: m.ID, HomeGoals: "1", AwayGoals: "0"}}
	if _, err := ctrl.SubmitGuesses(ctx, poolA, guesser.ID, inputs, false); err != nil {
		t.Fatalf("error submitting guess: %v", err)
	}

	open, err := ctrl.OpenMatches(ctx, poolB, guesser.ID)
	if err != nil {
		t.Fatalf("error getting open matches: %v", err)
	}
	for _, mg := range open {
		if mg.Match.ID == m.ID && mg.Guess != nil {
			t.Errorf("exclusive submission leaked into another pool")
		}
	}

	// Replicate mode reaches every shared pool.
	inputs = []model.GuessInput{{MatchID: m.ID, HomeGoals: "3", AwayGoals: "3"}}
	if _, err := ctrl.SubmitGuesses(ctx, poolA, guesser.ID, inputs, true); err != nil {
		t.Fatalf("error submitting replicated guess: %v", err)
	}

	for _, pool := range []*model.GuessPool{poolA, poolB} {
		g, err := testDB.DB.GetPoolGuess(ctx, pool.ID, m.ID, guesser.ID)
		if err != nil {
			t.Fatalf("error getting guess in pool %s: %v", pool.Slug, err)
		}
		if g.HomeGoals != 3 || g.AwayGoals != 3 {
			t.Errorf("pool %s - unexpected guess %d x %d", pool.Slug, g.HomeGoals, g.AwayGoals)
		}
	}

	// Replicated guesses are a single row shared by both pools.
	gA, _ := testDB.DB.GetPoolGuess(ctx, poolA.ID, m.ID, guesser.ID)
	gB, _ := testDB.DB.GetPoolGuess(ctx, poolB.ID, m.ID, guesser.ID)
	if gA.ID != gB.ID {
		t.Errorf("expected one shared guess row, got %d and %d", gA.ID, gB.ID)
	}

	orphans, err := testDB.DB.CountOrphanGuesses(ctx)
	if err != nil {
		t.Fatalf("error counting orphans: %v", err)
	}
	if orphans != 0 {
		t.Errorf("expected no orphan guesses, got %d", orphans)
	}
}

func TestSubmitGuesses_notAMember(t *testing.T) {
	ctx := context.Background()
	ctrl := newTestController(t, nil, nil)

	owner := newTestGuesser(t, ctx)
	outsider := newTestGuesser(t, ctx)
	pool := newTestPool(t, ctx, ctrl, owner.ID)

	_, err := ctrl.SubmitGuesses(ctx, pool, outsider.ID, nil, false)
	if !errors.Is(err, ErrNotPoolMember) {
		t.Fatalf("expected ErrNotPoolMember, got %v", err)
	}
}

func TestSubmitGuesses_matchOutsidePool(t *testing.T) {
	ctx := context.Background()
	ctrl := newTestController(t, nil, nil)
	now := testDB.Clock.Now()

	owner := newTestGuesser(t, ctx)
	// A pool with no competitions or teams sees no matches at all.
	pool, err := ctrl.CreatePool(ctx, "Empty Pool", owner.ID, true, nil, nil)
	if err != nil {
		t.Fatalf("error creating pool: %v", err)
	}
	m := newTestMatch(t, ctx, now.Add(2*time.Hour))

	inputs := []model.GuessInput{{MatchID: m.ID, HomeGoals: "1", AwayGoals: "1"}}
	results, err := ctrl.SubmitGuesses(ctx, pool, owner.ID, inputs, false)
	if err != nil {
		t.Fatalf("error submitting guess: %v", err)
	}
	if results[0].Accepted {
		t.Errorf("expected the guess to be rejected")
	}
}

func TestPendingMatches(t *testing.T) {
	ctx := context.Background()
	ctrl := newTestController(t, nil, nil)
	now := testDB.Clock.Now()

	owner := newTestGuesser(t, ctx)
	pool := newTestPool(t, ctx, ctrl, owner.ID)

	guessed := newTestMatch(t, ctx, now.Add(4*time.Hour))
	pending := newTestMatch(t, ctx, now.Add(5*time.Hour))

	inputs := []model.GuessInput{{MatchID: guessed.ID, HomeGoals: "0", AwayGoals: "0"}}
	if _, err := ctrl.SubmitGuesses(ctx, pool, owner.ID, inputs, false); err != nil {
		t.Fatalf("error submitting guess: %v", err)
	}

	matches, err := ctrl.PendingMatches(ctx, pool, owner.ID)
	if err != nil {
		t.Fatalf("error getting pending matches: %v", err)
	}

	foundPending, foundGuessed := false, false
	for _, m := range matches {
		if m.ID == pending.ID {
			foundPending = true
		}
		if m.ID == guessed.ID {
			foundGuessed = true
		}
	}
	if !foundPending {
		t.Errorf("expected the unguessed match to be pending")
	}
	if foundGuessed {
		t.Errorf("the guessed match should not be pending")
	}
}
