package controller

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/eldersantoss/palpiteiros/cache"
	"github.com/eldersantoss/palpiteiros/model"
)

func TestGetLeaderboard(t *testing.T) {
	ctx := context.Background()
	ctrl := newTestController(t, nil, nil)
	now := testDB.Clock.Now()

	owner := newTestGuesser(t, ctx)
	rival := newTestGuesser(t, ctx)
	silent := newTestGuesser(t, ctx)

	pool := newTestPool(t, ctx, ctrl, owner.ID)
	for _, g := range []*model.Guesser{rival, silent} {
		if _, err := ctrl.JoinPool(ctx, pool.UUID, g.ID); err != nil {
			t.Fatalf("error joining pool: %v", err)
		}
	}

	m1 := newTestMatch(t, ctx, now.Add(time.Hour))
	m2 := newTestMatch(t, ctx, now.Add(2*time.Hour))

	// owner hits m1 exactly and misses m2, rival gets the m2 winner right.
	submissions := []struct {
		guesserID int32
		matchID   int32
		home      string
		away      string
	}{
		{owner.ID, m1.ID, "2", "1"},
		{owner.ID, m2.ID, "0", "2"},
		{rival.ID, m2.ID, "2", "1"},
	}
	for _, s := range submissions {
		inputs := []model.GuessInput{{MatchID: s.matchID, HomeGoals: s.home, AwayGoals: s.away}}
		if _, err := ctrl.SubmitGuesses(ctx, pool, s.guesserID, inputs, false); err != nil {
			t.Fatalf("error submitting guess: %v", err)
		}
	}

	if err := ctrl.RecordMatchResult(ctx, m1.ID, 2, 1, model.StatusFinished); err != nil {
		t.Fatalf("error recording result: %v", err)
	}
	if err := ctrl.RecordMatchResult(ctx, m2.ID, 3, 0, model.StatusFinished); err != nil {
		t.Fatalf("error recording result: %v", err)
	}

	entries, err := ctrl.GetLeaderboard(ctx, pool, 0, 0, 0)
	if err != nil {
		t.Fatalf("error getting leaderboard: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	// owner: exact (10) + miss (0) = 10. rival: winner side only (3).
	// silent: no guesses, still listed with 0.
	if entries[0].Guesser.ID != owner.ID || entries[0].Score != 10 {
		t.Errorf("unexpected leader: guesser %d score %d", entries[0].Guesser.ID, entries[0].Score)
	}
	if entries[1].Guesser.ID != rival.ID || entries[1].Score != 3 {
		t.Errorf("unexpected runner-up: guesser %d score %d", entries[1].Guesser.ID, entries[1].Score)
	}
	if entries[2].Guesser.ID != silent.ID || entries[2].Score != 0 {
		t.Errorf("unexpected last place: guesser %d score %d", entries[2].Guesser.ID, entries[2].Score)
	}

	// Every entry details the same period matches, most recent first, with
	// nil guesses where the guesser skipped the match.
	for _, e := range entries {
		if len(e.MatchesAndGuesses) != 2 {
			t.Fatalf("expected 2 detailed matches, got %d", len(e.MatchesAndGuesses))
		}
		if e.MatchesAndGuesses[0].Match.ID != m2.ID {
			t.Errorf("expected the most recent match first")
		}
	}
	if entries[1].MatchesAndGuesses[1].Guess != nil {
		t.Errorf("expected a nil guess where the rival skipped the match")
	}
	if entries[2].MatchesAndGuesses[0].Guess != nil {
		t.Errorf("expected nil guesses for the silent guesser")
	}

	// A period in the far past has no matches but still lists everyone.
	past, err := ctrl.GetLeaderboard(ctx, pool, 2001, 0, 0)
	if err != nil {
		t.Fatalf("error getting past leaderboard: %v", err)
	}
	if len(past) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(past))
	}
	for _, e := range past {
		if e.Score != 0 || len(e.MatchesAndGuesses) != 0 {
			t.Errorf("expected an empty period for guesser %d", e.Guesser.ID)
		}
	}
}

func TestPeriodOptions(t *testing.T) {
	ctx := context.Background()
	ctrl := newTestController(t, nil, nil)

	options, err := ctrl.PeriodOptions(ctx, 0, 0)
	if err != nil {
		t.Fatalf("error getting period options: %v", err)
	}

	if options.Years[0].Value != 0 {
		t.Errorf("expected the all-times option first")
	}
	currentYear := testDB.Clock.Now().Year()
	foundCurrent := false
	for _, y := range options.Years {
		if y.Value == currentYear {
			foundCurrent = true
		}
	}
	if !foundCurrent {
		t.Errorf("expected the current year %d to be offered", currentYear)
	}

	if len(options.Months) != 13 {
		t.Errorf("expected 13 month options, got %d", len(options.Months))
	}
	if len(options.Weeks) != 0 {
		t.Errorf("expected no week options before year and month are picked")
	}

	options, err = ctrl.PeriodOptions(ctx, currentYear, 6)
	if err != nil {
		t.Fatalf("error getting period options: %v", err)
	}
	if len(options.Weeks) < 2 {
		t.Errorf("expected week options for June %d, got %d", currentYear, len(options.Weeks))
	}
	if options.Weeks[0].Value != 0 {
		t.Errorf("expected the monthly option first")
	}
}

// spyCache records sets and deletes so the rebuild job can be observed.
type spyCache struct {
	mu      sync.Mutex
	entries map[string][]model.LeaderboardEntry
	deletes []uuid.UUID
}

func newSpyCache() *spyCache {
	return &spyCache{entries: make(map[string][]model.LeaderboardEntry)}
}

func (s *spyCache) Get(ctx context.Context, key string) ([]model.LeaderboardEntry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, found := s.entries[key]
	return e, found, nil
}

func (s *spyCache) Set(ctx context.Context, key string, entries []model.LeaderboardEntry, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entries
	return nil
}

func (s *spyCache) DeletePool(ctx context.Context, poolUUID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, poolUUID)
	return nil
}

func TestRebuildRankingCache(t *testing.T) {
	ctx := context.Background()

	spy := newSpyCache()
	ctrl, err := New(testDB.Clock, nil, testDB.DB, spy, NewLogNotifier())
	if err != nil {
		t.Fatalf("error constructing controller: %v", err)
	}

	owner := newTestGuesser(t, ctx)
	pool := newTestPool(t, ctx, ctrl, owner.ID)

	if err := ctrl.RebuildRankingCache(ctx); err != nil {
		t.Fatalf("error rebuilding ranking cache: %v", err)
	}

	deleted := false
	for _, id := range spy.deletes {
		if id == pool.UUID {
			deleted = true
		}
	}
	if !deleted {
		t.Errorf("expected the pool's stale entries to be dropped")
	}

	now := testDB.Clock.Now()
	year := now.Year()
	month := int(now.Month())
	_, week := now.ISOWeek()
	for _, key := range []string{
		cache.Key(pool.UUID, 0, 0, 0),
		cache.Key(pool.UUID, year, 0, 0),
		cache.Key(pool.UUID, year, month, 0),
		cache.Key(pool.UUID, year, month, week),
	} {
		if _, found, _ := spy.Get(ctx, key); !found {
			t.Errorf("expected %s to be rebuilt", key)
		}
	}

	// A leaderboard read now comes straight from the cache.
	entries, err := ctrl.GetLeaderboard(ctx, pool, 0, 0, 0)
	if err != nil {
		t.Fatalf("error getting leaderboard: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}

func TestRecordMatchResult_dropsCachedRankings(t *testing.T) {
	ctx := context.Background()

	spy := newSpyCache()
	ctrl, err := New(testDB.Clock, nil, testDB.DB, spy, NewLogNotifier())
	if err != nil {
		t.Fatalf("error constructing controller: %v", err)
	}

	owner := newTestGuesser(t, ctx)
	pool := newTestPool(t, ctx, ctrl, owner.ID)
	m := newTestMatch(t, ctx, testDB.Clock.Now().Add(2*time.Hour))

	if err := ctrl.RecordMatchResult(ctx, m.ID, 1, 0, model.StatusFinished); err != nil {
		t.Fatalf("error recording result: %v", err)
	}

	dropped := false
	for _, id := range spy.deletes {
		if id == pool.UUID {
			dropped = true
		}
	}
	if !dropped {
		t.Errorf("expected the pool's cached rankings to be dropped")
	}

	// cleanup so later flag assertions start clean
	if err := testDB.DB.SetPoolFlag(ctx, model.FlagUpdatedMatches, []int32{pool.ID}, false); err != nil {
		t.Fatalf("error clearing flag: %v", err)
	}
}
