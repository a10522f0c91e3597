package controller

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/eldersantoss/palpiteiros/cache"
	"github.com/eldersantoss/palpiteiros/model"
)

func (c *controller) GetLeaderboard(ctx context.Context, pool *model.GuessPool, year, month, week int) ([]model.LeaderboardEntry, error) {
	key := cache.Key(pool.UUID, year, month, week)
	if entries, found, err := c.cache.Get(ctx, key); err != nil {
		return nil, err
	} else if found {
		return entries, nil
	}

	entries, err := c.computeLeaderboard(ctx, pool, year, month, week)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, entries, cache.DefaultTTL); err != nil {
		// The leaderboard is still good, caching it is best-effort.
		log.Printf("error caching ranking for pool %s: %v", pool.Slug, err)
	}
	return entries, nil
}

func (c *controller) computeLeaderboard(ctx context.Context, pool *model.GuessPool, year, month, week int) ([]model.LeaderboardEntry, error) {
	start, end := model.ResolvePeriod(year, month, week, pool.Created, c.clock.Now())

	matches, err := c.db.GetPoolMatchesOnPeriod(ctx, pool, start, end)
	if err != nil {
		return nil, err
	}
	guessers, err := c.db.ListPoolGuessers(ctx, pool.ID)
	if err != nil {
		return nil, err
	}

	matchIDs := make([]int32, 0, len(matches))
	for _, m := range matches {
		matchIDs = append(matchIDs, m.ID)
	}

	// Scores sum over every match of the period, the per-match details are
	// capped to the most recent ones.
	sums, err := c.db.SumScoresByGuesser(ctx, pool.ID, matchIDs)
	if err != nil {
		return nil, err
	}

	detail := matches
	if len(detail) > model.MaxMatchesInRanking {
		detail = detail[:model.MaxMatchesInRanking]
	}
	detailIDs := matchIDs
	if len(detailIDs) > model.MaxMatchesInRanking {
		detailIDs = detailIDs[:model.MaxMatchesInRanking]
	}

	guesses, err := c.db.GetPoolGuesses(ctx, pool.ID, detailIDs)
	if err != nil {
		return nil, err
	}
	guessIndex := make(map[[2]int32]*model.Guess, len(guesses))
	for i := range guesses {
		g := &guesses[i]
		guessIndex[[2]int32{g.MatchID, g.GuesserID}] = g
	}

	entries := make([]model.LeaderboardEntry, 0, len(guessers))
	for _, guesser := range guessers {
		entry := model.LeaderboardEntry{
			Guesser:           guesser,
			Score:             sums[guesser.ID],
			MatchesAndGuesses: make([]model.MatchGuess, 0, len(detail)),
		}
		for _, m := range detail {
			entry.MatchesAndGuesses = append(entry.MatchesAndGuesses, model.MatchGuess{
				Match: m,
				Guess: guessIndex[[2]int32{m.ID, guesser.ID}],
			})
		}
		entries = append(entries, entry)
	}

	// Stable keeps the guesser-name order from ListPoolGuessers on ties.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries, nil
}

func (c *controller) PeriodOptions(ctx context.Context, year, month int) (*model.PeriodOptions, error) {
	poolYears, err := c.db.ListPoolYears(ctx)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	options := &model.PeriodOptions{
		Years:  model.YearChoices(poolYears, now),
		Months: model.MonthChoices(),
	}
	if year != 0 && month != 0 {
		options.Weeks = model.WeekChoices(year, month, now.Location())
	}
	return options, nil
}

// RebuildRankingCache drops every cached ranking of every pool and
// pre-warms the buckets of the current period (all-time, this year, this
// month and this week). Historical periods are not pre-warmed; they are
// computed on demand and cached by GetLeaderboard.
func (c *controller) RebuildRankingCache(ctx context.Context) error {
	pools, err := c.db.ListPools(ctx)
	if err != nil {
		return err
	}

	now := c.clock.Now()
	year := now.Year()
	month := int(now.Month())
	_, week := now.ISOWeek()

	for i := range pools {
		pool := &pools[i]
		if err := c.cache.DeletePool(ctx, pool.UUID); err != nil {
			return err
		}

		// The periods a guesser can land on without picking anything
		// historical: all-time, this year, this month and this week.
		buckets := [][3]int{
			{0, 0, 0},
			{year, 0, 0},
			{year, month, 0},
			{year, month, week},
		}
		for _, b := range buckets {
			entries, err := c.computeLeaderboard(ctx, pool, b[0], b[1], b[2])
			if err != nil {
				return err
			}
			key := cache.Key(pool.UUID, b[0], b[1], b[2])
			if err := c.cache.Set(ctx, key, entries, cache.DefaultTTL); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *controller) RunPeriodicRankingRebuild(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	ticker := time.NewTicker(frequency)
	defer wg.Done()

	for {
		select {
		case <-shutdown:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			if err := c.RebuildRankingCache(ctx); err != nil {
				log.Printf("%v", err)
			}
		}
	}
}
