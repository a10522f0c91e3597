package controller

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/eldersantoss/palpiteiros/db"
	"github.com/eldersantoss/palpiteiros/model"
)

func (c *controller) OpenMatches(ctx context.Context, pool *model.GuessPool, guesserID int32) ([]model.MatchGuess, error) {
	matches, err := c.db.GetPoolMatches(ctx, pool)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	result := make([]model.MatchGuess, 0, len(matches))
	for _, m := range matches {
		if !pool.MatchOpenForGuesses(&m, now) {
			continue
		}

		mg := model.MatchGuess{Match: m}
		g, err := c.db.GetPoolGuess(ctx, pool.ID, m.ID, guesserID)
		if err != nil && !errors.Is(err, db.ErrGuessNotFound) {
			return nil, err
		}
		mg.Guess = g
		result = append(result, mg)
	}
	return result, nil
}

func (c *controller) PendingMatches(ctx context.Context, pool *model.GuessPool, guesserID int32) ([]model.Match, error) {
	open, err := c.OpenMatches(ctx, pool, guesserID)
	if err != nil {
		return nil, err
	}

	pending := make([]model.Match, 0, len(open))
	for _, mg := range open {
		if mg.Guess == nil {
			pending = append(pending, mg.Match)
		}
	}
	return pending, nil
}

func (c *controller) SubmitGuesses(ctx context.Context, pool *model.GuessPool, guesserID int32, inputs []model.GuessInput, applyToAllSharedPools bool) ([]model.GuessSubmissionResult, error) {
	isMember, err := c.db.PoolHasGuesser(ctx, pool.ID, guesserID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotPoolMember
	}

	now := c.clock.Now()
	results := make([]model.GuessSubmissionResult, 0, len(inputs))
	for _, input := range inputs {
		res := model.GuessSubmissionResult{MatchID: input.MatchID}

		m, err := c.db.GetMatch(ctx, input.MatchID)
		if err != nil {
			if errors.Is(err, db.ErrMatchNotFound) {
				res.Reason = "match not found"
				results = append(results, res)
				continue
			}
			return nil, err
		}

		if !pool.MatchOpenForGuesses(m, now) {
			res.Reason = "match is not open for guesses"
			results = append(results, res)
			continue
		}

		homeGoals, awayGoals, err := parseGoals(input)
		if err != nil {
			res.Reason = err.Error()
			results = append(results, res)
			continue
		}

		poolIDs, err := c.targetPools(ctx, pool, m, guesserID, applyToAllSharedPools)
		if err != nil {
			return nil, err
		}
		if len(poolIDs) == 0 {
			res.Reason = "match does not belong to the pool"
			results = append(results, res)
			continue
		}

		g := &model.Guess{
			GuesserID: guesserID,
			MatchID:   m.ID,
			HomeGoals: homeGoals,
			AwayGoals: awayGoals,
		}
		if err := c.db.ReplaceGuess(ctx, g, poolIDs); err != nil {
			return nil, fmt.Errorf("error saving guess for match %s: %w", m, err)
		}

		res.Accepted = true
		results = append(results, res)
	}
	return results, nil
}

// targetPools resolves which pools a guess applies to: just this one in
// exclusive mode, or every pool that both contains the match and has the
// guesser as a member in replicate mode. The submission pool is checked for
// the match either way.
func (c *controller) targetPools(ctx context.Context, pool *model.GuessPool, m *model.Match, guesserID int32, applyToAllSharedPools bool) ([]int32, error) {
	shared, err := c.db.PoolsWithMatchAndGuesser(ctx, m, guesserID)
	if err != nil {
		return nil, err
	}

	containsSubmissionPool := false
	poolIDs := make([]int32, 0, len(shared))
	for _, p := range shared {
		if p.ID == pool.ID {
			containsSubmissionPool = true
		}
		poolIDs = append(poolIDs, p.ID)
	}
	if !containsSubmissionPool {
		return nil, nil
	}

	if !applyToAllSharedPools {
		return []int32{pool.ID}, nil
	}
	return poolIDs, nil
}

func parseGoals(input model.GuessInput) (int32, int32, error) {
	home, err := strconv.ParseInt(input.HomeGoals, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("home goals must be a whole number")
	}
	away, err := strconv.ParseInt(input.AwayGoals, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("away goals must be a whole number")
	}
	if home < 0 || away < 0 {
		return 0, 0, fmt.Errorf("goals must not be negative")
	}
	return int32(home), int32(away), nil
}
