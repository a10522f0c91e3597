package mockcontroller

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/eldersantoss/palpiteiros/model"
)

type C struct {
	mock.Mock
}

func (c *C) RegisterGuesser(ctx context.Context, userID, name, email string) (*model.Guesser, error) {
	args := c.Called(ctx, userID, name, email)

	var g *model.Guesser
	if args.Get(0) != nil {
		g = args.Get(0).(*model.Guesser)
	}
	return g, args.Error(1)
}

func (c *C) GetGuesserByUserID(ctx context.Context, userID string) (*model.Guesser, error) {
	args := c.Called(ctx, userID)

	var g *model.Guesser
	if args.Get(0) != nil {
		g = args.Get(0).(*model.Guesser)
	}
	return g, args.Error(1)
}

func (c *C) CreatePool(ctx context.Context, name string, ownerID int32, private bool, competitionIDs, teamIDs []int32) (*model.GuessPool, error) {
	args := c.Called(ctx, name, ownerID, private, competitionIDs, teamIDs)

	var p *model.GuessPool
	if args.Get(0) != nil {
		p = args.Get(0).(*model.GuessPool)
	}
	return p, args.Error(1)
}

func (c *C) CreatePublicPool(ctx context.Context, competitionID, ownerID int32) (*model.GuessPool, error) {
	args := c.Called(ctx, competitionID, ownerID)

	var p *model.GuessPool
	if args.Get(0) != nil {
		p = args.Get(0).(*model.GuessPool)
	}
	return p, args.Error(1)
}

func (c *C) GetPoolForGuesser(ctx context.Context, slug string, guesserID int32) (*model.GuessPool, error) {
	args := c.Called(ctx, slug, guesserID)

	var p *model.GuessPool
	if args.Get(0) != nil {
		p = args.Get(0).(*model.GuessPool)
	}
	return p, args.Error(1)
}

func (c *C) JoinPool(ctx context.Context, token uuid.UUID, guesserID int32) (*model.GuessPool, error) {
	args := c.Called(ctx, token, guesserID)

	var p *model.GuessPool
	if args.Get(0) != nil {
		p = args.Get(0).(*model.GuessPool)
	}
	return p, args.Error(1)
}

func (c *C) ListPools(ctx context.Context, guesserID int32) ([]model.GuessPool, error) {
	args := c.Called(ctx, guesserID)

	var r []model.GuessPool
	if args.Get(0) != nil {
		r = args.Get(0).([]model.GuessPool)
	}
	return r, args.Error(1)
}

func (c *C) RemoveGuesser(ctx context.Context, pool *model.GuessPool, guesserID, requesterID int32) error {
	args := c.Called(ctx, pool, guesserID, requesterID)
	return args.Error(0)
}

func (c *C) OpenMatches(ctx context.Context, pool *model.GuessPool, guesserID int32) ([]model.MatchGuess, error) {
	args := c.Called(ctx, pool, guesserID)

	var r []model.MatchGuess
	if args.Get(0) != nil {
		r = args.Get(0).([]model.MatchGuess)
	}
	return r, args.Error(1)
}

func (c *C) PendingMatches(ctx context.Context, pool *model.GuessPool, guesserID int32) ([]model.Match, error) {
	args := c.Called(ctx, pool, guesserID)

	var r []model.Match
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Match)
	}
	return r, args.Error(1)
}

func (c *C) SubmitGuesses(ctx context.Context, pool *model.GuessPool, guesserID int32, inputs []model.GuessInput, applyToAllSharedPools bool) ([]model.GuessSubmissionResult, error) {
	args := c.Called(ctx, pool, guesserID, inputs, applyToAllSharedPools)

	var r []model.GuessSubmissionResult
	if args.Get(0) != nil {
		r = args.Get(0).([]model.GuessSubmissionResult)
	}
	return r, args.Error(1)
}

func (c *C) RecordMatchResult(ctx context.Context, matchID, homeGoals, awayGoals int32, status model.MatchStatus) error {
	args := c.Called(ctx, matchID, homeGoals, awayGoals, status)
	return args.Error(0)
}

func (c *C) RegisterCompetition(ctx context.Context, leagueID int32) (*model.Competition, error) {
	args := c.Called(ctx, leagueID)
	var comp *model.Competition
	if args.Get(0) != nil {
		comp = args.Get(0).(*model.Competition)
	}
	return comp, args.Error(1)
}

func (c *C) SyncCompetitionTeams(ctx context.Context, competitionID int32) error {
	args := c.Called(ctx, competitionID)
	return args.Error(0)
}

func (c *C) SyncMatches(ctx context.Context, daysFrom, daysAhead int) error {
	args := c.Called(ctx, daysFrom, daysAhead)
	return args.Error(0)
}

func (c *C) RunPeriodicMatchUpdates(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	c.Called(frequency, shutdown, wg)
}

func (c *C) GetLeaderboard(ctx context.Context, pool *model.GuessPool, year, month, week int) ([]model.LeaderboardEntry, error) {
	args := c.Called(ctx, pool, year, month, week)

	var r []model.LeaderboardEntry
	if args.Get(0) != nil {
		r = args.Get(0).([]model.LeaderboardEntry)
	}
	return r, args.Error(1)
}

func (c *C) PeriodOptions(ctx context.Context, year, month int) (*model.PeriodOptions, error) {
	args := c.Called(ctx, year, month)

	var o *model.PeriodOptions
	if args.Get(0) != nil {
		o = args.Get(0).(*model.PeriodOptions)
	}
	return o, args.Error(1)
}

func (c *C) RebuildRankingCache(ctx context.Context) error {
	args := c.Called(ctx)
	return args.Error(0)
}

func (c *C) RunPeriodicRankingRebuild(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	c.Called(frequency, shutdown, wg)
}

func (c *C) NotifyMatchActivity(ctx context.Context) error {
	args := c.Called(ctx)
	return args.Error(0)
}

func (c *C) RunPeriodicNotifications(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	c.Called(frequency, shutdown, wg)
}
