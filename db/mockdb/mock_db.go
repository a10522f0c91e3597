package mockdb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/eldersantoss/palpiteiros/model"
)

type DB struct {
	mock.Mock
}

func (db *DB) SaveTeam(ctx context.Context, t *model.Team) error {
	args := db.Called(ctx, t)
	return args.Error(0)
}

func (db *DB) GetTeam(ctx context.Context, id int32) (*model.Team, error) {
	args := db.Called(ctx, id)

	var t *model.Team
	if args.Get(0) != nil {
		t = args.Get(0).(*model.Team)
	}
	return t, args.Error(1)
}

func (db *DB) GetTeamByDataSourceID(ctx context.Context, dataSourceID int32) (*model.Team, error) {
	args := db.Called(ctx, dataSourceID)

	var t *model.Team
	if args.Get(0) != nil {
		t = args.Get(0).(*model.Team)
	}
	return t, args.Error(1)
}

func (db *DB) SaveCompetition(ctx context.Context, c *model.Competition) error {
	args := db.Called(ctx, c)
	return args.Error(0)
}

func (db *DB) GetCompetition(ctx context.Context, id int32) (*model.Competition, error) {
	args := db.Called(ctx, id)

	var c *model.Competition
	if args.Get(0) != nil {
		c = args.Get(0).(*model.Competition)
	}
	return c, args.Error(1)
}

func (db *DB) ListCompetitions(ctx context.Context) ([]model.Competition, error) {
	args := db.Called(ctx)

	var r []model.Competition
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Competition)
	}
	return r, args.Error(1)
}

func (db *DB) SetCompetitionTeams(ctx context.Context, competitionID int32, teamIDs []int32) error {
	args := db.Called(ctx, competitionID, teamIDs)
	return args.Error(0)
}

func (db *DB) SaveGuesser(ctx context.Context, g *model.Guesser) error {
	args := db.Called(ctx, g)
	return args.Error(0)
}

func (db *DB) GetGuesser(ctx context.Context, id int32) (*model.Guesser, error) {
	args := db.Called(ctx, id)

	var g *model.Guesser
	if args.Get(0) != nil {
		g = args.Get(0).(*model.Guesser)
	}
	return g, args.Error(1)
}

func (db *DB) GetGuesserByUserID(ctx context.Context, userID string) (*model.Guesser, error) {
	args := db.Called(ctx, userID)

	var g *model.Guesser
	if args.Get(0) != nil {
		g = args.Get(0).(*model.Guesser)
	}
	return g, args.Error(1)
}

func (db *DB) ListNotifiableGuessers(ctx context.Context) ([]model.Guesser, error) {
	args := db.Called(ctx)

	var r []model.Guesser
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Guesser)
	}
	return r, args.Error(1)
}

func (db *DB) AddMatch(ctx context.Context, m *model.Match) error {
	args := db.Called(ctx, m)
	return args.Error(0)
}

func (db *DB) GetMatch(ctx context.Context, id int32) (*model.Match, error) {
	args := db.Called(ctx, id)

	var m *model.Match
	if args.Get(0) != nil {
		m = args.Get(0).(*model.Match)
	}
	return m, args.Error(1)
}

func (db *DB) GetMatchByDataSourceID(ctx context.Context, dataSourceID int32) (*model.Match, error) {
	args := db.Called(ctx, dataSourceID)

	var m *model.Match
	if args.Get(0) != nil {
		m = args.Get(0).(*model.Match)
	}
	return m, args.Error(1)
}

func (db *DB) UpdateMatchAndEvaluateGuesses(ctx context.Context, m *model.Match) (int, error) {
	args := db.Called(ctx, m)
	return args.Int(0), args.Error(1)
}

func (db *DB) GetPoolMatches(ctx context.Context, pool *model.GuessPool) ([]model.Match, error) {
	args := db.Called(ctx, pool)

	var r []model.Match
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Match)
	}
	return r, args.Error(1)
}

func (db *DB) GetPoolMatchesOnPeriod(ctx context.Context, pool *model.GuessPool, start, end time.Time) ([]model.Match, error) {
	args := db.Called(ctx, pool, start, end)

	var r []model.Match
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Match)
	}
	return r, args.Error(1)
}

func (db *DB) AddPool(ctx context.Context, p *model.GuessPool) error {
	args := db.Called(ctx, p)
	return args.Error(0)
}

func (db *DB) GetPool(ctx context.Context, id int32) (*model.GuessPool, error) {
	args := db.Called(ctx, id)

	var p *model.GuessPool
	if args.Get(0) != nil {
		p = args.Get(0).(*model.GuessPool)
	}
	return p, args.Error(1)
}

func (db *DB) GetPoolBySlug(ctx context.Context, slug string) (*model.GuessPool, error) {
	args := db.Called(ctx, slug)

	var p *model.GuessPool
	if args.Get(0) != nil {
		p = args.Get(0).(*model.GuessPool)
	}
	return p, args.Error(1)
}

func (db *DB) GetPoolByUUID(ctx context.Context, id uuid.UUID) (*model.GuessPool, error) {
	args := db.Called(ctx, id)

	var p *model.GuessPool
	if args.Get(0) != nil {
		p = args.Get(0).(*model.GuessPool)
	}
	return p, args.Error(1)
}

func (db *DB) ListPools(ctx context.Context) ([]model.GuessPool, error) {
	args := db.Called(ctx)

	var r []model.GuessPool
	if args.Get(0) != nil {
		r = args.Get(0).([]model.GuessPool)
	}
	return r, args.Error(1)
}

func (db *DB) ListPoolsForGuesser(ctx context.Context, guesserID int32) ([]model.GuessPool, error) {
	args := db.Called(ctx, guesserID)

	var r []model.GuessPool
	if args.Get(0) != nil {
		r = args.Get(0).([]model.GuessPool)
	}
	return r, args.Error(1)
}

func (db *DB) AddGuesserToPool(ctx context.Context, poolID, guesserID int32) error {
	args := db.Called(ctx, poolID, guesserID)
	return args.Error(0)
}

func (db *DB) PoolHasGuesser(ctx context.Context, poolID, guesserID int32) (bool, error) {
	args := db.Called(ctx, poolID, guesserID)
	return args.Bool(0), args.Error(1)
}

func (db *DB) ListPoolGuessers(ctx context.Context, poolID int32) ([]model.Guesser, error) {
	args := db.Called(ctx, poolID)

	var r []model.Guesser
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Guesser)
	}
	return r, args.Error(1)
}

func (db *DB) SetPoolCompetitions(ctx context.Context, poolID int32, competitionIDs []int32) error {
	args := db.Called(ctx, poolID, competitionIDs)
	return args.Error(0)
}

func (db *DB) SetPoolTeams(ctx context.Context, poolID int32, teamIDs []int32) error {
	args := db.Called(ctx, poolID, teamIDs)
	return args.Error(0)
}

func (db *DB) RemoveGuesserFromPool(ctx context.Context, poolID, guesserID int32) error {
	args := db.Called(ctx, poolID, guesserID)
	return args.Error(0)
}

func (db *DB) PoolsWithMatch(ctx context.Context, m *model.Match) ([]model.GuessPool, error) {
	args := db.Called(ctx, m)

	var r []model.GuessPool
	if args.Get(0) != nil {
		r = args.Get(0).([]model.GuessPool)
	}
	return r, args.Error(1)
}

func (db *DB) PoolsWithMatchAndGuesser(ctx context.Context, m *model.Match, guesserID int32) ([]model.GuessPool, error) {
	args := db.Called(ctx, m, guesserID)

	var r []model.GuessPool
	if args.Get(0) != nil {
		r = args.Get(0).([]model.GuessPool)
	}
	return r, args.Error(1)
}

func (db *DB) SetPoolFlag(ctx context.Context, flag model.PoolFlag, poolIDs []int32, value bool) error {
	args := db.Called(ctx, flag, poolIDs, value)
	return args.Error(0)
}

func (db *DB) PoolsWithFlagForGuesser(ctx context.Context, flag model.PoolFlag, guesserID int32) ([]model.GuessPool, error) {
	args := db.Called(ctx, flag, guesserID)

	var r []model.GuessPool
	if args.Get(0) != nil {
		r = args.Get(0).([]model.GuessPool)
	}
	return r, args.Error(1)
}

func (db *DB) ListPoolYears(ctx context.Context) ([]int, error) {
	args := db.Called(ctx)

	var r []int
	if args.Get(0) != nil {
		r = args.Get(0).([]int)
	}
	return r, args.Error(1)
}

func (db *DB) ReplaceGuess(ctx context.Context, g *model.Guess, poolIDs []int32) error {
	args := db.Called(ctx, g, poolIDs)
	return args.Error(0)
}

func (db *DB) GetPoolGuess(ctx context.Context, poolID, matchID, guesserID int32) (*model.Guess, error) {
	args := db.Called(ctx, poolID, matchID, guesserID)

	var g *model.Guess
	if args.Get(0) != nil {
		g = args.Get(0).(*model.Guess)
	}
	return g, args.Error(1)
}

func (db *DB) GetPoolGuesses(ctx context.Context, poolID int32, matchIDs []int32) ([]model.Guess, error) {
	args := db.Called(ctx, poolID, matchIDs)

	var r []model.Guess
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Guess)
	}
	return r, args.Error(1)
}

func (db *DB) SumScoresByGuesser(ctx context.Context, poolID int32, matchIDs []int32) (map[int32]int32, error) {
	args := db.Called(ctx, poolID, matchIDs)

	var r map[int32]int32
	if args.Get(0) != nil {
		r = args.Get(0).(map[int32]int32)
	}
	return r, args.Error(1)
}

func (db *DB) CountOrphanGuesses(ctx context.Context) (int, error) {
	args := db.Called(ctx)
	return args.Int(0), args.Error(1)
}
