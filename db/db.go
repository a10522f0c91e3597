package db

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/eldersantoss/palpiteiros/model"
)

type DB interface {
	SaveTeam(ctx context.Context, t *model.Team) error
	GetTeam(ctx context.Context, id int32) (*model.Team, error)
	GetTeamByDataSourceID(ctx context.Context, dataSourceID int32) (*model.Team, error)

	SaveCompetition(ctx context.Context, c *model.Competition) error
	GetCompetition(ctx context.Context, id int32) (*model.Competition, error)
	ListCompetitions(ctx context.Context) ([]model.Competition, error)
	SetCompetitionTeams(ctx context.Context, competitionID int32, teamIDs []int32) error

	SaveGuesser(ctx context.Context, g *model.Guesser) error
	GetGuesser(ctx context.Context, id int32) (*model.Guesser, error)
	GetGuesserByUserID(ctx context.Context, userID string) (*model.Guesser, error)
	// Guessers with an email, notifications enabled and at least one pool
	// membership.
	ListNotifiableGuessers(ctx context.Context) ([]model.Guesser, error)

	AddMatch(ctx context.Context, m *model.Match) error
	GetMatch(ctx context.Context, id int32) (*model.Match, error)
	GetMatchByDataSourceID(ctx context.Context, dataSourceID int32) (*model.Match, error)
	// Persists the match's result fields and re-scores every guess that
	// references it, all inside a single transaction so that a concurrent
	// ranking read never observes a partially re-scored match. Returns how
	// many guesses were evaluated.
	UpdateMatchAndEvaluateGuesses(ctx context.Context, m *model.Match) (int, error)
	// Matches visible to the pool: kickoff after the pool creation and the
	// competition or one of the teams registered in the pool.
	GetPoolMatches(ctx context.Context, pool *model.GuessPool) ([]model.Match, error)
	// Same as GetPoolMatches restricted to in-progress or finished matches
	// with kickoff inside (start, end], most recent first.
	GetPoolMatchesOnPeriod(ctx context.Context, pool *model.GuessPool, start, end time.Time) ([]model.Match, error)

	AddPool(ctx context.Context, p *model.GuessPool) error
	GetPool(ctx context.Context, id int32) (*model.GuessPool, error)
	GetPoolBySlug(ctx context.Context, slug string) (*model.GuessPool, error)
	GetPoolByUUID(ctx context.Context, id uuid.UUID) (*model.GuessPool, error)
	ListPools(ctx context.Context) ([]model.GuessPool, error)
	// Pools the guesser belongs to, ordered by name. Owners are always
	// members, so this covers owned pools too.
	ListPoolsForGuesser(ctx context.Context, guesserID int32) ([]model.GuessPool, error)
	AddGuesserToPool(ctx context.Context, poolID, guesserID int32) error
	PoolHasGuesser(ctx context.Context, poolID, guesserID int32) (bool, error)
	ListPoolGuessers(ctx context.Context, poolID int32) ([]model.Guesser, error)
	SetPoolCompetitions(ctx context.Context, poolID int32, competitionIDs []int32) error
	SetPoolTeams(ctx context.Context, poolID int32, teamIDs []int32) error
	// Drops the guesser's guesses from the pool, purges orphaned guesses and
	// removes the membership, in one transaction.
	RemoveGuesserFromPool(ctx context.Context, poolID, guesserID int32) error
	// Pools whose visible match-set contains the match.
	PoolsWithMatch(ctx context.Context, m *model.Match) ([]model.GuessPool, error)
	// Intersection of PoolsWithMatch and the guesser's memberships.
	PoolsWithMatchAndGuesser(ctx context.Context, m *model.Match, guesserID int32) ([]model.GuessPool, error)
	SetPoolFlag(ctx context.Context, flag model.PoolFlag, poolIDs []int32, value bool) error
	PoolsWithFlagForGuesser(ctx context.Context, flag model.PoolFlag, guesserID int32) ([]model.GuessPool, error)
	// Distinct years pools were created in, for the ranking period form.
	ListPoolYears(ctx context.Context) ([]int, error)

	// Inserts the guess and makes it the guesser's guess for the match in
	// every listed pool, removing each pool's previous guess first and
	// purging guesses left without any pool. Runs in one transaction.
	ReplaceGuess(ctx context.Context, g *model.Guess, poolIDs []int32) error
	GetPoolGuess(ctx context.Context, poolID, matchID, guesserID int32) (*model.Guess, error)
	GetPoolGuesses(ctx context.Context, poolID int32, matchIDs []int32) ([]model.Guess, error)
	// Consolidated-or-not score totals per guesser over the pool's guesses
	// for the given matches. Guessers without guesses are absent from the
	// map.
	SumScoresByGuesser(ctx context.Context, poolID int32, matchIDs []int32) (map[int32]int32, error)
	// Number of guess rows belonging to no pool. Must be zero outside a
	// replace transaction; exposed for tests and maintenance.
	CountOrphanGuesses(ctx context.Context) (int, error)
}
