package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/itbasis/go-clock"

	"github.com/eldersantoss/palpiteiros/cache"
	"github.com/eldersantoss/palpiteiros/db"
	"github.com/eldersantoss/palpiteiros/footballdata"
	"github.com/eldersantoss/palpiteiros/model"
)

var (
	ErrNotPoolMember  = errors.New("guesser is not a member of the pool")
	ErrNotPoolOwner   = errors.New("only the pool owner can do that")
	ErrLeagueNotFound = errors.New("league not found in the football data feed")
)

// C encapsulates business logic without worrying about any web layers
type C interface {
	// Creates the guesser on first sight, updates name and email on
	// subsequent calls.
	RegisterGuesser(ctx context.Context, userID, name, email string) (*model.Guesser, error)
	GetGuesserByUserID(ctx context.Context, userID string) (*model.Guesser, error)

	CreatePool(ctx context.Context, name string, ownerID int32, private bool, competitionIDs, teamIDs []int32) (*model.GuessPool, error)
	// Creates a public pool named after the competition and season, owned by
	// the given guesser and following that single competition.
	CreatePublicPool(ctx context.Context, competitionID, ownerID int32) (*model.GuessPool, error)
	// Pool lookup gated on membership.
	GetPoolForGuesser(ctx context.Context, slug string, guesserID int32) (*model.GuessPool, error)
	JoinPool(ctx context.Context, token uuid.UUID, guesserID int32) (*model.GuessPool, error)
	ListPools(ctx context.Context, guesserID int32) ([]model.GuessPool, error)
	// Removes a guesser from the pool along with their guesses there. Only
	// the pool owner, or the guesser leaving on their own, may do it.
	RemoveGuesser(ctx context.Context, pool *model.GuessPool, guesserID, requesterID int32) error

	// The pool's currently open matches paired with the guesser's own
	// guesses.
	OpenMatches(ctx context.Context, pool *model.GuessPool, guesserID int32) ([]model.MatchGuess, error)
	// Open matches the guesser has not guessed yet.
	PendingMatches(ctx context.Context, pool *model.GuessPool, guesserID int32) ([]model.Match, error)
	SubmitGuesses(ctx context.Context, pool *model.GuessPool, guesserID int32, inputs []model.GuessInput, applyToAllSharedPools bool) ([]model.GuessSubmissionResult, error)

	RecordMatchResult(ctx context.Context, matchID, homeGoals, awayGoals int32, status model.MatchStatus) error
	// Looks the league up in the football data feed, stores it as a
	// competition for its current season and syncs its teams.
	RegisterCompetition(ctx context.Context, leagueID int32) (*model.Competition, error)
	SyncCompetitionTeams(ctx context.Context, competitionID int32) error
	// Pulls fixtures for every stored competition from daysFrom days in the
	// past to daysAhead days in the future, creating and updating matches.
	SyncMatches(ctx context.Context, daysFrom, daysAhead int) error
	RunPeriodicMatchUpdates(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup)

	GetLeaderboard(ctx context.Context, pool *model.GuessPool, year, month, week int) ([]model.LeaderboardEntry, error)
	// The ranking period selector options for a pool.
	PeriodOptions(ctx context.Context, year, month int) (*model.PeriodOptions, error)
	RebuildRankingCache(ctx context.Context) error
	RunPeriodicRankingRebuild(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup)

	// Tells every notifiable guesser about pools with new or updated
	// matches, then clears the flags.
	NotifyMatchActivity(ctx context.Context) error
	RunPeriodicNotifications(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup)
}

type controller struct {
	clock    clock.Clock
	football footballdata.Client
	db       db.DB
	cache    cache.RankingCache
	notifier Notifier
}

func New(clock clock.Clock, football footballdata.Client, db db.DB, cache cache.RankingCache, notifier Notifier) (C, error) {
	c := &controller{
		clock:    clock,
		football: football,
		db:       db,
		cache:    cache,
		notifier: notifier,
	}
	return c, nil
}
