package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/eldersantoss/palpiteiros/model"
)

const guessColumns = `g.id, g.guesser_id, g.match_id, g.home_goals, g.away_goals, g.score, g.consolidated`

func (db *postgresDB) ReplaceGuess(ctx context.Context, g *model.Guess, poolIDs []int32) error {
	const insertGuess = `INSERT INTO guesses (guesser_id, match_id, home_goals, away_goals, score, consolidated)
					VALUES (@guesserID, @matchID, @homeGoals, @awayGoals, @score, @consolidated)
					RETURNING id`

	const dropPrevious = `DELETE FROM pool_guesses
					WHERE pool_id=@poolID AND match_id=@matchID AND guesser_id=@guesserID`

	const link = `INSERT INTO pool_guesses (pool_id, guess_id, match_id, guesser_id)
					VALUES (@poolID, @guessID, @matchID, @guesserID)`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	args := pgx.NamedArgs{
		"guesserID":    g.GuesserID,
		"matchID":      g.MatchID,
		"homeGoals":    g.HomeGoals,
		"awayGoals":    g.AwayGoals,
		"score":        g.Score,
		"consolidated": g.Consolidated,
	}
	if err := tx.QueryRow(ctx, insertGuess, args).Scan(&g.ID); err != nil {
		return fmt.Errorf("error inserting guess for match %d: %w", g.MatchID, err)
	}

	for _, poolID := range poolIDs {
		args := pgx.NamedArgs{"poolID": poolID, "matchID": g.MatchID, "guesserID": g.GuesserID}
		if _, err := tx.Exec(ctx, dropPrevious, args); err != nil {
			return fmt.Errorf("error dropping previous guess in pool %d: %w", poolID, err)
		}
		args["guessID"] = g.ID
		if _, err := tx.Exec(ctx, link, args); err != nil {
			return fmt.Errorf("error linking guess %d to pool %d: %w", g.ID, poolID, err)
		}
	}

	if err := purgeOrphanGuesses(ctx, tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (db *postgresDB) GetPoolGuess(ctx context.Context, poolID, matchID, guesserID int32) (*model.Guess, error) {
	query := `SELECT ` + guessColumns + `
				FROM guesses g
				JOIN pool_guesses pg ON pg.guess_id = g.id
				WHERE pg.pool_id=@poolID AND pg.match_id=@matchID AND pg.guesser_id=@guesserID`

	args := pgx.NamedArgs{"poolID": poolID, "matchID": matchID, "guesserID": guesserID}
	g, err := scanGuess(db.pool.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGuessNotFound
		}
		return nil, fmt.Errorf("error getting guess for match %d in pool %d: %w", matchID, poolID, err)
	}
	return g, nil
}

func (db *postgresDB) GetPoolGuesses(ctx context.Context, poolID int32, matchIDs []int32) ([]model.Guess, error) {
	if len(matchIDs) == 0 {
		return []model.Guess{}, nil
	}

	query := `SELECT ` + guessColumns + `
				FROM guesses g
				JOIN pool_guesses pg ON pg.guess_id = g.id
				WHERE pg.pool_id=@poolID AND pg.match_id = ANY(@matchIDs)
				ORDER BY g.match_id, g.guesser_id`

	args := pgx.NamedArgs{"poolID": poolID, "matchIDs": matchIDs}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error getting guesses of pool %d: %w", poolID, err)
	}
	return collectGuesses(rows)
}

func (db *postgresDB) SumScoresByGuesser(ctx context.Context, poolID int32, matchIDs []int32) (map[int32]int32, error) {
	if len(matchIDs) == 0 {
		return map[int32]int32{}, nil
	}

	const query = `SELECT pg.guesser_id, COALESCE(SUM(g.score), 0)
					FROM pool_guesses pg
					JOIN guesses g ON g.id = pg.guess_id
					WHERE pg.pool_id=@poolID AND pg.match_id = ANY(@matchIDs)
					GROUP BY pg.guesser_id`

	args := pgx.NamedArgs{"poolID": poolID, "matchIDs": matchIDs}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error summing scores of pool %d: %w", poolID, err)
	}

	sums := make(map[int32]int32)
	for rows.Next() {
		var guesserID, total int32
		if err := rows.Scan(&guesserID, &total); err != nil {
			return nil, fmt.Errorf("error scanning score sum: %w", err)
		}
		sums[guesserID] = total
	}
	return sums, rows.Err()
}

func (db *postgresDB) CountOrphanGuesses(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM guesses g
					WHERE NOT EXISTS (SELECT 1 FROM pool_guesses pg WHERE pg.guess_id = g.id)`

	var count int
	if err := db.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting orphan guesses: %w", err)
	}
	return count, nil
}

func purgeOrphanGuesses(ctx context.Context, tx pgx.Tx) error {
	const query = `DELETE FROM guesses g
					WHERE NOT EXISTS (SELECT 1 FROM pool_guesses pg WHERE pg.guess_id = g.id)`

	if _, err := tx.Exec(ctx, query); err != nil {
		return fmt.Errorf("error purging orphan guesses: %w", err)
	}
	return nil
}

func scanGuess(row pgx.Row) (*model.Guess, error) {
	var g model.Guess
	err := row.Scan(&g.ID, &g.GuesserID, &g.MatchID, &g.HomeGoals, &g.AwayGoals, &g.Score, &g.Consolidated)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func collectGuesses(rows pgx.Rows) ([]model.Guess, error) {
	results := make([]model.Guess, 0, 16)
	for rows.Next() {
		g, err := scanGuess(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning guess: %w", err)
		}
		results = append(results, *g)
	}
	return results, rows.Err()
}
