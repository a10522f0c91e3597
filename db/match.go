package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/eldersantoss/palpiteiros/model"
)

const matchColumns = `m.id, m.data_source_id, m.competition_id, m.status,
		m.kickoff, m.home_goals, m.away_goals, m.double_score,
		ht.id, ht.data_source_id, ht.name, ht.code,
		at.id, at.data_source_id, at.name, at.code`

const matchFrom = `FROM matches m
		JOIN teams ht ON ht.id = m.home_team_id
		JOIN teams at ON at.id = m.away_team_id`

func (db *postgresDB) AddMatch(ctx context.Context, m *model.Match) error {
	const query = `INSERT INTO matches
					(data_source_id, competition_id, status, home_team_id, away_team_id,
					kickoff, home_goals, away_goals, double_score)
					VALUES (@dataSourceID, @competitionID, @status, @homeTeamID, @awayTeamID,
					@kickoff, @homeGoals, @awayGoals, @doubleScore)
					RETURNING id`

	args := pgx.NamedArgs{
		"dataSourceID":  nullableID(m.DataSourceID),
		"competitionID": m.CompetitionID,
		"status":        string(m.Status),
		"homeTeamID":    m.HomeTeam.ID,
		"awayTeamID":    m.AwayTeam.ID,
		"kickoff":       m.Kickoff,
		"homeGoals":     m.HomeGoals,
		"awayGoals":     m.AwayGoals,
		"doubleScore":   m.DoubleScore,
	}
	if err := db.pool.QueryRow(ctx, query, args).Scan(&m.ID); err != nil {
		return fmt.Errorf("error adding match %s: %w", m, err)
	}
	return nil
}

func (db *postgresDB) GetMatch(ctx context.Context, id int32) (*model.Match, error) {
	query := `SELECT ` + matchColumns + ` ` + matchFrom + ` WHERE m.id=@id`

	m, err := scanMatch(db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("error getting match %d: %w", id, err)
	}
	return m, nil
}

func (db *postgresDB) GetMatchByDataSourceID(ctx context.Context, dataSourceID int32) (*model.Match, error) {
	query := `SELECT ` + matchColumns + ` ` + matchFrom + ` WHERE m.data_source_id=@id`

	m, err := scanMatch(db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": dataSourceID}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("error getting match by data source id %d: %w", dataSourceID, err)
	}
	return m, nil
}

func (db *postgresDB) UpdateMatchAndEvaluateGuesses(ctx context.Context, m *model.Match) (int, error) {
	const update = `UPDATE matches
					SET status=@status, kickoff=@kickoff, home_goals=@homeGoals,
						away_goals=@awayGoals, double_score=@doubleScore
					WHERE id=@id`

	// Consolidated guesses are selected too: a corrected result on a
	// finished match must re-score them, and re-evaluation is idempotent
	// when the result did not change.
	const selectGuesses = `SELECT id, guesser_id, match_id, home_goals, away_goals, score, consolidated
					FROM guesses
					WHERE match_id=@matchID
					FOR UPDATE`

	const updateGuess = `UPDATE guesses
					SET score=@score, consolidated=@consolidated
					WHERE id=@id`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	args := pgx.NamedArgs{
		"id":          m.ID,
		"status":      string(m.Status),
		"kickoff":     m.Kickoff,
		"homeGoals":   m.HomeGoals,
		"awayGoals":   m.AwayGoals,
		"doubleScore": m.DoubleScore,
	}
	tag, err := tx.Exec(ctx, update, args)
	if err != nil {
		return 0, fmt.Errorf("error updating match %s: %w", m, err)
	}
	if tag.RowsAffected() == 0 {
		return 0, ErrMatchNotFound
	}

	rows, err := tx.Query(ctx, selectGuesses, pgx.NamedArgs{"matchID": m.ID})
	if err != nil {
		return 0, fmt.Errorf("error selecting guesses for match %s: %w", m, err)
	}
	guesses, err := collectGuesses(rows)
	if err != nil {
		return 0, err
	}

	evaluated := 0
	for i := range guesses {
		g := &guesses[i]
		if !g.EvaluateAndConsolidate(m) {
			continue
		}
		args := pgx.NamedArgs{"id": g.ID, "score": g.Score, "consolidated": g.Consolidated}
		if _, err := tx.Exec(ctx, updateGuess, args); err != nil {
			return 0, fmt.Errorf("error scoring guess %d: %w", g.ID, err)
		}
		evaluated++
	}

	return evaluated, tx.Commit(ctx)
}

// poolMatchFilter selects the matches visible to a pool: kicked off after the
// pool was created and belonging to one of the pool's competitions or
// involving one of the pool's teams.
const poolMatchFilter = `m.kickoff > @poolCreated
		AND (
			EXISTS (SELECT 1 FROM pool_competitions pc
				WHERE pc.pool_id=@poolID AND pc.competition_id=m.competition_id)
			OR EXISTS (SELECT 1 FROM pool_teams pt
				WHERE pt.pool_id=@poolID AND pt.team_id IN (m.home_team_id, m.away_team_id))
		)`

func (db *postgresDB) GetPoolMatches(ctx context.Context, pool *model.GuessPool) ([]model.Match, error) {
	query := `SELECT ` + matchColumns + ` ` + matchFrom + `
				WHERE ` + poolMatchFilter + `
				ORDER BY m.kickoff, m.id`

	args := pgx.NamedArgs{"poolID": pool.ID, "poolCreated": pool.Created}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error getting matches of pool %s: %w", pool.Slug, err)
	}
	return collectMatches(rows)
}

func (db *postgresDB) GetPoolMatchesOnPeriod(ctx context.Context, pool *model.GuessPool, start, end time.Time) ([]model.Match, error) {
	query := `SELECT ` + matchColumns + ` ` + matchFrom + `
				WHERE ` + poolMatchFilter + `
				AND m.status = ANY(@statuses)
				AND m.kickoff > @start AND m.kickoff <= @end
				ORDER BY m.kickoff DESC, m.id DESC`

	args := pgx.NamedArgs{
		"poolID":      pool.ID,
		"poolCreated": pool.Created,
		"statuses":    statusStrings(model.InProgressAndFinishedStatuses),
		"start":       start,
		"end":         end,
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error getting period matches of pool %s: %w", pool.Slug, err)
	}
	return collectMatches(rows)
}

func scanMatch(row pgx.Row) (*model.Match, error) {
	var m model.Match
	var home, away model.Team
	var matchDSID, homeDSID, awayDSID *int32
	var status string
	var homeCode, awayCode *string

	err := row.Scan(&m.ID, &matchDSID, &m.CompetitionID, &status,
		&m.Kickoff, &m.HomeGoals, &m.AwayGoals, &m.DoubleScore,
		&home.ID, &homeDSID, &home.Name, &homeCode,
		&away.ID, &awayDSID, &away.Name, &awayCode)
	if err != nil {
		return nil, err
	}

	m.Status = model.MatchStatus(status)
	if matchDSID != nil {
		m.DataSourceID = *matchDSID
	}
	if homeDSID != nil {
		home.DataSourceID = *homeDSID
	}
	if awayDSID != nil {
		away.DataSourceID = *awayDSID
	}
	if homeCode != nil {
		home.Code = *homeCode
	}
	if awayCode != nil {
		away.Code = *awayCode
	}
	m.HomeTeam = &home
	m.AwayTeam = &away
	return &m, nil
}

func collectMatches(rows pgx.Rows) ([]model.Match, error) {
	results := make([]model.Match, 0, 16)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning match: %w", err)
		}
		results = append(results, *m)
	}
	return results, rows.Err()
}

func statusStrings(statuses []model.MatchStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
