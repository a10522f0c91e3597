package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/eldersantoss/palpiteiros/model"
)

const poolColumns = `p.id, p.uuid, p.name, p.slug, p.owner_id, p.private,
		p.new_matches, p.updated_matches, p.lead_minutes, p.open_window_hours, p.created`

func (db *postgresDB) AddPool(ctx context.Context, p *model.GuessPool) error {
	const query = `INSERT INTO pools
					(uuid, name, slug, owner_id, private, lead_minutes, open_window_hours, created)
					VALUES (@uuid, @name, @slug, @ownerID, @private, @leadMinutes, @openWindowHours, @created)
					RETURNING id`

	p.Created = db.clock.Now().UTC()
	args := pgx.NamedArgs{
		"uuid":            p.UUID,
		"name":            p.Name,
		"slug":            p.Slug,
		"ownerID":         p.OwnerID,
		"private":         p.Private,
		"leadMinutes":     p.LeadMinutes,
		"openWindowHours": p.OpenWindowHours,
		"created":         p.Created,
	}
	if err := db.pool.QueryRow(ctx, query, args).Scan(&p.ID); err != nil {
		return fmt.Errorf("error adding pool %s: %w", p.Name, err)
	}

	// The owner is always a member.
	return db.AddGuesserToPool(ctx, p.ID, p.OwnerID)
}

func (db *postgresDB) GetPool(ctx context.Context, id int32) (*model.GuessPool, error) {
	query := `SELECT ` + poolColumns + ` FROM pools p WHERE p.id=@id`
	return db.getPool(ctx, query, pgx.NamedArgs{"id": id})
}

func (db *postgresDB) GetPoolBySlug(ctx context.Context, slug string) (*model.GuessPool, error) {
	query := `SELECT ` + poolColumns + ` FROM pools p WHERE p.slug=@slug`
	return db.getPool(ctx, query, pgx.NamedArgs{"slug": slug})
}

func (db *postgresDB) GetPoolByUUID(ctx context.Context, id uuid.UUID) (*model.GuessPool, error) {
	query := `SELECT ` + poolColumns + ` FROM pools p WHERE p.uuid=@uuid`
	return db.getPool(ctx, query, pgx.NamedArgs{"uuid": id})
}

func (db *postgresDB) getPool(ctx context.Context, query string, args pgx.NamedArgs) (*model.GuessPool, error) {
	p, err := scanPool(db.pool.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPoolNotFound
		}
		return nil, fmt.Errorf("error getting pool: %w", err)
	}
	return p, nil
}

func (db *postgresDB) ListPools(ctx context.Context) ([]model.GuessPool, error) {
	query := `SELECT ` + poolColumns + ` FROM pools p ORDER BY p.name`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing pools: %w", err)
	}
	return collectPools(rows)
}

func (db *postgresDB) ListPoolsForGuesser(ctx context.Context, guesserID int32) ([]model.GuessPool, error) {
	query := `SELECT ` + poolColumns + `
				FROM pools p
				JOIN pool_guessers pg ON pg.pool_id = p.id
				WHERE pg.guesser_id=@guesserID
				ORDER BY p.name`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"guesserID": guesserID})
	if err != nil {
		return nil, fmt.Errorf("error listing pools of guesser %d: %w", guesserID, err)
	}
	return collectPools(rows)
}

func (db *postgresDB) AddGuesserToPool(ctx context.Context, poolID, guesserID int32) error {
	const query = `INSERT INTO pool_guessers (pool_id, guesser_id)
					VALUES (@poolID, @guesserID)
					ON CONFLICT DO NOTHING`

	args := pgx.NamedArgs{"poolID": poolID, "guesserID": guesserID}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error adding guesser %d to pool %d: %w", guesserID, poolID, err)
	}
	return nil
}

func (db *postgresDB) PoolHasGuesser(ctx context.Context, poolID, guesserID int32) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM pool_guessers
					WHERE pool_id=@poolID AND guesser_id=@guesserID)`

	var exists bool
	args := pgx.NamedArgs{"poolID": poolID, "guesserID": guesserID}
	if err := db.pool.QueryRow(ctx, query, args).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking pool membership: %w", err)
	}
	return exists, nil
}

func (db *postgresDB) ListPoolGuessers(ctx context.Context, poolID int32) ([]model.Guesser, error) {
	const query = `SELECT g.id, g.user_id, g.name, g.email, g.supported_team_id, g.receive_notifications
					FROM guessers g
					JOIN pool_guessers pg ON pg.guesser_id = g.id
					WHERE pg.pool_id=@poolID
					ORDER BY g.name, g.id`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"poolID": poolID})
	if err != nil {
		return nil, fmt.Errorf("error listing guessers of pool %d: %w", poolID, err)
	}

	results := make([]model.Guesser, 0, 8)
	for rows.Next() {
		g, err := scanGuesser(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *g)
	}
	return results, rows.Err()
}

func (db *postgresDB) SetPoolCompetitions(ctx context.Context, poolID int32, competitionIDs []int32) error {
	return db.setPoolRelation(ctx, "pool_competitions", "competition_id", poolID, competitionIDs)
}

func (db *postgresDB) SetPoolTeams(ctx context.Context, poolID int32, teamIDs []int32) error {
	return db.setPoolRelation(ctx, "pool_teams", "team_id", poolID, teamIDs)
}

func (db *postgresDB) setPoolRelation(ctx context.Context, table, column string, poolID int32, ids []int32) error {
	clear := fmt.Sprintf(`DELETE FROM %s WHERE pool_id=@poolID`, table)
	add := fmt.Sprintf(`INSERT INTO %s (pool_id, %s) VALUES (@poolID, @id)
				ON CONFLICT DO NOTHING`, table, column)

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, clear, pgx.NamedArgs{"poolID": poolID}); err != nil {
		return fmt.Errorf("error clearing %s of pool %d: %w", table, poolID, err)
	}
	for _, id := range ids {
		args := pgx.NamedArgs{"poolID": poolID, "id": id}
		if _, err := tx.Exec(ctx, add, args); err != nil {
			return fmt.Errorf("error adding to %s of pool %d: %w", table, poolID, err)
		}
	}
	return tx.Commit(ctx)
}

func (db *postgresDB) RemoveGuesserFromPool(ctx context.Context, poolID, guesserID int32) error {
	const dropGuesses = `DELETE FROM pool_guesses
					WHERE pool_id=@poolID AND guesser_id=@guesserID`

	const dropMembership = `DELETE FROM pool_guessers
					WHERE pool_id=@poolID AND guesser_id=@guesserID`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	args := pgx.NamedArgs{"poolID": poolID, "guesserID": guesserID}
	if _, err := tx.Exec(ctx, dropGuesses, args); err != nil {
		return fmt.Errorf("error dropping guesses of guesser %d in pool %d: %w", guesserID, poolID, err)
	}
	if err := purgeOrphanGuesses(ctx, tx); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, dropMembership, args); err != nil {
		return fmt.Errorf("error removing guesser %d from pool %d: %w", guesserID, poolID, err)
	}
	return tx.Commit(ctx)
}

func (db *postgresDB) PoolsWithMatch(ctx context.Context, m *model.Match) ([]model.GuessPool, error) {
	query := `SELECT ` + poolColumns + `
				FROM pools p
				WHERE p.created < @kickoff
				AND (
					EXISTS (SELECT 1 FROM pool_competitions pc
						WHERE pc.pool_id=p.id AND pc.competition_id=@competitionID)
					OR EXISTS (SELECT 1 FROM pool_teams pt
						WHERE pt.pool_id=p.id AND pt.team_id IN (@homeTeamID, @awayTeamID))
				)
				ORDER BY p.id`

	args := pgx.NamedArgs{
		"kickoff":       m.Kickoff,
		"competitionID": m.CompetitionID,
		"homeTeamID":    m.HomeTeam.ID,
		"awayTeamID":    m.AwayTeam.ID,
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error getting pools with match %s: %w", m, err)
	}
	return collectPools(rows)
}

func (db *postgresDB) PoolsWithMatchAndGuesser(ctx context.Context, m *model.Match, guesserID int32) ([]model.GuessPool, error) {
	query := `SELECT ` + poolColumns + `
				FROM pools p
				JOIN pool_guessers pg ON pg.pool_id = p.id AND pg.guesser_id=@guesserID
				WHERE p.created < @kickoff
				AND (
					EXISTS (SELECT 1 FROM pool_competitions pc
						WHERE pc.pool_id=p.id AND pc.competition_id=@competitionID)
					OR EXISTS (SELECT 1 FROM pool_teams pt
						WHERE pt.pool_id=p.id AND pt.team_id IN (@homeTeamID, @awayTeamID))
				)
				ORDER BY p.id`

	args := pgx.NamedArgs{
		"guesserID":     guesserID,
		"kickoff":       m.Kickoff,
		"competitionID": m.CompetitionID,
		"homeTeamID":    m.HomeTeam.ID,
		"awayTeamID":    m.AwayTeam.ID,
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error getting pools with match %s for guesser %d: %w", m, guesserID, err)
	}
	return collectPools(rows)
}

func (db *postgresDB) SetPoolFlag(ctx context.Context, flag model.PoolFlag, poolIDs []int32, value bool) error {
	if len(poolIDs) == 0 {
		return nil
	}

	column, err := flagColumn(flag)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`UPDATE pools SET %s=@value WHERE id = ANY(@poolIDs)`, column)

	args := pgx.NamedArgs{"value": value, "poolIDs": poolIDs}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error setting %s flag: %w", flag, err)
	}
	return nil
}

func (db *postgresDB) PoolsWithFlagForGuesser(ctx context.Context, flag model.PoolFlag, guesserID int32) ([]model.GuessPool, error) {
	column, err := flagColumn(flag)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + poolColumns + `
				FROM pools p
				JOIN pool_guessers pg ON pg.pool_id = p.id
				WHERE pg.guesser_id=@guesserID AND p.` + column + `
				ORDER BY p.name`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"guesserID": guesserID})
	if err != nil {
		return nil, fmt.Errorf("error getting flagged pools of guesser %d: %w", guesserID, err)
	}
	return collectPools(rows)
}

func (db *postgresDB) ListPoolYears(ctx context.Context) ([]int, error) {
	const query = `SELECT DISTINCT EXTRACT(YEAR FROM created)::int AS year
					FROM pools ORDER BY year`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing pool years: %w", err)
	}

	years := make([]int, 0, 4)
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("error scanning pool year: %w", err)
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// flagColumn whitelists the columns SetPoolFlag may touch, since the flag
// name is interpolated into SQL.
func flagColumn(flag model.PoolFlag) (string, error) {
	switch flag {
	case model.FlagNewMatches, model.FlagUpdatedMatches:
		return string(flag), nil
	default:
		return "", fmt.Errorf("unknown pool flag %q", flag)
	}
}

func scanPool(row pgx.Row) (*model.GuessPool, error) {
	var p model.GuessPool
	err := row.Scan(&p.ID, &p.UUID, &p.Name, &p.Slug, &p.OwnerID, &p.Private,
		&p.NewMatches, &p.UpdatedMatches, &p.LeadMinutes, &p.OpenWindowHours, &p.Created)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPools(rows pgx.Rows) ([]model.GuessPool, error) {
	results := make([]model.GuessPool, 0, 8)
	for rows.Next() {
		p, err := scanPool(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning pool: %w", err)
		}
		results = append(results, *p)
	}
	return results, rows.Err()
}
