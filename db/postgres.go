package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eldersantoss/palpiteiros/model"
)

var (
	ErrTeamNotFound        = errors.New("team not found")
	ErrCompetitionNotFound = errors.New("competition not found")
	ErrMatchNotFound       = errors.New("match not found")
	ErrGuesserNotFound     = errors.New("guesser not found")
	ErrPoolNotFound        = errors.New("pool not found")
	ErrGuessNotFound       = errors.New("guess not found")
)

func New(ctx context.Context, connString string, clock clock.Clock) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &postgresDB{pool: pool, clock: clock}, nil
}

type postgresDB struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func (db *postgresDB) SaveTeam(ctx context.Context, t *model.Team) error {
	const insert = `INSERT INTO teams (data_source_id, name, code)
					VALUES (@dataSourceID, @name, @code)
					RETURNING id`

	const upsert = `INSERT INTO teams (data_source_id, name, code)
					VALUES (@dataSourceID, @name, @code)
					ON CONFLICT (data_source_id)
					DO UPDATE SET name=EXCLUDED.name, code=EXCLUDED.code
					RETURNING id`

	args := pgx.NamedArgs{
		"dataSourceID": nullableID(t.DataSourceID),
		"name":         t.Name,
		"code":         t.Code,
	}

	// Teams without a feed id have nothing to conflict on.
	query := upsert
	if t.DataSourceID == 0 {
		query = insert
	}

	if err := db.pool.QueryRow(ctx, query, args).Scan(&t.ID); err != nil {
		return fmt.Errorf("error saving team %s: %w", t.Name, err)
	}
	return nil
}

func (db *postgresDB) GetTeam(ctx context.Context, id int32) (*model.Team, error) {
	const query = `SELECT id, data_source_id, name, code FROM teams WHERE id=@id`

	t, err := scanTeam(db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("error getting team %d: %w", id, err)
	}
	return t, nil
}

func (db *postgresDB) GetTeamByDataSourceID(ctx context.Context, dataSourceID int32) (*model.Team, error) {
	const query = `SELECT id, data_source_id, name, code FROM teams WHERE data_source_id=@id`

	t, err := scanTeam(db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": dataSourceID}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("error getting team by data source id %d: %w", dataSourceID, err)
	}
	return t, nil
}

func (db *postgresDB) SaveCompetition(ctx context.Context, c *model.Competition) error {
	const query = `INSERT INTO competitions (data_source_id, name, season)
					VALUES (@dataSourceID, @name, @season)
					ON CONFLICT (data_source_id)
					DO UPDATE SET name=EXCLUDED.name, season=EXCLUDED.season
					RETURNING id`

	args := pgx.NamedArgs{
		"dataSourceID": c.DataSourceID,
		"name":         c.Name,
		"season":       c.Season,
	}
	if err := db.pool.QueryRow(ctx, query, args).Scan(&c.ID); err != nil {
		return fmt.Errorf("error saving competition %s: %w", c.Name, err)
	}
	return nil
}

func (db *postgresDB) GetCompetition(ctx context.Context, id int32) (*model.Competition, error) {
	const query = `SELECT id, data_source_id, name, season FROM competitions WHERE id=@id`

	var c model.Competition
	err := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id}).
		Scan(&c.ID, &c.DataSourceID, &c.Name, &c.Season)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("error getting competition %d: %w", id, err)
	}

	c.Teams, err = db.getCompetitionTeams(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (db *postgresDB) ListCompetitions(ctx context.Context) ([]model.Competition, error) {
	const query = `SELECT id, data_source_id, name, season FROM competitions ORDER BY name`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing competitions: %w", err)
	}

	results := make([]model.Competition, 0, 8)
	for rows.Next() {
		var c model.Competition
		if err := rows.Scan(&c.ID, &c.DataSourceID, &c.Name, &c.Season); err != nil {
			return nil, fmt.Errorf("error scanning competition: %w", err)
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

func (db *postgresDB) SetCompetitionTeams(ctx context.Context, competitionID int32, teamIDs []int32) error {
	const clear = `DELETE FROM competition_teams WHERE competition_id=@competitionID`
	const add = `INSERT INTO competition_teams (competition_id, team_id)
				VALUES (@competitionID, @teamID)
				ON CONFLICT DO NOTHING`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, clear, pgx.NamedArgs{"competitionID": competitionID}); err != nil {
		return fmt.Errorf("error clearing competition teams: %w", err)
	}
	for _, teamID := range teamIDs {
		args := pgx.NamedArgs{"competitionID": competitionID, "teamID": teamID}
		if _, err := tx.Exec(ctx, add, args); err != nil {
			return fmt.Errorf("error adding team %d to competition %d: %w", teamID, competitionID, err)
		}
	}
	return tx.Commit(ctx)
}

func (db *postgresDB) getCompetitionTeams(ctx context.Context, competitionID int32) ([]model.Team, error) {
	const query = `SELECT t.id, t.data_source_id, t.name, t.code
					FROM teams t
					JOIN competition_teams ct ON ct.team_id = t.id
					WHERE ct.competition_id=@competitionID
					ORDER BY t.name`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"competitionID": competitionID})
	if err != nil {
		return nil, fmt.Errorf("error getting competition teams: %w", err)
	}

	results := make([]model.Team, 0, 20)
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *t)
	}
	return results, rows.Err()
}

func (db *postgresDB) SaveGuesser(ctx context.Context, g *model.Guesser) error {
	const query = `INSERT INTO guessers (user_id, name, email, supported_team_id, receive_notifications)
					VALUES (@userID, @name, @email, @supportedTeamID, @receiveNotifications)
					ON CONFLICT (user_id)
					DO UPDATE SET name=EXCLUDED.name,
						email=EXCLUDED.email,
						supported_team_id=EXCLUDED.supported_team_id,
						receive_notifications=EXCLUDED.receive_notifications
					RETURNING id`

	args := pgx.NamedArgs{
		"userID":               g.UserID,
		"name":                 g.Name,
		"email":                g.Email,
		"supportedTeamID":      g.SupportedTeamID,
		"receiveNotifications": g.ReceiveNotifications,
	}
	if err := db.pool.QueryRow(ctx, query, args).Scan(&g.ID); err != nil {
		return fmt.Errorf("error saving guesser %s: %w", g.UserID, err)
	}
	return nil
}

func (db *postgresDB) GetGuesser(ctx context.Context, id int32) (*model.Guesser, error) {
	const query = `SELECT id, user_id, name, email, supported_team_id, receive_notifications
					FROM guessers WHERE id=@id`

	g, err := scanGuesser(db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGuesserNotFound
		}
		return nil, fmt.Errorf("error getting guesser %d: %w", id, err)
	}
	return g, nil
}

func (db *postgresDB) GetGuesserByUserID(ctx context.Context, userID string) (*model.Guesser, error) {
	const query = `SELECT id, user_id, name, email, supported_team_id, receive_notifications
					FROM guessers WHERE user_id=@userID`

	g, err := scanGuesser(db.pool.QueryRow(ctx, query, pgx.NamedArgs{"userID": userID}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGuesserNotFound
		}
		return nil, fmt.Errorf("error getting guesser by user id %s: %w", userID, err)
	}
	return g, nil
}

func (db *postgresDB) ListNotifiableGuessers(ctx context.Context) ([]model.Guesser, error) {
	const query = `SELECT DISTINCT g.id, g.user_id, g.name, g.email, g.supported_team_id, g.receive_notifications
					FROM guessers g
					JOIN pool_guessers pg ON pg.guesser_id = g.id
					WHERE g.email <> '' AND g.receive_notifications
					ORDER BY g.id`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing notifiable guessers: %w", err)
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

func scanTeam(row pgx.Row) (*model.Team, error) {
	var t model.Team
	var dataSourceID *int32
	var code *string
	if err := row.Scan(&t.ID, &dataSourceID, &t.Name, &code); err != nil {
		return nil, err
	}
	if dataSourceID != nil {
		t.DataSourceID = *dataSourceID
	}
	if code != nil {
		t.Code = *code
	}
	return &t, nil
}

func scanGuesser(row pgx.Row) (*model.Guesser, error) {
	var g model.Guesser
	if err := row.Scan(&g.ID, &g.UserID, &g.Name, &g.Email, &g.SupportedTeamID, &g.ReceiveNotifications); err != nil {
		return nil, fmt.Errorf("error scanning guesser: %w", err)
	}
	return &g, nil
}

// nullableID maps the zero value to NULL so that optional feed ids do not
// collide on the unique index.
func nullableID(id int32) *int32 {
	if id == 0 {
		return nil
	}
	return &id
}
