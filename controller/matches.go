package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/eldersantoss/palpiteiros/db"
	"github.com/eldersantoss/palpiteiros/footballdata"
	"github.com/eldersantoss/palpiteiros/model"
)

func (c *controller) RecordMatchResult(ctx context.Context, matchID, homeGoals, awayGoals int32, status model.MatchStatus) error {
	m, err := c.db.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}

	m.HomeGoals = &homeGoals
	m.AwayGoals = &awayGoals
	m.Status = status

	n, err := c.db.UpdateMatchAndEvaluateGuesses(ctx, m)
	if err != nil {
		return err
	}
	log.Printf("recorded result %s for %s, %d guesses evaluated", m.ResultString(), m, n)

	return c.flagPoolsWithMatch(ctx, m, model.FlagUpdatedMatches)
}

func (c *controller) RegisterCompetition(ctx context.Context, leagueID int32) (*model.Competition, error) {
	league, err := c.football.GetLeague(leagueID)
	if err != nil {
		return nil, fmt.Errorf("error fetching league %d: %w", leagueID, err)
	}
	if league == nil {
		return nil, ErrLeagueNotFound
	}

	comp := &model.Competition{
		DataSourceID: league.League.ID,
		Name:         league.League.Name,
		Season:       league.CurrentSeason(),
	}
	if err := c.db.SaveCompetition(ctx, comp); err != nil {
		return nil, err
	}
	log.Printf("registered competition %s season %d", comp.Name, comp.Season)

	if err := c.SyncCompetitionTeams(ctx, comp.ID); err != nil {
		return nil, err
	}
	return c.db.GetCompetition(ctx, comp.ID)
}

func (c *controller) SyncCompetitionTeams(ctx context.Context, competitionID int32) error {
	comp, err := c.db.GetCompetition(ctx, competitionID)
	if err != nil {
		return err
	}

	entries, err := c.football.GetTeams(comp.DataSourceID, comp.Season)
	if err != nil {
		return fmt.Errorf("error fetching teams of %s: %w", comp.Name, err)
	}

	teamIDs := make([]int32, 0, len(entries))
	for _, e := range entries {
		team, err := c.db.GetTeamByDataSourceID(ctx, e.Team.ID)
		if err != nil {
			if !errors.Is(err, db.ErrTeamNotFound) {
				return err
			}
			team = &model.Team{DataSourceID: e.Team.ID}
		}
		team.Name = e.Team.Name
		team.Code = e.Team.Code
		if err := c.db.SaveTeam(ctx, team); err != nil {
			return err
		}
		teamIDs = append(teamIDs, team.ID)
	}

	return c.db.SetCompetitionTeams(ctx, comp.ID, teamIDs)
}

func (c *controller) SyncMatches(ctx context.Context, daysFrom, daysAhead int) error {
	competitions, err := c.db.ListCompetitions(ctx)
	if err != nil {
		return err
	}

	now := c.clock.Now()
	from := now.AddDate(0, 0, -daysFrom)
	to := now.AddDate(0, 0, daysAhead)

	for _, comp := range competitions {
		fixtures, err := c.football.GetFixtures(comp.DataSourceID, comp.Season, from, to)
		if err != nil {
			return fmt.Errorf("error fetching fixtures of %s: %w", comp.Name, err)
		}

		for _, f := range fixtures {
			if err := c.syncFixture(ctx, &comp, f, now); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *controller) syncFixture(ctx context.Context, comp *model.Competition, f footballdata.Fixture, now time.Time) error {
	m, err := c.db.GetMatchByDataSourceID(ctx, f.Fixture.ID)
	if err != nil && !errors.Is(err, db.ErrMatchNotFound) {
		return err
	}

	if m == nil {
		home, err := c.db.GetTeamByDataSourceID(ctx, f.Teams.Home.ID)
		if err != nil {
			if errors.Is(err, db.ErrTeamNotFound) {
				log.Printf("fixture %d skipped because its teams are not registered", f.Fixture.ID)
				return nil
			}
			return err
		}
		away, err := c.db.GetTeamByDataSourceID(ctx, f.Teams.Away.ID)
		if err != nil {
			if errors.Is(err, db.ErrTeamNotFound) {
				log.Printf("fixture %d skipped because its teams are not registered", f.Fixture.ID)
				return nil
			}
			return err
		}

		m = &model.Match{
			DataSourceID:  f.Fixture.ID,
			CompetitionID: comp.ID,
			HomeTeam:      home,
			AwayTeam:      away,
			Kickoff:       f.Fixture.Date,
		}
		m.UpdateStatus(model.ParseMatchStatus(f.Fixture.Status.Short), f.Fixture.Status.Elapsed, now)
		m.HomeGoals = f.Goals.Home
		m.AwayGoals = f.Goals.Away
		if err := c.db.AddMatch(ctx, m); err != nil {
			return err
		}
		return c.flagPoolsWithMatch(ctx, m, model.FlagNewMatches)
	}

	previousStatus := m.Status
	previousResult := m.ResultString()
	m.Kickoff = f.Fixture.Date
	m.UpdateStatus(model.ParseMatchStatus(f.Fixture.Status.Short), f.Fixture.Status.Elapsed, now)
	m.HomeGoals = f.Goals.Home
	m.AwayGoals = f.Goals.Away

	if _, err := c.db.UpdateMatchAndEvaluateGuesses(ctx, m); err != nil {
		return err
	}

	if m.Status != previousStatus || m.ResultString() != previousResult {
		return c.flagPoolsWithMatch(ctx, m, model.FlagUpdatedMatches)
	}
	return nil
}

func (c *controller) flagPoolsWithMatch(ctx context.Context, m *model.Match, flag model.PoolFlag) error {
	pools, err := c.db.PoolsWithMatch(ctx, m)
	if err != nil {
		return err
	}

	poolIDs := make([]int32, 0, len(pools))
	for _, p := range pools {
		poolIDs = append(poolIDs, p.ID)
		if flag == model.FlagUpdatedMatches {
			// A changed result makes every cached ranking of the pool stale.
			if err := c.cache.DeletePool(ctx, p.UUID); err != nil {
				log.Printf("error dropping cached rankings of pool %s: %v", p.Name, err)
			}
		}
	}
	return c.db.SetPoolFlag(ctx, flag, poolIDs, true)
}

const (
	syncDaysFrom  = 1
	syncDaysAhead = 7
)

func (c *controller) RunPeriodicMatchUpdates(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	ticker := time.NewTicker(frequency)
	defer wg.Done()

	for {
		select {
		case <-shutdown:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := c.SyncMatches(ctx, syncDaysFrom, syncDaysAhead); err != nil {
				log.Printf("%v", err)
			}
		}
	}
}
