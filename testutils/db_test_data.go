package testutils

import (
	"context"
	"log"
	"time"

	"github.com/itbasis/go-clock"

	"github.com/eldersantoss/palpiteiros/containers"
	"github.com/eldersantoss/palpiteiros/db"
	"github.com/eldersantoss/palpiteiros/model"
)

var (
	Brasileirao = &model.Competition{
		DataSourceID: 71,
		Name:         "Serie A",
		Season:       2024,
	}

	Flamengo = &model.Team{
		DataSourceID: 127,
		Name:         "Flamengo",
		Code:         "FLA",
	}
	Palmeiras = &model.Team{
		DataSourceID: 121,
		Name:         "Palmeiras",
		Code:         "PAL",
	}
	Corinthians = &model.Team{
		DataSourceID: 131,
		Name:         "Corinthians",
		Code:         "COR",
	}
	SaoPaulo = &model.Team{
		DataSourceID: 126,
		Name:         "Sao Paulo",
		Code:         "SAO",
	}
)

// TestTime is where the mock clock starts. Fixture kickoffs are placed
// around it.
var TestTime = time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     *clock.Mock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer()
	clock := clock.NewMock()
	clock.Set(TestTime)

	db, err := db.New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	if err := InsertTestData(db); err != nil {
		log.Fatalf("error populating db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     clock,
	}
}

func (db *TestDB) Shutdown() {
	db.container.Shutdown()
}

func InsertTestData(db db.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	teams := []*model.Team{Flamengo, Palmeiras, Corinthians, SaoPaulo}
	teamIDs := make([]int32, 0, len(teams))
	for _, t := range teams {
		if err := db.SaveTeam(ctx, t); err != nil {
			return err
		}
		teamIDs = append(teamIDs, t.ID)
	}

	if err := db.SaveCompetition(ctx, Brasileirao); err != nil {
		return err
	}
	return db.SetCompetitionTeams(ctx, Brasileirao.ID, teamIDs)
}
