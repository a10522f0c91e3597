package mockfootball

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/eldersantoss/palpiteiros/footballdata"
)

type Client struct {
	mock.Mock
}

func (c *Client) GetLeague(leagueID int32) (*footballdata.League, error) {
	args := c.Called(leagueID)

	var l *footballdata.League
	if args.Get(0) != nil {
		l = args.Get(0).(*footballdata.League)
	}
	return l, args.Error(1)
}

func (c *Client) GetTeams(leagueID, season int32) ([]footballdata.TeamEntry, error) {
	args := c.Called(leagueID, season)

	var res []footballdata.TeamEntry
	if args.Get(0) != nil {
		res = args.Get(0).([]footballdata.TeamEntry)
	}
	return res, args.Error(1)
}

func (c *Client) GetFixtures(leagueID, season int32, from, to time.Time) ([]footballdata.Fixture, error) {
	args := c.Called(leagueID, season, from, to)

	var res []footballdata.Fixture
	if args.Get(0) != nil {
		res = args.Get(0).([]footballdata.Fixture)
	}
	return res, args.Error(1)
}
