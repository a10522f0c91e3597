// Package footballdata talks to the API-Football service for leagues, teams
// and fixtures.
package footballdata

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	apiFootballURL = "https://api-football-v1.p.rapidapi.com/v3"

	headerRapidApiHost = "x-rapidapi-host"
	headerRapidApiKey  = "x-rapidapi-key"

	rapidApiHost = "api-football-v1.p.rapidapi.com"
)

type Client interface {
	GetLeague(leagueID int32) (*League, error)
	GetTeams(leagueID, season int32) ([]TeamEntry, error)
	// GetFixtures returns the league's fixtures with kickoff between the two
	// dates, inclusive.
	GetFixtures(leagueID, season int32, from, to time.Time) ([]Fixture, error)
}

type client struct {
	url        string
	key        string
	httpClient *http.Client
}

func New(key string) (Client, error) {
	c := &client{
		url: apiFootballURL,
		key: key,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	return c, nil
}

func NewForTest(url string) Client {
	return &client{
		url:        url,
		key:        "not-important",
		httpClient: http.DefaultClient,
	}
}

func (c *client) GetLeague(leagueID int32) (*League, error) {
	params := url.Values{}
	params.Set("id", fmt.Sprint(leagueID))

	var res response[League]
	if err := c.footballRequest(&res, "/leagues", params); err != nil {
		return nil, err
	}
	if len(res.Response) == 0 {
		return nil, nil
	}
	return &res.Response[0], nil
}

func (c *client) GetTeams(leagueID, season int32) ([]TeamEntry, error) {
	params := url.Values{}
	params.Set("league", fmt.Sprint(leagueID))
	params.Set("season", fmt.Sprint(season))

	var res response[TeamEntry]
	if err := c.footballRequest(&res, "/teams", params); err != nil {
		return nil, err
	}
	return res.Response, nil
}

func (c *client) GetFixtures(leagueID, season int32, from, to time.Time) ([]Fixture, error) {
	params := url.Values{}
	params.Set("timezone", "UTC")
	params.Set("league", fmt.Sprint(leagueID))
	params.Set("season", fmt.Sprint(season))
	params.Set("from", from.Format("2006-01-02"))
	params.Set("to", to.Format("2006-01-02"))

	var res response[Fixture]
	if err := c.footballRequest(&res, "/fixtures", params); err != nil {
		return nil, err
	}
	return res.Response, nil
}

func (c *client) footballRequest(res any, path string, params url.Values) error {
	u := fmt.Sprintf("%s%s?%s", c.url, path, params.Encode())
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("error creating football api http request: %w", err)
	}
	req.Header.Add(headerRapidApiHost, rapidApiHost)
	req.Header.Add(headerRapidApiKey, c.key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending football api http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code from football api: %d", resp.StatusCode)
	}

	err = json.NewDecoder(resp.Body).Decode(res)
	if err != nil {
		return fmt.Errorf("error parsing response from football api: %w", err)
	}

	return nil
}
