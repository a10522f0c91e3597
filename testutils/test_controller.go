package testutils

import (
	"github.com/itbasis/go-clock"
)

type TestController struct {
	Clock        *clock.Mock
	fakeFootball *FakeFootballServer
}

func (c *TestController) Close() {
	c.fakeFootball.Close()
}

func (c *TestController) FootballURL() string {
	return c.fakeFootball.URL()
}

func NewTestController(db *TestDB) *TestController {
	return &TestController{
		Clock:        db.Clock,
		fakeFootball: NewFakeFootballServer(),
	}
}
