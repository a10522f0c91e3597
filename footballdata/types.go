package footballdata

import "time"

// response is the envelope every API-Football endpoint uses.
type response[T any] struct {
	Response []T `json:"response"`
}

type League struct {
	League struct {
		ID   int32  `json:"id"`
		Name string `json:"name"`
	} `json:"league"`
	Seasons []Season `json:"seasons"`
}

type Season struct {
	Year    int32 `json:"year"`
	Current bool  `json:"current"`
}

// CurrentSeason returns the season flagged current, or the latest one when
// none is flagged.
func (l *League) CurrentSeason() int32 {
	var latest int32
	for _, s := range l.Seasons {
		if s.Current {
			return s.Year
		}
		if s.Year > latest {
			latest = s.Year
		}
	}
	return latest
}

type TeamEntry struct {
	Team struct {
		ID   int32  `json:"id"`
		Name string `json:"name"`
		Code string `json:"code"`
	} `json:"team"`
}

type Fixture struct {
	Fixture struct {
		ID     int32     `json:"id"`
		Date   time.Time `json:"date"`
		Status struct {
			Short   string `json:"short"`
			Elapsed int    `json:"elapsed"`
		} `json:"status"`
	} `json:"fixture"`
	League struct {
		ID int32 `json:"id"`
	} `json:"league"`
	Teams struct {
		Home struct {
			ID int32 `json:"id"`
		} `json:"home"`
		Away struct {
			ID int32 `json:"id"`
		} `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home *int32 `json:"home"`
		Away *int32 `json:"away"`
	} `json:"goals"`
}
