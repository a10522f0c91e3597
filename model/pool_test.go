package model

import (
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Premier League 2024", "premier-league-2024"},
		{"  Copa do Brasil  ", "copa-do-brasil"},
		{"friends---pool", "friends-pool"},
		{"UPPER case", "upper-case"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := Slugify(tc.in); got != tc.expected {
			t.Errorf("Slugify(%q): expected %q, got %q", tc.in, tc.expected, got)
		}
	}
}

func TestPoolMatchOpenForGuesses_usesPoolWindow(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	m := &Match{Kickoff: now.Add(60 * time.Hour)}

	narrow := &GuessPool{LeadMinutes: DefaultLeadMinutes, OpenWindowHours: DefaultOpenWindowHours}
	if narrow.MatchOpenForGuesses(m, now) {
		t.Errorf("match 60h out must be closed under a 48h window")
	}

	wide := &GuessPool{LeadMinutes: DefaultLeadMinutes, OpenWindowHours: 72}
	if !wide.MatchOpenForGuesses(m, now) {
		t.Errorf("match 60h out must be open under a 72h window")
	}
}
