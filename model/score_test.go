package model

import (
	"fmt"
	"testing"
)

func TestEvaluateScore(t *testing.T) {
	tests := []struct {
		guessedHome, guessedAway int32
		actualHome, actualAway   int32
		double                   bool
		expected                 int32
	}{
		// exact score
		{2, 0, 2, 0, false, 10},
		{1, 1, 1, 1, false, 10},
		{1, 0, 1, 0, true, 20},
		// correct winner with one exact goal count
		{1, 3, 1, 2, false, 5},
		{3, 1, 2, 1, false, 5},
		{2, 1, 2, 0, true, 10},
		// correct draw, wrong goal counts
		{1, 1, 2, 2, false, 5},
		{0, 0, 3, 3, true, 10},
		// correct winner only
		{2, 3, 0, 2, false, 3},
		{1, 0, 3, 2, false, 3},
		// exactly one goal count, wrong outcome
		{2, 0, 2, 2, false, 1},
		{0, 1, 1, 1, false, 1},
		{3, 0, 0, 0, false, 1},
		// complete miss
		{0, 1, 4, 2, false, 0},
		{2, 1, 0, 3, false, 0},
		{1, 1, 2, 0, false, 0},
	}

	for _, tc := range tests {
		name := fmt.Sprintf("%dx%d_vs_%dx%d", tc.guessedHome, tc.guessedAway, tc.actualHome, tc.actualAway)
		if tc.double {
			name += "_double"
		}
		t.Run(name, func(t *testing.T) {
			got := EvaluateScore(tc.guessedHome, tc.guessedAway, tc.actualHome, tc.actualAway, tc.double)
			if got != tc.expected {
				t.Errorf("expected %d points, got %d", tc.expected, got)
			}
		})
	}
}

// Every single score must come from the known tier values, doubled or not.
func TestEvaluateScore_valueSet(t *testing.T) {
	single := map[int32]bool{0: true, 1: true, 3: true, 5: true, 10: true}
	doubled := map[int32]bool{0: true, 2: true, 6: true, 10: true, 20: true}

	var gh, ga, ah, aa int32
	for gh = 0; gh <= 4; gh++ {
		for ga = 0; ga <= 4; ga++ {
			for ah = 0; ah <= 4; ah++ {
				for aa = 0; aa <= 4; aa++ {
					s := EvaluateScore(gh, ga, ah, aa, false)
					if !single[s] {
						t.Fatalf("(%d,%d) vs (%d,%d) produced unexpected score %d", gh, ga, ah, aa, s)
					}
					d := EvaluateScore(gh, ga, ah, aa, true)
					if !doubled[d] {
						t.Fatalf("(%d,%d) vs (%d,%d) produced unexpected doubled score %d", gh, ga, ah, aa, d)
					}
					if d != s*2 {
						t.Fatalf("(%d,%d) vs (%d,%d) double %d is not twice %d", gh, ga, ah, aa, d, s)
					}
				}
			}
		}
	}
}

// Swapping home and away on both the guess and the result must not change
// the score. This is a regression check, not an independent rule.
func TestEvaluateScore_sideSymmetry(t *testing.T) {
	var gh, ga, ah, aa int32
	for gh = 0; gh <= 3; gh++ {
		for ga = 0; ga <= 3; ga++ {
			for ah = 0; ah <= 3; ah++ {
				for aa = 0; aa <= 3; aa++ {
					a := EvaluateScore(gh, ga, ah, aa, false)
					b := EvaluateScore(ga, gh, aa, ah, false)
					if a != b {
						t.Fatalf("(%d,%d) vs (%d,%d) scored %d but mirrored scored %d", gh, ga, ah, aa, a, b)
					}
				}
			}
		}
	}
}
