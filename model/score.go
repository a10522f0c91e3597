package model

// Points awarded by each scoring tier.
const (
	ScoreExact            = 10
	ScorePartialWithGoals = 5
	ScoreDraw             = 5
	ScorePartial          = 3
	ScoreGoalsOnly        = 1
)

// EvaluateScore compares a guess with the actual result of a match and
// returns the points earned. The tiers are mutually exclusive and checked in
// order:
//
//	exact score                                   -> 10
//	correct winner and one exact goal count       -> 5
//	correct draw                                  -> 5
//	correct winner only                           -> 3
//	exactly one goal count, wrong outcome         -> 1
//	anything else                                 -> 0
//
// When double is true the final score is doubled. Callers must only invoke
// this once the match has an actual result.
func EvaluateScore(guessedHome, guessedAway, actualHome, actualAway int32, double bool) int32 {
	homeGoalsMatch := guessedHome == actualHome
	awayGoalsMatch := guessedAway == actualAway

	homeWinMatch := guessedHome > guessedAway && actualHome > actualAway
	awayWinMatch := guessedHome < guessedAway && actualHome < actualAway
	drawMatch := guessedHome == guessedAway && actualHome == actualAway

	partial := homeWinMatch || awayWinMatch
	partialWithGoals := partial && (homeGoalsMatch || awayGoalsMatch)
	goalsOnly := (homeGoalsMatch || awayGoalsMatch) && !partial
	exact := homeGoalsMatch && awayGoalsMatch

	var score int32
	switch {
	case exact:
		score = ScoreExact
	case partialWithGoals:
		score = ScorePartialWithGoals
	case drawMatch:
		score = ScoreDraw
	case partial:
		score = ScorePartial
	case goalsOnly:
		score = ScoreGoalsOnly
	}

	if double {
		score *= 2
	}
	return score
}
