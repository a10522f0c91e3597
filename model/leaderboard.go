package model

// MatchGuess pairs a match with one guesser's guess for it. Guess is nil when
// the guesser never submitted one.
type MatchGuess struct {
	Match Match
	Guess *Guess
}

// LeaderboardEntry is one row of a pool ranking. Guessers without any
// qualifying guess still appear with a score of 0.
type LeaderboardEntry struct {
	Guesser           Guesser
	Score             int32
	MatchesAndGuesses []MatchGuess
}
