// Package model defines shared data structures.
package model

import "time"

// Game modes recorded in history.
const (
	ModeAssist   = "assist"
	ModeSimulate = "simulate"
)

// SolverConfig defines session settings resolved from flags and config.
type SolverConfig struct {
	Method      string
	Start       string
	MaxGuesses  int
	Length      int
	WordList    string
	Strict      bool
	Suggestions int
}

// BenchConfig defines benchmark settings.
type BenchConfig struct {
	Method   string
	Starts   []string
	Workers  int
	MaxTurns int
	Sample   int
	Seed     int64
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Method      string
	Mode        string
	Since       *time.Time
	Last        int
	TrendWindow int
	Hardest     int
}

// GameRecord captures a finished game.
type GameRecord struct {
	StartedAt  time.Time
	EndedAt    time.Time
	Mode       string
	Method     string
	Start      string
	Solution   string
	Guesses    int
	MaxGuesses int
	Won        bool
	WordCount  int
	Turns      []TurnRecord
}

// TurnRecord stores one evaluated guess.
type TurnRecord struct {
	Guess     string
	Pattern   string
	Remaining int
}

// GameAggregate summarizes a game for reporting.
type GameAggregate struct {
	GameID     int64
	EndedAt    time.Time
	Mode       string
	Method     string
	Start      string
	Solution   string
	Guesses    int
	MaxGuesses int
	Won        bool
}

// Solved reports whether the game was won within its guess budget.
func (g GameAggregate) Solved() bool {
	return g.Won && (g.MaxGuesses <= 0 || g.Guesses <= g.MaxGuesses)
}

// WordAggregate aggregates games per start word or solution.
type WordAggregate struct {
	Word         string
	Games        int
	Wins         int
	GuessesTotal int
}

// Average returns mean guesses per game.
func (a WordAggregate) Average() float64 {
	if a.Games == 0 {
		return 0
	}
	return float64(a.GuessesTotal) / float64(a.Games)
}
