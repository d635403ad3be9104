package session

import (
	"time"

	"github.com/verte-zerg/wordler/internal/model"
)

// Record converts the session history into a storable game. The solution is
// only known for won games unless the caller supplies it.
func (s *Session) Record(mode, start, solution string, startedAt, endedAt time.Time) model.GameRecord {
	rec := model.GameRecord{
		StartedAt:  startedAt,
		EndedAt:    endedAt,
		Mode:       mode,
		Method:     s.cfg.Method.String(),
		Start:      start,
		Solution:   solution,
		Guesses:    s.GuessCount(),
		MaxGuesses: s.cfg.MaxGuesses,
		Won:        s.state == Won,
		WordCount:  s.dict.Len(),
		Turns:      make([]model.TurnRecord, len(s.history)),
	}
	for i, turn := range s.history {
		rec.Turns[i] = model.TurnRecord{Guess: turn.Guess, Pattern: turn.Pattern.String(), Remaining: turn.Remaining}
	}
	if rec.Won && rec.Solution == "" && len(s.history) > 0 {
		rec.Solution = s.history[len(s.history)-1].Guess
	}
	if rec.Start == "" && len(s.history) > 0 {
		rec.Start = s.history[0].Guess
	}
	return rec
}
