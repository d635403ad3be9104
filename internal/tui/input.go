package tui

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/wordler/internal/feedback"
	"github.com/verte-zerg/wordler/internal/word"
)

// Entry is one parsed input line.
type Entry struct {
	// Guess is empty when the line only carries feedback for the proposal.
	Guess string
	// Pattern is nil when the line only overrides the next guess.
	Pattern feedback.Pattern
}

// ParseLine accepts "<code>", "<guess>" or "<guess> <code>".
func ParseLine(line string, length int) (Entry, error) {
	fields := strings.Fields(line)
	switch len(fields) {
	case 1:
		if isCode(fields[0]) {
			p, err := feedback.Parse(fields[0], length)
			return Entry{Pattern: p}, err
		}
		return Entry{Guess: word.Normalize(fields[0])}, nil
	case 2:
		p, err := feedback.Parse(fields[1], length)
		if err != nil {
			return Entry{}, err
		}
		return Entry{Guess: word.Normalize(fields[0]), Pattern: p}, nil
	default:
		return Entry{}, fmt.Errorf("expected <code> or <guess> <code>")
	}
}

func isCode(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
