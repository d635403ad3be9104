// Package feedback computes and parses per-position guess feedback.
//
// The wire code is one digit per position: 0 absent, 1 present, 2 correct.
package feedback

import (
	"errors"
	"fmt"
	"strings"

	"github.com/verte-zerg/wordler/internal/word"
)

// Symbol is the verdict for one guess position.
type Symbol uint8

const (
	Absent Symbol = iota
	Present
	Correct
)

// String returns the wire digit for s.
func (s Symbol) String() string {
	switch s {
	case Absent:
		return "0"
	case Present:
		return "1"
	case Correct:
		return "2"
	default:
		return "?"
	}
}

// Pattern is an ordered sequence of symbols aligned to a guess.
type Pattern []Symbol

// ErrInvalidFeedback matches every InvalidFeedbackError via errors.Is.
var ErrInvalidFeedback = errors.New("invalid feedback")

// InvalidFeedbackError reports a feedback code rejected before it reaches the constraint store.
type InvalidFeedbackError struct {
	Code   string
	Reason string
}

func (e *InvalidFeedbackError) Error() string {
	return fmt.Sprintf("invalid feedback %q: %s", e.Code, e.Reason)
}

// Is lets errors.Is match ErrInvalidFeedback.
func (e *InvalidFeedbackError) Is(target error) bool {
	return target == ErrInvalidFeedback
}

// Encode scores guess against solution.
//
// Exact matches are resolved first and removed from both sides, then each
// remaining guess letter claims at most one unmatched copy in the solution,
// scanning left to right. Both words must be lowercase a-z of equal length;
// anything else is a *word.InvalidWordError.
func Encode(guess, solution string) (Pattern, error) {
	n := len(guess)
	if err := word.Validate(guess, n); err != nil {
		return nil, err
	}
	if err := word.Validate(solution, n); err != nil {
		return nil, err
	}
	out := make(Pattern, n)

	// Unmatched solution letters, a-z.
	var counts [26]int
	for i := 0; i < n; i++ {
		if guess[i] == solution[i] {
			out[i] = Correct
			continue
		}
		counts[word.Index(solution[i])]++
	}

	for i := 0; i < n; i++ {
		if out[i] == Correct {
			continue
		}
		j := word.Index(guess[i])
		if counts[j] > 0 {
			out[i] = Present
			counts[j]--
		}
	}
	return out, nil
}

// Parse decodes a wire code of the given length.
func Parse(code string, length int) (Pattern, error) {
	code = strings.TrimSpace(code)
	if len(code) != length {
		return nil, &InvalidFeedbackError{Code: code, Reason: fmt.Sprintf("must be %d symbols, got %d", length, len(code))}
	}
	out := make(Pattern, length)
	for i := 0; i < len(code); i++ {
		switch code[i] {
		case '0':
			out[i] = Absent
		case '1':
			out[i] = Present
		case '2':
			out[i] = Correct
		default:
			return nil, &InvalidFeedbackError{Code: code, Reason: fmt.Sprintf("symbol %q at position %d is not 0, 1 or 2", code[i], i)}
		}
	}
	return out, nil
}

// AllCorrect returns the winning pattern of length n.
func AllCorrect(n int) Pattern {
	out := make(Pattern, n)
	for i := range out {
		out[i] = Correct
	}
	return out
}

// Won reports whether every position is Correct.
func (p Pattern) Won() bool {
	if len(p) == 0 {
		return false
	}
	for _, s := range p {
		if s != Correct {
			return false
		}
	}
	return true
}

// Equal reports whether p and other carry the same symbols.
func (p Pattern) Equal(other Pattern) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the wire code, e.g. "01002".
func (p Pattern) String() string {
	var b strings.Builder
	b.Grow(len(p))
	for _, s := range p {
		b.WriteString(s.String())
	}
	return b.String()
}

// Squares renders the share-style emoji row.
func (p Pattern) Squares() string {
	var b strings.Builder
	for _, s := range p {
		switch s {
		case Correct:
			b.WriteString("\U0001F7E9")
		case Present:
			b.WriteString("\U0001F7E8")
		default:
			b.WriteString("⬛")
		}
	}
	return b.String()
}
