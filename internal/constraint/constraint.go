// Package constraint accumulates letter knowledge across a guessing session.
package constraint

import (
	"errors"
	"fmt"
	"strings"

	"github.com/verte-zerg/wordler/internal/feedback"
	"github.com/verte-zerg/wordler/internal/word"
)

// ErrContradiction matches every ContradictionError via errors.Is.
var ErrContradiction = errors.New("contradictory feedback")

// ContradictionError reports a Correct verdict for a letter other than the
// one already confirmed at that position.
type ContradictionError struct {
	Position  int
	Confirmed byte
	Got       byte
}

func (e *ContradictionError) Error() string {
	return fmt.Sprintf("position %d already confirmed as %q, feedback says %q", e.Position+1, e.Confirmed, e.Got)
}

// Is lets errors.Is match ErrContradiction.
func (e *ContradictionError) Is(target error) bool {
	return target == ErrContradiction
}

// letterSet is a bitmask over a-z.
type letterSet uint32

func (s letterSet) has(c byte) bool { return s&(1<<word.Index(c)) != 0 }
func (s *letterSet) add(c byte)     { *s |= 1 << word.Index(c) }
func (s *letterSet) remove(c byte)  { *s &^= 1 << word.Index(c) }

// State is the per-session constraint record.
type State struct {
	length    int
	confirmed []byte // 0 when the position is open
	rejected  []letterSet
	required  [26]int
	guesses   int
}

// New returns an empty State for words of the given length.
func New(length int) *State {
	return &State{
		length:    length,
		confirmed: make([]byte, length),
		rejected:  make([]letterSet, length),
	}
}

// Clone returns an independent copy of s.
func (s *State) Clone() *State {
	out := &State{
		length:    s.length,
		confirmed: append([]byte(nil), s.confirmed...),
		rejected:  append([]letterSet(nil), s.rejected...),
		required:  s.required,
		guesses:   s.guesses,
	}
	return out
}

// Length returns the word length the state applies to.
func (s *State) Length() int { return s.length }

// GuessCount returns the number of successful updates.
func (s *State) GuessCount() int { return s.guesses }

// Confirmed returns the letter pinned at position i, if any.
func (s *State) Confirmed(i int) (byte, bool) {
	c := s.confirmed[i]
	return c, c != 0
}

// ConfirmedCount returns how many positions are pinned.
func (s *State) ConfirmedCount() int {
	n := 0
	for _, c := range s.confirmed {
		if c != 0 {
			n++
		}
	}
	return n
}

// Rejected reports whether letter c is ruled out at position i.
func (s *State) Rejected(i int, c byte) bool {
	return s.rejected[i].has(c)
}

// MinCount returns the minimum number of copies of c the solution holds.
func (s *State) MinCount(c byte) int {
	return s.required[word.Index(c)]
}

// Update folds one guess and its feedback into the state.
// On error the state is left untouched.
func (s *State) Update(guess string, p feedback.Pattern) error {
	if err := word.Validate(guess, s.length); err != nil {
		return err
	}
	if len(p) != s.length {
		return &feedback.InvalidFeedbackError{Code: p.String(), Reason: fmt.Sprintf("must be %d symbols, got %d", s.length, len(p))}
	}
	for i, sym := range p {
		if sym > feedback.Correct {
			return &feedback.InvalidFeedbackError{Code: p.String(), Reason: fmt.Sprintf("unknown symbol at position %d", i)}
		}
		if sym != feedback.Correct {
			continue
		}
		if had := s.confirmed[i]; had != 0 && had != guess[i] {
			return &ContradictionError{Position: i, Confirmed: had, Got: guess[i]}
		}
	}

	// Copies of each letter this guess proved present.
	var placed [26]int
	for i, sym := range p {
		c := guess[i]
		switch sym {
		case feedback.Correct:
			s.confirmed[i] = c
			s.rejected[i].remove(c)
			placed[word.Index(c)]++
		case feedback.Present:
			s.rejected[i].add(c)
			placed[word.Index(c)]++
		}
	}
	for i, sym := range p {
		if sym != feedback.Absent {
			continue
		}
		c := guess[i]
		if placed[word.Index(c)] > 0 {
			s.rejected[i].add(c)
			continue
		}
		for j := 0; j < s.length; j++ {
			if s.confirmed[j] != c {
				s.rejected[j].add(c)
			}
		}
	}
	for k, n := range placed {
		if n > s.required[k] {
			s.required[k] = n
		}
	}
	s.guesses++
	return nil
}

// Allows reports whether w is consistent with every constraint.
func (s *State) Allows(w string) bool {
	if len(w) != s.length {
		return false
	}
	var counts [26]int
	for i := 0; i < s.length; i++ {
		c := w[i]
		if c < 'a' || c > 'z' {
			return false
		}
		if want := s.confirmed[i]; want != 0 && c != want {
			return false
		}
		if s.rejected[i].has(c) {
			return false
		}
		counts[word.Index(c)]++
	}
	for k, need := range s.required {
		if counts[k] < need {
			return false
		}
	}
	return true
}

// String renders the known state, one line per position plus the required letters.
func (s *State) String() string {
	var b strings.Builder
	for i := 0; i < s.length; i++ {
		fmt.Fprintf(&b, "%d:", i+1)
		if c := s.confirmed[i]; c != 0 {
			fmt.Fprintf(&b, " +%c", c)
		}
		for c := byte('a'); c <= 'z'; c++ {
			if s.rejected[i].has(c) {
				fmt.Fprintf(&b, " -%c", c)
			}
		}
		b.WriteByte('\n')
	}
	b.WriteString("required:")
	for k, n := range s.required {
		if n > 0 {
			fmt.Fprintf(&b, " %c×%d", 'a'+k, n)
		}
	}
	return b.String()
}
