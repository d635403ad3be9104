package session

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/wordler/internal/feedback"
)

var (
	// ErrNoCandidates matches every NoCandidatesError via errors.Is.
	ErrNoCandidates = errors.New("no candidates left")
	// ErrSessionOver is returned when submitting to a won or faulted session.
	ErrSessionOver = errors.New("session is over")
)

// NoCandidatesError reports that a guess's feedback eliminated every word.
// It means the dictionary is missing the solution or the feedback was wrong;
// the session cannot continue.
type NoCandidatesError struct {
	Guess   string
	Pattern feedback.Pattern
	Turn    int
}

func (e *NoCandidatesError) Error() string {
	return fmt.Sprintf("no candidates left after guess %d %q (%s)", e.Turn, e.Guess, e.Pattern)
}

// Is lets errors.Is match ErrNoCandidates.
func (e *NoCandidatesError) Is(target error) bool {
	return target == ErrNoCandidates
}
