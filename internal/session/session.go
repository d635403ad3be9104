// Package session drives the guess, feedback, next-guess loop.
//
// A Session owns its constraint state and candidate pool. Feedback either
// comes from an external observer (a pattern) or is computed against a known
// solution (simulation). Each Submit call evaluates one guess; the guess
// argument of the following call overrides the recommendation.
package session

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/wordler/internal/candidate"
	"github.com/verte-zerg/wordler/internal/constraint"
	"github.com/verte-zerg/wordler/internal/feedback"
	"github.com/verte-zerg/wordler/internal/scorer"
	"github.com/verte-zerg/wordler/internal/word"
)

// DefaultMaxGuesses is the canonical guess budget.
const DefaultMaxGuesses = 6

// State is the session's position in the guess loop.
type State int

const (
	AwaitingGuess State = iota
	AwaitingFeedback
	Evaluating
	Active
	Won
	OutOfGuesses
	Faulted
)

func (s State) String() string {
	switch s {
	case AwaitingGuess:
		return "awaiting-guess"
	case AwaitingFeedback:
		return "awaiting-feedback"
	case Evaluating:
		return "evaluating"
	case Active:
		return "active"
	case Won:
		return "won"
	case OutOfGuesses:
		return "out-of-guesses"
	case Faulted:
		return "faulted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Config holds per-session settings.
type Config struct {
	Method     scorer.Method
	MaxGuesses int
	// Strict rejects guesses that are not dictionary words.
	Strict bool
}

// Option customizes a Session.
type Option func(*Session)

// WithLogger sets the logger used for per-turn debug output.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// Observation is the feedback source for one guess: exactly one of
// Pattern or Solution should be set.
type Observation struct {
	Pattern  feedback.Pattern
	Solution string
}

// Observed wraps feedback reported by an external observer.
func Observed(p feedback.Pattern) Observation { return Observation{Pattern: p} }

// Against computes feedback from a known solution.
func Against(solution string) Observation { return Observation{Solution: solution} }

// Turn records one evaluated guess.
type Turn struct {
	Guess     string
	Pattern   feedback.Pattern
	Remaining int
}

// Result is the outcome of one Submit call.
type Result struct {
	Guess          string
	Pattern        feedback.Pattern
	NextGuess      string
	CandidateCount int
	State          State
	// Exceeded is set once the guess budget was spent without a win.
	Exceeded bool
}

// Session is one guessing game. It is not safe for concurrent use.
type Session struct {
	cfg         Config
	dict        *candidate.Dictionary
	constraints *constraint.State
	pool        *candidate.Pool
	state       State
	proposal    string
	ranked      []scorer.Ranked
	history     []Turn
	log         zerolog.Logger
}

// New starts a session over dict. An empty start uses the top-ranked word
// of the full dictionary.
func New(dict *candidate.Dictionary, start string, cfg Config, opts ...Option) (*Session, error) {
	if dict.Len() == 0 {
		return nil, fmt.Errorf("dictionary is empty")
	}
	if cfg.MaxGuesses <= 0 {
		cfg.MaxGuesses = DefaultMaxGuesses
	}
	s := &Session{
		cfg:         cfg,
		dict:        dict,
		constraints: constraint.New(dict.Length()),
		pool:        candidate.NewPool(dict),
		state:       AwaitingGuess,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ranked = scorer.Rank(s.pool.Words(), s.constraints, cfg.Method)
	start = word.Normalize(start)
	if start == "" {
		start = s.ranked[0].Word
	}
	if err := s.checkGuess(start); err != nil {
		return nil, err
	}
	s.proposal = start
	return s, nil
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Config returns the session settings.
func (s *Session) Config() Config { return s.cfg }

// Proposal returns the guess the session will submit next.
func (s *Session) Proposal() string { return s.proposal }

// GuessCount returns the number of evaluated guesses.
func (s *Session) GuessCount() int { return s.constraints.GuessCount() }

// CandidateCount returns the size of the candidate pool. A won session has
// exactly one candidate, the winning guess.
func (s *Session) CandidateCount() int {
	if s.state == Won {
		return 1
	}
	return s.pool.Len()
}

// Candidates returns the candidate pool in dictionary order.
func (s *Session) Candidates() []string {
	if s.state == Won {
		return []string{s.history[len(s.history)-1].Guess}
	}
	return s.pool.Words()
}

// Ranked returns the current ranking, best first.
func (s *Session) Ranked() []scorer.Ranked {
	return append([]scorer.Ranked(nil), s.ranked...)
}

// Constraints returns a copy of the accumulated constraints.
func (s *Session) Constraints() *constraint.State { return s.constraints.Clone() }

// History returns the evaluated turns in order.
func (s *Session) History() []Turn {
	return append([]Turn(nil), s.history...)
}

// Exceeded reports whether the guess budget was spent without a win.
func (s *Session) Exceeded() bool {
	return s.GuessCount() > s.cfg.MaxGuesses || (s.state != Won && s.GuessCount() >= s.cfg.MaxGuesses)
}

// Done reports whether no further guesses are accepted.
func (s *Session) Done() bool {
	return s.state == Won || s.state == Faulted
}

// Propose replaces the next guess without submitting it.
func (s *Session) Propose(guess string) error {
	if s.Done() {
		return ErrSessionOver
	}
	guess = word.Normalize(guess)
	if err := s.checkGuess(guess); err != nil {
		return err
	}
	s.proposal = guess
	return nil
}

// Submit evaluates guess against obs. An empty guess submits the current
// proposal. Invalid input and contradictions leave the session unchanged.
func (s *Session) Submit(guess string, obs Observation) (Result, error) {
	if s.Done() {
		return Result{State: s.state}, ErrSessionOver
	}
	guess = word.Normalize(guess)
	if guess == "" {
		guess = s.proposal
	}
	if err := s.checkGuess(guess); err != nil {
		return Result{State: s.state}, err
	}

	prev := s.state
	s.state = AwaitingFeedback
	pattern, err := s.observe(guess, obs)
	if err != nil {
		s.state = prev
		return Result{State: s.state}, err
	}

	s.state = Evaluating
	next := s.constraints.Clone()
	if err := next.Update(guess, pattern); err != nil {
		s.state = prev
		return Result{State: s.state}, err
	}
	s.constraints = next

	if pattern.Won() {
		s.state = Won
		s.proposal = ""
		s.ranked = nil
		s.history = append(s.history, Turn{Guess: guess, Pattern: pattern, Remaining: 1})
		s.logTurn(guess, pattern, 1)
		return s.result(guess, pattern, 1), nil
	}

	pool := s.pool.Filter(next)
	s.pool = pool
	s.history = append(s.history, Turn{Guess: guess, Pattern: pattern, Remaining: pool.Len()})
	s.logTurn(guess, pattern, pool.Len())
	if pool.Len() == 0 {
		s.state = Faulted
		s.proposal = ""
		s.ranked = nil
		return s.result(guess, pattern, 0), &NoCandidatesError{Guess: guess, Pattern: pattern, Turn: next.GuessCount()}
	}

	s.ranked = scorer.Rank(pool.Words(), next, s.cfg.Method)
	s.proposal = s.ranked[0].Word
	if next.GuessCount() >= s.cfg.MaxGuesses {
		s.state = OutOfGuesses
	} else {
		s.state = Active
	}
	return s.result(guess, pattern, pool.Len()), nil
}

// Run plays the session against a known solution until it is won, faults,
// or maxTurns guesses have been made. maxTurns <= 0 means no cap beyond the
// dictionary size, which always suffices because every wrong guess drawn
// from the pool eliminates itself.
func (s *Session) Run(solution string, maxTurns int) (Result, error) {
	if maxTurns <= 0 {
		maxTurns = s.dict.Len() + s.cfg.MaxGuesses
	}
	var res Result
	for s.GuessCount() < maxTurns {
		var err error
		res, err = s.Submit("", Against(solution))
		if err != nil {
			return res, err
		}
		if res.State == Won {
			return res, nil
		}
	}
	return res, nil
}

func (s *Session) observe(guess string, obs Observation) (feedback.Pattern, error) {
	length := s.dict.Length()
	switch {
	case obs.Solution != "":
		solution := word.Normalize(obs.Solution)
		if err := word.Validate(solution, length); err != nil {
			return nil, err
		}
		return feedback.Encode(guess, solution)
	case obs.Pattern != nil:
		if len(obs.Pattern) != length {
			return nil, &feedback.InvalidFeedbackError{Code: obs.Pattern.String(), Reason: fmt.Sprintf("must be %d symbols, got %d", length, len(obs.Pattern))}
		}
		return obs.Pattern, nil
	default:
		return nil, &feedback.InvalidFeedbackError{Reason: "no feedback or solution supplied"}
	}
}

func (s *Session) checkGuess(guess string) error {
	if err := word.Validate(guess, s.dict.Length()); err != nil {
		return err
	}
	if s.cfg.Strict && !s.dict.Contains(guess) {
		return &word.InvalidWordError{Word: guess, Reason: "not in word list"}
	}
	return nil
}

func (s *Session) result(guess string, pattern feedback.Pattern, remaining int) Result {
	return Result{
		Guess:          guess,
		Pattern:        pattern,
		NextGuess:      s.proposal,
		CandidateCount: remaining,
		State:          s.state,
		Exceeded:       s.Exceeded(),
	}
}

func (s *Session) logTurn(guess string, pattern feedback.Pattern, remaining int) {
	s.log.Debug().
		Int("turn", s.constraints.GuessCount()).
		Str("guess", guess).
		Str("feedback", pattern.String()).
		Int("remaining", remaining).
		Str("method", s.cfg.Method.String()).
		Msg("evaluated guess")
}
