package session

import (
	"errors"
	"testing"
	"time"

	"github.com/verte-zerg/wordler/internal/candidate"
	"github.com/verte-zerg/wordler/internal/constraint"
	"github.com/verte-zerg/wordler/internal/feedback"
	"github.com/verte-zerg/wordler/internal/scorer"
	"github.com/verte-zerg/wordler/internal/word"
)

var testWords = []string{
	"flash", "stale", "scald", "crane", "adieu", "slate", "tutor", "rower",
	"taste", "rural", "hello", "world", "pious", "mound", "brick",
}

func newTestSession(t *testing.T, start string, cfg Config) *Session {
	t.Helper()
	s, err := New(candidate.NewDictionary(testWords, 5), start, cfg)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func mustParse(t *testing.T, code string) feedback.Pattern {
	t.Helper()
	p, err := feedback.Parse(code, 5)
	if err != nil {
		t.Fatalf("parse %q: %v", code, err)
	}
	return p
}

func TestObservedFeedbackFlow(t *testing.T) {
	s := newTestSession(t, "flash", Config{})
	if s.State() != AwaitingGuess {
		t.Fatalf("expected awaiting-guess, got %s", s.State())
	}
	if s.Proposal() != "flash" {
		t.Fatalf("expected proposal flash, got %q", s.Proposal())
	}

	res, err := s.Submit("", Observed(mustParse(t, "01210")))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.CandidateCount != 2 {
		t.Fatalf("expected 2 candidates, got %d (%v)", res.CandidateCount, s.Candidates())
	}
	if res.NextGuess != "scald" {
		t.Fatalf("expected scald on alphabetical tie, got %q", res.NextGuess)
	}
	if res.State != Active {
		t.Fatalf("expected active, got %s", res.State)
	}

	res, err = s.Submit("stale", Observed(mustParse(t, "22222")))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.State != Won || !s.Done() {
		t.Fatalf("expected won, got %s", res.State)
	}
	if res.NextGuess != "" || res.CandidateCount != 1 {
		t.Fatalf("expected no next guess and 1 candidate, got %q/%d", res.NextGuess, res.CandidateCount)
	}
	if s.CandidateCount() != 1 {
		t.Fatalf("expected 1 candidate after win, got %d", s.CandidateCount())
	}
	if got := s.Candidates(); len(got) != 1 || got[0] != "stale" {
		t.Fatalf("expected [stale] after win, got %v", got)
	}
	if s.GuessCount() != 2 || res.Exceeded {
		t.Fatalf("expected 2 guesses within budget, got %d exceeded=%v", s.GuessCount(), res.Exceeded)
	}

	if _, err := s.Submit("crane", Observed(mustParse(t, "00000"))); !errors.Is(err, ErrSessionOver) {
		t.Fatalf("expected ErrSessionOver, got %v", err)
	}
}

func TestWinDetectedForEveryMethod(t *testing.T) {
	for _, m := range scorer.Methods() {
		s := newTestSession(t, "crane", Config{Method: m})
		res, err := s.Submit("", Observed(feedback.AllCorrect(5)))
		if err != nil {
			t.Fatalf("%s: submit: %v", m, err)
		}
		if res.State != Won {
			t.Fatalf("%s: expected won, got %s", m, res.State)
		}
	}
}

func TestRunAgainstSolution(t *testing.T) {
	run := func() []Turn {
		s := newTestSession(t, "flash", Config{})
		res, err := s.Run("stale", 0)
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		if res.State != Won {
			t.Fatalf("expected won, got %s", res.State)
		}
		return s.History()
	}

	first := run()
	if len(first) > DefaultMaxGuesses {
		t.Fatalf("expected at most %d guesses, got %d", DefaultMaxGuesses, len(first))
	}
	if first[0].Pattern.String() != "01210" {
		t.Fatalf("expected flash feedback 01210, got %s", first[0].Pattern)
	}
	last := first[len(first)-1]
	if last.Guess != "stale" || !last.Pattern.Won() {
		t.Fatalf("expected final guess stale/22222, got %s/%s", last.Guess, last.Pattern)
	}

	second := run()
	if len(first) != len(second) {
		t.Fatalf("expected identical runs, got %d and %d turns", len(first), len(second))
	}
	for i := range first {
		if first[i].Guess != second[i].Guess {
			t.Fatalf("turn %d differs: %q vs %q", i, first[i].Guess, second[i].Guess)
		}
	}
}

func TestRunTurnCap(t *testing.T) {
	s := newTestSession(t, "hello", Config{})
	res, err := s.Run("stale", 1)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.State == Won || s.GuessCount() != 1 {
		t.Fatalf("expected one unfinished turn, got %s after %d", res.State, s.GuessCount())
	}
}

func TestEveryGuessIsConsistentWithHistory(t *testing.T) {
	for _, solution := range testWords {
		s := newTestSession(t, "crane", Config{})
		if _, err := s.Run(solution, 0); err != nil {
			t.Fatalf("%s: run: %v", solution, err)
		}
		history := s.History()
		for i := 1; i < len(history); i++ {
			st := constraint.New(5)
			for _, prev := range history[:i] {
				if err := st.Update(prev.Guess, prev.Pattern); err != nil {
					t.Fatalf("%s: replay: %v", solution, err)
				}
			}
			if !st.Allows(history[i].Guess) {
				t.Fatalf("%s: guess %q contradicts earlier feedback", solution, history[i].Guess)
			}
		}
	}
}

func TestContradictionLeavesSessionUnchanged(t *testing.T) {
	s := newTestSession(t, "flash", Config{})
	if _, err := s.Submit("", Observed(mustParse(t, "01210"))); err != nil {
		t.Fatalf("submit: %v", err)
	}
	before := s.Candidates()

	_, err := s.Submit("crest", Observed(mustParse(t, "00200")))
	if !errors.Is(err, constraint.ErrContradiction) {
		t.Fatalf("expected contradiction, got %v", err)
	}
	if s.State() != Active || s.GuessCount() != 1 {
		t.Fatalf("expected unchanged session, got %s after %d", s.State(), s.GuessCount())
	}
	if after := s.Candidates(); len(after) != len(before) {
		t.Fatalf("expected %v, got %v", before, after)
	}
	if s.Proposal() != "scald" {
		t.Fatalf("expected proposal scald, got %q", s.Proposal())
	}
}

func TestNoCandidatesFaults(t *testing.T) {
	s := newTestSession(t, "crane", Config{})
	_, err := s.Submit("", Observed(mustParse(t, "22220")))
	var nc *NoCandidatesError
	if !errors.As(err, &nc) || !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("expected NoCandidatesError, got %v", err)
	}
	if nc.Turn != 1 || nc.Guess != "crane" {
		t.Fatalf("unexpected error detail %+v", nc)
	}
	if s.State() != Faulted {
		t.Fatalf("expected faulted, got %s", s.State())
	}
	if _, err := s.Submit("", Observed(mustParse(t, "00000"))); !errors.Is(err, ErrSessionOver) {
		t.Fatalf("expected ErrSessionOver, got %v", err)
	}
}

func TestOutOfGuessesAllowsContinuing(t *testing.T) {
	s := newTestSession(t, "flash", Config{MaxGuesses: 1})
	res, err := s.Submit("", Against("stale"))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.State != OutOfGuesses || !res.Exceeded {
		t.Fatalf("expected out-of-guesses, got %s exceeded=%v", res.State, res.Exceeded)
	}
	res, err = s.Submit("stale", Against("stale"))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.State != Won || !res.Exceeded {
		t.Fatalf("expected late win, got %s exceeded=%v", res.State, res.Exceeded)
	}
}

func TestInvalidInput(t *testing.T) {
	s := newTestSession(t, "flash", Config{Strict: true})

	if _, err := s.Submit("fl4sh", Observed(mustParse(t, "00000"))); !errors.Is(err, word.ErrInvalidWord) {
		t.Fatalf("expected invalid word, got %v", err)
	}
	if _, err := s.Submit("zzzzz", Observed(mustParse(t, "00000"))); !errors.Is(err, word.ErrInvalidWord) {
		t.Fatalf("expected strict rejection, got %v", err)
	}
	if _, err := s.Submit("", Observed(feedback.Pattern{feedback.Absent})); !errors.Is(err, feedback.ErrInvalidFeedback) {
		t.Fatalf("expected invalid feedback, got %v", err)
	}
	if _, err := s.Submit("", Observation{}); !errors.Is(err, feedback.ErrInvalidFeedback) {
		t.Fatalf("expected missing feedback error, got %v", err)
	}
	if err := s.Propose("toolong"); !errors.Is(err, word.ErrInvalidWord) {
		t.Fatalf("expected propose to reject, got %v", err)
	}
	if s.State() != AwaitingGuess || s.GuessCount() != 0 {
		t.Fatalf("expected untouched session, got %s after %d", s.State(), s.GuessCount())
	}
	if err := s.Propose("Crane"); err != nil || s.Proposal() != "crane" {
		t.Fatalf("expected proposal crane, got %q (%v)", s.Proposal(), err)
	}
}

func TestDefaultStartIsTopRanked(t *testing.T) {
	s := newTestSession(t, "", Config{})
	ranked := scorer.Rank(candidate.NewDictionary(testWords, 5).Words(), nil, scorer.Cumulative)
	if s.Proposal() != ranked[0].Word {
		t.Fatalf("expected %q, got %q", ranked[0].Word, s.Proposal())
	}
}

func TestRecord(t *testing.T) {
	s := newTestSession(t, "flash", Config{Method: scorer.PerSlot})
	if _, err := s.Run("stale", 0); err != nil {
		t.Fatalf("run: %v", err)
	}
	rec := s.Record("simulate", "", "", time.Unix(0, 0), time.Unix(10, 0))
	if !rec.Won || rec.Solution != "stale" || rec.Start != "flash" {
		t.Fatalf("unexpected record %+v", rec)
	}
	if rec.Method != "slot" || rec.MaxGuesses != DefaultMaxGuesses || rec.WordCount != len(testWords) {
		t.Fatalf("unexpected settings in record %+v", rec)
	}
	if len(rec.Turns) != rec.Guesses || rec.Turns[0].Pattern != "01210" {
		t.Fatalf("unexpected turns %+v", rec.Turns)
	}
}
