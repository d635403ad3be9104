package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/verte-zerg/wordler/internal/model"
	"github.com/verte-zerg/wordler/internal/scorer"
	"github.com/verte-zerg/wordler/internal/session"
	statsPkg "github.com/verte-zerg/wordler/internal/stats"
)

// RunPlain drives the assistant over line-oriented text, one input per line,
// until r is exhausted or "quit" is read.
func RunPlain(r io.Reader, w io.Writer, opts Options) error {
	if opts.NewSession == nil {
		return fmt.Errorf("session factory is required")
	}
	s, err := opts.NewSession()
	if err != nil {
		return err
	}
	startedAt := time.Now()
	save := func() {
		if opts.Store == nil || s.GuessCount() == 0 {
			return
		}
		rec := s.Record(model.ModeAssist, "", "", startedAt, time.Now())
		if _, err := opts.Store.InsertGame(context.Background(), rec); err != nil {
			opts.Logger.Error().Err(err).Msg("failed to save game")
		}
	}
	prompt := func() error {
		_, err := fmt.Fprintf(w, "next: %s (%d candidates)\n", s.Proposal(), s.CandidateCount())
		return err
	}
	if err := prompt(); err != nil {
		return err
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "q" {
			break
		}
		entry, err := ParseLine(line, s.Constraints().Length())
		if err != nil {
			if _, werr := fmt.Fprintf(w, "error: %v\n", err); werr != nil {
				return werr
			}
			continue
		}
		if entry.Pattern == nil {
			if err := s.Propose(entry.Guess); err != nil {
				if _, werr := fmt.Fprintf(w, "error: %v\n", err); werr != nil {
					return werr
				}
				continue
			}
			if err := prompt(); err != nil {
				return err
			}
			continue
		}

		res, err := s.Submit(entry.Guess, session.Observed(entry.Pattern))
		switch {
		case errors.Is(err, session.ErrNoCandidates):
			save()
			if _, werr := fmt.Fprintf(w, "error: %v\n", err); werr != nil {
				return werr
			}
		case err != nil:
			if _, werr := fmt.Fprintf(w, "error: %v\n", err); werr != nil {
				return werr
			}
			continue
		default:
			if _, err := fmt.Fprintln(w, statsPkg.Tiles(res.Guess, res.Pattern, false)); err != nil {
				return err
			}
			if res.State != session.Won {
				top := scorer.Top(s.Ranked(), opts.Suggestions)
				words := make([]string, len(top))
				for i, r := range top {
					words[i] = r.Word
				}
				if _, err := fmt.Fprintf(w, "top: %s\n", strings.Join(words, " ")); err != nil {
					return err
				}
				if err := prompt(); err != nil {
					return err
				}
				continue
			}
			save()
			if _, err := fmt.Fprintf(w, "solved in %d\n", s.GuessCount()); err != nil {
				return err
			}
		}

		if s, err = opts.NewSession(); err != nil {
			return err
		}
		startedAt = time.Now()
		if _, err := fmt.Fprintln(w, "new game"); err != nil {
			return err
		}
		if err := prompt(); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if !s.Done() {
		save()
	}
	return nil
}
