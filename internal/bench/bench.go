// Package bench plays every (start word, solution) pair to completion and
// aggregates guess counts per start word.
package bench

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/wordler/internal/candidate"
	"github.com/verte-zerg/wordler/internal/scorer"
	"github.com/verte-zerg/wordler/internal/session"
	"github.com/verte-zerg/wordler/internal/word"
)

// Config selects what a benchmark plays.
type Config struct {
	Starts []string
	Method scorer.Method
	// Solutions defaults to every dictionary word.
	Solutions []string
	// MaxGuesses is the budget a game must be won within to count as a success.
	MaxGuesses int
	// MaxTurns caps a single game; zero means no cap beyond the dictionary size.
	MaxTurns int
	// Workers defaults to runtime.NumCPU().
	Workers int
}

// Game is the outcome of one simulated game.
type Game struct {
	Solution string
	Guesses  int
	Won      bool
	Err      error
}

// Failed reports whether the game missed the guess budget.
func (g Game) Failed(maxGuesses int) bool {
	return !g.Won || g.Err != nil || g.Guesses > maxGuesses
}

// Summary aggregates every game played from one start word.
type Summary struct {
	Start    string
	Method   scorer.Method
	Games    int
	Average  float64
	Min      int
	Max      int
	Failures int
	// Failed lists the solutions that were not solved within the budget.
	Failed       []string
	Distribution map[int]int
	Elapsed      time.Duration
}

// Option customizes a Runner.
type Option func(*Runner)

// WithLogger sets the logger for per-start progress lines.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Runner) { r.log = l }
}

// WithProgress draws a progress bar on w.
func WithProgress(w io.Writer) Option {
	return func(r *Runner) { r.progress = w }
}

// Runner executes a benchmark. The dictionary is shared read-only by all
// workers; every game gets its own session.
type Runner struct {
	dict     *candidate.Dictionary
	cfg      Config
	log      zerolog.Logger
	progress io.Writer
}

// New builds a Runner over dict.
func New(dict *candidate.Dictionary, cfg Config, opts ...Option) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.MaxGuesses <= 0 {
		cfg.MaxGuesses = session.DefaultMaxGuesses
	}
	if len(cfg.Solutions) == 0 {
		cfg.Solutions = dict.Words()
	}
	r := &Runner{dict: dict, cfg: cfg, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run plays every start word against every solution. Summaries are sorted by
// average guesses, then failure count.
func (r *Runner) Run(ctx context.Context) ([]Summary, error) {
	starts := make([]string, 0, len(r.cfg.Starts))
	for _, start := range r.cfg.Starts {
		start = word.Normalize(start)
		if err := word.Validate(start, r.dict.Length()); err != nil {
			return nil, fmt.Errorf("start word: %w", err)
		}
		starts = append(starts, start)
	}
	if len(starts) == 0 {
		return nil, fmt.Errorf("no start words")
	}
	for _, solution := range r.cfg.Solutions {
		if err := word.Validate(solution, r.dict.Length()); err != nil {
			return nil, fmt.Errorf("solution: %w", err)
		}
	}

	var bar *progressbar.ProgressBar
	if r.progress != nil {
		bar = progressbar.NewOptions64(int64(len(starts)*len(r.cfg.Solutions)),
			progressbar.OptionSetWriter(r.progress),
			progressbar.OptionSetDescription("bench"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	}

	summaries := make([]Summary, 0, len(starts))
	for _, start := range starts {
		began := time.Now()
		games, err := r.playStart(ctx, start, bar)
		if err != nil {
			return nil, err
		}
		sum := r.summarize(start, games)
		sum.Elapsed = time.Since(began)
		r.log.Info().
			Str("start", start).
			Str("method", r.cfg.Method.String()).
			Float64("average", sum.Average).
			Int("failures", sum.Failures).
			Dur("elapsed", sum.Elapsed).
			Msg("benchmarked start word")
		summaries = append(summaries, sum)
	}
	if bar != nil {
		_ = bar.Finish()
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].Average != summaries[j].Average {
			return summaries[i].Average < summaries[j].Average
		}
		if summaries[i].Failures != summaries[j].Failures {
			return summaries[i].Failures < summaries[j].Failures
		}
		return summaries[i].Start < summaries[j].Start
	})
	return summaries, nil
}

func (r *Runner) playStart(ctx context.Context, start string, bar *progressbar.ProgressBar) ([]Game, error) {
	games := make([]Game, len(r.cfg.Solutions))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for i, solution := range r.cfg.Solutions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			games[i] = r.play(start, solution)
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return games, nil
}

func (r *Runner) play(start, solution string) Game {
	game := Game{Solution: solution}
	s, err := session.New(r.dict, start, session.Config{Method: r.cfg.Method, MaxGuesses: r.cfg.MaxGuesses})
	if err != nil {
		game.Err = err
		return game
	}
	res, err := s.Run(solution, r.cfg.MaxTurns)
	game.Guesses = s.GuessCount()
	game.Won = res.State == session.Won
	game.Err = err
	return game
}

func (r *Runner) summarize(start string, games []Game) Summary {
	sum := Summary{
		Start:        start,
		Method:       r.cfg.Method,
		Games:        len(games),
		Distribution: make(map[int]int),
	}
	total := 0
	for i, g := range games {
		total += g.Guesses
		if i == 0 || g.Guesses < sum.Min {
			sum.Min = g.Guesses
		}
		if g.Guesses > sum.Max {
			sum.Max = g.Guesses
		}
		sum.Distribution[g.Guesses]++
		if g.Failed(r.cfg.MaxGuesses) {
			sum.Failures++
			sum.Failed = append(sum.Failed, g.Solution)
		}
	}
	if len(games) > 0 {
		sum.Average = float64(total) / float64(len(games))
	}
	sort.Strings(sum.Failed)
	return sum
}
