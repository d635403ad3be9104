package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordler/internal/bench"
	"github.com/verte-zerg/wordler/internal/candidate"
	"github.com/verte-zerg/wordler/internal/constraint"
	"github.com/verte-zerg/wordler/internal/feedback"
	"github.com/verte-zerg/wordler/internal/model"
	"github.com/verte-zerg/wordler/internal/picker"
	"github.com/verte-zerg/wordler/internal/scorer"
	"github.com/verte-zerg/wordler/internal/session"
	"github.com/verte-zerg/wordler/internal/stats"
	"github.com/verte-zerg/wordler/internal/word"
)

const (
	randomSolution     = "rand"
	defaultBenchStarts = 5
	defaultTrendWindow = 10
	defaultHardest     = 10
	sinceLayout        = "2006-01-02"
)

var (
	simSolution string
	simSeed     int64
	simNoSave   bool
	simColor    bool

	benchStarts     []string
	benchWorkers    int
	benchMaxTurns   int
	benchSample     int
	benchSeed       int64
	benchTop        int
	benchNoProgress bool

	statsMode    string
	statsSince   string
	statsLast    int
	statsWindow  int
	statsHardest int
	statsColor   bool
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play one game against a known solution",
		Args:  cobra.NoArgs,
		RunE:  runSimulateCmd,
	}
	cmd.Flags().StringVar(&simSolution, "solution", randomSolution, "solution word, or \"rand\" for a random dictionary word")
	cmd.Flags().Int64Var(&simSeed, "seed", 0, "seed for the random solution (0: time based)")
	cmd.Flags().BoolVar(&simNoSave, "no-save", false, "do not record the game in history")
	cmd.Flags().BoolVar(&simColor, "color", false, "force colored tiles")
	return cmd
}

func runSimulateCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveSolverConfig(cmd)
	if err != nil {
		return err
	}
	dict, err := loadDictionary(cfg)
	if err != nil {
		return err
	}
	solution := word.Normalize(simSolution)
	if solution == randomSolution {
		solution = picker.New(simSeed).Word(dict.Words())
	}
	if err := word.Validate(solution, cfg.Length); err != nil {
		return fmt.Errorf("--solution: %w", err)
	}

	factory, err := sessionFactory(dict, cfg)
	if err != nil {
		return err
	}
	sess, err := factory()
	if err != nil {
		return err
	}
	startedAt := time.Now()
	res, runErr := sess.Run(solution, 0)
	endedAt := time.Now()

	rec := sess.Record(model.ModeSimulate, cfg.Start, solution, startedAt, endedAt)
	out := cmd.OutOrStdout()
	if err := stats.RenderBoard(out, rec.Turns, simColor); err != nil {
		return err
	}
	if err := printSimulateResult(out, solution, res, sess.GuessCount(), runErr); err != nil {
		return err
	}

	if !simNoSave {
		if err := saveRecord(cmd.Context(), rec); err != nil {
			return err
		}
	}
	return runErr
}

func printSimulateResult(w io.Writer, solution string, res session.Result, guesses int, runErr error) error {
	var err error
	switch {
	case runErr != nil:
		_, err = fmt.Fprintf(w, "%s: gave up after %d guesses\n", solution, guesses)
	case res.State == session.Won && res.Exceeded:
		_, err = fmt.Fprintf(w, "%s: solved in %d (over budget)\n", solution, guesses)
	case res.State == session.Won:
		_, err = fmt.Fprintf(w, "%s: solved in %d\n", solution, guesses)
	default:
		_, err = fmt.Fprintf(w, "%s: not solved after %d guesses\n", solution, guesses)
	}
	return err
}

func saveRecord(ctx context.Context, rec model.GameRecord) error {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)
	id, err := st.InsertGame(ctx, rec)
	if err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	logger.Debug().Int64("game", id).Msg("saved game")
	return nil
}

func newSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest [guess code]...",
		Short: "Rank candidates for the given guesses and feedback codes",
		Long: "Rank the remaining candidates after the given guess/feedback pairs.\n" +
			"Codes use 0 (absent), 1 (present), 2 (correct), e.g. `wordler suggest flash 01210`.",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args)%2 != 0 {
				return fmt.Errorf("expected guess/code pairs, got %d arguments", len(args))
			}
			return nil
		},
		RunE: runSuggestCmd,
	}
}

// parsePairs applies every guess/code pair to a fresh constraint state.
func parsePairs(args []string, length int) (*constraint.State, error) {
	state := constraint.New(length)
	for i := 0; i+1 < len(args); i += 2 {
		guess := word.Normalize(args[i])
		if err := word.Validate(guess, length); err != nil {
			return nil, err
		}
		p, err := feedback.Parse(args[i+1], length)
		if err != nil {
			return nil, err
		}
		if err := state.Update(guess, p); err != nil {
			return nil, err
		}
	}
	return state, nil
}

func runSuggestCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveSolverConfig(cmd)
	if err != nil {
		return err
	}
	dict, err := loadDictionary(cfg)
	if err != nil {
		return err
	}
	state, err := parsePairs(args, cfg.Length)
	if err != nil {
		return err
	}
	method, err := scorer.ParseMethod(cfg.Method)
	if err != nil {
		return err
	}
	return writeSuggestions(cmd.OutOrStdout(), dict, state, method, cfg.Suggestions)
}

func writeSuggestions(w io.Writer, dict *candidate.Dictionary, state *constraint.State, method scorer.Method, n int) error {
	pool := candidate.NewPool(dict).Filter(state).Words()
	if len(pool) == 0 {
		return fmt.Errorf("%w: no word fits %s", session.ErrNoCandidates, state)
	}
	if _, err := fmt.Fprintf(w, "%d candidates\n", len(pool)); err != nil {
		return err
	}
	for i, r := range scorer.Top(scorer.Rank(pool, state, method), n) {
		if _, err := fmt.Fprintf(w, "%2d. %s  %.6g\n", i+1, r.Word, r.Score); err != nil {
			return err
		}
	}
	best := scorer.Best(pool, state)
	parts := make([]string, 0, len(best))
	for _, m := range scorer.Methods() {
		if b, ok := best[m]; ok {
			parts = append(parts, m.String()+"="+b)
		}
	}
	_, err := fmt.Fprintf(w, "best: %s\n", strings.Join(parts, " "))
	return err
}

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <guess> <solution>",
		Short: "Print the feedback code a guess earns against a solution",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeEncode(cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func writeEncode(w io.Writer, guess, solution string) error {
	guess = word.Normalize(guess)
	solution = word.Normalize(solution)
	if err := word.Validate(guess, len(solution)); err != nil {
		return err
	}
	p, err := feedback.Encode(guess, solution)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s %s\n", p, p.Squares())
	return err
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark start words against every solution",
		Args:  cobra.NoArgs,
		RunE:  runBenchCmd,
	}
	flags := cmd.Flags()
	flags.StringSliceVar(&benchStarts, "starts", nil, "start words to compare (default: the best ranked words)")
	flags.IntVar(&benchWorkers, "workers", 0, "concurrent games (0: every CPU)")
	flags.IntVar(&benchMaxTurns, "max-turns", 0, "guess cap per game (0: play to the end)")
	flags.IntVar(&benchSample, "sample", 0, "play a random sample of solutions (0: all)")
	flags.Int64Var(&benchSeed, "seed", 0, "seed for --sample (0: time based)")
	flags.IntVar(&benchTop, "top", defaultBenchStarts, "number of best ranked start words when --starts is empty")
	flags.BoolVar(&benchNoProgress, "no-progress", false, "hide the progress bar")
	return cmd
}

func resolveBenchConfig(cmd *cobra.Command, solver model.SolverConfig) (model.BenchConfig, scorer.Method, error) {
	benchMethod := solver.Method
	applyStringConfig(cmd, "method", &benchMethod, fileCfg.Bench.Method)
	applyStringsConfig(cmd, "starts", &benchStarts, fileCfg.Bench.Starts)
	applyIntConfig(cmd, "workers", &benchWorkers, fileCfg.Bench.Workers)
	applyIntConfig(cmd, "max-turns", &benchMaxTurns, fileCfg.Bench.MaxTurns)
	applyIntConfig(cmd, "sample", &benchSample, fileCfg.Bench.Sample)

	cfg := model.BenchConfig{
		Method:   benchMethod,
		Workers:  benchWorkers,
		MaxTurns: benchMaxTurns,
		Sample:   benchSample,
		Seed:     benchSeed,
	}
	for _, s := range benchStarts {
		if s = word.Normalize(s); s != "" {
			cfg.Starts = append(cfg.Starts, s)
		}
	}
	method, err := validateBenchConfig(cfg, solver.Length)
	if err != nil {
		return model.BenchConfig{}, 0, err
	}
	return cfg, method, nil
}

// validateBenchConfig checks cfg and returns its parsed ranking method.
func validateBenchConfig(cfg model.BenchConfig, length int) (scorer.Method, error) {
	method, err := scorer.ParseMethod(cfg.Method)
	if err != nil {
		return 0, fmt.Errorf("[bench].method: %w", err)
	}
	if cfg.Workers < 0 {
		return 0, fmt.Errorf("--workers must be >= 0")
	}
	if cfg.MaxTurns < 0 {
		return 0, fmt.Errorf("--max-turns must be >= 0")
	}
	if cfg.Sample < 0 {
		return 0, fmt.Errorf("--sample must be >= 0")
	}
	for _, s := range cfg.Starts {
		if err := word.Validate(s, length); err != nil {
			return 0, fmt.Errorf("--starts: %w", err)
		}
	}
	return method, nil
}

func runBenchCmd(cmd *cobra.Command, _ []string) error {
	solver, err := resolveSolverConfig(cmd)
	if err != nil {
		return err
	}
	cfg, method, err := resolveBenchConfig(cmd, solver)
	if err != nil {
		return err
	}
	if benchTop <= 0 {
		return fmt.Errorf("--top must be > 0")
	}
	dict, err := loadDictionary(solver)
	if err != nil {
		return err
	}
	starts := cfg.Starts
	if len(starts) == 0 {
		for _, r := range scorer.Top(scorer.Rank(dict.Words(), constraint.New(dict.Length()), method), benchTop) {
			starts = append(starts, r.Word)
		}
	}
	var solutions []string
	if cfg.Sample > 0 {
		solutions = picker.New(cfg.Seed).Sample(dict.Words(), cfg.Sample)
	}

	opts := []bench.Option{bench.WithLogger(logger)}
	if !benchNoProgress {
		opts = append(opts, bench.WithProgress(os.Stderr))
	}
	runner := bench.New(dict, bench.Config{
		Starts:     starts,
		Method:     method,
		Solutions:  solutions,
		MaxGuesses: solver.MaxGuesses,
		MaxTurns:   cfg.MaxTurns,
		Workers:    cfg.Workers,
	}, opts...)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	summaries, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	return stats.RenderBench(cmd.OutOrStdout(), summaries)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show game history statistics",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	flags := cmd.Flags()
	flags.StringVar(&statsMode, "mode", "", "only games of this mode: assist, simulate")
	flags.StringVar(&statsSince, "since", "", "only games ended on or after this date (YYYY-MM-DD)")
	flags.IntVar(&statsLast, "last", 0, "only the last N games (0: all)")
	flags.IntVar(&statsWindow, "window", defaultTrendWindow, "moving average window for the trend plot")
	flags.IntVar(&statsHardest, "hardest", defaultHardest, "number of hardest solutions to list")
	flags.BoolVar(&statsColor, "color", false, "force colored output")
	return cmd
}

// resolveStatsConfig filters by method only when --method is given explicitly.
func resolveStatsConfig(cmd *cobra.Command) (model.StatsConfig, error) {
	cfg := model.StatsConfig{
		Mode:        strings.ToLower(strings.TrimSpace(statsMode)),
		Last:        statsLast,
		TrendWindow: statsWindow,
		Hardest:     statsHardest,
	}
	if cmd.Flags().Changed("method") {
		m, err := scorer.ParseMethod(solverMethod)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("--method: %w", err)
		}
		cfg.Method = m.String()
	}
	if cfg.Mode != "" && cfg.Mode != model.ModeAssist && cfg.Mode != model.ModeSimulate {
		return model.StatsConfig{}, fmt.Errorf("--mode must be %q or %q", model.ModeAssist, model.ModeSimulate)
	}
	if statsSince != "" {
		since, err := time.ParseInLocation(sinceLayout, statsSince, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("--since must be YYYY-MM-DD")
		}
		since = since.UTC()
		cfg.Since = &since
	}
	if cfg.Last < 0 {
		return model.StatsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if cfg.TrendWindow <= 0 {
		return model.StatsConfig{}, fmt.Errorf("--window must be > 0")
	}
	if cfg.Hardest <= 0 {
		return model.StatsConfig{}, fmt.Errorf("--hardest must be > 0")
	}
	return cfg, nil
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveStatsConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	report, err := stats.BuildReport(ctx, st, cfg)
	if err != nil {
		return err
	}
	return report.Render(cmd.OutOrStdout(), cfg.TrendWindow, stats.PlotOptions{Color: statsColor})
}
