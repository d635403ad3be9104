// Package main provides the CLI entrypoint for wordler.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordler/internal/candidate"
	"github.com/verte-zerg/wordler/internal/config"
	"github.com/verte-zerg/wordler/internal/model"
	"github.com/verte-zerg/wordler/internal/scorer"
	"github.com/verte-zerg/wordler/internal/session"
	"github.com/verte-zerg/wordler/internal/store"
	"github.com/verte-zerg/wordler/internal/tui"
	"github.com/verte-zerg/wordler/internal/word"
	"github.com/verte-zerg/wordler/internal/wordlist"
)

const (
	defaultMethod      = "slot"
	defaultStart       = "flash"
	defaultSuggestions = 5
	defaultLogLevel    = "info"
)

var (
	logLevel string
	dbPath   string

	solverMethod      string
	solverStart       string
	solverMaxGuesses  int
	solverLength      int
	solverWordList    string
	solverStrict      bool
	solverSuggestions int

	assistPlain bool

	fileCfg config.FileConfig
	logger  = zerolog.Nop()
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "wordler",
		Short:             "Wordle solving assistant",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE:              runAssistCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&logLevel, "log-level", defaultLogLevel, "log level (trace, debug, info, warn, error)")
	flags.StringVar(&dbPath, "db", "", "SQLite history path (default: XDG data dir or $"+config.EnvDB+")")
	flags.StringVar(&solverMethod, "method", defaultMethod, "ranking method: cumulative, unique, slot, combined")
	flags.StringVar(&solverStart, "start", defaultStart, "first guess (empty: best ranked word)")
	flags.IntVar(&solverMaxGuesses, "max-guesses", session.DefaultMaxGuesses, "guess budget per game")
	flags.IntVar(&solverLength, "length", word.DefaultLength, "word length")
	flags.StringVar(&solverWordList, "wordlist", "", "word list file (default: $"+config.EnvWordList+" or embedded list)")
	flags.BoolVar(&solverStrict, "strict", false, "only accept guesses from the word list")
	flags.IntVar(&solverSuggestions, "suggestions", defaultSuggestions, "number of ranked suggestions to show")

	rootCmd.Flags().BoolVar(&assistPlain, "plain", false, "line-oriented prompt instead of the TUI")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSimulateCmd())
	rootCmd.AddCommand(newSuggestCmd())
	rootCmd.AddCommand(newEncodeCmd())
	rootCmd.AddCommand(newBenchCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

// setup loads .env and the config file, then builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	cfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	fileCfg = cfg

	if !cmd.Flags().Changed("log-level") {
		if v := os.Getenv(config.EnvLogLevel); v != "" {
			logLevel = v
		} else if fileCfg.Log.Level != nil {
			logLevel = *fileCfg.Log.Level
		}
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().Timestamp().Logger()
	return nil
}

func resolveSolverConfig(cmd *cobra.Command) (model.SolverConfig, error) {
	applyStringConfig(cmd, "method", &solverMethod, fileCfg.Solver.Method)
	applyStringConfig(cmd, "start", &solverStart, fileCfg.Solver.Start)
	applyIntConfig(cmd, "max-guesses", &solverMaxGuesses, fileCfg.Solver.MaxGuesses)
	applyIntConfig(cmd, "length", &solverLength, fileCfg.Solver.Length)
	applyStringConfig(cmd, "wordlist", &solverWordList, fileCfg.Solver.WordList)
	applyBoolConfig(cmd, "strict", &solverStrict, fileCfg.Solver.Strict)
	applyIntConfig(cmd, "suggestions", &solverSuggestions, fileCfg.Solver.Suggestions)
	if solverWordList == "" {
		solverWordList = config.DefaultWordListPath()
	}

	cfg := model.SolverConfig{
		Method:      solverMethod,
		Start:       word.Normalize(solverStart),
		MaxGuesses:  solverMaxGuesses,
		Length:      solverLength,
		WordList:    solverWordList,
		Strict:      solverStrict,
		Suggestions: solverSuggestions,
	}
	if err := validateSolverConfig(cfg); err != nil {
		return model.SolverConfig{}, err
	}
	return cfg, nil
}

func validateSolverConfig(cfg model.SolverConfig) error {
	if _, err := scorer.ParseMethod(cfg.Method); err != nil {
		return fmt.Errorf("--method: %w", err)
	}
	if cfg.Length <= 0 {
		return fmt.Errorf("--length must be > 0")
	}
	if cfg.MaxGuesses <= 0 {
		return fmt.Errorf("--max-guesses must be > 0")
	}
	if cfg.Suggestions < 0 {
		return fmt.Errorf("--suggestions must be >= 0")
	}
	if cfg.Start != "" {
		if err := word.Validate(cfg.Start, cfg.Length); err != nil {
			return fmt.Errorf("--start: %w", err)
		}
	}
	return nil
}

func loadDictionary(cfg model.SolverConfig) (*candidate.Dictionary, error) {
	words, err := wordlist.Load(cfg.WordList, cfg.Length)
	if err != nil {
		return nil, fmt.Errorf("failed to load word list: %w", err)
	}
	dict := candidate.NewDictionary(words, cfg.Length)
	source := cfg.WordList
	if source == "" {
		source = "embedded"
	}
	logger.Debug().Str("source", source).Int("words", dict.Len()).Msg("loaded dictionary")
	return dict, nil
}

func sessionFactory(dict *candidate.Dictionary, cfg model.SolverConfig) (tui.Factory, error) {
	method, err := scorer.ParseMethod(cfg.Method)
	if err != nil {
		return nil, err
	}
	scfg := session.Config{Method: method, MaxGuesses: cfg.MaxGuesses, Strict: cfg.Strict}
	return func() (*session.Session, error) {
		return session.New(dict, cfg.Start, scfg, session.WithLogger(logger))
	}, nil
}

func openStore() (*store.Store, error) {
	path := dbPath
	if path == "" {
		path = config.DefaultDBPath()
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logger.Error().Err(cerr).Msg("failed to close db")
	}
}

func runAssistCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveSolverConfig(cmd)
	if err != nil {
		return err
	}
	dict, err := loadDictionary(cfg)
	if err != nil {
		return err
	}
	factory, err := sessionFactory(dict, cfg)
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	opts := tui.Options{
		NewSession:  factory,
		Store:       st,
		Logger:      logger,
		Suggestions: cfg.Suggestions,
	}
	if assistPlain {
		return tui.RunPlain(cmd.InOrStdin(), cmd.OutOrStdout(), opts)
	}
	m, err := tui.NewModel(opts)
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyStringsConfig(cmd *cobra.Command, name string, target *[]string, value []string) {
	if len(value) == 0 {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = append([]string(nil), value...)
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# wordler configuration
# Uncomment a value to enable it. CLI flags override config values.

[solver]
# method = %q       # cumulative, unique, slot, combined
# start = %q             # First guess; empty picks the best ranked word
# max-guesses = %d            # Guess budget per game
# length = %d                 # Word length
# wordlist = ""              # Word list file; empty uses the embedded list
# strict = false             # Only accept guesses from the word list
# suggestions = %d            # Ranked suggestions shown per turn

[bench]
# method = %q
# starts = ["flash", "crane", "slate"]
# workers = 0                # 0 uses every CPU
# max-turns = 0              # 0 plays every game to the end
# sample = 0                 # Random solutions to play; 0 plays all

[log]
# level = %q
`,
		defaultMethod,
		defaultStart,
		session.DefaultMaxGuesses,
		word.DefaultLength,
		defaultSuggestions,
		defaultMethod,
		defaultLogLevel,
	)
}
