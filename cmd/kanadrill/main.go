// Package main provides the CLI entrypoint for kanadrill.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/kanadrill/internal/config"
	"github.com/verte-zerg/kanadrill/internal/generator"
	"github.com/verte-zerg/kanadrill/internal/logging"
	"github.com/verte-zerg/kanadrill/internal/model"
	"github.com/verte-zerg/kanadrill/internal/record"
	"github.com/verte-zerg/kanadrill/internal/session"
	"github.com/verte-zerg/kanadrill/internal/store"
	"github.com/verte-zerg/kanadrill/internal/tui"
)

const (
	defaultSet             = string(model.SetBasic)
	defaultOrder           = string(model.OrderShuffled)
	defaultBasicCount      = 10
	defaultDakuonCount     = 5
	defaultFeedbackDelayMs = 1500
	defaultStoreBackend    = string(store.BackendSQLite)
	defaultRedisAddr       = "localhost:6379"
	defaultRedisPrefix     = "kanadrill:"
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
)

var (
	configPath string

	logLevel  string
	logFormat string

	storeBackend   string
	storePath      string
	redisAddr      string
	redisPassword  string
	redisDB        int
	redisKeyPrefix string

	practiceMode            string
	practiceSet             string
	practiceBasicCount      int
	practiceDakuonCount     int
	practiceOrder           string
	practiceOptions         int
	practiceFeedbackDelayMs int
	practiceSeed            int64
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "kanadrill",
		Short:         "Terminal kana trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPractice(model.GameMatch),
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/kanadrill/config.toml)")
	pf.StringVar(&logLevel, "log-level", defaultLogLevel, "log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", defaultLogFormat, "log format: text or json")
	pf.StringVar(&storeBackend, "store", defaultStoreBackend, "result store: sqlite, redis or memory")
	pf.StringVar(&storePath, "db", "", "SQLite database path")
	pf.StringVar(&redisAddr, "redis-addr", defaultRedisAddr, "Redis address")
	pf.StringVar(&redisPassword, "redis-password", "", "Redis password")
	pf.IntVar(&redisDB, "redis-db", 0, "Redis database number")
	pf.StringVar(&redisKeyPrefix, "redis-key-prefix", defaultRedisPrefix, "prefix for Redis keys")

	addPracticeFlags(rootCmd)

	rootCmd.AddCommand(newPracticeCmd("match", "Match romaji or hiragana to kana", model.GameMatch))
	rootCmd.AddCommand(newPracticeCmd("quiz", "Multiple choice romaji quiz", model.GameQuiz))
	rootCmd.AddCommand(newPracticeCmd("type", "Type the romaji for each kana", model.GameTyping))
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newCharsCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func newPracticeCmd(use, short string, game model.Game) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE:  runPractice(game),
	}
	addPracticeFlags(cmd)
	return cmd
}

func addPracticeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&practiceMode, "mode", "", "display mode (match: romaji-hiragana, romaji-katakana, hiragana-katakana; quiz/type: hiragana, katakana, both)")
	cmd.Flags().StringVar(&practiceSet, "set", defaultSet, "character set: basic, dakuon, all or custom")
	cmd.Flags().IntVar(&practiceBasicCount, "basic-count", defaultBasicCount, "basic characters drawn for --set custom")
	cmd.Flags().IntVar(&practiceDakuonCount, "dakuon-count", defaultDakuonCount, "dakuon characters drawn for --set custom")
	cmd.Flags().StringVar(&practiceOrder, "order", defaultOrder, "match target order: shuffled or sequential")
	cmd.Flags().IntVar(&practiceOptions, "options", session.DefaultOptions, "quiz choices per question")
	cmd.Flags().IntVar(&practiceFeedbackDelayMs, "feedback-delay-ms", defaultFeedbackDelayMs, "how long answer feedback stays on screen")
	cmd.Flags().Int64Var(&practiceSeed, "seed", 0, "random seed (0 picks one)")
}

func runPractice(game model.Game) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		fileCfg, err := loadFileConfig()
		if err != nil {
			return err
		}
		cfg, err := practiceConfig(cmd, game, fileCfg)
		if err != nil {
			return err
		}

		closeLog, err := setupFileLogging(cmd, fileCfg)
		if err != nil {
			return err
		}
		defer closeLog()

		kv, results, err := openResults(cmd.Context(), cmd, fileCfg)
		if err != nil {
			return err
		}
		defer closeStore(kv)

		env := tui.Env{
			Config:   cfg,
			Gen:      newGenerator(),
			Recorder: record.New(results),
			History:  results,
		}
		m, err := newGameModel(env)
		if err != nil {
			return err
		}
		slog.Info("starting practice", "game", cfg.Game, "mode", cfg.Mode, "set", cfg.Selection.Set)
		program := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
		return nil
	}
}

func newGameModel(env tui.Env) (tea.Model, error) {
	switch env.Config.Game {
	case model.GameQuiz:
		return tui.NewQuizModel(env)
	case model.GameTyping:
		return tui.NewTypingModel(env)
	default:
		return tui.NewMatchModel(env)
	}
}

func newGenerator() *generator.Generator {
	if practiceSeed != 0 {
		return generator.NewSeeded(practiceSeed)
	}
	return generator.New()
}

func practiceConfig(cmd *cobra.Command, game model.Game, fileCfg config.FileConfig) (model.Config, error) {
	pc := fileCfg.Practice
	if pc.Mode != nil && validateMode(game, model.Mode(*pc.Mode)) == nil {
		applyStringConfig(cmd, "mode", &practiceMode, pc.Mode)
	}
	applyStringConfig(cmd, "set", &practiceSet, pc.Set)
	applyIntConfig(cmd, "basic-count", &practiceBasicCount, pc.BasicCount)
	applyIntConfig(cmd, "dakuon-count", &practiceDakuonCount, pc.DakuonCount)
	applyStringConfig(cmd, "order", &practiceOrder, pc.Order)
	applyIntConfig(cmd, "options", &practiceOptions, pc.Options)
	applyIntConfig(cmd, "feedback-delay-ms", &practiceFeedbackDelayMs, pc.FeedbackDelayMs)

	mode := model.Mode(practiceMode)
	if mode == "" {
		mode = defaultMode(game)
	}
	cfg := model.Config{
		Game: game,
		Mode: mode,
		Selection: model.Selection{
			Set:         model.CharacterSet(practiceSet),
			BasicCount:  practiceBasicCount,
			DakuonCount: practiceDakuonCount,
		},
		Order:         model.Order(practiceOrder),
		Options:       practiceOptions,
		FeedbackDelay: time.Duration(practiceFeedbackDelayMs) * time.Millisecond,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func defaultMode(game model.Game) model.Mode {
	if game == model.GameMatch {
		return model.ModeRomajiHiragana
	}
	return model.ModeHiragana
}

func validateMode(game model.Game, mode model.Mode) error {
	switch game {
	case model.GameMatch:
		switch mode {
		case model.ModeRomajiHiragana, model.ModeRomajiKatakana, model.ModeHiraganaKatakana:
			return nil
		}
		return fmt.Errorf("--mode %q is not a match mode: use romaji-hiragana, romaji-katakana or hiragana-katakana", mode)
	default:
		switch mode {
		case model.ModeHiragana, model.ModeKatakana, model.ModeBoth:
			return nil
		}
		return fmt.Errorf("--mode %q is not valid for %s: use hiragana, katakana or both", mode, game)
	}
}

func validateConfig(cfg model.Config) error {
	if err := validateMode(cfg.Game, cfg.Mode); err != nil {
		return err
	}
	if err := generator.ValidateSelection(cfg.Selection); err != nil {
		if errors.Is(err, generator.ErrBelowMinimum) {
			return fmt.Errorf("--basic-count + --dakuon-count: %w", err)
		}
		return fmt.Errorf("--set: %w", err)
	}
	switch cfg.Order {
	case model.OrderShuffled, model.OrderSequential:
	default:
		return fmt.Errorf("--order must be shuffled or sequential")
	}
	if cfg.Options < 2 {
		return fmt.Errorf("--options must be >= 2")
	}
	if cfg.FeedbackDelay < 0 {
		return fmt.Errorf("--feedback-delay-ms must be >= 0")
	}
	return nil
}

func loadFileConfig() (config.FileConfig, error) {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	fileCfg, err := config.LoadConfig(config.ExpandHome(path))
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	return fileCfg, nil
}

func setupLogging(cmd *cobra.Command, fileCfg config.FileConfig, w io.Writer) error {
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-format", &logFormat, fileCfg.Log.Format)
	if _, err := logging.Setup(logLevel, logFormat, w); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	return nil
}

// setupFileLogging sends logs to a file while a TUI owns the terminal.
func setupFileLogging(cmd *cobra.Command, fileCfg config.FileConfig) (func(), error) {
	f, err := logging.OpenFile(config.DefaultLogPath())
	if err != nil {
		return nil, err
	}
	if err := setupLogging(cmd, fileCfg, f); err != nil {
		_ = f.Close()
		return nil, err
	}
	return func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}, nil
}

func storeOptions(cmd *cobra.Command, fileCfg config.FileConfig) store.Options {
	sc := fileCfg.Store
	applyStringConfig(cmd, "store", &storeBackend, sc.Backend)
	applyStringConfig(cmd, "db", &storePath, sc.Path)
	applyStringConfig(cmd, "redis-addr", &redisAddr, sc.RedisAddr)
	applyStringConfig(cmd, "redis-password", &redisPassword, sc.RedisPassword)
	applyIntConfig(cmd, "redis-db", &redisDB, sc.RedisDB)
	applyStringConfig(cmd, "redis-key-prefix", &redisKeyPrefix, sc.RedisKeyPrefix)

	path := storePath
	if path == "" {
		path = config.DefaultDBPath()
	}
	return store.Options{
		Backend:       store.Backend(storeBackend),
		Path:          config.ExpandHome(path),
		RedisAddr:     redisAddr,
		RedisPassword: redisPassword,
		RedisDB:       redisDB,
		RedisPrefix:   redisKeyPrefix,
	}
}

func openResults(ctx context.Context, cmd *cobra.Command, fileCfg config.FileConfig) (store.KV, *store.ResultLog, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	opts := storeOptions(cmd, fileCfg)
	kv, err := store.Open(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s store: %w", opts.Backend, err)
	}
	return kv, store.NewResultLog(kv), nil
}

func closeStore(kv store.KV) {
	if cerr := kv.Close(); cerr != nil {
		logErrf("failed to close store: %v\n", cerr)
	}
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

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
