package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/kanadrill/internal/api"
	"github.com/verte-zerg/kanadrill/internal/config"
	"github.com/verte-zerg/kanadrill/internal/export"
	"github.com/verte-zerg/kanadrill/internal/kana"
	"github.com/verte-zerg/kanadrill/internal/model"
	"github.com/verte-zerg/kanadrill/internal/stats"
	"github.com/verte-zerg/kanadrill/internal/statsui"
	"github.com/verte-zerg/kanadrill/internal/tui"
)

const (
	defaultCurveWindow = 5
	defaultWeakTop     = 8
	defaultServeAddr   = ":8080"
)

var (
	statsPlain       bool
	statsTimeframe   string
	statsGame        string
	statsLast        int
	statsCurveWindow int
	statsTop         int

	charsSet    string
	charsScript string

	exportFormat string
	exportOutput string

	resetYes bool

	serveAddr    string
	serveOrigins []string
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the interactive view")
	cmd.Flags().StringVar(&statsTimeframe, "timeframe", string(model.TimeframeAll), "all, week or month")
	cmd.Flags().StringVar(&statsGame, "game", "", "only sessions of one game: match, quiz or typing")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().IntVar(&statsTop, "top", defaultWeakTop, "number of weakest characters to list")
	return cmd
}

func statsConfig() (model.StatsConfig, error) {
	cfg := model.StatsConfig{
		Timeframe:   model.Timeframe(statsTimeframe),
		Game:        model.Game(statsGame),
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
		Top:         statsTop,
	}
	switch cfg.Timeframe {
	case model.TimeframeAll, model.TimeframeWeek, model.TimeframeMonth:
	default:
		return cfg, fmt.Errorf("--timeframe must be all, week or month")
	}
	switch cfg.Game {
	case "", model.GameMatch, model.GameQuiz, model.GameTyping:
	default:
		return cfg, fmt.Errorf("--game must be match, quiz or typing")
	}
	if cfg.Last < 0 {
		return cfg, fmt.Errorf("--last must be >= 0")
	}
	if cfg.CurveWindow < 1 {
		return cfg, fmt.Errorf("--curve-window must be >= 1")
	}
	if cfg.Top < 0 {
		return cfg, fmt.Errorf("--top must be >= 0")
	}
	return cfg, nil
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := statsConfig()
	if err != nil {
		return err
	}
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}

	if statsPlain {
		if err := setupLogging(cmd, fileCfg, os.Stderr); err != nil {
			return err
		}
	} else {
		closeLog, err := setupFileLogging(cmd, fileCfg)
		if err != nil {
			return err
		}
		defer closeLog()
	}

	kv, results, err := openResults(cmd.Context(), cmd, fileCfg)
	if err != nil {
		return err
	}
	defer closeStore(kv)

	if statsPlain {
		report, err := stats.BuildReport(cmd.Context(), results, cfg, time.Now())
		if err != nil {
			return fmt.Errorf("failed to load results: %w", err)
		}
		out := cmd.OutOrStdout()
		return stats.RenderReport(out, report, stats.UseColor(out))
	}

	program := tea.NewProgram(statsui.NewModel(results, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newCharsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chars",
		Short: "Print the kana reference chart",
		Args:  cobra.NoArgs,
		RunE:  runCharsCmd,
	}
	cmd.Flags().StringVar(&charsSet, "set", string(model.SetAll), "basic, dakuon or all")
	cmd.Flags().StringVar(&charsScript, "script", string(model.ModeHiragana), "hiragana or katakana")
	return cmd
}

func runCharsCmd(cmd *cobra.Command, _ []string) error {
	set := model.CharacterSet(charsSet)
	switch set {
	case model.SetBasic, model.SetDakuon, model.SetAll:
	default:
		return fmt.Errorf("--set must be basic, dakuon or all")
	}
	var katakana bool
	switch model.Mode(charsScript) {
	case model.ModeHiragana:
	case model.ModeKatakana:
		katakana = true
	default:
		return fmt.Errorf("--script must be hiragana or katakana")
	}
	return tui.RenderGuide(cmd.OutOrStdout(), kana.ForSet(set), katakana)
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored results",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportFormat, "format", string(export.FormatJSON), "json or yaml")
	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to a file instead of stdout")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cmd, fileCfg, os.Stderr); err != nil {
		return err
	}
	kv, results, err := openResults(cmd.Context(), cmd, fileCfg)
	if err != nil {
		return err
	}
	defer closeStore(kv)

	records, err := results.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}
	doc := export.Document{
		ExportedAt: time.Now().UTC(),
		Overall:    stats.Overall(records),
		Results:    records,
	}

	if exportOutput == "" {
		return export.Write(cmd.OutOrStdout(), format, doc)
	}
	if err := os.MkdirAll(filepath.Dir(exportOutput), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(exportOutput)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", exportOutput, err)
	}
	if err := export.Write(f, format, doc); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOutput, err)
	}
	return nil
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all stored results",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
	cmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cmd, fileCfg, os.Stderr); err != nil {
		return err
	}
	if !resetYes {
		ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Delete all stored results?")
		if err != nil {
			return err
		}
		if !ok {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return err
		}
	}
	kv, results, err := openResults(cmd.Context(), cmd, fileCfg)
	if err != nil {
		return err
	}
	defer closeStore(kv)
	if err := results.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear results: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), "All results deleted.")
	return err
}

// confirm asks a yes/no question. Anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	if _, err := fmt.Fprintf(out, "%s [y/N] ", question); err != nil {
		return false, err
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveAddr, "addr", defaultServeAddr, "listen address")
	cmd.Flags().StringSliceVar(&serveOrigins, "allowed-origin", nil, "CORS origin allowed to call the API (repeatable)")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cmd, fileCfg, os.Stderr); err != nil {
		return err
	}
	applyStringConfig(cmd, "addr", &serveAddr, fileCfg.Server.Addr)
	if !cmd.Flags().Changed("allowed-origin") && len(fileCfg.Server.AllowedOrigins) > 0 {
		serveOrigins = fileCfg.Server.AllowedOrigins
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, results, err := openResults(ctx, cmd, fileCfg)
	if err != nil {
		return err
	}
	defer closeStore(kv)

	server := api.NewServer(api.Config{
		Addr:           serveAddr,
		AllowedOrigins: serveOrigins,
	}, results, newGenerator())
	return server.Run(ctx)
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
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	path = config.ExpandHome(path)
	if err := writeConfigTemplate(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeConfigTemplate creates the config file unless it already exists.
func writeConfigTemplate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.Template), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
