package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/younsl/pipeview/pkg/config"
	"github.com/younsl/pipeview/pkg/git"
	"github.com/younsl/pipeview/pkg/monitor"
	"github.com/younsl/pipeview/pkg/scanner"
	"github.com/younsl/pipeview/pkg/snapshot"
	"github.com/younsl/pipeview/pkg/tui"
	"golang.org/x/term"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pipeview",
	Short: "Terminal dashboard for the CI pipelines of the current branch",
	Long: `pipeview shows the latest and the running pipelines of the branch checked
out in the current git repository, refreshed every few seconds. GitLab
pipelines and GitHub Actions workflow runs are supported.`,
	Version:      fmt.Sprintf("%s (commit: %s, date: %s)", version, commit, date),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringP("config", "c", "", "config file path")
	rootCmd.Flags().StringP("remote", "r", "", "git remote to read the forge project from (default: origin)")
	rootCmd.Flags().Float64P("cooldown", "i", 0, "seconds between two refreshes (default: 5)")
	rootCmd.Flags().String("log-file", "", "write logs to this file")
	rootCmd.Flags().Bool("plain", false, "redraw plain frames instead of the interactive UI")
	rootCmd.Flags().Bool("once", false, "print a single frame and exit")
	rootCmd.Flags().Bool("json", false, "print a single snapshot as JSON and exit")
}

func run(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if remote, _ := cmd.Flags().GetString("remote"); remote != "" {
		cfg.Remote = remote
	}
	if cmd.Flags().Changed("cooldown") {
		cfg.Cooldown, _ = cmd.Flags().GetFloat64("cooldown")
	}
	if logFile, _ := cmd.Flags().GetString("log-file"); logFile != "" {
		cfg.Log.File = logFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	mon := monitor.NewMonitor(monitor.Options{
		Runner:   &git.ExecRunner{},
		Dir:      dir,
		Remote:   cfg.Remote,
		Scanner:  scanner.NewResolver(cfg),
		Cooldown: cfg.CooldownDuration(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting pipeview", "version", version, "remote", cfg.Remote, "cooldown", cfg.CooldownDuration())

	stdout := int(os.Stdout.Fd())
	width := func() int { return monitor.RenderWidth(stdout) }

	once, _ := cmd.Flags().GetBool("once")
	plain, _ := cmd.Flags().GetBool("plain")
	asJSON, _ := cmd.Flags().GetBool("json")
	switch {
	case asJSON:
		project, err := mon.Snapshot(ctx)
		if err != nil {
			return err
		}
		return snapshot.Encode(os.Stdout, project)
	case once:
		_, err := fmt.Fprint(os.Stdout, mon.Frame(ctx, width()))
		return err
	case plain:
		return mon.Run(ctx, os.Stdout, width)
	}

	if !isTerminal() && os.Getenv("FORCE_TTY") != "1" {
		fmt.Fprintf(os.Stderr, "Warning: Not running in a TTY. Key input may not work properly.\n")
		fmt.Fprintf(os.Stderr, "Use --plain or --once, or set FORCE_TTY=1 to override.\n")
	}

	tuiConfig := &tui.AppConfig{
		Version: version,
		Remote:  cfg.Remote,
	}
	if err := tui.RunBubbleApp(mon, tuiConfig); err != nil {
		return fmt.Errorf("failed to run application: %w", err)
	}
	return nil
}

// setupLogging sends slog output to the configured file. The terminal is
// owned by the dashboard, so without a file logs are discarded.
func setupLogging(cfg *config.Config) (func(), error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}

	if cfg.Log.File == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() {}, nil
	}

	file, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", cfg.Log.File, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: level})))
	return func() { file.Close() }, nil
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
