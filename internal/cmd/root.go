// Package cmd provides the CLI commands for seslog.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wethinkt/seslog/internal/config"
	"github.com/wethinkt/seslog/internal/source"
	"github.com/wethinkt/seslog/internal/tui"
	"github.com/wethinkt/seslog/internal/tuilog"
)

// global flags
var (
	logPath   string
	follow    bool
	wrapFlag  string
	themeFlag string
)

// rootCmd is the root command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "seslog [file]",
	Short: "Terminal viewer for structured session-log files",
	Long: `seslog is a terminal viewer for JSONL session logs: conversational
entries, possibly split across a main thread and agent sub-threads,
possibly spanning multiple sessions in one file.

Reads a file argument, or a pipe on stdin.

Examples:
  seslog session.jsonl              # view a log file
  seslog -f session.jsonl           # view and follow appended entries
  cat session.jsonl | seslog        # view a pipe
  seslog --theme light session.jsonl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runViewer,
	// Errors are printed once by Execute.
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "write debug logs to this file")
	rootCmd.Flags().BoolVarP(&follow, "follow", "f", false, "follow the file for appended entries")
	rootCmd.Flags().StringVar(&wrapFlag, "wrap", "", "line wrapping: wrap or nowrap (overrides config)")
	rootCmd.Flags().StringVar(&themeFlag, "theme", "", "color theme: dark or light (overrides config)")

	rootCmd.AddCommand(versionCmd)
}

func runViewer(cmd *cobra.Command, args []string) error {
	if err := tuilog.Init(logPath); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer tuilog.Log.Close()

	cfg, err := config.Load()
	if err != nil {
		tuilog.Log.Warn("config load failed, using defaults", "error", err)
		cfg = config.Default()
	}
	if wrapFlag != "" {
		if wrapFlag != "wrap" && wrapFlag != "nowrap" {
			return fmt.Errorf("invalid --wrap value %q (want wrap or nowrap)", wrapFlag)
		}
		cfg.Wrap = wrapFlag
	}
	if themeFlag != "" {
		cfg.Theme = themeFlag
	}

	if len(args) == 0 {
		return viewStdin(cfg)
	}
	return viewFile(args[0], cfg)
}

func viewFile(path string, cfg config.Config) error {
	src := source.NewFile(path, cfg.Follow.DebounceDuration())
	entries, err := src.Load()
	if err != nil {
		return err
	}

	opts := tui.Options{
		Title:   filepath.Base(path),
		Entries: entries,
		Follow:  follow,
		Config:  cfg,
	}
	if follow {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := src.Follow(ctx); err != nil {
			return err
		}
		defer src.Close()
		opts.Batches = src.Batches()
	}
	return tui.Run(opts)
}

func viewStdin(cfg config.Config) error {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("no input: pass a log file or pipe one on stdin")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := source.NewReader(os.Stdin)
	src.Start(ctx)

	return tui.Run(tui.Options{
		Title:   "stdin",
		Batches: src.Batches(),
		Config:  cfg,
	})
}
