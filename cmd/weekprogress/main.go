// cmd/weekprogress/main.go
//
// This is the entry point for the weekprogress widget.
//
// Flow:
// 1. Load .env (if present) so WEEKPROGRESS_HOME can be set per directory
// 2. Handle the `journal` subcommand, which never starts the TUI
// 3. Prepare the state directory and config, open the journal
// 4. Launch the TUI

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/kingrea/weekprogress/internal/config"
	"github.com/kingrea/weekprogress/internal/logbook"
	"github.com/kingrea/weekprogress/internal/tui"
)

func main() {
	// A missing .env is the common case; the environment is used as-is.
	_ = godotenv.Load()

	if handleJournalCommand(os.Args[1:]) {
		return
	}

	opts, err := parseLaunchArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	home, err := config.ResolveHome()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving state directory: %v\n", err)
		os.Exit(1)
	}
	if err := config.InitDir(home); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing %s: %v\n", home, err)
		os.Exit(1)
	}
	cfg, err := config.NewConfig(home)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	appOpts := []tui.AppOption{}
	if !opts.reference.IsZero() {
		appOpts = append(appOpts, tui.WithReferenceDate(opts.reference))
	}
	// The widget still runs when the journal can't be opened.
	if lb, err := logbook.New(cfg.JournalPath()); err == nil {
		appOpts = append(appOpts, tui.WithLogbook(lb))
	} else {
		fmt.Fprintf(os.Stderr, "Warning: journal disabled: %v\n", err)
	}

	// Run blocks until the user quits
	p := tea.NewProgram(tui.NewApp(cfg, appOpts...))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
