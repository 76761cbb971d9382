package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/kingrea/weekprogress/internal/config"
	"github.com/kingrea/weekprogress/internal/logbook"
)

const defaultJournalLines = 20

func handleJournalCommand(args []string) bool {
	if len(args) < 1 || args[0] != "journal" {
		return false
	}
	if len(args) > 2 {
		fmt.Fprintln(os.Stderr, "Usage: weekprogress journal [N]")
		os.Exit(2)
	}
	n := defaultJournalLines
	if len(args) == 2 {
		parsed, err := strconv.Atoi(args[1])
		if err != nil || parsed <= 0 {
			fmt.Fprintf(os.Stderr, "Invalid line count %q\n", args[1])
			os.Exit(2)
		}
		n = parsed
	}
	home, err := config.ResolveHome()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving state directory: %v\n", err)
		os.Exit(1)
	}
	cfg := &config.Config{HomeDir: home}
	lb, err := logbook.New(cfg.JournalPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening journal: %v\n", err)
		os.Exit(1)
	}
	printJournal(os.Stdout, lb, n)
	return true
}

func printJournal(w io.Writer, lb *logbook.Logbook, n int) {
	lines, total := lb.Tail(n)
	if total == 0 {
		fmt.Fprintf(w, "No journal entries in %s\n", lb.Path())
		return
	}
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "-- %d of %d entries · %s\n", len(lines), total, lb.Path())
}
