package main

import (
	"fmt"
	"os"

	"github.com/renc-lang/rcore/internal/config"
	"github.com/renc-lang/rcore/internal/repl"
)

func runREPL(cfg *config.Config) int {
	opts := &repl.Options{
		Prompt:      cfg.Prompt,
		NoWelcome:   cfg.NoWelcome,
		NoHistory:   cfg.NoHistory,
		HistoryFile: cfg.HistoryFile,
		TraceOn:     cfg.TraceOn,
		TraceFile:   cfg.TraceFile,
		SignalEvery: cfg.SignalEvery,
		Args:        cfg.Args,
	}

	r, err := repl.NewREPLWithOptions(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error initializing REPL: %v\n", err)
		return ExitError
	}

	if err := r.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running REPL: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}
