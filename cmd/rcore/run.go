package main

import (
	"fmt"
	"io"
	"os"

	"github.com/renc-lang/rcore/internal/bind"
	"github.com/renc-lang/rcore/internal/bootstrap"
	"github.com/renc-lang/rcore/internal/config"
	"github.com/renc-lang/rcore/internal/eval"
	"github.com/renc-lang/rcore/internal/native"
	"github.com/renc-lang/rcore/internal/parse"
	"github.com/renc-lang/rcore/internal/profile"
	"github.com/renc-lang/rcore/internal/signals"
	"github.com/renc-lang/rcore/internal/trace"
	"github.com/renc-lang/rcore/internal/value"
)

func runExecution(cfg *config.Config, mode config.Mode) int {
	if err := trace.Init(cfg.TraceFile, 50); err != nil {
		fmt.Fprintf(os.Stderr, "error initializing trace: %v\n", err)
		return ExitInternal
	}

	content, err := loadInput(cfg, mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading input: %v\n", err)
		return ExitError
	}

	root := bind.NewContext(nil)
	values, err := parse.Parse(content, root)
	if err != nil {
		printError(err, "Parse")
		return ExitSyntax
	}

	if mode == config.ModeCheck {
		if cfg.Verbose {
			fmt.Printf("syntax valid: parsed %d expressions\n", len(values))
		}
		return ExitSuccess
	}

	native.Register(root)
	if err := bootstrap.Load(eval.New(nil), root); err != nil {
		printError(err, "Bootstrap")
		return ExitInternal
	}

	every := cfg.SignalEvery
	counter := signals.NewCounter(every, nil)
	ev := eval.New(counter)

	var prof *profile.Profile
	if cfg.Profile {
		prof = profile.New()
		prof.Start()
	}

	result, err := ev.EvalToEnd(values, root)

	if prof != nil {
		prof.Stop()
		prof.RecordSteps(counter.Total())
		if !cfg.Quiet {
			fmt.Fprintln(os.Stderr, prof.Report())
		}
	}

	if err != nil {
		printError(err, "Runtime")
		return handleError(err)
	}

	if mode == config.ModeEval && !cfg.NoPrint && !cfg.Quiet && !value.IsVoid(result) {
		fmt.Println(value.Mold(result))
	}

	return ExitSuccess
}

func loadInput(cfg *config.Config, mode config.Mode) (string, error) {
	switch mode {
	case config.ModeEval:
		expr := cfg.EvalExpr
		if cfg.ReadStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return "", fmt.Errorf("reading stdin: %w", err)
			}
			expr = string(data) + "\n" + expr
		}
		return expr, nil
	case config.ModeScript, config.ModeCheck:
		data, err := os.ReadFile(cfg.ScriptFile)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("no input for mode %v", mode)
	}
}
