// Command rcore is the CLI front end for the evaluator core: an
// interactive REPL plus script/eval/check modes, grounded on the
// teacher's cmd/viro package split (one small file per concern) but
// collapsed to this module's smaller mode set -- argparse/input/
// execution/mode helpers the teacher keeps in separate files live here
// in run.go and internal/config, since there are only four execution
// modes (script, eval, check, and REPL) instead of the teacher's richer
// sandboxed-I/O surface.
package main

import (
	"fmt"
	"os"

	"github.com/renc-lang/rcore/internal/config"
)

func main() {
	os.Exit(Run(os.Args[1:]))
}

// Run loads configuration, picks a mode, and executes it, returning a
// process exit code.
func Run(args []string) int {
	cfg := config.NewConfig()
	if err := cfg.LoadFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return ExitUsage
	}
	if err := cfg.LoadFromFlagsWithArgs(args); err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return ExitUsage
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return ExitUsage
	}

	mode, err := cfg.DetectMode()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	switch mode {
	case config.ModeREPL:
		return runREPL(cfg)
	case config.ModeScript, config.ModeEval, config.ModeCheck:
		return runExecution(cfg, mode)
	case config.ModeVersion:
		fmt.Println(getVersionString())
		return ExitSuccess
	case config.ModeHelp:
		fmt.Print(getHelpText())
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "unknown mode: %v\n", mode)
		return ExitUsage
	}
}
