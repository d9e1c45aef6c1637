// Package config loads interpreter configuration from flags and
// environment variables, and decides which of the CLI's run modes
// (cmd/rcore) applies. Grounded on the teacher's internal/config/config.go
// (viro-lang-viro) almost unchanged in shape -- a flag.FlagSet plus
// RCORE_*-prefixed environment overrides (VIRO_* in the teacher) -- with
// the sandbox/TLS fields the teacher carried for its port! natives dropped
// (this module has no port! kind, see internal/value/kind.go's Non-goals
// note) and two fields added for spec.md's ambient stack:
// SignalEvery (internal/signals.Counter's tick interval) and TraceFile
// (internal/trace's rotating sink, SPEC_FULL.md §1.2).
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Quiet   bool
	Verbose bool

	ShowVersion bool
	ShowHelp    bool
	EvalExpr    string
	CheckOnly   bool
	ScriptFile  string
	Args        []string

	NoHistory   bool
	HistoryFile string
	Prompt      string
	NoWelcome   bool
	TraceOn     bool
	TraceFile   string

	NoPrint     bool
	ReadStdin   bool
	Profile     bool
	SignalEvery int
}

func NewConfig() *Config {
	return &Config{SignalEvery: 10000}
}

// LoadFromEnv applies RCORE_*-prefixed environment overrides, checked
// before flag parsing so a flag can still override the environment.
func (c *Config) LoadFromEnv() error {
	if history := os.Getenv("RCORE_HISTORY_FILE"); history != "" {
		c.HistoryFile = history
	}
	if traceFile := os.Getenv("RCORE_TRACE_FILE"); traceFile != "" {
		c.TraceFile = traceFile
	}
	if every := os.Getenv("RCORE_SIGNAL_EVERY"); every != "" {
		if n, err := strconv.Atoi(every); err == nil && n > 0 {
			c.SignalEvery = n
		}
	}
	return nil
}

func (c *Config) LoadFromFlags() error {
	return c.LoadFromFlagsWithArgs(os.Args[1:])
}

func (c *Config) LoadFromFlagsWithArgs(args []string) error {
	fs := flag.NewFlagSet("rcore", flag.ContinueOnError)

	quiet := fs.Bool("quiet", false, "Suppress non-error output")
	verbose := fs.Bool("verbose", false, "Enable verbose output")

	version := fs.Bool("version", false, "Show version information")
	help := fs.Bool("help", false, "Show help information")
	evalExpr := fs.String("c", "", "Evaluate expression and print result")
	check := fs.Bool("check", false, "Check syntax only (don't execute)")

	noHistory := fs.Bool("no-history", false, "Disable command history in REPL")
	historyFile := fs.String("history-file", "", "History file location")
	prompt := fs.String("prompt", "", "Custom REPL prompt")
	noWelcome := fs.Bool("no-welcome", false, "Skip welcome message in REPL")
	traceOn := fs.Bool("trace", false, "Start REPL with tracing enabled")
	traceFile := fs.String("trace-file", "", "Write trace events to a rotating log file instead of stderr")

	noPrint := fs.Bool("no-print", false, "Don't print result of evaluation")
	stdin := fs.Bool("stdin", false, "Read additional input from stdin")
	profileFlag := fs.Bool("profile", false, "Show execution profile after script execution")
	signalEvery := fs.Int("signal-every", 0, "Check for interrupts/cooperative cancellation every N evaluator steps (0 keeps the default)")

	parsed := splitCommandLineArgs(args)

	var flagArgs []string
	if parsed.ReplArgsIdx >= 0 {
		flagArgs = args[:parsed.ReplArgsIdx]
		c.Args = args[parsed.ReplArgsIdx+1:]
		c.ScriptFile = ""
	} else if parsed.ScriptIdx >= 0 {
		flagArgs = args[:parsed.ScriptIdx]
		parsed.ScriptArgs = args[parsed.ScriptIdx:]
	} else {
		flagArgs = args
		parsed.ScriptArgs = nil
	}

	if err := fs.Parse(flagArgs); err != nil {
		return err
	}

	c.Quiet = *quiet
	c.Verbose = *verbose

	c.ShowVersion = *version
	c.ShowHelp = *help
	c.EvalExpr = *evalExpr
	c.CheckOnly = *check

	c.NoHistory = *noHistory
	if *historyFile != "" {
		c.HistoryFile = *historyFile
	}
	if *prompt != "" {
		c.Prompt = *prompt
	}
	c.NoWelcome = *noWelcome
	c.TraceOn = *traceOn
	if *traceFile != "" {
		c.TraceFile = *traceFile
	}

	c.NoPrint = *noPrint
	c.ReadStdin = *stdin
	c.Profile = *profileFlag
	if *signalEvery > 0 {
		c.SignalEvery = *signalEvery
	}

	if parsed.ReplArgsIdx < 0 && len(parsed.ScriptArgs) > 0 {
		c.ScriptFile = parsed.ScriptArgs[0]
		c.Args = parsed.ScriptArgs[1:]
	}

	return nil
}

func (c *Config) Validate() error {
	if c.CheckOnly && c.ScriptFile == "" {
		return fmt.Errorf("--check flag requires a script file")
	}
	if c.ReadStdin && c.EvalExpr == "" {
		return fmt.Errorf("--stdin flag requires -c flag")
	}
	if c.NoPrint && c.EvalExpr == "" {
		return fmt.Errorf("--no-print flag requires -c flag")
	}
	if c.Profile && c.ScriptFile == "" {
		return fmt.Errorf("--profile flag requires a script file")
	}
	return nil
}

type Mode int

const (
	ModeREPL Mode = iota
	ModeScript
	ModeEval
	ModeCheck
	ModeVersion
	ModeHelp
)

func (m Mode) String() string {
	switch m {
	case ModeREPL:
		return "REPL"
	case ModeScript:
		return "Script"
	case ModeEval:
		return "Eval"
	case ModeCheck:
		return "Check"
	case ModeVersion:
		return "Version"
	case ModeHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// DetectMode picks exactly one run mode from the flags that were set,
// erroring if more than one mode-selecting flag was given at once.
func (c *Config) DetectMode() (Mode, error) {
	modes := []struct {
		condition bool
		mode      Mode
	}{
		{c.ShowVersion, ModeVersion},
		{c.ShowHelp, ModeHelp},
		{c.EvalExpr != "", ModeEval},
		{c.CheckOnly, ModeCheck},
		{!c.CheckOnly && c.ScriptFile != "", ModeScript},
	}

	var detected Mode
	count := 0
	for _, m := range modes {
		if m.condition {
			count++
			detected = m.mode
		}
	}

	if count > 1 {
		return ModeREPL, fmt.Errorf("multiple modes specified; use only one of: --version, --help, -c, or script file")
	}
	if count == 0 {
		return ModeREPL, nil
	}
	return detected, nil
}
