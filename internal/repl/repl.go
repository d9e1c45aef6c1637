// Package repl implements the interactive Read-Eval-Print Loop.
//
// It uses github.com/chzyer/readline for line editing and persistent
// command history, grounded on the teacher's internal/repl/repl.go
// (viro-lang-viro) -- the Options/REPL shape, multi-line continuation
// detection, and history persistence are kept nearly unchanged; the
// debug-command palette is left out (internal/debug's mode only selects
// the prompt string), and evaluation goes through
// internal/parse.Parse and internal/eval.Evaluator.EvalToEnd directly
// instead of a core.Value/DoBlock vocabulary this module doesn't have.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/renc-lang/rcore/internal/bind"
	"github.com/renc-lang/rcore/internal/debug"
	"github.com/renc-lang/rcore/internal/eval"
	"github.com/renc-lang/rcore/internal/native"
	"github.com/renc-lang/rcore/internal/parse"
	"github.com/renc-lang/rcore/internal/signals"
	"github.com/renc-lang/rcore/internal/trace"
	"github.com/renc-lang/rcore/internal/value"
	"github.com/renc-lang/rcore/internal/verror"
)

const (
	primaryPrompt      = ">> "
	debugPrompt        = "[debug] >> "
	continuationPrompt = "... "

	historyEnvVar   = "RCORE_HISTORY_FILE"
	historyFileName = ".rcore_history"
)

// Options configures a new REPL session.
type Options struct {
	Prompt      string
	NoWelcome   bool
	NoHistory   bool
	HistoryFile string
	TraceOn     bool
	TraceFile   string
	SignalEvery int
	Args        []string
}

// REPL drives one interactive session: readline input, parsing, and
// evaluation against a single long-lived root context.
type REPL struct {
	evaluator *eval.Evaluator
	root      *bind.Context
	rl        *readline.Instance
	out       io.Writer

	history       []string
	historyCursor int

	pendingLines   []string
	awaitingCont   bool
	shouldContinue bool

	historyPath  string
	customPrompt string
	noWelcome    bool
	noHistory    bool
}

// NewREPL builds a REPL with default options, suitable for cmd/rcore.
func NewREPL(args []string) (*REPL, error) {
	return NewREPLWithOptions(&Options{Args: args})
}

func NewREPLWithOptions(opts *Options) (*REPL, error) {
	if opts == nil {
		opts = &Options{}
	}

	if err := trace.Init(opts.TraceFile, 50); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to initialize trace session: %v\n", err)
	}
	if opts.TraceOn && trace.Global != nil {
		trace.Global.Enable(trace.Filters{StepLevel: 1})
	}
	debug.Init()

	historyPath := opts.HistoryFile
	if historyPath == "" && !opts.NoHistory {
		historyPath = resolveHistoryPath(true)
	}

	prompt := opts.Prompt
	if prompt == "" {
		prompt = primaryPrompt
	}

	rlConfig := &readline.Config{Prompt: prompt}
	if !opts.NoHistory && historyPath != "" {
		rlConfig.HistoryFile = historyPath
	}

	rl, err := readline.NewEx(rlConfig)
	if err != nil {
		return nil, err
	}

	every := opts.SignalEvery
	if every <= 0 {
		every = 10000
	}
	ev := eval.New(signals.NewCounter(every, nil))
	root := bind.NewContext(nil)
	native.Register(root)
	initializeSystemWords(root, opts.Args)

	repl := &REPL{
		evaluator:      ev,
		root:           root,
		rl:             rl,
		out:            os.Stdout,
		history:        []string{},
		shouldContinue: true,
		historyPath:    historyPath,
		customPrompt:   prompt,
		noWelcome:      opts.NoWelcome,
		noHistory:      opts.NoHistory,
	}

	if !opts.NoHistory {
		repl.loadPersistentHistory()
	}

	return repl, nil
}

// NewREPLForTest wires a REPL around an in-memory writer, with history and
// readline disabled, for package tests.
func NewREPLForTest(out io.Writer) *REPL {
	if out == nil {
		out = io.Discard
	}
	debug.Init()

	ev := eval.New(signals.NewCounter(10000, nil))
	root := bind.NewContext(nil)
	native.Register(root)
	initializeSystemWords(root, nil)

	return &REPL{
		evaluator:      ev,
		root:           root,
		rl:             nil,
		out:            out,
		history:        []string{},
		shouldContinue: true,
	}
}

// WelcomeMessage returns the banner shown when an interactive REPL starts.
func WelcomeMessage() string {
	return "rcore 0.1.0\nType 'exit' or 'quit' to leave\n\n"
}

// Run starts the REPL loop; it blocks until the user exits or input ends.
func (r *REPL) Run() error {
	if r.rl == nil {
		return fmt.Errorf("readline instance not configured")
	}
	defer r.rl.Close()

	r.printWelcome()
	r.setPrompt(r.getCurrentPrompt())

	for {
		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				r.handleInterrupt(true)
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(r.out, "")
				r.handleExit(true)
				return nil
			}
			return err
		}

		r.processLine(line, true)

		if !r.shouldContinue {
			return nil
		}
	}
}

// EvalLineForTest evaluates a single line and prints its result, bypassing
// readline -- used by tests (cmd/rcore's `-c` mode goes through
// runExecution instead).
func (r *REPL) EvalLineForTest(input string) {
	if r == nil {
		return
	}
	r.processLine(strings.TrimRight(input, "\r\n"), false)
}

// AwaitingContinuation reports whether the REPL needs another line to
// complete the expression currently being typed.
func (r *REPL) AwaitingContinuation() bool {
	if r == nil {
		return false
	}
	return r.awaitingCont
}

func (r *REPL) processLine(input string, interactive bool) {
	if r == nil || !r.shouldContinue {
		return
	}

	clean := strings.TrimRight(input, "\r\n")
	trimmed := strings.TrimSpace(clean)

	if !r.awaitingCont && isExitCommand(trimmed) {
		r.pendingLines = nil
		r.awaitingCont = false
		r.recordHistory(trimmed)
		r.handleExit(interactive)
		return
	}

	if trimmed == "" && !r.awaitingCont {
		return
	}

	if trimmed != "" || r.awaitingCont {
		r.pendingLines = append(r.pendingLines, clean)
	}

	joined := strings.Join(r.pendingLines, "\n")
	values, err := parse.Parse(joined, r.root)
	if err != nil {
		if vErr, ok := err.(*verror.Error); ok && shouldAwaitContinuation(vErr) {
			r.awaitingCont = true
			if interactive {
				r.setPrompt(continuationPrompt)
			}
			return
		}

		r.awaitingCont = false
		if interactive {
			r.setPrompt(r.getCurrentPrompt())
		}
		r.pendingLines = nil
		r.recordHistory(joined)
		r.printError(err)
		return
	}

	r.awaitingCont = false
	if interactive {
		r.setPrompt(r.getCurrentPrompt())
	}
	r.pendingLines = nil
	r.recordHistory(joined)
	r.evalParsedValues(values)
}

func (r *REPL) printWelcome() {
	if !r.noWelcome {
		fmt.Fprint(r.out, WelcomeMessage())
	}
}

func (r *REPL) printError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(r.out, err.Error())
}

// HistoryEntries returns a copy of the recorded command history.
func (r *REPL) HistoryEntries() []string {
	if r == nil {
		return nil
	}
	entries := make([]string, len(r.history))
	copy(entries, r.history)
	return entries
}

func (r *REPL) recordHistory(entry string) {
	if r == nil || r.noHistory {
		return
	}
	trimmed := strings.TrimSpace(entry)
	if trimmed == "" {
		r.historyCursor = len(r.history)
		return
	}
	r.history = append(r.history, trimmed)
	r.historyCursor = len(r.history)
	r.persistHistoryLine(trimmed)
}

func (r *REPL) setPrompt(prompt string) {
	if r == nil || r.rl == nil {
		return
	}
	r.rl.SetPrompt(prompt)
}

func (r *REPL) getCurrentPrompt() string {
	if r == nil {
		return primaryPrompt
	}
	if debug.Global != nil && debug.Global.Mode() != debug.ModeOff {
		return debugPrompt
	}
	if r.customPrompt != "" {
		return r.customPrompt
	}
	return primaryPrompt
}

func (r *REPL) evalParsedValues(values []value.Cell) {
	result, err := r.evaluator.EvalToEnd(values, r.root)
	if err != nil {
		r.printError(err)
		return
	}

	if !value.IsVoid(result) {
		fmt.Fprintln(r.out, value.Mold(result))
	}
}

func (r *REPL) handleExit(interactive bool) {
	if r == nil {
		return
	}
	r.pendingLines = nil
	r.awaitingCont = false
	r.shouldContinue = false
	if interactive {
		r.setPrompt(r.getCurrentPrompt())
	}
	fmt.Fprintln(r.out, "Goodbye!")
}

func (r *REPL) handleInterrupt(interactive bool) {
	if r == nil {
		return
	}
	r.pendingLines = nil
	r.awaitingCont = false
	if interactive {
		r.setPrompt(r.getCurrentPrompt())
	}
	r.shouldContinue = true
	fmt.Fprintln(r.out, "^C")
}

// ShouldContinue reports whether the REPL should keep accepting input.
func (r *REPL) ShouldContinue() bool {
	if r == nil {
		return false
	}
	return r.shouldContinue
}

func (r *REPL) loadPersistentHistory() {
	if r == nil || r.historyPath == "" {
		r.historyCursor = len(r.history)
		return
	}
	entries, err := readHistoryFile(r.historyPath)
	if err != nil {
		return
	}
	r.history = append([]string{}, entries...)
	r.historyCursor = len(r.history)
}

func (r *REPL) persistHistoryLine(entry string) {
	if r == nil {
		return
	}
	if r.rl != nil {
		_ = r.rl.SaveHistory(entry)
		return
	}
	if r.historyPath == "" {
		return
	}
	if err := ensureHistoryDirectory(r.historyPath); err != nil {
		return
	}
	file, err := os.OpenFile(r.historyPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	defer file.Close()
	_, _ = file.WriteString(entry + "\n")
}

func resolveHistoryPath(allowDefault bool) string {
	if override := strings.TrimSpace(os.Getenv(historyEnvVar)); override != "" {
		return filepath.Clean(override)
	}
	if !allowDefault {
		return ""
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFileName)
}

func readHistoryFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	entries := make([]string, 0)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func ensureHistoryDirectory(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func shouldAwaitContinuation(err *verror.Error) bool {
	if err == nil {
		return false
	}
	switch err.ID {
	case verror.ErrIDUnexpectedEOF, verror.ErrIDUnclosedBlock, verror.ErrIDUnclosedParen, verror.ErrIDUnterminatedString:
		return true
	default:
		return false
	}
}

func isExitCommand(input string) bool {
	if input == "" {
		return false
	}
	return strings.EqualFold(input, "quit") || strings.EqualFold(input, "exit")
}

// initializeSystemWords binds the script arguments passed on the command
// line as a plain word, since path evaluation in this evaluator only
// traverses series by integer index -- it has no object-field lookup to
// back a `system/args`-style path (see DESIGN.md's path-scope decision).
func initializeSystemWords(root *bind.Context, args []string) {
	argVals := make([]value.Cell, len(args))
	for i, a := range args {
		argVals[i] = value.Str(a)
	}
	root.Bind("args", value.Block(argVals))
}
