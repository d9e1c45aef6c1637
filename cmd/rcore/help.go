package main

func getHelpText() string {
	return `rcore - a Ren-C-style evaluator core

USAGE:
    rcore [OPTIONS] [FILE [ARGS...]]
    rcore [OPTIONS] -- [ARGS...]
    rcore -c EXPRESSION
    rcore --check FILE
    rcore --version
    rcore --help

MODES:
    (default)           Start interactive REPL
    FILE [ARGS...]      Execute script file with arguments
    -- [ARGS...]        Start REPL with arguments bound to 'args
    -c EXPRESSION       Evaluate expression and print result
    --check FILE        Check syntax without executing

GLOBAL OPTIONS:
    --quiet                    Suppress non-error output
    --verbose                  Enable verbose output
    --help                     Show this help message
    --version                  Show version information

SCRIPT OPTIONS:
    --profile                  Show execution profile after script execution

EVAL OPTIONS:
    --stdin                    Read additional input from stdin
    --no-print                 Don't print result of evaluation

REPL OPTIONS:
    --no-history               Disable command history
    --history-file PATH        History file location
    --prompt STRING            Custom REPL prompt
    --no-welcome               Skip welcome message
    --trace                    Start REPL with tracing enabled
    --trace-file PATH          Write trace events to a rotating log file

ENVIRONMENT VARIABLES:
    RCORE_HISTORY_FILE         REPL history file location
    RCORE_TRACE_FILE           Trace log file location
    RCORE_SIGNAL_EVERY         Evaluator steps between cooperative signal checks

EXIT CODES:
    0     Success
    1     General error (script/math error)
    2     Syntax error (parse failure)
    3     Access error
    64    Usage error (invalid CLI arguments)
    70    Internal error (interpreter bug)

EXAMPLES:
    rcore
    rcore script.rc arg1 arg2
    rcore --check script.rc
    rcore -c "3 + 4"
    echo "x: 3" | rcore -c "x + 4" --stdin
`
}
