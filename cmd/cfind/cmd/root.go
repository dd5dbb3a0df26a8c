// Package cmd provides the Cobra command for cfind.
//
// find-style primaries (-name, -o, !) are not POSIX flags, so cobra's flag
// parsing is disabled and every argument reaches the expression parser.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/otuschhoff/cfind/internal/config"
	"github.com/otuschhoff/cfind/internal/exitcodes"
	"github.com/otuschhoff/cfind/internal/logging"
	"github.com/otuschhoff/cfind/pkg/action"
	"github.com/otuschhoff/cfind/pkg/expr"
	"github.com/otuschhoff/cfind/pkg/find"
	"github.com/otuschhoff/cfind/pkg/output"
	"github.com/spf13/cobra"
)

const program = "cfind"

// version is the application version, set via ldflags.
var version = "dev"

// exitError carries the process exit code out of RunE.
// err is nil when everything worth saying has already been logged.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// newRootCmd builds the root command writing to stdout and stderr.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cfind [PATH...] [EXPRESSION]",
		Short: "Search directory trees with find-style expressions",
		Long: `cfind walks each PATH (default ".") top-down without following symlinks
and applies the action to every entry the expression matches.

Examples:
  cfind . -name '*.log' -mtime +30
  cfind /var/tmp -maxdepth 1 -type f -size +100M -ls
  cfind build -type d -name cache -o -name '*.tmp' -print0`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(cmd.OutOrStdout(), cmd.ErrOrStderr(), args)
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd
}

// runFind parses the arguments, walks every path and reports the outcome.
func runFind(stdout, stderr io.Writer, args []string) error {
	cfg, cfgErr := config.Load()
	logger := logging.New(stderr, program, cfg.Debug)
	if cfgErr != nil {
		logger.Warnf("%v; using table", cfgErr)
		cfg.StatsFormat = "table"
	}

	now := time.Now()
	paths, tokens := splitArgs(args)

	result, err := expr.Parse(tokens, expr.Options{Now: now})
	if err != nil {
		return &exitError{code: exitcodes.InvalidExpression, err: err}
	}

	switch result.Info {
	case expr.InfoHelp:
		fmt.Fprint(stdout, output.Usage(program))
		return nil
	case expr.InfoVersion:
		fmt.Fprintf(stdout, "%s %s\n", program, version)
		return nil
	}

	if logger.DebugEnabled() {
		if len(result.Skipped) > 0 {
			logger.Debugf("ignored tokens: %s", strings.Join(result.Skipped, " "))
		}
		logger.Debugf("paths: %s", strings.Join(paths, " "))
		logger.Debugf("expression: %s", result.Predicate)
		logger.Debugf("action: %s", result.Action)
	}

	act := action.New(result.Action, action.Options{Stdout: stdout, Now: now})
	finder := find.NewFinder(paths, result.Predicate, act, result.Bounds, logger)
	sum := finder.Run()

	if cfg.Stats {
		fmt.Fprint(stderr, output.NewFormatter(cfg.StatsFormat, false).Format(sum))
	}

	if sum.Failed > 0 {
		return &exitError{code: exitcodes.Failure}
	}
	return nil
}

// splitArgs separates the leading path arguments from the expression.
// Paths end at the first argument that starts with "-" or is one of "!",
// "(" or ")".
func splitArgs(args []string) (paths, tokens []string) {
	i := 0
	for i < len(args) && !startsExpression(args[i]) {
		i++
	}
	return args[:i], args[i:]
}

func startsExpression(arg string) bool {
	return strings.HasPrefix(arg, "-") || arg == "!" || arg == "(" || arg == ")"
}

// run executes the command with args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}

	rootCmd := newRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	if err == nil {
		return exitcodes.Success
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		if exitErr.err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", program, exitErr.err)
		}
		return exitErr.code
	}
	fmt.Fprintf(stderr, "%s: %v\n", program, err)
	return exitcodes.Failure
}

// Execute runs the root command on the process arguments and returns the
// exit code for os.Exit.
func Execute() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}
