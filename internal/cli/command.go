package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the gremlin-grep cobra command. All flags bind
// directly into an Options value consumed by Run; cobra itself owns no
// search logic.
func NewRootCommand() *cobra.Command {
	var opts Options

	cmd := &cobra.Command{
		Use:   "gremlin-grep -E PATTERN [PATH...]",
		Short: "Search input for lines matching a regular expression",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Pattern = args[0]
			opts.Paths = args[1:]

			code, err := Run(opts, os.Stdout)
			if err != nil {
				return err
			}
			if code != 0 {
				return &exitError{code: code}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.Extended, "extended-regexp", "E", false, "required; enables extended regex syntax")
	flags.BoolVarP(&opts.Recursive, "recursive", "r", false, "search directories recursively")
	flags.BoolVarP(&opts.OnlyMatching, "only-matching", "o", false, "print only the matched substrings")
	flags.StringVar(&opts.Color, "color", "auto", "colorize matches: always, auto, or never")
	flags.StringVar(&opts.Exclude, "exclude", "", "doublestar glob; files whose path or base name matches are skipped")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "log diagnostics to stderr")

	return cmd
}

// exitError lets the root command translate a non-zero, non-fatal search
// result (no match found) into the correct process exit code without
// printing it as an application error.
type exitError struct{ code int }

func (e *exitError) Error() string { return "no matches found" }

// exitCodeOf maps an error returned by the root command's Execute to a
// process exit code, without treating a no-match exitError as a real
// application error.
func exitCodeOf(err error) (code int, isRealError bool) {
	if err == nil {
		return 0, false
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code, false
	}
	return 1, true
}

// Execute runs the CLI to completion, printing real errors to stderr, and
// returns the process exit code.
func Execute() int {
	err := NewRootCommand().Execute()
	code, isRealError := exitCodeOf(err)
	if isRealError {
		fmt.Fprintln(os.Stderr, err)
	}
	return code
}
