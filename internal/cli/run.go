package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/cobalt-tools/gremlin-grep/internal/regex/matcher"
	"github.com/cobalt-tools/gremlin-grep/internal/regex/parser"
	"github.com/cobalt-tools/gremlin-grep/internal/walk"
)

// Options configures one search run. It is the CLI's entire surface over
// the regex core: nothing here reaches into the parser/matcher packages
// beyond Pattern and the per-line Find calls in emitLine.
type Options struct {
	Pattern      string
	Paths        []string
	Extended     bool
	Recursive    bool
	OnlyMatching bool
	Color        string
	Exclude      string
	Verbose      bool
}

// Run executes a search per Options, writing results to stdout and
// diagnostics to log. It returns the process exit code: 0 if at least one
// match was produced, 1 otherwise (including on a malformed pattern, which
// spec treats as a silent zero-match condition rather than a hard error).
func Run(opts Options, stdout io.Writer) (int, error) {
	log := newLogger(opts.Verbose)

	if !opts.Extended {
		fmt.Fprintln(os.Stderr, "usage: gremlin-grep -E PATTERN [PATH...]")
		return 1, nil
	}

	mode, err := parseColorMode(opts.Color)
	if err != nil {
		return 1, errors.Wrapf(err, "invalid --color value %q", opts.Color)
	}
	colorize := shouldColorize(mode)

	root, parseErr := parser.New(opts.Pattern).Parse()
	if parseErr != nil {
		log.Debug().Err(parseErr).Str("pattern", opts.Pattern).Msg("pattern failed to compile; treating as no match")
		return 1, nil
	}
	log.Debug().Str("pattern", opts.Pattern).Msg("pattern compiled")

	if len(opts.Paths) == 0 {
		found := scanStdin(root, opts.OnlyMatching, colorize, stdout)
		return exitCode(found), nil
	}

	files, err := walk.Collect(opts.Paths, opts.Recursive, opts.Exclude)
	if err != nil {
		return 1, err
	}
	log.Debug().Int("files", len(files)).Msg("collected files")

	found, err := scanFiles(root, files, opts.OnlyMatching, colorize, stdout)
	if err != nil {
		return 1, err
	}
	return exitCode(found), nil
}

func exitCode(found bool) int {
	if found {
		return 0
	}
	return 1
}

func scanStdin(root *matcher.Node, onlyMatching, colorize bool, stdout io.Writer) bool {
	scanner := bufio.NewScanner(os.Stdin)
	found := false
	for scanner.Scan() {
		if emitLine(root, scanner.Text(), "", false, onlyMatching, colorize, stdout) {
			found = true
		}
	}
	return found
}

func scanFiles(root *matcher.Node, files []string, onlyMatching, colorize bool, stdout io.Writer) (bool, error) {
	multiple := len(files) > 1
	found := false

	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return found, errors.Wrapf(err, "open %s", path)
		}

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if emitLine(root, scanner.Text(), path, multiple, onlyMatching, colorize, stdout) {
				found = true
			}
		}
		scanErr := scanner.Err()
		f.Close()
		if scanErr != nil {
			return found, errors.Wrapf(scanErr, "reading %s", path)
		}
	}
	return found, nil
}

// emitLine searches one line and writes any output for it. It reports
// whether the line had at least one match.
func emitLine(root *matcher.Node, line, filename string, prefixFilename, onlyMatching, colorize bool, stdout io.Writer) bool {
	matches := root.FindAllMatches(line)
	if len(matches) == 0 {
		return false
	}

	if onlyMatching {
		for _, m := range matches {
			text := m.MatchedText
			if colorize {
				text = matchColor.Sprint(text)
			}
			writeLine(stdout, filename, prefixFilename, text)
		}
		return true
	}

	out := line
	if colorize {
		out = highlightMatches(line, matches)
	}
	writeLine(stdout, filename, prefixFilename, out)
	return true
}

func writeLine(stdout io.Writer, filename string, prefix bool, text string) {
	if prefix {
		fmt.Fprintf(stdout, "%s:%s\n", filename, text)
		return
	}
	fmt.Fprintln(stdout, text)
}
