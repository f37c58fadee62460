package cli

import (
	"github.com/fatih/color"
	"github.com/pkg/errors"

	"github.com/cobalt-tools/gremlin-grep/internal/regex/matcher"
)

// colorMode mirrors grep's --color values.
type colorMode int

const (
	colorAuto colorMode = iota
	colorAlways
	colorNever
)

func parseColorMode(s string) (colorMode, error) {
	switch s {
	case "", "auto":
		return colorAuto, nil
	case "always":
		return colorAlways, nil
	case "never":
		return colorNever, nil
	default:
		return colorAuto, errors.Errorf("unknown color mode %q", s)
	}
}

// shouldColorize resolves "auto" against whether stdout is a terminal.
func shouldColorize(mode colorMode) bool {
	switch mode {
	case colorAlways:
		return true
	case colorNever:
		return false
	default:
		return !color.NoColor
	}
}

// matchColor always emits its escape codes, ignoring the package-wide
// color.NoColor default (true when stdout is not a terminal); callers use
// it only once shouldColorize has decided that color is wanted.
var matchColor = func() *color.Color {
	c := color.New(color.Bold, color.FgRed)
	c.EnableColor()
	return c
}()

// highlightMatches wraps every match span in line in the bold-red ANSI
// sequence, leaving the rest of the line untouched. matches must be
// sorted by offset and non-overlapping, which find_all_matches guarantees.
func highlightMatches(line string, matches []matcher.Match) string {
	if len(matches) == 0 {
		return line
	}
	runes := []rune(line)
	var out []rune
	cursor := 0
	for _, m := range matches {
		if m.Offset > cursor {
			out = append(out, runes[cursor:m.Offset]...)
		}
		out = append(out, []rune(matchColor.Sprint(m.MatchedText))...)
		cursor = m.Offset + len([]rune(m.MatchedText))
	}
	if cursor < len(runes) {
		out = append(out, runes[cursor:]...)
	}
	return string(out)
}
