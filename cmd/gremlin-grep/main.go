// Command gremlin-grep is a line-oriented regex search tool built on an
// independent backtracking regex engine rather than the standard library's
// RE2-based regexp package.
package main

import (
	"os"

	"github.com/cobalt-tools/gremlin-grep/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
