// Package walk collects the file list a search should run over: either a
// literal list of file arguments, or (when recursion is requested) every
// regular file reachable under one or more directory arguments.
package walk

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar"
	"github.com/pkg/errors"
)

// Collect resolves paths (a mix of file and directory arguments) into a
// flat list of files to scan. When recursive is false, directories are
// rejected rather than silently skipped, matching a plain non-recursive
// grep's behavior on a directory argument. exclude, if non-empty, is a
// doublestar glob; any candidate file whose path matches it is dropped.
func Collect(paths []string, recursive bool, exclude string) ([]string, error) {
	var files []string

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, errors.Wrapf(err, "stat %s", p)
		}

		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		if !recursive {
			return nil, errors.Errorf("%s is a directory (use -r to search recursively)", p)
		}

		found, err := walkDir(p)
		if err != nil {
			return nil, errors.Wrapf(err, "walking %s", p)
		}
		files = append(files, found...)
	}

	if exclude == "" {
		return files, nil
	}
	return filterExcluded(files, exclude)
}

func walkDir(root string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	return files, err
}

func filterExcluded(files []string, pattern string) ([]string, error) {
	var kept []string
	for _, f := range files {
		matched, err := doublestar.Match(pattern, f)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid --exclude pattern %q", pattern)
		}
		if !matched {
			matched, err = doublestar.Match(pattern, filepath.Base(f))
			if err != nil {
				return nil, errors.Wrapf(err, "invalid --exclude pattern %q", pattern)
			}
		}
		if !matched {
			kept = append(kept, f)
		}
	}
	return kept, nil
}
