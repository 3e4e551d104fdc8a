package requirements

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/reqpin/reqpin/internal/errors"
	"github.com/reqpin/reqpin/internal/util"
	"github.com/reqpin/reqpin/pkg/log"
)

// Read returns the dependency specifiers of the given requirements file's
// lock file after verifying it is up to date. A stale lock file is a
// StaleLockFileError, Read never recompiles on its own.
func Read(l log.Logger, file *File) ([]string, error) {
	stale, err := NeedsRecompile(l, file)
	if err != nil {
		return nil, err
	}

	if stale {
		return nil, errors.New(&StaleLockFileError{File: file})
	}

	return ReadNoCheck(file.LockPath())
}

// ReadNoCheck returns the dependency specifiers of the given file without any
// freshness check. It reads lock files and uncompiled constraints sources
// alike: comments and blank lines are skipped, `-r` includes are expanded in
// place relative to the file referencing them, everything else is a specifier
// kept verbatim. Duplicates are not removed and file order is preserved.
func ReadNoCheck(path string) ([]string, error) {
	return readSpecifiers(path, nil)
}

func readSpecifiers(path string, chain []string) ([]string, error) {
	path = util.CleanPath(path)

	if util.ListContainsElement(chain, path) {
		return nil, errors.New(&IncludeCycleError{Chain: append(chain, path)})
	}

	chain = append(chain, path)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(err)
	}

	var specifiers []string

	for _, rawLine := range strings.Split(string(content), "\n") {
		line := strings.TrimSpace(stripComment(rawLine))
		if line == "" {
			continue
		}

		target := parseIncludeDirective(rawLine)
		if target == "" {
			specifiers = append(specifiers, line)
			continue
		}

		included, err := readSpecifiers(resolveIncludePath(filepath.Dir(path), target), chain)
		if err != nil {
			return nil, err
		}

		specifiers = append(specifiers, included...)
	}

	return specifiers, nil
}
