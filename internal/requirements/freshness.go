package requirements

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/reqpin/reqpin/internal/util"
	"github.com/reqpin/reqpin/pkg/log"
)

// NeedsRecompile reports whether the lock file of the given requirements file
// must be regenerated before it can be trusted, and warns with the
// remediation command when it must.
//
// A missing constraints source means the file pair is not managed by the
// resolver, which is never stale. A missing lock file next to an existing
// source is always stale. Otherwise the source fingerprint must appear
// somewhere in the lock file text. The substring check tolerates header
// format drift between versions and is an implementation detail of this
// function, callers never parse lock file headers themselves.
func NeedsRecompile(l log.Logger, file *File) (bool, error) {
	l.Debugf("Checking whether %s needs to be recompiled", file.LockPath())

	if util.FileNotExists(file.SourcePath()) {
		l.Debugf("No file %s, the resolver is not in use here", file.SourcePath())

		return false, nil
	}

	if util.FileNotExists(file.LockPath()) {
		l.Debugf("File %s does not exist yet", file.LockPath())

		return true, nil
	}

	fingerprint, err := Fingerprint(file.SourcePath())
	if err != nil {
		return false, err
	}

	lockContent, err := util.ReadFileAsString(file.LockPath())
	if err != nil {
		return false, err
	}

	if strings.Contains(lockContent, fingerprint) {
		l.Debugf("File %s is up to date", file.LockPath())

		return false, nil
	}

	l.Warnf("%s changed since %s was generated, run '%s %s' to update it", file.SourcePath(), file.LockPath(), RemediationCommand, file.SourcePath())

	return true, nil
}

// DetectSourceFiles returns a requirements file for every constraints source
// in the given directory, skipping the packaging manifest. The result is
// sorted by path.
func DetectSourceFiles(dir string) ([]*File, error) {
	paths, err := util.GlobCanonicalPath(dir, "*"+SourceExt)
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)

	files := make([]*File, 0, len(paths))

	for _, path := range paths {
		if filepath.Base(path) == ManifestName {
			continue
		}

		files = append(files, NewFile(path))
	}

	return files, nil
}

// WarnStaleSiblings staleness-checks every other constraints source in the
// directory of the given requirements file. Users sometimes keep several
// source/lock pairs next to each other, and a stale or never compiled sibling
// deserves a warning even when it is not the file being worked on. Sibling
// state never fails the primary operation.
func WarnStaleSiblings(l log.Logger, file *File) error {
	siblings, err := DetectSourceFiles(file.Dir())
	if err != nil {
		return err
	}

	primary, err := util.CanonicalPath(file.SourcePath(), "")
	if err != nil {
		return err
	}

	for _, sibling := range siblings {
		if sibling.SourcePath() == primary {
			continue
		}

		stale, err := NeedsRecompile(l, sibling)
		if err != nil {
			return err
		}

		if stale && util.FileNotExists(sibling.LockPath()) {
			l.Warnf("%s has never been compiled, run '%s %s' to generate %s", sibling.SourcePath(), RemediationCommand, sibling.SourcePath(), sibling.LockPath())
		}
	}

	return nil
}
