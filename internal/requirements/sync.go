package requirements

import (
	"context"

	"github.com/reqpin/reqpin/pkg/log"
)

// Sync brings the lock file of the given requirements file up to date,
// recompiling it only when its constraints source changed. It reports whether
// a recompile happened. Stale sibling sources in the same directory are
// surfaced as warnings along the way.
func Sync(ctx context.Context, l log.Logger, compiler *Compiler, file *File) (bool, error) {
	if err := WarnStaleSiblings(l, file); err != nil {
		return false, err
	}

	stale, err := NeedsRecompile(l, file)
	if err != nil {
		return false, err
	}

	if !stale {
		l.Debugf("File %s is fresh", file.LockPath())

		return false, nil
	}

	if err := compiler.Compile(ctx, l, file, CompileOptions{}); err != nil {
		return false, err
	}

	return true, nil
}
