package pins_test

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reqpin/reqpin/internal/errors"
	"github.com/reqpin/reqpin/internal/resolver"
	"github.com/reqpin/reqpin/pkg/log"
)

func testLogger() log.Logger {
	return log.New(log.WithOutput(io.Discard))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// conflictResolver implements resolver.Resolver for discovery tests. It fails
// resolution with a ConflictError whenever the pins file contains one of the
// conflicting specifiers as an active line, the way a real resolver trips
// over an impossible pin pulled in through the `-r` include.
type conflictResolver struct {
	pinsPath    string
	lockPath    string
	resolved    string
	conflicting []string

	calls         []resolver.Options
	pinsSnapshots []string
	lockSnapshots []string
}

func (fake *conflictResolver) Resolve(_ context.Context, _ log.Logger, sourcePath string, opts resolver.Options) error {
	fake.calls = append(fake.calls, opts)

	pinsContent, err := os.ReadFile(fake.pinsPath)
	if err != nil {
		return err
	}

	if opts.DryRun {
		fake.pinsSnapshots = append(fake.pinsSnapshots, string(pinsContent))

		lockContent, err := os.ReadFile(fake.lockPath)
		if err != nil {
			return err
		}

		fake.lockSnapshots = append(fake.lockSnapshots, string(lockContent))
	}

	for _, spec := range fake.conflicting {
		if containsActiveLine(string(pinsContent), spec) {
			return errors.New(&resolver.ConflictError{
				Err:        errors.New("resolution failed"),
				SourcePath: sourcePath,
				ExitCode:   1,
				Output:     "Could not find a version that matches " + spec,
			})
		}
	}

	if opts.Output != "" {
		return os.WriteFile(opts.Output, []byte(fake.resolved), 0644)
	}

	return nil
}

// containsActiveLine reports whether the content holds the given specifier as
// a non-comment line.
func containsActiveLine(content, spec string) bool {
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == spec {
			return true
		}
	}

	return false
}
