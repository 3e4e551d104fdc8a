package requirements_test

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

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

// fakeResolver implements resolver.Resolver for tests. It records every
// invocation, captures any seed content found in the output file, and writes
// canned resolved content back.
type fakeResolver struct {
	err      error
	resolved string
	calls    []resolver.Options
	sources  []string
	seeds    []string
}

func (fake *fakeResolver) Resolve(_ context.Context, _ log.Logger, sourcePath string, opts resolver.Options) error {
	fake.calls = append(fake.calls, opts)
	fake.sources = append(fake.sources, sourcePath)

	var seed string

	if opts.Output != "" {
		content, err := os.ReadFile(opts.Output)
		if err == nil {
			seed = string(content)
		}
	}

	fake.seeds = append(fake.seeds, seed)

	if fake.err != nil {
		return fake.err
	}

	if opts.Output != "" {
		return os.WriteFile(opts.Output, []byte(fake.resolved), 0644)
	}

	return nil
}
