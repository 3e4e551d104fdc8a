package pins_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqpin/reqpin/internal/errors"
	"github.com/reqpin/reqpin/internal/pins"
	"github.com/reqpin/reqpin/internal/requirements"
	"github.com/reqpin/reqpin/internal/resolver"
	"github.com/reqpin/reqpin/internal/util"
	"github.com/reqpin/reqpin/pkg/log"
)

func pinCandidates(candidates ...string) pins.PinSource {
	return func() ([]string, error) {
		return candidates, nil
	}
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	reqFile := requirements.NewFile(filepath.Join(dir, "requirements"))
	writeFile(t, reqFile.SourcePath(), "pkga\npkgb\n")
	writeFile(t, reqFile.LockPath(), "pkga==1.0.0\npkgb==2.0.0\n")

	pinsFile := pins.NewPinsFile(filepath.Join(dir, "pins.in"))

	fake := &conflictResolver{
		pinsPath:    pinsFile.Path(),
		lockPath:    reqFile.LockPath(),
		resolved:    "pkga==1.0.0\npkgb==2.0.0\n",
		conflicting: []string{"pkgb==9.9.9"},
	}
	compiler := requirements.NewCompiler(fake)

	result, err := pins.Discover(t.Context(), testLogger(), compiler, reqFile, pinsFile, pinCandidates("pkga==1.0.0", "pkgb==9.9.9"))
	require.NoError(t, err)

	assert.Equal(t, []string{"pkga==1.0.0"}, result.Accepted)
	assert.Equal(t, []string{"pkgb==9.9.9"}, result.Rejected)

	pinsContent, err := util.ReadFileAsString(pinsFile.Path())
	require.NoError(t, err)
	assert.Equal(t, "# *** autogenerated ***\npkga==1.0.0\n## pkgb==9.9.9  # CONFLICT\n", pinsContent)

	reqContent, err := util.ReadFileAsString(reqFile.SourcePath())
	require.NoError(t, err)
	assert.Contains(t, reqContent, "-r pins.in  # added by reqpin")

	// Baseline rebuild, one dry run per candidate, final rebuild.
	require.Len(t, fake.calls, 4)
	assert.True(t, fake.calls[0].Rebuild)
	assert.True(t, fake.calls[1].DryRun)
	assert.True(t, fake.calls[2].DryRun)
	assert.True(t, fake.calls[3].Rebuild)

	// Candidates were tested against the lock file captured at the start, not
	// against the baseline rebuild output.
	require.Len(t, fake.lockSnapshots, 2)
	assert.Equal(t, "pkga==1.0.0\npkgb==2.0.0\n", fake.lockSnapshots[0])

	lockContent, err := util.ReadFileAsString(reqFile.LockPath())
	require.NoError(t, err)
	assert.Contains(t, lockContent, "# $source-hash: "+requirements.FingerprintPrefix)
	assert.Contains(t, lockContent, "pkga==1.0.0")

	stale, err := requirements.NeedsRecompile(testLogger(), reqFile)
	require.NoError(t, err)
	assert.False(t, stale)
}

func TestDiscoverEveryAttemptSeesPriorDecisions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	reqFile := requirements.NewFile(filepath.Join(dir, "requirements"))
	writeFile(t, reqFile.SourcePath(), "pkga\n")
	writeFile(t, reqFile.LockPath(), "pkga==1.0.0\n")

	pinsFile := pins.NewPinsFile(filepath.Join(dir, "pins.in"))

	fake := &conflictResolver{
		pinsPath:    pinsFile.Path(),
		lockPath:    reqFile.LockPath(),
		resolved:    "pkga==1.0.0\n",
		conflicting: []string{"pkgb==9.9.9"},
	}
	compiler := requirements.NewCompiler(fake)

	_, err := pins.Discover(t.Context(), testLogger(), compiler, reqFile, pinsFile, pinCandidates("pkgb==9.9.9", "pkga==1.0.0"))
	require.NoError(t, err)

	require.Len(t, fake.pinsSnapshots, 2)
	assert.Equal(t, "# *** autogenerated - partial! ***\npkgb==9.9.9\n# ...\n", fake.pinsSnapshots[0])
	assert.Equal(t, "# *** autogenerated - partial! ***\n## pkgb==9.9.9  # CONFLICT\npkga==1.0.0\n# ...\n", fake.pinsSnapshots[1])
}

func TestDiscoverSecondRunIsIdempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	reqFile := requirements.NewFile(filepath.Join(dir, "requirements"))
	writeFile(t, reqFile.SourcePath(), "pkga\n")
	writeFile(t, reqFile.LockPath(), "pkga==1.0.0\n")

	pinsFile := pins.NewPinsFile(filepath.Join(dir, "pins.in"))

	fake := &conflictResolver{
		pinsPath:    pinsFile.Path(),
		lockPath:    reqFile.LockPath(),
		resolved:    "pkga==1.0.0\n",
		conflicting: []string{"pkgb==9.9.9"},
	}
	compiler := requirements.NewCompiler(fake)

	source := pinCandidates("pkga==1.0.0", "pkgb==9.9.9")

	first, err := pins.Discover(t.Context(), testLogger(), compiler, reqFile, pinsFile, source)
	require.NoError(t, err)

	second, err := pins.Discover(t.Context(), testLogger(), compiler, reqFile, pinsFile, source)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	reqContent, err := util.ReadFileAsString(reqFile.SourcePath())
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(reqContent, "-r pins.in"))
}

func TestDiscoverAllCandidatesConflict(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	reqFile := requirements.NewFile(filepath.Join(dir, "requirements"))
	writeFile(t, reqFile.SourcePath(), "pkga\n")
	writeFile(t, reqFile.LockPath(), "pkga==1.0.0\n")

	pinsFile := pins.NewPinsFile(filepath.Join(dir, "pins.in"))

	fake := &conflictResolver{
		pinsPath:    pinsFile.Path(),
		lockPath:    reqFile.LockPath(),
		resolved:    "pkga==1.0.0\n",
		conflicting: []string{"zlib==9.0.0", "abc==9.9.9"},
	}
	compiler := requirements.NewCompiler(fake)

	var buf bytes.Buffer

	l := log.New(log.WithOutput(&buf), log.WithLevel(log.ErrorLevel))

	result, err := pins.Discover(t.Context(), l, compiler, reqFile, pinsFile, pinCandidates("zlib==9.0.0", "abc==9.9.9"))
	require.NoError(t, err)

	assert.Empty(t, result.Accepted)
	assert.Equal(t, []string{"zlib==9.0.0", "abc==9.9.9"}, result.Rejected)

	// The consolidated report lists rejected pins in sorted order.
	report := buf.String()
	assert.Contains(t, report, "abc==9.9.9")
	assert.Less(t, strings.Index(report, "abc==9.9.9"), strings.Index(report, "zlib==9.0.0"))
}

func TestDiscoverNoCandidates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	reqFile := requirements.NewFile(filepath.Join(dir, "requirements"))
	writeFile(t, reqFile.SourcePath(), "pkga\n")
	writeFile(t, reqFile.LockPath(), "pkga==1.0.0\n")

	pinsFile := pins.NewPinsFile(filepath.Join(dir, "pins.in"))

	fake := &conflictResolver{
		pinsPath: pinsFile.Path(),
		lockPath: reqFile.LockPath(),
		resolved: "pkga==1.0.0\n",
	}
	compiler := requirements.NewCompiler(fake)

	result, err := pins.Discover(t.Context(), testLogger(), compiler, reqFile, pinsFile, pinCandidates())
	require.NoError(t, err)

	assert.Empty(t, result.Accepted)
	assert.Empty(t, result.Rejected)

	pinsContent, err := util.ReadFileAsString(pinsFile.Path())
	require.NoError(t, err)
	assert.Equal(t, "# *** autogenerated ***\n", pinsContent)

	// Baseline and final rebuild, nothing to dry run.
	assert.Len(t, fake.calls, 2)
}

func TestDiscoverMissingLockFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	reqFile := requirements.NewFile(filepath.Join(dir, "requirements"))
	writeFile(t, reqFile.SourcePath(), "pkga\n")

	pinsFile := pins.NewPinsFile(filepath.Join(dir, "pins.in"))
	compiler := requirements.NewCompiler(&conflictResolver{pinsPath: pinsFile.Path()})

	_, err := pins.Discover(t.Context(), testLogger(), compiler, reqFile, pinsFile, pinCandidates("pkga==1.0.0"))
	require.Error(t, err)
}

// rebuildFailResolver conflicts on every full rebuild, simulating main
// constraints that do not resolve even without pins.
type rebuildFailResolver struct {
	sourceCalled bool
}

func (fake *rebuildFailResolver) Resolve(_ context.Context, _ log.Logger, sourcePath string, opts resolver.Options) error {
	if opts.Rebuild {
		return errors.New(&resolver.ConflictError{
			Err:        errors.New("resolution failed"),
			SourcePath: sourcePath,
			ExitCode:   2,
		})
	}

	return nil
}

func TestDiscoverBaselineConflictFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	reqFile := requirements.NewFile(filepath.Join(dir, "requirements"))
	writeFile(t, reqFile.SourcePath(), "pkga\n")
	writeFile(t, reqFile.LockPath(), "pkga==1.0.0\n")

	pinsFile := pins.NewPinsFile(filepath.Join(dir, "pins.in"))

	fake := &rebuildFailResolver{}
	compiler := requirements.NewCompiler(fake)

	source := func() ([]string, error) {
		fake.sourceCalled = true

		return []string{"pkga==1.0.0"}, nil
	}

	_, err := pins.Discover(t.Context(), testLogger(), compiler, reqFile, pinsFile, source)
	require.Error(t, err)

	// A conflict in the baseline means the main constraints are broken, so
	// the run stops before any candidate is requested.
	assert.False(t, fake.sourceCalled)

	pinsContent, err := util.ReadFileAsString(pinsFile.Path())
	require.NoError(t, err)
	assert.Equal(t, "# autocleaned ...\n", pinsContent)
}
