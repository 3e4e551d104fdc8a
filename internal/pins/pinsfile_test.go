package pins_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqpin/reqpin/internal/pins"
	"github.com/reqpin/reqpin/internal/requirements"
	"github.com/reqpin/reqpin/internal/util"
)

func TestEntryString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		entry    pins.Entry
		expected string
	}{
		{
			name:     "accepted pin",
			entry:    pins.Entry{Spec: "pkga==1.0.0"},
			expected: "pkga==1.0.0",
		},
		{
			name:     "conflicting pin",
			entry:    pins.Entry{Spec: "pkgb==9.9.9", Conflict: true},
			expected: "## pkgb==9.9.9  # CONFLICT",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, tc.entry.String())
		})
	}
}

func TestPinsFilePath(t *testing.T) {
	t.Parallel()

	pinsFile := pins.NewPinsFile("deps/pins")

	assert.Equal(t, "deps/pins.in", pinsFile.Path())
	assert.Equal(t, "pins.in", pinsFile.Name())
}

func TestNeutralize(t *testing.T) {
	t.Parallel()

	pinsFile := pins.NewPinsFile(filepath.Join(t.TempDir(), "pins.in"))
	writeFile(t, pinsFile.Path(), "pkga==1.0.0\n")

	require.NoError(t, pinsFile.Neutralize())

	content, err := util.ReadFileAsString(pinsFile.Path())
	require.NoError(t, err)
	assert.Equal(t, "# autocleaned ...\n", content)
}

func TestWritePartial(t *testing.T) {
	t.Parallel()

	pinsFile := pins.NewPinsFile(filepath.Join(t.TempDir(), "pins.in"))

	entries := []pins.Entry{
		{Spec: "pkga==1.0.0"},
		{Spec: "pkgb==9.9.9", Conflict: true},
	}

	require.NoError(t, pinsFile.WritePartial(entries, "pkgc==2.0.0"))

	content, err := util.ReadFileAsString(pinsFile.Path())
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"# *** autogenerated - partial! ***",
		"pkga==1.0.0",
		"## pkgb==9.9.9  # CONFLICT",
		"pkgc==2.0.0",
		"# ...",
		"",
	}, "\n"), content)
}

func TestWriteFinal(t *testing.T) {
	t.Parallel()

	pinsFile := pins.NewPinsFile(filepath.Join(t.TempDir(), "pins.in"))

	entries := []pins.Entry{
		{Spec: "pkga==1.0.0"},
		{Spec: "pkgb==9.9.9", Conflict: true},
	}

	require.NoError(t, pinsFile.WriteFinal(entries))

	content, err := util.ReadFileAsString(pinsFile.Path())
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"# *** autogenerated ***",
		"pkga==1.0.0",
		"## pkgb==9.9.9  # CONFLICT",
		"",
	}, "\n"), content)
}

func TestEnsureIncludedAppends(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	reqFile := requirements.NewFile(filepath.Join(dir, "requirements"))
	writeFile(t, reqFile.SourcePath(), "pkga\npkgb>=2.0\n")

	pinsFile := pins.NewPinsFile(filepath.Join(dir, "pins.in"))

	require.NoError(t, pinsFile.EnsureIncluded(testLogger(), reqFile))

	content, err := util.ReadFileAsString(reqFile.SourcePath())
	require.NoError(t, err)
	assert.Equal(t, "pkga\npkgb>=2.0\n-r pins.in  # added by reqpin\n", content)
}

func TestEnsureIncludedIsIdempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	reqFile := requirements.NewFile(filepath.Join(dir, "requirements"))
	writeFile(t, reqFile.SourcePath(), "pkga\n")

	pinsFile := pins.NewPinsFile(filepath.Join(dir, "pins.in"))

	require.NoError(t, pinsFile.EnsureIncluded(testLogger(), reqFile))
	require.NoError(t, pinsFile.EnsureIncluded(testLogger(), reqFile))

	content, err := util.ReadFileAsString(reqFile.SourcePath())
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(content, "-r pins.in"))
}

func TestEnsureIncludedDetectsHandWrittenDirective(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	reqFile := requirements.NewFile(filepath.Join(dir, "requirements"))
	original := "pkga\n-r pins.in  # version pins\npkgb\n"
	writeFile(t, reqFile.SourcePath(), original)

	pinsFile := pins.NewPinsFile(filepath.Join(dir, "pins.in"))

	require.NoError(t, pinsFile.EnsureIncluded(testLogger(), reqFile))

	content, err := util.ReadFileAsString(reqFile.SourcePath())
	require.NoError(t, err)
	assert.Equal(t, original, content)
}

func TestEnsureIncludedSubdirectoryPins(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "deps"), 0755))

	reqFile := requirements.NewFile(filepath.Join(dir, "requirements"))
	writeFile(t, reqFile.SourcePath(), "pkga\n")

	pinsFile := pins.NewPinsFile(filepath.Join(dir, "deps", "pins.in"))

	require.NoError(t, pinsFile.EnsureIncluded(testLogger(), reqFile))
	require.NoError(t, pinsFile.EnsureIncluded(testLogger(), reqFile))

	content, err := util.ReadFileAsString(reqFile.SourcePath())
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(content, "-r deps/pins.in  # added by reqpin"))
}
