package requirements_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqpin/reqpin/internal/requirements"
	"github.com/reqpin/reqpin/pkg/log"
)

// writeFreshLock writes a minimal lock file embedding the current fingerprint
// of the given requirements file's source.
func writeFreshLock(t *testing.T, file *requirements.File, specifiers string) {
	t.Helper()

	fingerprint, err := requirements.Fingerprint(file.SourcePath())
	require.NoError(t, err)

	writeFile(t, file.LockPath(), "# $source-hash: "+fingerprint+"\n\n"+specifiers)
}

func TestNeedsRecompile(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		setup    func(t *testing.T, dir string) *requirements.File
		expected bool
	}{
		{
			name: "no constraints source",
			setup: func(t *testing.T, dir string) *requirements.File {
				t.Helper()

				return requirements.NewFile(filepath.Join(dir, "requirements"))
			},
			expected: false,
		},
		{
			name: "source without lock file",
			setup: func(t *testing.T, dir string) *requirements.File {
				t.Helper()

				file := requirements.NewFile(filepath.Join(dir, "requirements"))
				writeFile(t, file.SourcePath(), "pkga\n")

				return file
			},
			expected: true,
		},
		{
			name: "fresh lock file",
			setup: func(t *testing.T, dir string) *requirements.File {
				t.Helper()

				file := requirements.NewFile(filepath.Join(dir, "requirements"))
				writeFile(t, file.SourcePath(), "pkga\n")
				writeFreshLock(t, file, "pkga==1.0.0\n")

				return file
			},
			expected: false,
		},
		{
			name: "changed source",
			setup: func(t *testing.T, dir string) *requirements.File {
				t.Helper()

				file := requirements.NewFile(filepath.Join(dir, "requirements"))
				writeFile(t, file.SourcePath(), "pkga\n")
				writeFreshLock(t, file, "pkga==1.0.0\n")
				writeFile(t, file.SourcePath(), "pkga\npkgb\n")

				return file
			},
			expected: true,
		},
		{
			name: "changed include",
			setup: func(t *testing.T, dir string) *requirements.File {
				t.Helper()

				file := requirements.NewFile(filepath.Join(dir, "requirements"))
				writeFile(t, file.SourcePath(), "-r pins.in\npkga\n")
				writeFile(t, filepath.Join(dir, "pins.in"), "pkgb==1.0\n")
				writeFreshLock(t, file, "pkga==1.0.0\npkgb==1.0\n")
				writeFile(t, filepath.Join(dir, "pins.in"), "pkgb==2.0\n")

				return file
			},
			expected: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			file := tc.setup(t, t.TempDir())

			stale, err := requirements.NeedsRecompile(testLogger(), file)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, stale)
		})
	}
}

func TestNeedsRecompileWarnsWithRemediation(t *testing.T) {
	t.Parallel()

	file := requirements.NewFile(filepath.Join(t.TempDir(), "requirements"))
	writeFile(t, file.SourcePath(), "pkga\n")
	writeFreshLock(t, file, "pkga==1.0.0\n")
	writeFile(t, file.SourcePath(), "pkga<2\n")

	var buf bytes.Buffer

	l := log.New(log.WithOutput(&buf), log.WithLevel(log.WarnLevel))

	stale, err := requirements.NeedsRecompile(l, file)
	require.NoError(t, err)
	assert.True(t, stale)

	assert.Contains(t, buf.String(), requirements.RemediationCommand)
	assert.Contains(t, buf.String(), file.SourcePath())
}

func TestDetectSourceFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "requirements.in"), "pkga\n")
	writeFile(t, filepath.Join(dir, "requirements_dev.in"), "pkgb\n")
	writeFile(t, filepath.Join(dir, "MANIFEST.in"), "include README.md\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a constraints source\n")

	files, err := requirements.DetectSourceFiles(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(files))
	for _, file := range files {
		names = append(names, filepath.Base(file.SourcePath()))
	}

	assert.Equal(t, []string{"requirements.in", "requirements_dev.in"}, names)
}

func TestDetectSourceFilesEmptyDir(t *testing.T) {
	t.Parallel()

	files, err := requirements.DetectSourceFiles(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestWarnStaleSiblings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	primary := requirements.NewFile(filepath.Join(dir, "requirements"))
	writeFile(t, primary.SourcePath(), "pkga\n")

	fresh := requirements.NewFile(filepath.Join(dir, "extra"))
	writeFile(t, fresh.SourcePath(), "pkgb\n")
	writeFreshLock(t, fresh, "pkgb==1.0.0\n")

	writeFile(t, filepath.Join(dir, "orphan.in"), "pkgc\n")

	stale := requirements.NewFile(filepath.Join(dir, "outdated"))
	writeFile(t, stale.SourcePath(), "pkgd\n")
	writeFile(t, stale.LockPath(), "# $source-hash: sha256:0000\n\npkgd==1.0.0\n")

	var buf bytes.Buffer

	l := log.New(log.WithOutput(&buf), log.WithLevel(log.WarnLevel))

	require.NoError(t, requirements.WarnStaleSiblings(l, primary))

	warnings := buf.String()
	assert.Contains(t, warnings, "orphan.in")
	assert.Contains(t, warnings, "outdated.in")
	assert.NotContains(t, warnings, "extra.in")

	// The file under inspection is not a sibling of itself.
	assert.NotContains(t, warnings, "requirements.in")
}
