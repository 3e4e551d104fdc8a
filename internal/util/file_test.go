package util_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/reqpin/reqpin/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPathRelativeTo(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		path     string
		basePath string
		expected string
	}{
		{"", "", "."},
		{"/root", "/root", "."},
		{"/root", "/root/child", ".."},
		{"/root", "/root/child/sub-child/sub-sub-child", "../../.."},
		{"/root/other-child", "/root/child", "../other-child"},
		{"/root/other-child/sub-child", "/root/child/sub-child", "../../other-child/sub-child"},
		{"/root/root", "/root/other-root", "../root"},
		{"/root/root", "/root/other-root/sub-child/sub-sub-child", "../../../root"},
	}

	for _, testCase := range testCases {
		actual, err := util.GetPathRelativeTo(testCase.path, testCase.basePath)
		require.NoError(t, err, "Unexpected error for path %s and basePath %s", testCase.path, testCase.basePath)
		assert.Equal(t, testCase.expected, actual, "For path %s and basePath %s", testCase.path, testCase.basePath)
	}
}

func TestCanonicalPath(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		path     string
		basePath string
		expected string
	}{
		{"", "/foo", "/foo"},
		{".", "/foo", "/foo"},
		{"bar", "/foo", "/foo/bar"},
		{"bar/baz/blah", "/foo", "/foo/bar/baz/blah"},
		{"bar/../blah", "/foo", "/foo/blah"},
		{"bar/../..", "/foo", "/"},
		{"bar/.././../baz", "/foo", "/baz"},
		{"bar", "/foo/../baz", "/baz/bar"},
		{"a/b/../c/d/..", "/foo/../baz/.", "/baz/a/c"},
		{"/other", "/foo", "/other"},
		{"/other/bar/blah", "/foo", "/other/bar/blah"},
		{"/other/../blah", "/foo", "/blah"},
	}

	for _, testCase := range testCases {
		actual, err := util.CanonicalPath(testCase.path, testCase.basePath)
		require.NoError(t, err, "Unexpected error for path %s and basePath %s", testCase.path, testCase.basePath)
		assert.Equal(t, testCase.expected, actual, "For path %s and basePath %s", testCase.path, testCase.basePath)
	}
}

func TestGlobCanonicalPath(t *testing.T) {
	t.Parallel()

	basePath := t.TempDir()

	expectedHelper := func(path string) string {
		path, err := filepath.Abs(filepath.Join(basePath, path))
		require.NoError(t, err)

		return filepath.ToSlash(path)
	}

	for _, dir := range []string{"module-a", "module-b/module-b-child"} {
		require.NoError(t, os.MkdirAll(filepath.Join(basePath, dir), 0700))
	}

	for _, file := range []string{"reqs.in", "module-a/reqs.in", "module-b/module-b-child/reqs.in", "module-a/reqs.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(basePath, file), []byte("requests\n"), 0644))
	}

	testCases := []struct {
		globPaths []string
		expected  []string
	}{
		{
			[]string{"**/*.in"},
			[]string{
				expectedHelper("reqs.in"),
				expectedHelper("module-a/reqs.in"),
				expectedHelper("module-b/module-b-child/reqs.in"),
			},
		},
		{
			[]string{"module-a/*.txt"},
			[]string{expectedHelper("module-a/reqs.txt")},
		},
		{
			[]string{"**/no-match"},
			[]string{},
		},
	}

	for _, testCase := range testCases {
		actual, err := util.GlobCanonicalPath(basePath, testCase.globPaths...)
		require.NoError(t, err, "Unexpected error for globPaths %v", testCase.globPaths)
		assert.ElementsMatch(t, testCase.expected, actual, "For globPaths %v", testCase.globPaths)
	}
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	existing := filepath.Join(dir, "reqs.in")
	require.NoError(t, os.WriteFile(existing, []byte(""), 0644))

	assert.True(t, util.FileExists(existing))
	assert.False(t, util.FileExists(filepath.Join(dir, "missing.in")))
	assert.True(t, util.FileNotExists(filepath.Join(dir, "missing.in")))
	assert.False(t, util.FileNotExists(existing))
}

func TestCopyFilePreservesPermissions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := filepath.Join(dir, "source.txt")
	destination := filepath.Join(dir, "destination.txt")

	require.NoError(t, os.WriteFile(source, []byte("requests==2.31.0\n"), 0600))
	require.NoError(t, util.CopyFile(source, destination))

	contents, err := os.ReadFile(destination)
	require.NoError(t, err)
	assert.Equal(t, "requests==2.31.0\n", string(contents))

	info, err := os.Stat(destination)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestReadFileAsString(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "reqs.txt")
	require.NoError(t, os.WriteFile(path, []byte("flask==3.0.0\n"), 0644))

	contents, err := util.ReadFileAsString(path)
	require.NoError(t, err)
	assert.Equal(t, "flask==3.0.0\n", contents)

	_, err = util.ReadFileAsString(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.txt")
}
