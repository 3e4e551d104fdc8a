// Package requirements keeps hand edited constraints sources (`<name>.in`) in
// sync with the lock files (`<name>.txt`) an external resolver generates from
// them. Lock files carry a fingerprint of their source, so staleness is
// detected from file content alone, and can be flattened back into plain
// dependency specifier lists.
package requirements

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/reqpin/reqpin/internal/util"
)

const (
	// SourceExt is the extension of hand edited constraints sources.
	SourceExt = ".in"

	// LockExt is the extension of generated lock files.
	LockExt = ".txt"

	// ManifestName is the packaging manifest sharing the source extension
	// without being a constraints source. Source discovery skips it.
	ManifestName = "MANIFEST.in"
)

// includeDirectiveReg matches an include directive after comment stripping,
// capturing the path of the referenced file.
var includeDirectiveReg = regexp.MustCompile(`^-r\s+(.+)$`)

// File is the pair of a constraints source and the lock file generated from
// it. Both always share the same directory and base name.
type File struct {
	base string
}

// NewFile returns the requirements file for the given path, which may be
// given as `<base>`, `<base>.in` or `<base>.txt`.
func NewFile(path string) *File {
	path = util.CleanPath(path)

	if ext := filepath.Ext(path); ext == SourceExt || ext == LockExt {
		path = strings.TrimSuffix(path, ext)
	}

	return &File{base: path}
}

// Base returns the shared path of the file pair, without extension.
func (file *File) Base() string {
	return file.base
}

// Dir returns the directory containing the file pair.
func (file *File) Dir() string {
	return filepath.Dir(file.base)
}

// SourcePath returns the path of the constraints source.
func (file *File) SourcePath() string {
	return file.base + SourceExt
}

// LockPath returns the path of the generated lock file.
func (file *File) LockPath() string {
	return file.base + LockExt
}

func (file *File) String() string {
	return file.base
}

// stripComment removes the first `#` marker and everything after it.
func stripComment(line string) string {
	if before, _, found := strings.Cut(line, "#"); found {
		return before
	}

	return line
}

// parseIncludeDirective returns the file referenced by a `-r` include
// directive, with any trailing comment stripped before path extraction, or an
// empty string when the line is not an include.
func parseIncludeDirective(line string) string {
	line = strings.TrimSpace(stripComment(line))

	match := includeDirectiveReg.FindStringSubmatch(line)
	if match == nil {
		return ""
	}

	return strings.TrimSpace(match[1])
}

// resolveIncludePath resolves an include target against the directory of the
// file referencing it. Absolute targets are kept as they are.
func resolveIncludePath(dir, target string) string {
	if filepath.IsAbs(target) {
		return target
	}

	return filepath.Join(dir, target)
}
