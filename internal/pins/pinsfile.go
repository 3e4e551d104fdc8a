package pins

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/reqpin/reqpin/internal/errors"
	"github.com/reqpin/reqpin/internal/requirements"
	"github.com/reqpin/reqpin/internal/util"
	"github.com/reqpin/reqpin/pkg/log"
)

const (
	// FinalBanner heads the pins file once a discovery run has completed.
	FinalBanner = "# *** autogenerated ***"

	// PartialBanner heads the pins file while candidates are still being
	// tested, so an interrupted run leaves a recognizable trace.
	PartialBanner = "# *** autogenerated - partial! ***"

	// neutralizedContent replaces the pins file before the baseline compile,
	// taking every previously discovered pin out of play.
	neutralizedContent = "# autocleaned ...\n"

	// partialTrailer marks the open end of a mid-run pins file.
	partialTrailer = "# ..."

	conflictMarker = "# CONFLICT"

	ownerWriteGlobalReadPerms = 0644
)

// Entry is a single pin decision recorded in the pins file.
type Entry struct {
	// Spec is the candidate dependency specifier.
	Spec string

	// Conflict marks a pin the resolver could not reconcile with the rest of
	// the dependency graph.
	Conflict bool
}

// String renders the entry as its pins file line. Conflicting pins stay in
// the file as double commented lines, so readers skip them while the decision
// remains visible.
func (entry Entry) String() string {
	if entry.Conflict {
		return fmt.Sprintf("## %s  %s", entry.Spec, conflictMarker)
	}

	return entry.Spec
}

// PinsFile is the constraints source owned by the discovery engine. Every
// write replaces the whole file, hand edits do not survive a run.
type PinsFile struct {
	file *requirements.File
}

// NewPinsFile returns the pins file for the given path, which may be given
// with or without the source extension.
func NewPinsFile(path string) *PinsFile {
	return &PinsFile{file: requirements.NewFile(path)}
}

// Path returns the path of the pins constraints source.
func (pinsFile *PinsFile) Path() string {
	return pinsFile.file.SourcePath()
}

// Name returns the file name of the pins constraints source.
func (pinsFile *PinsFile) Name() string {
	return filepath.Base(pinsFile.Path())
}

// Neutralize replaces the pins file with a placeholder holding no pins at
// all, so the following baseline compile resolves the main constraints alone.
func (pinsFile *PinsFile) Neutralize() error {
	return pinsFile.write(neutralizedContent)
}

// WritePartial replaces the pins file with the decisions made so far plus the
// candidate currently under test, under the mid-run banner.
func (pinsFile *PinsFile) WritePartial(entries []Entry, candidate string) error {
	lines := make([]string, 0, len(entries)+3)
	lines = append(lines, PartialBanner)

	for _, entry := range entries {
		lines = append(lines, entry.String())
	}

	lines = append(lines, candidate, partialTrailer)

	return pinsFile.write(strings.Join(lines, "\n") + "\n")
}

// WriteFinal replaces the pins file with the full decision history of a
// completed run.
func (pinsFile *PinsFile) WriteFinal(entries []Entry) error {
	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, FinalBanner)

	for _, entry := range entries {
		lines = append(lines, entry.String())
	}

	return pinsFile.write(strings.Join(lines, "\n") + "\n")
}

func (pinsFile *PinsFile) write(content string) error {
	return errors.New(os.WriteFile(pinsFile.Path(), []byte(content), ownerWriteGlobalReadPerms))
}

// EnsureIncluded makes sure the main constraints source includes the pins
// file through a `-r` directive, appending an annotated one when missing.
// Detection keys on the directive carrying a trailing comment, which the
// appended annotation provides.
func (pinsFile *PinsFile) EnsureIncluded(l log.Logger, reqFile *requirements.File) error {
	content, err := util.ReadFileAsString(reqFile.SourcePath())
	if err != nil {
		return err
	}

	includeReg := regexp.MustCompile(`-r\s+(?:\S*[/\\])?` + regexp.QuoteMeta(pinsFile.Name()) + `.*#`)
	if includeReg.MatchString(content) {
		l.Debugf("Pins file %s is already included in %s", pinsFile.Name(), reqFile.SourcePath())

		return nil
	}

	relPath, err := util.GetPathRelativeTo(pinsFile.Path(), reqFile.Dir())
	if err != nil {
		return err
	}

	l.Infof("Including pins file %s in %s", relPath, reqFile.SourcePath())

	content = fmt.Sprintf("%s\n-r %s  # added by reqpin\n", strings.TrimRight(content, "\n"), relPath)

	return errors.New(os.WriteFile(reqFile.SourcePath(), []byte(content), ownerWriteGlobalReadPerms))
}
