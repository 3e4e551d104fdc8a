// Package pins implements incremental pin discovery: candidate version pins
// are tested one at a time against the resolver and the compatible ones are
// kept in a dedicated, engine owned constraints source included by the main
// requirements file.
package pins

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/reqpin/reqpin/internal/errors"
	"github.com/reqpin/reqpin/internal/requirements"
	"github.com/reqpin/reqpin/internal/resolver"
	"github.com/reqpin/reqpin/internal/telemetry"
	"github.com/reqpin/reqpin/internal/util"
	"github.com/reqpin/reqpin/pkg/log"
)

// PinSource supplies the ordered candidate pins for a discovery run.
type PinSource func() ([]string, error)

// Result partitions the candidates of a finished discovery run.
type Result struct {
	// Accepted pins resolved cleanly and stay active in the pins file.
	Accepted []string

	// Rejected pins caused resolution conflicts and stay in the pins file as
	// commented out conflict markers.
	Rejected []string
}

// Discover runs one pin discovery pass over the given requirements file: it
// resets the pins file, validates that the main constraints resolve on their
// own, then tests every candidate from the source in order, each attempt
// carrying all earlier accept and reject decisions. Conflicting candidates
// are recorded and reported, they never fail the run. The lock file captured
// at the start stays in place until the final rebuild, so the existing
// version choices survive the experimentation.
func Discover(ctx context.Context, l log.Logger, compiler *requirements.Compiler, reqFile *requirements.File, pinsFile *PinsFile, source PinSource) (*Result, error) {
	runID := uuid.New().String()
	l = l.WithField("run-id", runID)

	var result *Result

	err := telemetry.TelemeterFromContext(ctx).Collect(ctx, "pin_discovery", map[string]any{
		"run_id":       runID,
		"requirements": reqFile.String(),
		"pins_file":    pinsFile.Path(),
	}, func(ctx context.Context) error {
		var err error
		result, err = discover(ctx, l, compiler, reqFile, pinsFile, source)

		return err
	})

	return result, err
}

func discover(ctx context.Context, l log.Logger, compiler *requirements.Compiler, reqFile *requirements.File, pinsFile *PinsFile, source PinSource) (*Result, error) {
	l.Infof("Cleaning pins file %s", pinsFile.Path())

	if err := pinsFile.Neutralize(); err != nil {
		return nil, err
	}

	// Captured before the baseline rebuild and restored afterwards, so the
	// versions already resolved for the main constraints survive the
	// candidate testing below.
	captured, err := os.ReadFile(reqFile.LockPath())
	if err != nil {
		return nil, errors.New(err)
	}

	if err := compiler.Compile(ctx, l, reqFile, requirements.CompileOptions{Rebuild: true}); err != nil {
		return nil, err
	}

	candidates, err := source()
	if err != nil {
		return nil, err
	}

	l.Infof("Found %d candidate pins: %s", len(candidates), strings.Join(candidates, ", "))

	if err := os.WriteFile(reqFile.LockPath(), captured, ownerWriteGlobalReadPerms); err != nil {
		return nil, errors.New(err)
	}

	if err := pinsFile.EnsureIncluded(l, reqFile); err != nil {
		return nil, err
	}

	var (
		entries []Entry
		result  = &Result{}
	)

	for i, candidate := range candidates {
		l.Infof("(%d/%d) Trying pin %q", i+1, len(candidates), candidate)

		if err := pinsFile.WritePartial(entries, candidate); err != nil {
			return nil, err
		}

		err := compiler.Compile(ctx, l, reqFile, requirements.CompileOptions{DryRun: true})

		switch {
		case resolver.IsConflict(err):
			l.Warnf("Pin %s conflicts with the dependency graph, rejecting it", candidate)

			entries = append(entries, Entry{Spec: candidate, Conflict: true})
			result.Rejected = append(result.Rejected, candidate)
		case err != nil:
			return nil, err
		default:
			l.Infof("Pin %s is compatible, keeping it", candidate)

			entries = append(entries, Entry{Spec: candidate})
			result.Accepted = append(result.Accepted, candidate)
		}
	}

	l.Infof("Writing pins file %s", pinsFile.Path())

	if err := pinsFile.WriteFinal(entries); err != nil {
		return nil, err
	}

	if err := compiler.Compile(ctx, l, reqFile, requirements.CompileOptions{Rebuild: true}); err != nil {
		return nil, err
	}

	reportRejected(l, result.Rejected)

	l.Infof("Accepted %d of %d candidate pins", len(result.Accepted), len(candidates))

	return result, nil
}

// reportRejected logs a consolidated report of the pins that could not be
// applied. Rejections are advisory, the discovery run itself still succeeds.
func reportRejected(l log.Logger, rejected []string) {
	if len(rejected) == 0 {
		return
	}

	sorted := util.CloneStringList(rejected)
	sort.Strings(sorted)

	lines := make([]string, 0, len(sorted))
	for _, pin := range sorted {
		lines = append(lines, " - "+pin)
	}

	l.Errorf("Failed to pin some dependencies:\n%s", strings.Join(lines, "\n"))
	l.Errorf("You may try to remove unused constraints or relax the conflicting ones.")
}
