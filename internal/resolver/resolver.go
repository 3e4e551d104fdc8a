// Package resolver invokes the external dependency resolver that turns a
// constraints source into a fully pinned set of package versions. The
// reference implementation shells out to pip-compile, but the engine only
// depends on the Resolver interface so tests can substitute a fake.
package resolver

import (
	"context"

	"github.com/reqpin/reqpin/pkg/log"
)

// Options control a single resolver invocation.
type Options struct {
	// Output is the file the resolved pins are written to. Empty means the
	// resolver decides, which for pip-compile is `<source>.txt`.
	Output string

	// UpgradePackage upgrades only the named package to its latest allowed version.
	UpgradePackage string

	// ExtraArgs are appended to the command line right before the source path.
	ExtraArgs []string

	// DryRun resolves without writing any files.
	DryRun bool

	// Rebuild ignores any previously resolved pins and resolves from scratch.
	Rebuild bool

	// Upgrade upgrades all packages to their latest allowed versions.
	Upgrade bool

	// Prereleases allows resolving to pre-release versions.
	Prereleases bool

	// Verbose asks the resolver for verbose progress output, quiet otherwise.
	Verbose bool
}

// Resolver resolves a constraints source into a full set of pinned versions.
//
// Resolve blocks until the resolver finishes. A resolution conflict is
// returned as a ConflictError so callers that probe candidate pins can tell
// "no compatible set of versions" apart from operational failures.
type Resolver interface {
	Resolve(ctx context.Context, l log.Logger, sourcePath string, opts Options) error
}
