package requirements

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/reqpin/reqpin/internal/errors"
	"github.com/reqpin/reqpin/internal/resolver"
	"github.com/reqpin/reqpin/internal/util"
	"github.com/reqpin/reqpin/pkg/log"
)

// RemediationCommand is the command users run to regenerate a stale lock
// file. Warnings and lock file headers reference it together with the
// constraints source to recompile.
const RemediationCommand = "reqpin compile"

const ownerWriteGlobalReadPerms = 0644

// lockFileHeaderFmt is written in front of the resolver output. The
// fingerprint line is what NeedsRecompile searches for, so changing the
// format invalidates every existing lock file.
const lockFileHeaderFmt = `# *** autogenerated: don't edit ***
# $source-hash: %s
# $source-file: %s
#
# run '%s %s' to update this file

`

// CompileOptions configure a single resolver run. The zero value compiles
// incrementally, seeding the resolver with the existing lock file.
type CompileOptions struct {
	// UpgradePackage lets the named package move to the latest version its
	// constraints allow, leaving all other pins in place.
	UpgradePackage string

	// ExtraArgs are forwarded verbatim to the resolver.
	ExtraArgs []string

	// DryRun resolves without writing any file.
	DryRun bool

	// Verbose passes the resolver's verbose flag through.
	Verbose bool

	// Upgrade lets every pin move to the latest allowed version.
	Upgrade bool

	// Prereleases allows resolving to pre-release versions.
	Prereleases bool

	// Rebuild resolves from scratch instead of seeding the resolver with the
	// existing lock file.
	Rebuild bool
}

// Compiler generates lock files from constraints sources by driving an
// external resolver. It owns the lock file header format.
type Compiler struct {
	resolver resolver.Resolver
}

// NewCompiler returns a Compiler that drives the given resolver.
func NewCompiler(res resolver.Resolver) *Compiler {
	return &Compiler{resolver: res}
}

// Compile resolves the constraints source of the given requirements file and,
// unless running dry, replaces its lock file. The resolver writes into a
// temporary file that is removed regardless of outcome, so a failed run never
// leaves a half written lock file behind.
func (compiler *Compiler) Compile(ctx context.Context, l log.Logger, file *File, opts CompileOptions) error {
	l.Infof("Compiling requirements file %s", file.SourcePath())

	tmpDir, err := os.MkdirTemp("", "reqpin-")
	if err != nil {
		return errors.New(err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	tmpPath := filepath.Join(tmpDir, filepath.Base(file.LockPath()))

	// The existing lock file seeds the resolver so unrelated pins keep their
	// resolved versions across runs.
	if !opts.Rebuild && util.FileExists(file.LockPath()) {
		if err := util.CopyFile(file.LockPath(), tmpPath); err != nil {
			return err
		}
	}

	resolverOpts := resolver.Options{
		UpgradePackage: opts.UpgradePackage,
		ExtraArgs:      opts.ExtraArgs,
		DryRun:         opts.DryRun,
		Rebuild:        opts.Rebuild,
		Upgrade:        opts.Upgrade,
		Prereleases:    opts.Prereleases,
		Verbose:        opts.Verbose,
	}

	if !opts.DryRun {
		resolverOpts.Output = tmpPath
	}

	if err := compiler.resolver.Resolve(ctx, l, file.SourcePath(), resolverOpts); err != nil {
		return err
	}

	if opts.DryRun {
		return nil
	}

	return compiler.writeLockFile(l, file, tmpPath)
}

// writeLockFile assembles the lock file from the fingerprint header and the
// resolver output collected in the temporary file.
func (compiler *Compiler) writeLockFile(l log.Logger, file *File, tmpPath string) error {
	fingerprint, err := Fingerprint(file.SourcePath())
	if err != nil {
		return err
	}

	resolved, err := os.ReadFile(tmpPath)
	if err != nil {
		return errors.New(err)
	}

	l.Infof("Writing lock file %s", file.LockPath())

	header := fmt.Sprintf(lockFileHeaderFmt, fingerprint, file.SourcePath(), RemediationCommand, file.SourcePath())

	return errors.New(os.WriteFile(file.LockPath(), append([]byte(header), resolved...), ownerWriteGlobalReadPerms))
}
