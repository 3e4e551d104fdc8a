package commands

import (
	"github.com/urfave/cli/v2"

	"github.com/reqpin/reqpin/internal/errors"
	"github.com/reqpin/reqpin/internal/requirements"
	"github.com/reqpin/reqpin/internal/resolver"
	"github.com/reqpin/reqpin/internal/util"
	"github.com/reqpin/reqpin/options"
)

// RequirementsFile resolves the path of a requirements file against the
// working directory. The path may name the pair base, the source or the lock
// file, and may start with `~`.
func RequirementsFile(opts *options.Options, path string) (*requirements.File, error) {
	if path == "" {
		return nil, errors.New(MissingFileArgError{})
	}

	path, err := util.ExpandHomePath(path)
	if err != nil {
		return nil, err
	}

	path, err = util.CanonicalPath(path, opts.WorkingDir)
	if err != nil {
		return nil, err
	}

	return requirements.NewFile(path), nil
}

// RequirementsFileArg extracts the single FILE argument of a command.
func RequirementsFileArg(cliCtx *cli.Context, opts *options.Options) (*requirements.File, error) {
	if cliCtx.NArg() > 1 {
		return nil, errors.New(ExtraArgsError(cliCtx.Args().Slice()[1:]))
	}

	return RequirementsFile(opts, cliCtx.Args().First())
}

// NewCompiler builds the compiler used by commands that invoke the resolver.
func NewCompiler(opts *options.Options) *requirements.Compiler {
	return requirements.NewCompiler(resolver.NewPipTools(opts))
}

// ProbeResolverVersion checks the installed resolver release before a command
// that is about to invoke it. Version problems surface as warnings and never
// fail the command.
func ProbeResolverVersion(cliCtx *cli.Context, opts *options.Options) error {
	l := opts.Logger

	if err := resolver.PopulateResolverVersion(cliCtx.Context, l, opts); err != nil {
		l.Warnf("Could not determine the resolver version: %s", err)

		return nil
	}

	if err := resolver.CheckResolverVersion(resolver.DefaultResolverVersionConstraint, opts.ResolverVersion); err != nil {
		l.Warnf("%s", err)
	}

	return nil
}
