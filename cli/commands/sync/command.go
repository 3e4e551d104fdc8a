// Package sync implements the command that recompiles a lock file when its
// source changed since the last compilation.
package sync

import (
	"github.com/urfave/cli/v2"

	"github.com/reqpin/reqpin/cli/commands"
	"github.com/reqpin/reqpin/internal/requirements"
	"github.com/reqpin/reqpin/options"
)

const CommandName = "sync"

// NewCommand builds the sync command.
func NewCommand(opts *options.Options) *cli.Command {
	return &cli.Command{
		Name:      CommandName,
		Usage:     "Recompile the lock file if the requirements source changed since it was generated.",
		UsageText: "reqpin sync [options] FILE",
		Before: func(cliCtx *cli.Context) error {
			return commands.ProbeResolverVersion(cliCtx, opts)
		},
		Action: func(cliCtx *cli.Context) error {
			return Run(cliCtx, opts)
		},
	}
}

// Run brings the lock file of the requirements file named on the command line
// up to date.
func Run(cliCtx *cli.Context, opts *options.Options) error {
	file, err := commands.RequirementsFileArg(cliCtx, opts)
	if err != nil {
		return err
	}

	recompiled, err := requirements.Sync(cliCtx.Context, opts.Logger, commands.NewCompiler(opts), file)
	if err != nil {
		return err
	}

	if !recompiled {
		opts.Logger.Infof("%s is up to date", file.LockPath())
	}

	return nil
}
