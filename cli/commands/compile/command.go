// Package compile implements the command that resolves a requirements source
// file into a fully pinned lock file.
package compile

import (
	"github.com/urfave/cli/v2"

	"github.com/reqpin/reqpin/cli/commands"
	"github.com/reqpin/reqpin/internal/requirements"
	"github.com/reqpin/reqpin/options"
)

const (
	CommandName = "compile"

	DryRunFlagName         = "dry-run"
	RebuildFlagName        = "rebuild"
	UpgradeFlagName        = "upgrade"
	UpgradePackageFlagName = "upgrade-package"
	PrereleasesFlagName    = "pre"
	VerboseFlagName        = "verbose"
)

// NewCommand builds the compile command.
func NewCommand(opts *options.Options) *cli.Command {
	return &cli.Command{
		Name:      CommandName,
		Usage:     "Resolve a requirements source file into a pinned lock file.",
		UsageText: "reqpin compile [options] FILE",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  DryRunFlagName,
				Usage: "Run the resolver without writing the lock file.",
			},
			&cli.BoolFlag{
				Name:  RebuildFlagName,
				Usage: "Resolve from scratch instead of keeping the versions already pinned in the lock file.",
			},
			&cli.BoolFlag{
				Name:  UpgradeFlagName,
				Usage: "Upgrade all packages to the latest versions the constraints allow.",
			},
			&cli.StringFlag{
				Name:  UpgradePackageFlagName,
				Usage: "Upgrade a single package to the latest version the constraints allow.",
			},
			&cli.BoolFlag{
				Name:  PrereleasesFlagName,
				Usage: "Allow resolving to pre-release versions.",
			},
			&cli.BoolFlag{
				Name:  VerboseFlagName,
				Usage: "Ask the resolver for verbose output.",
			},
		},
		Before: func(cliCtx *cli.Context) error {
			return commands.ProbeResolverVersion(cliCtx, opts)
		},
		Action: func(cliCtx *cli.Context) error {
			return Run(cliCtx, opts)
		},
	}
}

// Run compiles the requirements file named on the command line.
func Run(cliCtx *cli.Context, opts *options.Options) error {
	file, err := commands.RequirementsFileArg(cliCtx, opts)
	if err != nil {
		return err
	}

	compileOpts := requirements.CompileOptions{
		DryRun:         cliCtx.Bool(DryRunFlagName),
		Rebuild:        cliCtx.Bool(RebuildFlagName),
		Upgrade:        cliCtx.Bool(UpgradeFlagName),
		UpgradePackage: cliCtx.String(UpgradePackageFlagName),
		Prereleases:    cliCtx.Bool(PrereleasesFlagName),
		Verbose:        cliCtx.Bool(VerboseFlagName),
	}

	return commands.NewCompiler(opts).Compile(cliCtx.Context, opts.Logger, file, compileOpts)
}
