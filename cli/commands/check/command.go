// Package check implements the command that reports stale lock files without
// recompiling anything.
package check

import (
	"github.com/urfave/cli/v2"

	"github.com/reqpin/reqpin/cli/commands"
	"github.com/reqpin/reqpin/internal/errors"
	"github.com/reqpin/reqpin/internal/requirements"
	"github.com/reqpin/reqpin/options"
)

const (
	CommandName = "check"

	AllFlagName = "all"
)

// NewCommand builds the check command.
func NewCommand(opts *options.Options) *cli.Command {
	return &cli.Command{
		Name:      CommandName,
		Usage:     "Report lock files whose requirements source changed since they were generated.",
		UsageText: "reqpin check [options] [FILE]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  AllFlagName,
				Usage: "Check every requirements source file in the working directory.",
			},
		},
		Action: func(cliCtx *cli.Context) error {
			return Run(cliCtx, opts)
		},
	}
}

// Run reports staleness through the exit code: zero when every checked lock
// file is up to date, non-zero otherwise. The resolver is never invoked.
func Run(cliCtx *cli.Context, opts *options.Options) error {
	files, err := filesToCheck(cliCtx, opts)
	if err != nil {
		return err
	}

	var errs *errors.MultiError

	for _, file := range files {
		stale, err := requirements.NeedsRecompile(opts.Logger, file)
		if err != nil {
			return err
		}

		if stale {
			errs = errs.Append(errors.New(&requirements.StaleLockFileError{File: file}))

			continue
		}

		opts.Logger.Infof("%s is up to date", file.LockPath())
	}

	return errs.ErrorOrNil()
}

func filesToCheck(cliCtx *cli.Context, opts *options.Options) ([]*requirements.File, error) {
	if !cliCtx.Bool(AllFlagName) {
		file, err := commands.RequirementsFileArg(cliCtx, opts)
		if err != nil {
			return nil, err
		}

		return []*requirements.File{file}, nil
	}

	if cliCtx.NArg() > 0 {
		return nil, errors.New(commands.ExtraArgsError(cliCtx.Args().Slice()))
	}

	return requirements.DetectSourceFiles(opts.WorkingDir)
}
