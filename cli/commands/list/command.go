// Package list implements the command that prints the flattened contents of a
// lock file.
package list

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/reqpin/reqpin/cli/commands"
	"github.com/reqpin/reqpin/internal/requirements"
	"github.com/reqpin/reqpin/options"
)

const (
	CommandName = "list"

	NoCheckFlagName = "no-check"
)

// NewCommand builds the list command.
func NewCommand(opts *options.Options) *cli.Command {
	return &cli.Command{
		Name:      CommandName,
		Usage:     "Print the requirement specifiers of a lock file, includes flattened.",
		UsageText: "reqpin list [options] FILE",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  NoCheckFlagName,
				Usage: "Read the lock file even if its requirements source changed since it was generated.",
			},
		},
		Action: func(cliCtx *cli.Context) error {
			return Run(cliCtx, opts)
		},
	}
}

// Run prints one requirement specifier per line to standard output, in file
// order with duplicates preserved.
func Run(cliCtx *cli.Context, opts *options.Options) error {
	file, err := commands.RequirementsFileArg(cliCtx, opts)
	if err != nil {
		return err
	}

	var specifiers []string

	if cliCtx.Bool(NoCheckFlagName) {
		specifiers, err = requirements.ReadNoCheck(file.LockPath())
	} else {
		specifiers, err = requirements.Read(opts.Logger, file)
	}

	if err != nil {
		return err
	}

	for _, specifier := range specifiers {
		fmt.Fprintln(opts.Writer, specifier)
	}

	return nil
}
