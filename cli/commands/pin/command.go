// Package pin implements the command that tests candidate version pins
// against the requirements set and records the outcome in a pins file.
package pin

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/reqpin/reqpin/cli/commands"
	"github.com/reqpin/reqpin/internal/errors"
	"github.com/reqpin/reqpin/internal/pins"
	"github.com/reqpin/reqpin/internal/requirements"
	"github.com/reqpin/reqpin/internal/util"
	"github.com/reqpin/reqpin/options"
)

const (
	CommandName = "pin"

	CandidatesFlagName = "candidates"
	PinsFileFlagName   = "pins-file"

	// StdinCandidates selects standard input as the candidate source.
	StdinCandidates = "-"

	// DefaultPinsSuffix names the default pins file after the requirements
	// file it constrains, e.g. requirements.in gets requirements_pins.in.
	DefaultPinsSuffix = "_pins"
)

// NewCommand builds the pin command.
func NewCommand(opts *options.Options) *cli.Command {
	return &cli.Command{
		Name:      CommandName,
		Usage:     "Try candidate version pins one at a time and record which ones the requirements set can accept.",
		UsageText: "reqpin pin --candidates FILE|- [options] FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     CandidatesFlagName,
				Usage:    "File with one candidate pin per line, or - for stdin. Blank lines and # comments are skipped.",
				Required: true,
			},
			&cli.StringFlag{
				Name:  PinsFileFlagName,
				Usage: "Where accepted pins are recorded. Default is FILE with " + DefaultPinsSuffix + " appended, e.g. requirements" + DefaultPinsSuffix + requirements.SourceExt + ".",
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

// Run discovers which of the candidate pins the requirements file named on
// the command line can accept.
func Run(cliCtx *cli.Context, opts *options.Options) error {
	reqFile, err := commands.RequirementsFileArg(cliCtx, opts)
	if err != nil {
		return err
	}

	pinsFile, err := pinsFileFor(cliCtx, opts, reqFile)
	if err != nil {
		return err
	}

	source := newCandidateSource(cliCtx, opts)

	_, err = pins.Discover(cliCtx.Context, opts.Logger, commands.NewCompiler(opts), reqFile, pinsFile, source)

	return err
}

func pinsFileFor(cliCtx *cli.Context, opts *options.Options, reqFile *requirements.File) (*pins.PinsFile, error) {
	path := cliCtx.String(PinsFileFlagName)
	if path == "" {
		return pins.NewPinsFile(reqFile.Base() + DefaultPinsSuffix), nil
	}

	path, err := util.ExpandHomePath(path)
	if err != nil {
		return nil, err
	}

	path, err = util.CanonicalPath(path, opts.WorkingDir)
	if err != nil {
		return nil, err
	}

	return pins.NewPinsFile(path), nil
}

// newCandidateSource defers reading the candidate list until the discovery
// engine asks for it, which happens after the baseline rebuild succeeded.
func newCandidateSource(cliCtx *cli.Context, opts *options.Options) pins.PinSource {
	path := cliCtx.String(CandidatesFlagName)

	return func() ([]string, error) {
		if path == StdinCandidates {
			// A user who typed `--candidates -` at an interactive terminal is
			// probably waiting for a prompt that never comes.
			if file, ok := cliCtx.App.Reader.(*os.File); ok && isatty.IsTerminal(file.Fd()) {
				opts.Logger.Infof("Reading candidate pins from standard input, finish with Ctrl-D")
			}

			return readCandidates(cliCtx.App.Reader)
		}

		path, err := util.ExpandHomePath(path)
		if err != nil {
			return nil, err
		}

		path, err = util.CanonicalPath(path, opts.WorkingDir)
		if err != nil {
			return nil, err
		}

		file, err := os.Open(path)
		if err != nil {
			return nil, errors.New(err)
		}
		defer file.Close() //nolint:errcheck

		return readCandidates(file)
	}
}

func readCandidates(reader io.Reader) ([]string, error) {
	var candidates []string

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line, _, _ := strings.Cut(scanner.Text(), "#")

		if line = strings.TrimSpace(line); line != "" {
			candidates = append(candidates, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.New(err)
	}

	return candidates, nil
}
