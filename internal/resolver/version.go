package resolver

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"

	"github.com/hashicorp/go-version"

	"github.com/reqpin/reqpin/internal/errors"
	"github.com/reqpin/reqpin/options"
	"github.com/reqpin/reqpin/pkg/log"
)

// This uses the constraint syntax from https://github.com/hashicorp/go-version
// This version of reqpin was tested to work with pip-tools 6.4.0 and above only.
const DefaultResolverVersionConstraint = ">= 6.4.0"

// ResolverVersionRegex verifies that the resolver --version output is in one of the following formats:
// - pip-compile, version 7.4.1
// - pip-compile, version 6.14.0 (python 3.8.10)
// We only make sure the "version #.#" part is present in the output.
var ResolverVersionRegex = regexp.MustCompile(`version\s+(v?\d+(?:\.\d+)+)`)

const versionParts = 2

// Version runs `<resolver> --version` and parses the reported release.
func (pipTools *PipTools) Version(ctx context.Context, l log.Logger) (*version.Version, error) {
	output, err := pipTools.run(ctx, l, []string{versionFlag})
	if err != nil {
		return nil, err
	}

	return ParseResolverVersion(output.Stdout.String())
}

// PopulateResolverVersion probes the currently installed resolver and stores
// its version on the given options.
func PopulateResolverVersion(ctx context.Context, l log.Logger, opts *options.Options) error {
	// Discard all resolver output to make sure we don't pollute stdout or
	// stderr with this extra call to '--version'.
	optsCopy := opts.Clone()
	optsCopy.Writer = io.Discard
	optsCopy.ErrWriter = io.Discard
	optsCopy.ForwardResolverOutput = true

	resolverVersion, err := NewPipTools(optsCopy).Version(ctx, l)
	if err != nil {
		return err
	}

	opts.ResolverVersion = resolverVersion
	l.Debugf("%s version: %s", filepath.Base(opts.ResolverPath), resolverVersion)

	return nil
}

// CheckResolverVersion checks that the resolver version meets the given
// constraint and returns an error if it doesn't.
func CheckResolverVersion(constraint string, resolverVersion *version.Version) error {
	versionConstraint, err := version.NewConstraint(constraint)
	if err != nil {
		return errors.New(err)
	}

	if !versionConstraint.Check(resolverVersion) {
		return errors.New(InvalidResolverVersion{CurrentVersion: resolverVersion, VersionConstraints: versionConstraint})
	}

	return nil
}

// ParseResolverVersion parses the output of the resolver --version command.
func ParseResolverVersion(versionCommandOutput string) (*version.Version, error) {
	matches := ResolverVersionRegex.FindStringSubmatch(versionCommandOutput)

	if len(matches) != versionParts {
		return nil, errors.New(InvalidResolverVersionSyntax(versionCommandOutput))
	}

	resolverVersion, err := version.NewVersion(matches[1])
	if err != nil {
		return nil, errors.New(err)
	}

	return resolverVersion, nil
}

type InvalidResolverVersionSyntax string

func (err InvalidResolverVersionSyntax) Error() string {
	return fmt.Sprintf("unable to parse resolver version output: %s", string(err))
}

type InvalidResolverVersion struct {
	CurrentVersion     *version.Version
	VersionConstraints version.Constraints
}

func (err InvalidResolverVersion) Error() string {
	return fmt.Sprintf("the currently installed version of the resolver (%s) is not compatible with the version reqpin requires (%s)", err.CurrentVersion.String(), err.VersionConstraints.String())
}
