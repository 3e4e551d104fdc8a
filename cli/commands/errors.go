package commands

import (
	"fmt"
	"strings"
)

// MissingFileArgError is returned when a command that operates on a
// requirements file is run without the FILE argument.
type MissingFileArgError struct{}

func (err MissingFileArgError) Error() string {
	return "missing required argument: FILE names a requirements file pair, e.g. 'requirements' or 'requirements.in'"
}

// ExtraArgsError is returned when a command receives more positional
// arguments than the single FILE it operates on.
type ExtraArgsError []string

func (err ExtraArgsError) Error() string {
	return fmt.Sprintf("unexpected extra arguments: %s", strings.Join(err, " "))
}
