package resolver

import (
	"fmt"
	"strings"

	"github.com/reqpin/reqpin/internal/errors"
)

// conflictOutputTailLines is how many trailing resolver output lines a
// ConflictError message carries.
const conflictOutputTailLines = 10

// ConflictError means the resolver ran but could not find a set of versions
// that satisfies the constraints. During pin discovery this is an expected
// per-candidate outcome, not an operational failure.
type ConflictError struct {
	Err        error
	SourcePath string
	Output     string
	ExitCode   int
}

func (err *ConflictError) Error() string {
	msg := fmt.Sprintf("resolver found no compatible set of versions for %s (exit code %d)", err.SourcePath, err.ExitCode)

	if tail := outputTail(err.Output, conflictOutputTailLines); tail != "" {
		msg += "\n" + tail
	}

	return msg
}

func (err *ConflictError) Unwrap() error {
	return err.Err
}

// IsConflict reports whether the given error is a resolver conflict.
func IsConflict(err error) bool {
	conflictErr := new(ConflictError)

	return errors.As(err, &conflictErr)
}

func outputTail(output string, limit int) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")

	if len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
