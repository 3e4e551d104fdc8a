package requirements

import (
	"fmt"
	"strings"
)

// StaleLockFileError is returned when a lock file must not be trusted because
// its constraints source changed after the lock file was generated.
type StaleLockFileError struct {
	File *File
}

func (err *StaleLockFileError) Error() string {
	return fmt.Sprintf("lock file %s is stale, run '%s %s' to update it first", err.File.LockPath(), RemediationCommand, err.File.SourcePath())
}

// IncludeCycleError is returned when requirements files include each other in
// a cycle.
type IncludeCycleError struct {
	Chain []string
}

func (err *IncludeCycleError) Error() string {
	return fmt.Sprintf("requirements include cycle: %s", strings.Join(err.Chain, " -> "))
}
