package executor

import (
	"errors"
	"fmt"
)

// ExternalCommandError is returned when a command run to completion exits non-zero.
type ExternalCommandError struct {
	Command  string
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *ExternalCommandError) Error() string {
	return fmt.Sprintf("command %q failed with exit code %d.\nSTDOUT: %s\nSTDERR: %s",
		e.Command, e.ExitCode, e.Stdout, e.Stderr)
}

// ExitCode extracts the exit code of an ExternalCommandError anywhere in
// err's chain. ok is false when err carries none.
func ExitCode(err error) (code int, ok bool) {
	var cmdErr *ExternalCommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode, true
	}
	return 0, false
}
