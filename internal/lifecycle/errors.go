package lifecycle

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotReady is returned when the configuration snapshot is requested
	// before the emulator reported readiness.
	ErrNotReady = errors.New("emulator is not ready")
	// ErrStopped is returned by start requests after teardown.
	ErrStopped = errors.New("emulator has been stopped")
	// ErrStartupTimeout matches a StartupError caused by the readiness deadline.
	ErrStartupTimeout = errors.New("emulator did not become ready in time")
	// ErrStartupFailed matches every other StartupError.
	ErrStartupFailed = errors.New("emulator failed to start")
)

// StartupError describes why the emulator never reached readiness.
// errors.Is matches it against ErrStartupTimeout or ErrStartupFailed.
type StartupError struct {
	Kind   error
	Reason string
	// Output holds the last stdout lines seen before the failure.
	Output []string
	Stderr string
	Err    error
}

func (e *StartupError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if len(e.Output) > 0 {
		b.WriteString("\nSTDOUT (tail):\n")
		b.WriteString(strings.Join(e.Output, "\n"))
	}
	if e.Stderr != "" {
		b.WriteString("\nSTDERR (tail):\n")
		b.WriteString(e.Stderr)
	}
	return b.String()
}

func (e *StartupError) Is(target error) bool {
	return target == e.Kind
}

func (e *StartupError) Unwrap() error {
	return e.Err
}
