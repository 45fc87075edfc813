package installer

import "fmt"

// Step names the install phase that failed.
type Step string

const (
	StepClean Step = "clean"
	StepFetch Step = "fetch"
	StepBuild Step = "build"
)

// InstallationError wraps the failure of one install step. For fetch and
// build the wrapped error is usually an *executor.ExternalCommandError whose
// output is passed through untouched.
type InstallationError struct {
	Step Step
	Dir  string
	Err  error
}

func (e *InstallationError) Error() string {
	return fmt.Sprintf("emulator installation into %s failed at %s step: %v", e.Dir, e.Step, e.Err)
}

func (e *InstallationError) Unwrap() error {
	return e.Err
}
