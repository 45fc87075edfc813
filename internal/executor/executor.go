package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"lstack/internal/cleanup"
	"lstack/pkg/logging"
)

// Result is the captured outcome of a command run to completion.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Options configures an Executor.
type Options struct {
	// ExtraPath is prepended to PATH for every command.
	ExtraPath string
	// Shell interprets one-liners. Defaults to bash.
	Shell string
	// Cleanup receives a termination hook for every detached process.
	// When nil, detached processes are not tied to the caller's exit.
	Cleanup *cleanup.Registry
}

// Executor runs external commands either to completion or detached.
type Executor struct {
	extraPath string
	shell     string
	cleanup   *cleanup.Registry
}

// New creates an Executor.
func New(opts Options) *Executor {
	shell := opts.Shell
	if shell == "" {
		shell = "bash"
	}
	return &Executor{
		extraPath: opts.ExtraPath,
		shell:     shell,
		cleanup:   opts.Cleanup,
	}
}

func (e *Executor) command(ctx context.Context, c Command) (*exec.Cmd, error) {
	argv, err := c.argv(e.shell)
	if err != nil {
		return nil, err
	}
	path := searchPath(e.extraPath)
	name := lookPath(argv[0], path)

	var cmd *exec.Cmd
	if ctx != nil {
		cmd = exec.CommandContext(ctx, name, argv[1:]...)
	} else {
		cmd = exec.Command(name, argv[1:]...)
	}
	cmd.Dir = c.Dir
	cmd.Env = environ(e.extraPath, c.Env)
	return cmd, nil
}

// Run executes c and blocks until it exits. A non-zero exit yields an
// *ExternalCommandError carrying the captured output.
func (e *Executor) Run(ctx context.Context, c Command) (*Result, error) {
	cmd, err := e.command(ctx, c)
	if err != nil {
		return nil, err
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	logging.Debug("Executor", "Running: %s", c)
	runErr := cmd.Run()

	res := &Result{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}
	if runErr == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, &ExternalCommandError{
			Command:  c.String(),
			ExitCode: res.ExitCode,
			Stdout:   res.Stdout,
			Stderr:   res.Stderr,
		}
	}
	return res, fmt.Errorf("failed to run %q: %w", c.String(), runErr)
}

// Start launches c without waiting for it. The child gets its own process
// group so termination reaches everything it spawns, and a termination hook
// stays registered with the cleanup registry until the child exits. The
// group is also killed if this process dies without running that hook.
func (e *Executor) Start(c Command) (*Process, error) {
	cmd, err := e.command(nil, c)
	if err != nil {
		return nil, err
	}
	cmd.SysProcAttr = detachedAttr()

	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe for %q: %w", c.String(), err)
	}
	stderrR, stderrW, err := os.Pipe()
	if err != nil {
		stdoutR.Close()
		stdoutW.Close()
		return nil, fmt.Errorf("stderr pipe for %q: %w", c.String(), err)
	}
	cmd.Stdout = stdoutW
	cmd.Stderr = stderrW

	var p *Process
	registered := make(chan struct{})
	err = startPinned(cmd.Start, func() {
		<-registered
		p.wait()
	})
	// The child holds its own copies now.
	stdoutW.Close()
	stderrW.Close()
	if err != nil {
		stdoutR.Close()
		stderrR.Close()
		return nil, fmt.Errorf("failed to start %q: %w", c.String(), err)
	}

	p = newProcess(cmd, c.String(), stdoutR, stderrR)
	p.watchdog = e.startWatchdog(p.Pid())
	if e.cleanup != nil {
		p.release = e.cleanup.Register(
			fmt.Sprintf("terminate %s (PID %d)", c, p.Pid()),
			func() { _ = p.Terminate(0) },
		)
	}
	logging.Debug("Executor", "Started %s (PID: %d)", c, p.Pid())

	close(registered)
	return p, nil
}
