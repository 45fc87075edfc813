package executor

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"lstack/pkg/logging"
)

const stderrTailSize = 64 * 1024

// Process is a detached child started by Executor.Start.
type Process struct {
	cmd     *exec.Cmd
	display string
	stdout  *os.File
	stderr  *tailBuffer

	exited  chan struct{}
	waitErr error

	release  func()
	watchdog *os.File

	mu          sync.Mutex
	terminating bool
}

func newProcess(cmd *exec.Cmd, display string, stdout, stderr *os.File) *Process {
	p := &Process{
		cmd:     cmd,
		display: display,
		stdout:  stdout,
		stderr:  newTailBuffer(stderrTailSize),
		exited:  make(chan struct{}),
	}
	go func() {
		defer stderr.Close()
		_, _ = io.Copy(p.stderr, stderr)
	}()
	return p
}

func (p *Process) wait() {
	err := p.cmd.Wait()
	p.waitErr = err
	close(p.exited)
	if p.watchdog != nil {
		// Takes down whatever the child left behind in its group.
		p.watchdog.Close()
	}
	if p.release != nil {
		p.release()
	}
	if err != nil {
		logging.Debug("Executor", "%s (PID: %d) exited: %v", p.display, p.Pid(), err)
	} else {
		logging.Debug("Executor", "%s (PID: %d) exited", p.display, p.Pid())
	}
}

// Pid returns the child's process id.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Stdout is the child's standard output stream. It reaches EOF once every
// holder of the write end, the child included, has gone away.
func (p *Process) Stdout() io.ReadCloser {
	return p.stdout
}

// StderrTail returns the most recent standard error output.
func (p *Process) StderrTail() string {
	return p.stderr.String()
}

// Exited is closed when the child has been reaped.
func (p *Process) Exited() <-chan struct{} {
	return p.exited
}

// Wait blocks until the child exits and returns its exit error.
func (p *Process) Wait() error {
	<-p.exited
	return p.waitErr
}

// Terminate sends SIGTERM to the child's process group and follows up with
// SIGKILL after grace, or right away when grace <= 0. It does not wait for
// the child to exit. Once a termination is under way, further calls only
// escalate: one with grace <= 0 sends SIGKILL, any other does nothing.
func (p *Process) Terminate(grace time.Duration) error {
	p.mu.Lock()
	first := !p.terminating
	p.terminating = true
	p.mu.Unlock()

	if first {
		return p.terminate(grace)
	}
	if grace > 0 {
		return nil
	}
	return p.kill()
}

func (p *Process) kill() error {
	select {
	case <-p.exited:
		return nil
	default:
	}
	logging.Debug("Executor", "Sending SIGKILL to %s (PGID: %d)", p.display, p.Pid())
	return signalGroup(p.Pid(), syscall.SIGKILL)
}

func (p *Process) terminate(grace time.Duration) error {
	select {
	case <-p.exited:
		return nil
	default:
	}

	pgid := p.Pid()
	logging.Debug("Executor", "Sending SIGTERM to %s (PGID: %d)", p.display, pgid)
	termErr := signalGroup(pgid, syscall.SIGTERM)

	if grace <= 0 {
		return errors.Join(termErr, signalGroup(pgid, syscall.SIGKILL))
	}

	go func() {
		select {
		case <-p.exited:
		case <-time.After(grace):
			logging.Debug("Executor", "%s still running after %s, sending SIGKILL", p.display, grace)
			_ = signalGroup(pgid, syscall.SIGKILL)
		}
	}()
	return termErr
}

// signalGroup treats an already-gone group as success.
func signalGroup(pgid int, sig syscall.Signal) error {
	err := syscall.Kill(-pgid, sig)
	if errors.Is(err, syscall.ESRCH) {
		return nil
	}
	return err
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	mu  sync.Mutex
	buf []byte
	max int
}

func newTailBuffer(max int) *tailBuffer {
	return &tailBuffer{max: max}
}

func (t *tailBuffer) Write(b []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = append(t.buf, b...)
	if over := len(t.buf) - t.max; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	return len(b), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.buf)
}
