package executor

import (
	"os"
	"runtime"
	"syscall"

	"lstack/pkg/logging"
)

// watchdogScript blocks until stdin reaches EOF and then kills its own
// process group. It ignores SIGTERM so a graceful group stop does not
// disarm it.
const watchdogScript = "trap '' TERM; read -r _; kill -KILL 0"

// startPinned runs start on a goroutine locked to its OS thread and keeps
// that thread until wait returns, since the parent death signal fires when
// the forking thread exits.
func startPinned(start func() error, wait func()) error {
	started := make(chan error, 1)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		if err := start(); err != nil {
			started <- err
			return
		}
		started <- nil
		wait()
	}()
	return <-started
}

// startWatchdog adds a shell to the process group pgid that kills the whole
// group once the returned pipe is closed. This process holds the only write
// end, so the group also goes down when this process dies without running
// any cleanup. It returns nil when the watchdog could not be started.
func (e *Executor) startWatchdog(pgid int) *os.File {
	cmd, err := e.command(nil, Argv(e.shell, "-c", watchdogScript))
	if err != nil {
		logging.Warn("Executor", "Failed to build watchdog for PGID %d: %v", pgid, err)
		return nil
	}
	r, w, err := os.Pipe()
	if err != nil {
		logging.Warn("Executor", "Failed to create watchdog pipe for PGID %d: %v", pgid, err)
		return nil
	}
	defer r.Close()

	cmd.Stdin = r
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true, Pgid: pgid}
	if err := cmd.Start(); err != nil {
		// The group is gone when the child exited right away.
		w.Close()
		logging.Debug("Executor", "Watchdog for PGID %d not started: %v", pgid, err)
		return nil
	}
	go func() { _ = cmd.Wait() }()
	return w
}
