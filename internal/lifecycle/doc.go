// Package lifecycle runs the emulator as a process-wide singleton.
//
// A Controller moves through NotStarted, Starting, Ready and Stopped. The
// first EnsureStarted call installs the emulator if needed, launches it and
// waits for the readiness marker on its stdout. Concurrent callers share that
// attempt. A failed attempt leaves the Controller in Failed and is reported to
// every later caller; start a new process to retry.
//
// Teardown kills the emulator's process group and may be called from a signal
// handler, a test hook or a deferred call, any number of times.
package lifecycle
