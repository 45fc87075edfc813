// Package executor runs external commands for the emulator fixture.
//
// Two modes are offered:
//
//   - Run executes a command to completion and captures its output. A
//     non-zero exit is reported as *ExternalCommandError with the exit code,
//     standard output and standard error.
//   - Start launches a command detached and returns a *Process whose standard
//     output can be consumed as a stream. The process is registered with a
//     cleanup.Registry so it is killed when the owning process exits, even if
//     nobody tears it down explicitly.
//
// A Command with a single argument that does not name an existing file is a
// shell one-liner and runs as `<shell> -c <line>`. Every command sees the
// inherited environment with an extra directory prepended to PATH, so tools
// installed by a platform package manager are found even when the ambient
// PATH lacks them.
package executor
