// Package tui provides the terminal interface of `lstack up`.
//
// While the emulator starts, the view shows a spinner, the elapsed time and
// the most recent log line, fed from the logging package's TUI channel. Once
// the emulator is ready it switches to a table of service endpoints. The
// selected endpoint can be copied to the clipboard.
//
// Keys:
//   - ↑/↓ or k/j: move the selection
//   - y: copy the selected endpoint
//   - q, Ctrl+C: stop the emulator and quit
//
// The same table renderer backs the plain `lstack ports` output.
package tui
