package lifecycle

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"lstack/pkg/logging"
)

const (
	recentLinesKept = 20
	maxLineSize     = 1024 * 1024
)

// lineRing keeps the last n lines written to it.
type lineRing struct {
	mu    sync.Mutex
	lines []string
	max   int
}

func (r *lineRing) add(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
	if len(r.lines) > r.max {
		r.lines = r.lines[len(r.lines)-r.max:]
	}
}

func (r *lineRing) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

// waitForMarker blocks until proc prints marker on a line of its own, its
// output ends, the timeout elapses or ctx is done. Output keeps being drained
// to the debug log after the marker so the child never blocks on a full pipe.
func waitForMarker(ctx context.Context, proc Process, marker string, timeout time.Duration) error {
	found := make(chan struct{})
	ended := make(chan error, 1)
	recent := &lineRing{max: recentLinesKept}

	stdout := proc.Stdout()
	go func() {
		defer stdout.Close()

		matched := false
		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			line := strings.TrimRight(scanner.Text(), "\r")
			logging.Debug("Emulator", "%s", line)
			if matched {
				continue
			}
			if line == marker {
				matched = true
				close(found)
				continue
			}
			recent.add(line)
		}
		if !matched {
			ended <- scanner.Err()
		}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-found:
		return nil
	case err := <-ended:
		return &StartupError{
			Kind:   ErrStartupFailed,
			Reason: fmt.Sprintf("output ended before %q was printed", marker),
			Output: recent.snapshot(),
			Stderr: proc.StderrTail(),
			Err:    err,
		}
	case <-timer.C:
		return &StartupError{
			Kind:   ErrStartupTimeout,
			Reason: fmt.Sprintf("no %q line within %s", marker, timeout),
			Output: recent.snapshot(),
			Stderr: proc.StderrTail(),
		}
	case <-ctx.Done():
		return &StartupError{
			Kind:   ErrStartupFailed,
			Reason: "startup cancelled",
			Output: recent.snapshot(),
			Err:    ctx.Err(),
		}
	}
}
