// Package snapshot extracts service ports from the emulator's configuration
// artifact.
//
// The artifact is a script in a foreign language; only lines of the form
// `DEFAULT_PORT_<SERVICE> = <NUMBER>` carry information we need, so this is a
// line scanner over `NAME = NUMBER` pairs rather than a parser.
package snapshot

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// PortPrefix marks the assignments that name a service port.
const PortPrefix = "DEFAULT_PORT_"

// Snapshot is an immutable service name to TCP port mapping. Names are case-insensitive.
type Snapshot struct {
	ports map[string]int
}

// New builds a Snapshot from a service to port map.
func New(ports map[string]int) *Snapshot {
	s := &Snapshot{ports: make(map[string]int, len(ports))}
	for name, port := range ports {
		s.ports[normalize(name)] = port
	}
	return s
}

func normalize(service string) string {
	return strings.ToLower(strings.TrimSpace(service))
}

// Parse scans r for DEFAULT_PORT_<SERVICE> = <NUMBER> assignments.
func Parse(r io.Reader) (*Snapshot, error) {
	ports := make(map[string]int)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		name, value, ok := parseAssignment(scanner.Text())
		if !ok || !strings.HasPrefix(name, PortPrefix) {
			continue
		}
		service := name[len(PortPrefix):]
		if service == "" {
			continue
		}
		ports[normalize(service)] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan configuration artifact: %w", err)
	}
	return &Snapshot{ports: ports}, nil
}

// parseAssignment recognises `NAME = NUMBER`, tolerating surrounding
// whitespace and a trailing `#` comment.
func parseAssignment(line string) (name string, value int, ok bool) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	lhs, rhs, found := strings.Cut(line, "=")
	if !found {
		return "", 0, false
	}
	name = strings.TrimSpace(lhs)
	if name == "" || strings.ContainsAny(name, " \t") {
		return "", 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(rhs))
	if err != nil || n < 0 {
		return "", 0, false
	}
	return name, n, true
}

// Load reads and parses the artifact at path.
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open configuration artifact: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Port returns the port registered for service.
func (s *Snapshot) Port(service string) (int, bool) {
	if s == nil {
		return 0, false
	}
	port, ok := s.ports[normalize(service)]
	return port, ok
}

// Services returns the known service names, sorted.
func (s *Snapshot) Services() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.ports))
	for name := range s.ports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of services.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ports)
}

// WithOverrides returns a copy of s where the given ports replace or add entries.
func (s *Snapshot) WithOverrides(overrides map[string]int) *Snapshot {
	merged := make(map[string]int, s.Len()+len(overrides))
	if s != nil {
		for name, port := range s.ports {
			merged[name] = port
		}
	}
	for name, port := range overrides {
		merged[normalize(name)] = port
	}
	return &Snapshot{ports: merged}
}
