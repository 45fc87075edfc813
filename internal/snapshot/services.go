package snapshot

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	listSeparator = regexp.MustCompile(`\s*,\s*`)
	portSeparator = regexp.MustCompile(`[:=]`)
)

// ServiceList is the parsed form of the emulator's SERVICES setting.
type ServiceList struct {
	// Names lists the enabled services in configuration order.
	Names []string
	// Ports holds the services that were given an explicit port.
	Ports map[string]int
}

// ParseServices parses entries like "s3", "sqs:4576" or "kinesis=4568".
// Enabling "es" without "elasticsearch" enables "elasticsearch" too, as the
// emulator needs the backing search service for the ES API.
func ParseServices(entries []string) (ServiceList, error) {
	list := ServiceList{Ports: make(map[string]int)}
	seen := make(map[string]bool)

	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			list.Names = append(list.Names, name)
		}
	}

	for _, entry := range entries {
		for _, item := range listSeparator.Split(strings.TrimSpace(entry), -1) {
			if item == "" {
				continue
			}
			parts := portSeparator.Split(item, -1)
			name := normalize(parts[0])
			if name == "" {
				return ServiceList{}, fmt.Errorf("invalid service entry %q", item)
			}
			if len(parts) > 1 {
				port, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
				if err != nil || port <= 0 || port > 65535 {
					return ServiceList{}, fmt.Errorf("invalid port in service entry %q", item)
				}
				list.Ports[name] = port
			}
			add(name)
		}
	}

	if seen["es"] && !seen["elasticsearch"] {
		add("elasticsearch")
	}
	return list, nil
}

// Env renders the list back into the emulator's SERVICES value.
func (l ServiceList) Env() string {
	items := make([]string, 0, len(l.Names))
	for _, name := range l.Names {
		if port, ok := l.Ports[name]; ok {
			items = append(items, fmt.Sprintf("%s:%d", name, port))
			continue
		}
		items = append(items, name)
	}
	return strings.Join(items, ",")
}
