// Package endpoint turns the emulator's service ports into base URLs.
package endpoint

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"lstack/internal/snapshot"
)

// ErrUnknownService is returned for services without a port in the snapshot.
var ErrUnknownService = errors.New("unknown service")

// SnapshotSource provides the port snapshot once the emulator is ready.
type SnapshotSource interface {
	Snapshot() (*snapshot.Snapshot, error)
}

type staticSource struct {
	snap *snapshot.Snapshot
}

func (s staticSource) Snapshot() (*snapshot.Snapshot, error) {
	return s.snap, nil
}

// Static wraps a fixed snapshot, e.g. one loaded from disk for an emulator
// started elsewhere.
func Static(snap *snapshot.Snapshot) SnapshotSource {
	return staticSource{snap: snap}
}

// Options shapes the resolved URLs.
type Options struct {
	Scheme string
	Host   string
	// VirtualHosts replaces Host for the listed services.
	VirtualHosts map[string]string
}

// Resolver maps service names to scheme://host:port/ URLs.
type Resolver struct {
	source       SnapshotSource
	scheme       string
	host         string
	virtualHosts map[string]string
}

// NewResolver creates a Resolver reading ports from source.
func NewResolver(source SnapshotSource, opts Options) *Resolver {
	r := &Resolver{
		source:       source,
		scheme:       opts.Scheme,
		host:         opts.Host,
		virtualHosts: make(map[string]string, len(opts.VirtualHosts)),
	}
	if r.scheme == "" {
		r.scheme = "http"
	}
	if r.host == "" {
		r.host = "localhost"
	}
	for svc, host := range opts.VirtualHosts {
		r.virtualHosts[normalize(svc)] = host
	}
	return r
}

func normalize(service string) string {
	return strings.ToLower(strings.TrimSpace(service))
}

// Resolve returns the base URL of service. It fails with the source's error
// (lifecycle.ErrNotReady) before the emulator is ready.
func (r *Resolver) Resolve(service string) (string, error) {
	snap, err := r.source.Snapshot()
	if err != nil {
		return "", err
	}
	return r.resolve(snap, service)
}

func (r *Resolver) resolve(snap *snapshot.Snapshot, service string) (string, error) {
	port, ok := snap.Port(service)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownService, service)
	}
	return fmt.Sprintf("%s://%s/", r.scheme, net.JoinHostPort(r.Host(service), strconv.Itoa(port))), nil
}

// Host returns the host name used in URLs for service.
func (r *Resolver) Host(service string) string {
	if host, ok := r.virtualHosts[normalize(service)]; ok && host != "" {
		return host
	}
	return r.host
}

// All resolves every service in the snapshot.
func (r *Resolver) All() (map[string]string, error) {
	snap, err := r.source.Snapshot()
	if err != nil {
		return nil, err
	}
	urls := make(map[string]string, snap.Len())
	for _, svc := range snap.Services() {
		url, err := r.resolve(snap, svc)
		if err != nil {
			return nil, err
		}
		urls[svc] = url
	}
	return urls, nil
}

// EnvName is the environment variable carrying service's URL, TEST_<SVC>_URL.
func EnvName(service string) string {
	name := strings.ToUpper(normalize(service))
	name = strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, name)
	return "TEST_" + name + "_URL"
}
