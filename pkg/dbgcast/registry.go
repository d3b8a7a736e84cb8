package dbgcast

import (
	"strings"
	"sync"

	"github.com/bft-labs/dbgcast/pkg/event"
)

// HostProvider yields the destination for one dispatch iteration.
// Returning ok == false skips the destination silently for that
// dispatch; it is not an error.
type HostProvider func(ectx *event.Context) (event.Host, bool)

// registry is the append-only list of destination providers.
// Registration order determines fan-out order; identical hosts are not
// de-duplicated.
type registry struct {
	mu        sync.RWMutex
	providers []HostProvider
}

func (r *registry) add(p HostProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers = append(r.providers, p)
}

// snapshot copies the provider list so a dispatch iterates a stable
// view even if hosts are registered concurrently.
func (r *registry) snapshot() []HostProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]HostProvider, len(r.providers))
	copy(out, r.providers)
	return out
}

// AddHost registers a static destination. A blank address defaults to
// the loopback address and a non-positive port to the default port; the
// normalized values are captured at registration time. Returns the
// debugger for chaining.
func (d *Debugger) AddHost(address string, port int) *Debugger {
	address = strings.TrimSpace(address)
	if address == "" {
		address = event.DefaultAddress
	}
	if port <= 0 {
		port = event.DefaultPort
	}
	host := event.Host{Address: address, Port: port, Timeout: d.opts.hostTimeout}
	return d.AddHostProvider(func(*event.Context) (event.Host, bool) {
		return host, true
	})
}

// AddHostProvider registers a destination computed per dispatch.
// Returns the debugger for chaining.
func (d *Debugger) AddHostProvider(p HostProvider) *Debugger {
	if p != nil {
		d.hosts.add(p)
	}
	return d
}
