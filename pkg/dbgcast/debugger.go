package dbgcast

import (
	"context"
	"fmt"
	"time"

	"github.com/bft-labs/dbgcast/pkg/event"
	"github.com/bft-labs/dbgcast/pkg/lazy"
	"github.com/bft-labs/dbgcast/pkg/log"
	"github.com/bft-labs/dbgcast/pkg/sender"
	"github.com/bft-labs/dbgcast/pkg/stack"
	"github.com/bft-labs/dbgcast/pkg/vars"
)

// Vars is the mapping of variable names to values captured by a
// snapshot. Names are serialized in case-insensitive ascending order so
// snapshots are deterministic.
type Vars map[string]any

// Condition decides per destination whether a snapshot is sent. Only a
// result of exactly false suppresses the send; every other result,
// including zero values and nil, proceeds. The rule is deliberate: a
// condition may return contextual data that counts as "send".
type Condition func(ectx *event.Context) any

// Debugger dispatches snapshots of program state to registered
// destinations. Instances are independent; create as many as needed.
// All methods are safe for concurrent use: each dispatch call owns its
// event contexts and reference counters, and the host registry is the
// only shared state.
type Debugger struct {
	opts   options
	hosts  *registry
	sender sender.Sender
}

// New creates a Debugger. Without options it captures real stacks,
// sends over TCP, logs nothing, and reports errors nowhere; register at
// least one host before snapping.
func New(opts ...Option) *Debugger {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	d := &Debugger{opts: o, hosts: &registry{}}
	if o.sender != nil {
		d.sender = o.sender
	} else {
		d.sender = sender.NewTCPSender(o.logger)
	}
	return d
}

// Snap sends an unconditional snapshot of the given variables to every
// registered destination.
func (d *Debugger) Snap(vs Vars) {
	d.snap(nil, vs, 1)
}

// SnapSkip is Snap with additional caller frames dropped from the
// captured stack, for use inside instrumentation helpers.
func (d *Debugger) SnapSkip(vs Vars, skip int) {
	d.snap(nil, vs, skip+1)
}

// SnapIf sends a snapshot when cond is true. A false cond suppresses
// every destination without touching the network.
func (d *Debugger) SnapIf(cond bool, vs Vars) {
	d.snap(func(*event.Context) any { return cond }, vs, 1)
}

// SnapFunc evaluates cond once per destination against that
// destination's event context. See Condition for the suppression rule.
func (d *Debugger) SnapFunc(cond Condition, vs Vars) {
	d.snap(cond, vs, 1)
}

// snap fans one dispatch out over all registered destinations,
// sequentially, in registration order. The backtrace and timestamp are
// captured once and shared read-only; everything else is rebuilt per
// destination.
func (d *Debugger) snap(cond Condition, vs Vars, skip int) {
	backtrace := d.opts.capturer.Capture(skip + 1)
	now := time.Now()
	for _, hp := range d.hosts.snapshot() {
		d.dispatchOne(hp, cond, vs, backtrace, now)
	}
}

// dispatchOne runs the full pipeline for a single destination. Any
// panic or error anywhere in the pipeline is converted into an
// "exception" report and must never abort dispatch to the remaining
// destinations.
func (d *Debugger) dispatchOne(hp HostProvider, cond Condition, vs Vars, backtrace []stack.Frame, ts time.Time) {
	ectx := &event.Context{Backtrace: backtrace, Timestamp: ts}
	if len(backtrace) > 0 {
		calling := backtrace[0]
		ectx.CallingFrame = &calling
	}

	defer func() {
		if r := recover(); r != nil {
			d.report(event.CategoryException, event.Error{Message: fmt.Sprint(r)}, ectx)
		}
	}()

	host, ok := hp(ectx)
	if !ok {
		return
	}
	ectx.Host = host

	maxDepth := lazy.Resolve(d.opts.maxDepth, ectx)
	if maxDepth <= 0 {
		maxDepth = vars.DefaultMaxDepth
	}

	if len(vs) > 0 {
		ectx.Variables = serializeVars(vs, maxDepth)
	}

	if cond != nil {
		res := cond(ectx)
		ectx.Condition = res
		if b, isBool := res.(bool); isBool && !b {
			d.opts.logger.Debug("snapshot suppressed by condition",
				log.String("addr", host.Addr()))
			return
		}
	}

	entry := d.buildEntry(ectx)

	if d.opts.filter != nil {
		entry = d.opts.filter(entry, ectx)
		if entry == nil {
			return
		}
	}

	payload, err := encodeEntry(entry, d.opts.transform)
	if err != nil {
		d.report(event.CategoryException, event.Error{Message: err.Error()}, ectx)
		return
	}
	if len(payload) == 0 {
		return
	}

	d.sender.Send(context.Background(), payload, ectx, func(category string, err error) {
		d.report(category, event.Error{Message: err.Error()}, ectx)
	})
}

// serializeVars serializes the variable mapping with one shared
// reference counter, names ordered like object properties.
func serializeVars(vs Vars, maxDepth int) []vars.Entry {
	names := make([]string, 0, len(vs))
	for name := range vs {
		names = append(names, name)
	}
	vars.SortNames(names)

	counter := &vars.Counter{}
	entries := make([]vars.Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, vars.Serialize(name, vs[name], counter, 0, maxDepth))
	}
	return entries
}

func (d *Debugger) report(category string, e event.Error, ectx *event.Context) {
	d.opts.logger.Debug("snapshot error",
		log.String("category", category),
		log.String("message", e.Message))
	if d.opts.onError != nil {
		d.opts.onError(category, e, ectx)
	}
}
