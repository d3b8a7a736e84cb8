// Package dbgcast lets a running program broadcast point-in-time
// snapshots of its state (variables, call stack, thread info) to remote
// listeners over a simple length-prefixed TCP protocol, for live
// inspection by a debugging front end.
//
// Example usage:
//
//	d := dbgcast.New(
//	    dbgcast.WithAppName("billing"),
//	    dbgcast.WithErrorHandler(func(category string, e dbgcast.Error, _ *dbgcast.EventContext) {
//	        log.Printf("dbgcast %s: %s", category, e.Message)
//	    }),
//	).AddHost("127.0.0.1", 9230)
//
//	d.Snap(dbgcast.Vars{"order": order, "retries": retries})
//	d.SnapIf(retries > 3, dbgcast.Vars{"order": order})
//
// Snapshots are fire-and-forget: there is no delivery guarantee, no
// buffering, no retry. A failure to reach one destination never affects
// the others and never reaches the instrumented program.
package dbgcast

import (
	core "github.com/bft-labs/dbgcast/pkg/dbgcast"
	"github.com/bft-labs/dbgcast/pkg/event"
)

// Debugger dispatches snapshots to registered destinations.
type Debugger = core.Debugger

// Vars maps variable names to the values captured by a snapshot.
type Vars = core.Vars

// Option configures optional behavior of a Debugger.
type Option = core.Option

// Condition decides per destination whether a snapshot is sent.
type Condition = core.Condition

// HostProvider yields a destination per dispatch.
type HostProvider = core.HostProvider

// Host identifies one snapshot destination.
type Host = event.Host

// EventContext is the per-dispatch, per-destination state handed to
// providers, conditions, filters, and error handlers.
type EventContext = event.Context

// Error describes one reported failure.
type Error = event.Error

// Default destination applied by AddHost for blank input.
const (
	DefaultAddress = event.DefaultAddress
	DefaultPort    = event.DefaultPort
)

// New creates a Debugger. See the package of the same name under pkg/
// for the full option surface.
func New(opts ...Option) *Debugger {
	return core.New(opts...)
}

// Commonly used options re-exported for convenient access. The full set
// lives in pkg/dbgcast.
var (
	WithAppName      = core.WithAppName
	WithClientName   = core.WithClientName
	WithMaxDepth     = core.WithMaxDepth
	WithScriptRoot   = core.WithScriptRoot
	WithErrorHandler = core.WithErrorHandler
	WithSender       = core.WithSender
	WithTransform    = core.WithTransform
	WithLogger       = core.WithLogger
)
