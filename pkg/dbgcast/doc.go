// Package dbgcast implements the snapshot dispatcher: a Debugger that
// captures the call stack, serializes caller-supplied variables, builds
// a wire entry, and ships it to every registered destination over the
// configured transport.
//
// Dispatch is best effort. A failing destination is reported through
// the configured error handler and never aborts delivery to the others;
// no failure ever propagates to the instrumented program.
//
//	d := dbgcast.New(dbgcast.WithAppName("billing")).AddHost("", 0)
//	d.Snap(dbgcast.Vars{"order": order, "retries": retries})
package dbgcast
