// Package vars serializes arbitrary in-memory values into the bounded,
// reference-numbered variable trees carried by debug snapshots.
//
// Serialization is best effort by design: unknown shapes degrade to
// string conversion, recursion stops at a configurable depth ceiling
// (with a sentinel substituted past it), and nothing in this package
// panics or returns an error to the instrumented program.
package vars
