// Package log provides the logging abstraction for dbgcast components.
//
// Library code accepts the Logger interface and defaults to the no-op
// implementation; the CLI wires the zerolog adapter. Implement Logger to
// route dbgcast logs into your own logging infrastructure:
//
//	logger := log.NewZerolog(zerolog.New(os.Stderr))
//	d := dbgcast.New(dbgcast.WithLogger(logger))
package log
