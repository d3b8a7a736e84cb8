// Package stack captures call-stack snapshots for debug dispatch.
//
// The default RuntimeCapturer walks the live goroutine stack via
// runtime.Callers and keeps only frames that resolve to an existing,
// absolute source file. The Capturer interface exists so the dispatch
// pipeline can be tested against a fixed synthetic stack; see
// FixedCapturer.
package stack
