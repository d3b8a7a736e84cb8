// Package event holds the domain records shared by the snapshot
// pipeline: the Host destination record, the per-dispatch Context, and
// the error taxonomy reported through the configured handler.
package event
