// Package wire defines the snapshot payload sent to debugging front
// ends and the length-prefixed TCP framing it travels in.
//
// One frame on the wire is:
//
//	[4 bytes] payload length, unsigned 32-bit little-endian
//	[N bytes] payload (JSON, optionally passed through a byte transform
//	          such as gzip compression)
package wire
