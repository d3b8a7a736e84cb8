// Package listen implements the front-end side of the snapshot
// protocol: a TCP server that accepts one length-prefixed frame per
// connection, decodes the entry, and renders or forwards it.
package listen
