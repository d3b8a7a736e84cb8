// Package sender delivers encoded snapshot payloads to destinations.
//
// The default TCPSender writes one length-prefixed frame per connection
// and tears the connection down afterwards. Implement the Sender
// interface to deliver snapshots over an alternative transport (e.g. a
// unix socket, a message broker, a capture file in tests).
package sender
