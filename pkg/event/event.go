package event

import (
	"net"
	"strconv"
	"time"

	"github.com/bft-labs/dbgcast/pkg/stack"
	"github.com/bft-labs/dbgcast/pkg/vars"
)

// Defaults applied when a host is registered with a blank address or a
// non-positive port.
const (
	DefaultAddress = "127.0.0.1"
	DefaultPort    = 9230

	// DefaultTimeout is the advisory connect/write timeout applied by
	// the default transport when a host carries none.
	DefaultTimeout = 10 * time.Second
)

// Host identifies one snapshot destination. Timeout is advisory: the
// default transport applies it as a connect and write deadline, custom
// senders may ignore it.
type Host struct {
	Address string
	Port    int
	Timeout time.Duration
}

// Addr returns the host in dialable "address:port" form.
func (h Host) Addr() string {
	return net.JoinHostPort(h.Address, strconv.Itoa(h.Port))
}

// Context is the ephemeral state of one dispatch to one destination. It
// is owned exclusively by that dispatch iteration: never shared across
// destinations, never reused across calls. The backtrace and timestamp
// are captured once per dispatch call and are read-only here.
type Context struct {
	Backtrace    []stack.Frame
	CallingFrame *stack.Frame
	Condition    any
	Host         Host
	Timestamp    time.Time
	Variables    []vars.Entry
}

// Error categories routed through an ErrorHandler. Ordinary operation
// never surfaces an error to the instrumented program; the worst outcome
// of any failure is one undelivered snapshot for one destination.
const (
	// CategoryException covers any failure while building, filtering,
	// encoding, or transforming a snapshot for one destination.
	CategoryException = "exception"

	// CategoryConnection means the destination was unreachable.
	CategoryConnection = "connection"

	// CategorySendDataLength means the length prefix could not be written.
	CategorySendDataLength = "send.datalength"

	// CategorySendJSON means the payload could not be written.
	CategorySendJSON = "send.json"
)

// Error describes a single reported failure.
type Error struct {
	Code    string
	Message string
}

// ErrorHandler receives every failure the dispatch pipeline swallows.
// A nil handler drops errors silently.
type ErrorHandler func(category string, e Error, ectx *Context)
