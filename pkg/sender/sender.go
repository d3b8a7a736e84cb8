package sender

import (
	"context"

	"github.com/bft-labs/dbgcast/pkg/event"
)

// ReportFunc receives transport failures. The category is one of the
// event.Category constants.
type ReportFunc func(category string, err error)

// Sender delivers one encoded snapshot payload to the destination in
// the event context. Implementations report failures through the
// injected callback instead of returning an error: a send is one shot,
// best effort, and must never destabilize the instrumented program.
type Sender interface {
	Send(ctx context.Context, payload []byte, ectx *event.Context, report ReportFunc)
}
