package dbgcast_test

import (
	"context"
	"fmt"

	"github.com/bft-labs/dbgcast"
	core "github.com/bft-labs/dbgcast/pkg/dbgcast"
	"github.com/bft-labs/dbgcast/pkg/event"
	"github.com/bft-labs/dbgcast/pkg/sender"
	"github.com/bft-labs/dbgcast/pkg/stack"
	"github.com/bft-labs/dbgcast/pkg/wire"
)

// printSender decodes payloads and prints a summary instead of opening
// network connections, so the example output is deterministic.
type printSender struct{}

func (printSender) Send(_ context.Context, payload []byte, _ *event.Context, _ sender.ReportFunc) {
	e, err := wire.Decode(payload)
	if err != nil {
		fmt.Println("decode:", err)
		return
	}
	fmt.Printf("app=%s frames=%d\n", e.App, len(e.Frames))
	for _, v := range e.Variables {
		fmt.Printf("  %s (%s) = %v\n", v.Name, v.Type, v.Value)
	}
}

// ExampleNew demonstrates instrumenting a program with dbgcast.
func ExampleNew() {
	d := dbgcast.New(
		dbgcast.WithAppName("billing"),
		dbgcast.WithSender(printSender{}),
		core.WithCapturer(&stack.FixedCapturer{Frames: []stack.Frame{
			{File: "/src/billing/charge.go", Line: 88, Function: "billing.Charge"},
		}}),
	).AddHost("", 0)

	d.Snap(dbgcast.Vars{"total": 129.95, "attempt": 1})

	// Output:
	// app=billing frames=1
	//   attempt (float) = 1
	//   total (float) = 129.95
}

// ExampleDebugger_SnapIf demonstrates conditional snapshots.
func ExampleDebugger_SnapIf() {
	d := dbgcast.New(
		dbgcast.WithAppName("billing"),
		dbgcast.WithSender(printSender{}),
		core.WithCapturer(&stack.FixedCapturer{}),
	).AddHost("", 0)

	retries := 0
	d.SnapIf(retries > 3, dbgcast.Vars{"retries": retries})
	d.SnapIf(true, dbgcast.Vars{"retries": retries})

	// Output:
	// app=billing frames=0
	//   retries (float) = 0
}
