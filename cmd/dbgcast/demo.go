package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bft-labs/dbgcast"
	"github.com/bft-labs/dbgcast/pkg/log"
)

// demoCommand wires a debugger against a listener and sends a couple of
// sample snapshots, as a quick end-to-end check of the protocol.
func demoCommand() *cobra.Command {
	var (
		address string
		port    int
		app     string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Send sample snapshots to a listener",
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed error
			d := dbgcast.New(
				dbgcast.WithAppName(app),
				dbgcast.WithLogger(log.NewConsole()),
				dbgcast.WithErrorHandler(func(category string, e dbgcast.Error, _ *dbgcast.EventContext) {
					failed = fmt.Errorf("%s: %s", category, e.Message)
				}),
			).AddHost(address, port)

			order := map[string]any{
				"id":     "ord-20260831-0001",
				"total":  129.95,
				"items":  []string{"keyboard", "trackball"},
				"urgent": false,
			}

			d.Snap(dbgcast.Vars{"order": order, "attempt": 1})
			d.SnapIf(len(order) > 2, dbgcast.Vars{"order": order})

			if failed != nil {
				return failed
			}
			fmt.Println("sent 2 snapshots")
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&address, "address", dbgcast.DefaultAddress, "listener address")
	f.IntVar(&port, "port", dbgcast.DefaultPort, "listener port")
	f.StringVar(&app, "app", "dbgcast-demo", "application name attached to entries")

	return cmd
}
