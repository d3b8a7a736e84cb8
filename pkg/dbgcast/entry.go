package dbgcast

import (
	"path/filepath"
	"strconv"

	"github.com/bft-labs/dbgcast/pkg/event"
	"github.com/bft-labs/dbgcast/pkg/lazy"
	"github.com/bft-labs/dbgcast/pkg/sender"
	"github.com/bft-labs/dbgcast/pkg/wire"
)

// buildEntry assembles the wire payload for one destination: resolved
// app/client names, thread info, the relativized stack-frame list with
// its two synthetic scopes, and the serialized variables.
func (d *Debugger) buildEntry(ectx *event.Context) *wire.Entry {
	e := &wire.Entry{
		App:       lazy.Resolve(d.opts.appName, ectx),
		Client:    lazy.Resolve(d.opts.clientName, ectx),
		Variables: ectx.Variables,
	}

	thread := lazy.Resolve(d.opts.thread, ectx)
	if thread == (wire.Thread{}) {
		thread = wire.Thread{ID: 1, Name: "main"}
	}
	e.Threads = []wire.Thread{thread}

	root := lazy.Resolve(d.opts.scriptRoot, ectx)
	funcLabel := lazy.Resolve(d.opts.funcLabel, ectx)
	if funcLabel == "" {
		funcLabel = DefaultFunctionScopeLabel
	}
	dbgLabel := lazy.Resolve(d.opts.dbgLabel, ectx)
	if dbgLabel == "" {
		dbgLabel = DefaultDebuggerScopeLabel
	}

	e.Frames = make([]wire.Frame, 0, len(ectx.Backtrace))
	for i, f := range ectx.Backtrace {
		e.Frames = append(e.Frames, wire.Frame{
			Index:    i,
			File:     relativize(root, f.File),
			Name:     filepath.Base(f.File),
			Line:     f.Line,
			LineText: strconv.Itoa(f.Line),
			Function: f.Function,
			Scopes: []wire.Scope{
				{Name: funcLabel},
				{Name: dbgLabel},
			},
		})
	}
	return e
}

// encodeEntry serializes the entry and applies the optional byte
// transform to the encoded payload.
func encodeEntry(e *wire.Entry, transform sender.Transform) ([]byte, error) {
	payload, err := wire.Encode(e)
	if err != nil {
		return nil, err
	}
	if transform != nil {
		payload, err = transform(payload)
		if err != nil {
			return nil, err
		}
	}
	return payload, nil
}

// relativize rewrites an absolute path relative to root for display,
// falling back to the original path on any failure.
func relativize(root, path string) string {
	if root == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
