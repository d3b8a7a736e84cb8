package dbgcast

import (
	"time"

	"github.com/bft-labs/dbgcast/pkg/event"
	"github.com/bft-labs/dbgcast/pkg/lazy"
	"github.com/bft-labs/dbgcast/pkg/log"
	"github.com/bft-labs/dbgcast/pkg/sender"
	"github.com/bft-labs/dbgcast/pkg/stack"
	"github.com/bft-labs/dbgcast/pkg/wire"
)

// Default labels for the two synthetic scopes attached to every frame.
const (
	DefaultFunctionScopeLabel = "current function"
	DefaultDebuggerScopeLabel = "debugger"
)

// EntryFilter inspects or rewrites a built entry before encoding.
// Returning nil suppresses the send for that destination.
type EntryFilter func(e *wire.Entry, ectx *event.Context) *wire.Entry

// Option configures optional behavior of a Debugger.
type Option func(*options)

type options struct {
	appName     lazy.Value[string]
	clientName  lazy.Value[string]
	thread      lazy.Value[wire.Thread]
	funcLabel   lazy.Value[string]
	dbgLabel    lazy.Value[string]
	scriptRoot  lazy.Value[string]
	maxDepth    lazy.Value[int]
	filter      EntryFilter
	transform   sender.Transform
	onError     event.ErrorHandler
	sender      sender.Sender
	capturer    stack.Capturer
	logger      log.Logger
	hostTimeout time.Duration
}

func defaultOptions() options {
	return options{
		logger:   log.NewNoop(),
		capturer: stack.NewRuntimeCapturer(),
	}
}

// WithAppName sets a fixed application name attached to every entry.
func WithAppName(name string) Option {
	return WithAppNameValue(lazy.Const(name))
}

// WithAppNameValue sets the application name as a lazy value resolved
// per dispatch.
func WithAppNameValue(v lazy.Value[string]) Option {
	return func(o *options) { o.appName = v }
}

// WithClientName sets a fixed target client name attached to every entry.
func WithClientName(name string) Option {
	return WithClientNameValue(lazy.Const(name))
}

// WithClientNameValue sets the target client name as a lazy value.
func WithClientNameValue(v lazy.Value[string]) Option {
	return func(o *options) { o.clientName = v }
}

// WithThread sets a fixed current-thread record. Without it, entries
// carry a single synthetic thread.
func WithThread(t wire.Thread) Option {
	return WithThreadValue(lazy.Const(t))
}

// WithThreadValue sets the current-thread record as a lazy value.
func WithThreadValue(v lazy.Value[wire.Thread]) Option {
	return func(o *options) { o.thread = v }
}

// WithScopeLabels overrides the two synthetic scope labels attached to
// every frame.
func WithScopeLabels(function, debugger string) Option {
	return func(o *options) {
		o.funcLabel = lazy.Const(function)
		o.dbgLabel = lazy.Const(debugger)
	}
}

// WithScopeLabelValues sets the synthetic scope labels as lazy values.
func WithScopeLabelValues(function, debugger lazy.Value[string]) Option {
	return func(o *options) {
		o.funcLabel = function
		o.dbgLabel = debugger
	}
}

// WithScriptRoot sets the directory frame file paths are relativized
// against for display. Relativization never affects control flow and
// falls back to the absolute path on any failure.
func WithScriptRoot(root string) Option {
	return WithScriptRootValue(lazy.Const(root))
}

// WithScriptRootValue sets the script root as a lazy value.
func WithScriptRootValue(v lazy.Value[string]) Option {
	return func(o *options) { o.scriptRoot = v }
}

// WithMaxDepth sets the variable serialization depth ceiling. Values at
// or past the ceiling are replaced by a sentinel. Non-positive values
// fall back to the default of 32.
func WithMaxDepth(depth int) Option {
	return WithMaxDepthValue(lazy.Const(depth))
}

// WithMaxDepthValue sets the depth ceiling as a lazy value resolved per
// dispatch.
func WithMaxDepthValue(v lazy.Value[int]) Option {
	return func(o *options) { o.maxDepth = v }
}

// WithEntryFilter sets a filter applied to every built entry before
// encoding. A nil result suppresses the send for that destination.
func WithEntryFilter(f EntryFilter) Option {
	return func(o *options) { o.filter = f }
}

// WithTransform sets a byte transform (e.g. sender.Gzip()) applied to
// the encoded payload before framing.
func WithTransform(t sender.Transform) Option {
	return func(o *options) { o.transform = t }
}

// WithErrorHandler routes swallowed failures to the handler. Without
// one, failures are dropped silently.
func WithErrorHandler(h event.ErrorHandler) Option {
	return func(o *options) { o.onError = h }
}

// WithSender replaces the default TCP transport.
func WithSender(s sender.Sender) Option {
	return func(o *options) { o.sender = s }
}

// WithCapturer replaces the runtime stack capturer, typically with a
// stack.FixedCapturer in tests.
func WithCapturer(c stack.Capturer) Option {
	return func(o *options) { o.capturer = c }
}

// WithLogger sets a logger for dispatch diagnostics. Defaults to no-op.
func WithLogger(l log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithHostTimeout sets the advisory timeout stamped onto hosts
// registered via AddHost.
func WithHostTimeout(d time.Duration) Option {
	return func(o *options) { o.hostTimeout = d }
}
