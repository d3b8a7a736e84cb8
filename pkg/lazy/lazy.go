package lazy

import "github.com/bft-labs/dbgcast/pkg/event"

// MaxResolveDepth caps how many provider links Resolve follows. Hitting
// the cap is not an error: the last value seen is returned as-is. The
// cap is a safety valve against provider chains that never terminate.
const MaxResolveDepth = 32

// Value is a configuration field that is either a constant or a provider
// computed from dispatch-time context. Providers may themselves yield
// further providers; Resolve follows the chain with bounded recursion.
//
// The zero Value resolves to T's zero value and reports IsZero, which
// lets options fall back to their defaults when a field was never set.
type Value[T any] struct {
	constant T
	fn       func(*event.Context) Value[T]
	set      bool
}

// Const wraps a fixed value.
func Const[T any](v T) Value[T] {
	return Value[T]{constant: v, set: true}
}

// Func wraps a provider invoked once per resolution.
func Func[T any](fn func(*event.Context) T) Value[T] {
	return Value[T]{
		fn:  func(ctx *event.Context) Value[T] { return Const(fn(ctx)) },
		set: true,
	}
}

// Chain wraps a provider that may itself yield another lazy Value.
func Chain[T any](fn func(*event.Context) Value[T]) Value[T] {
	return Value[T]{fn: fn, set: true}
}

// IsZero reports whether the value was never set.
func (v Value[T]) IsZero() bool {
	return !v.set
}

// Resolve follows provider links until a constant is produced or
// MaxResolveDepth links have been traversed.
func Resolve[T any](v Value[T], ctx *event.Context) T {
	for i := 0; i < MaxResolveDepth; i++ {
		if v.fn == nil {
			return v.constant
		}
		v = v.fn(ctx)
	}
	return v.constant
}
