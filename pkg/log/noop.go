package log

// Noop discards all log messages. It is the default for library
// components so that instrumentation stays silent unless a caller opts
// in to logging.
type Noop struct{}

// NewNoop returns a logger that discards everything.
func NewNoop() Noop {
	return Noop{}
}

func (Noop) Debug(msg string, fields ...Field) {}
func (Noop) Info(msg string, fields ...Field)  {}
func (Noop) Warn(msg string, fields ...Field)  {}
func (Noop) Error(msg string, fields ...Field) {}
