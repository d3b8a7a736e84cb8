package stack

import (
	"os"
	"path/filepath"
	"runtime"
)

// maxFrames bounds how much of the call stack a single capture walks.
const maxFrames = 64

// Frame is one resolved entry of a captured call stack, innermost first.
// Column is zero when the platform does not expose column information.
type Frame struct {
	File     string
	Line     int
	Column   int
	Function string
}

// Capturer produces a fresh snapshot of the current call stack on every
// call. Implementations must be safe for concurrent use.
type Capturer interface {
	// Capture returns the call stack of the caller, innermost first,
	// with the given number of additional caller frames skipped.
	Capture(skip int) []Frame
}

// RuntimeCapturer captures the real call stack of the running program.
//
// Frames that cannot be resolved to an existing, absolute source file are
// dropped during capture. This filters out assembly trampolines and any
// frame whose source is not present on the local filesystem.
type RuntimeCapturer struct {
	// FileExists decides whether a source path is retained. It exists so
	// tests can substitute the filesystem check.
	FileExists func(path string) bool
}

// NewRuntimeCapturer returns a capturer backed by runtime.Callers with an
// os.Stat based file check.
func NewRuntimeCapturer() *RuntimeCapturer {
	return &RuntimeCapturer{FileExists: fileExists}
}

// Capture implements Capturer.
func (c *RuntimeCapturer) Capture(skip int) []Frame {
	pcs := make([]uintptr, maxFrames)
	// +2 skips runtime.Callers and Capture itself.
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}

	exists := c.FileExists
	if exists == nil {
		exists = fileExists
	}

	var out []Frame
	iter := runtime.CallersFrames(pcs[:n])
	for {
		fr, more := iter.Next()
		if c.keep(fr.File, exists) {
			out = append(out, Frame{
				File:     fr.File,
				Line:     fr.Line,
				Function: fr.Function,
			})
		}
		if !more {
			break
		}
	}
	return out
}

func (c *RuntimeCapturer) keep(file string, exists func(string) bool) bool {
	if file == "" || !filepath.IsAbs(file) {
		return false
	}
	return exists(file)
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

// FixedCapturer returns a canned stack, for tests that need deterministic
// frames independent of the real call stack.
type FixedCapturer struct {
	Frames []Frame
}

// Capture returns a copy of the canned frames. skip is ignored: the
// canned stack already represents the frames the caller wants to see.
func (c *FixedCapturer) Capture(skip int) []Frame {
	out := make([]Frame, len(c.Frames))
	copy(out, c.Frames)
	return out
}
