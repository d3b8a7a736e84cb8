package listen

import (
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"

	core "github.com/bft-labs/dbgcast/pkg/dbgcast"
	"github.com/bft-labs/dbgcast/pkg/sender"
	"github.com/bft-labs/dbgcast/pkg/stack"
	"github.com/bft-labs/dbgcast/pkg/wire"
)

func startServer(t *testing.T, acceptGzip bool) (*Server, chan *wire.Entry) {
	t.Helper()
	entries := make(chan *wire.Entry, 4)
	srv := New(Config{
		Addr:       "127.0.0.1:0",
		MaxPayload: 1 << 20,
		AcceptGzip: acceptGzip,
	}, zerolog.Nop(), func(remote string, e *wire.Entry) {
		entries <- e
	})
	if err := srv.Start(); err != nil {
		t.Fatalf("start server: %v", err)
	}
	t.Cleanup(func() { srv.Close() })
	return srv, entries
}

func testDebugger(t *testing.T, srv *Server, opts ...core.Option) *core.Debugger {
	t.Helper()
	addr := srv.Addr().(*net.TCPAddr)
	base := []core.Option{
		core.WithCapturer(&stack.FixedCapturer{Frames: []stack.Frame{
			{File: "/src/app/main.go", Line: 7, Function: "main.main"},
		}}),
		core.WithHostTimeout(2 * time.Second),
	}
	return core.New(append(base, opts...)...).AddHost("127.0.0.1", addr.Port)
}

func waitEntry(t *testing.T, entries chan *wire.Entry) *wire.Entry {
	t.Helper()
	select {
	case e := <-entries:
		return e
	case <-time.After(3 * time.Second):
		t.Fatalf("no entry received")
		return nil
	}
}

func TestEndToEndSnapshot(t *testing.T) {
	srv, entries := startServer(t, false)
	d := testDebugger(t, srv, core.WithAppName("listen-test"))

	d.Snap(core.Vars{"a": 11, "b": "x"})

	e := waitEntry(t, entries)
	if e.App != "listen-test" {
		t.Fatalf("expected app name, got %q", e.App)
	}
	if len(e.Variables) != 2 || e.Variables[0].Name != "a" || e.Variables[0].Value != "11" {
		t.Fatalf("unexpected variables: %+v", e.Variables)
	}
	if len(e.Frames) != 1 || e.Frames[0].Function != "main.main" {
		t.Fatalf("unexpected frames: %+v", e.Frames)
	}
}

func TestEndToEndGzip(t *testing.T) {
	srv, entries := startServer(t, true)
	d := testDebugger(t, srv,
		core.WithAppName("gzip-test"),
		core.WithTransform(sender.Gzip()),
	)

	d.Snap(core.Vars{"n": 1})

	e := waitEntry(t, entries)
	if e.App != "gzip-test" {
		t.Fatalf("expected decompressed entry, got %+v", e)
	}
}

func TestMalformedFrameDoesNotKillServer(t *testing.T) {
	srv, entries := startServer(t, false)

	// A length prefix promising far more data than is sent.
	conn, err := net.Dial("tcp", srv.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	_, _ = conn.Write([]byte{0xFF, 0xFF, 0xFF, 0x7F})
	conn.Close()

	// The server must still accept and decode a healthy snapshot.
	d := testDebugger(t, srv, core.WithAppName("still-alive"))
	d.Snap(core.Vars{"a": 1})

	e := waitEntry(t, entries)
	if e.App != "still-alive" {
		t.Fatalf("expected entry after malformed frame, got %+v", e)
	}
}

func TestOversizedFrameRejected(t *testing.T) {
	entries := make(chan *wire.Entry, 1)
	srv := New(Config{Addr: "127.0.0.1:0", MaxPayload: 8}, zerolog.Nop(), func(remote string, e *wire.Entry) {
		entries <- e
	})
	if err := srv.Start(); err != nil {
		t.Fatalf("start server: %v", err)
	}
	defer srv.Close()

	conn, err := net.Dial("tcp", srv.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if err := wire.WriteFrame(conn, []byte(`{"v":null,"t":null,"s":null}`)); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case e := <-entries:
		t.Fatalf("oversized frame must be dropped, got %+v", e)
	case <-time.After(200 * time.Millisecond):
	}
}
