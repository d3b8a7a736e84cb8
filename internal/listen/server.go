package listen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"

	"github.com/bft-labs/dbgcast/pkg/wire"
)

// readTimeout bounds how long one client connection may take to deliver
// its single frame.
const readTimeout = 30 * time.Second

// gzip member header magic, used to detect compressed payloads.
var gzipMagic = []byte{0x1f, 0x8b}

// Config holds listener settings.
type Config struct {
	// Addr is the listen address, e.g. "127.0.0.1:9230".
	Addr string

	// MaxPayload rejects frames larger than this many bytes. Zero
	// disables the limit.
	MaxPayload int

	// AcceptGzip transparently decompresses payloads that carry the
	// gzip magic number.
	AcceptGzip bool
}

// EntryHandler receives every decoded snapshot entry together with the
// sender's remote address.
type EntryHandler func(remote string, e *wire.Entry)

// Server accepts snapshot connections, reads one length-prefixed frame
// per connection, decodes it, and hands the entry to the handler. A
// malformed or oversized frame drops that connection only; the server
// never dies from one bad client.
type Server struct {
	cfg     Config
	logger  zerolog.Logger
	handler EntryHandler

	mu sync.Mutex
	ln net.Listener
	wg sync.WaitGroup
}

// New creates a listener server. A nil handler logs a summary of each
// entry instead.
func New(cfg Config, logger zerolog.Logger, handler EntryHandler) *Server {
	s := &Server{cfg: cfg, logger: logger, handler: handler}
	if s.handler == nil {
		s.handler = s.logEntry
	}
	return s
}

// Start begins accepting connections in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}

	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	s.logger.Info().Str("addr", ln.Addr().String()).Msg("listening for snapshots")

	s.wg.Add(1)
	go s.acceptLoop(ln)
	return nil
}

// Addr returns the bound listen address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Run starts the server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	return s.Close()
}

// Close stops accepting and waits for in-flight connections to finish.
func (s *Server) Close() error {
	s.mu.Lock()
	ln := s.ln
	s.ln = nil
	s.mu.Unlock()

	var err error
	if ln != nil {
		err = ln.Close()
	}
	s.wg.Wait()
	return err
}

func (s *Server) acceptLoop(ln net.Listener) {
	defer s.wg.Done()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				s.logger.Warn().Err(err).Msg("accept failed")
			}
			return
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handle(conn)
		}()
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()
	remote := conn.RemoteAddr().String()

	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))

	payload, err := wire.ReadFrame(conn, s.cfg.MaxPayload)
	if err != nil {
		s.logger.Warn().Err(err).Str("remote", remote).Msg("dropping malformed frame")
		return
	}

	if s.cfg.AcceptGzip && bytes.HasPrefix(payload, gzipMagic) {
		payload, err = gunzip(payload)
		if err != nil {
			s.logger.Warn().Err(err).Str("remote", remote).Msg("dropping undecodable gzip payload")
			return
		}
	}

	entry, err := wire.Decode(payload)
	if err != nil {
		s.logger.Warn().Err(err).Str("remote", remote).Msg("dropping undecodable entry")
		return
	}

	s.handler(remote, entry)
}

// logEntry is the default handler: a one-line summary plus the top
// frame and variable names.
func (s *Server) logEntry(remote string, e *wire.Entry) {
	ev := s.logger.Info().
		Str("remote", remote).
		Str("app", e.App).
		Int("frames", len(e.Frames)).
		Int("variables", len(e.Variables))
	if e.Client != "" {
		ev = ev.Str("client", e.Client)
	}
	if len(e.Frames) > 0 {
		top := e.Frames[0]
		ev = ev.Str("at", fmt.Sprintf("%s:%d %s", top.File, top.Line, top.Function))
	}
	names := make([]string, 0, len(e.Variables))
	for _, v := range e.Variables {
		names = append(names, v.Name)
	}
	ev.Strs("vars", names).Msg("snapshot")
}

func gunzip(payload []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}
