package sender

import (
	"context"
	"net"
	"time"

	"github.com/bft-labs/dbgcast/pkg/event"
	"github.com/bft-labs/dbgcast/pkg/log"
	"github.com/bft-labs/dbgcast/pkg/wire"
)

// TCPSender is the default transport. It opens one connection per send,
// writes the 4-byte length prefix and the payload, and closes the
// connection. No retry, no reconnect, no queuing.
type TCPSender struct {
	logger log.Logger
}

// NewTCPSender creates the default TCP transport. A nil logger disables
// logging.
func NewTCPSender(logger log.Logger) *TCPSender {
	if logger == nil {
		logger = log.NewNoop()
	}
	return &TCPSender{logger: logger}
}

// Send implements Sender. Each failure phase reports a distinct
// category so the caller can tell a refused connection from a broken
// write.
func (s *TCPSender) Send(ctx context.Context, payload []byte, ectx *event.Context, report ReportFunc) {
	if report == nil {
		report = func(string, error) {}
	}

	timeout := ectx.Host.Timeout
	if timeout <= 0 {
		timeout = event.DefaultTimeout
	}

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", ectx.Host.Addr())
	if err != nil {
		report(event.CategoryConnection, err)
		return
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(timeout))

	if _, err := conn.Write(wire.LengthPrefix(len(payload))); err != nil {
		report(event.CategorySendDataLength, err)
		return
	}
	if _, err := conn.Write(payload); err != nil {
		report(event.CategorySendJSON, err)
		return
	}

	s.logger.Debug("snapshot sent",
		log.String("addr", ectx.Host.Addr()),
		log.Int("bytes", len(payload)))
}
