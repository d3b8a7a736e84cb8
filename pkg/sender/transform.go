package sender

import (
	"bytes"

	"github.com/klauspost/compress/gzip"
)

// Transform rewrites an encoded payload before it is framed and sent.
// It operates on bytes, not on the structured entry. Returning an empty
// payload suppresses the send.
type Transform func(payload []byte) ([]byte, error)

// Gzip returns a transform that gzip-compresses payloads. Listeners
// started with gzip support detect the compression by magic number.
func Gzip() Transform {
	return func(payload []byte) ([]byte, error) {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(payload); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}
