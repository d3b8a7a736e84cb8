package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrFrameTooLarge is returned by ReadFrame when the advertised payload
// length exceeds the caller's limit.
var ErrFrameTooLarge = errors.New("dbgcast: frame exceeds maximum payload size")

// LengthPrefix returns the 4-byte unsigned little-endian length header
// for a payload of n bytes.
func LengthPrefix(n int) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(n))
	return b
}

// WriteFrame writes one length-prefixed frame: 4 bytes little-endian
// payload length, then the payload itself.
func WriteFrame(w io.Writer, payload []byte) error {
	if _, err := w.Write(LengthPrefix(len(payload))); err != nil {
		return fmt.Errorf("write length: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}

// ReadFrame reads one length-prefixed frame. A max of zero disables the
// size limit.
func ReadFrame(r io.Reader, max int) ([]byte, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("read length: %w", err)
	}
	n := binary.LittleEndian.Uint32(hdr[:])
	if max > 0 && n > uint32(max) {
		return nil, ErrFrameTooLarge
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return payload, nil
}
