package sender

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func TestGzipTransformRoundTrip(t *testing.T) {
	original := bytes.Repeat([]byte(`{"n":"order","t":"float","v":"11"}`), 50)

	compressed, err := Gzip()(original)
	if err != nil {
		t.Fatalf("transform returned error: %v", err)
	}
	if bytes.Equal(compressed, original) {
		t.Fatalf("expected transformed payload to differ")
	}
	if compressed[0] != 0x1f || compressed[1] != 0x8b {
		t.Fatalf("expected gzip magic, got % X", compressed[:2])
	}
	if len(compressed) >= len(original) {
		t.Fatalf("expected repetitive payload to shrink: %d -> %d", len(original), len(compressed))
	}

	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	defer zr.Close()
	got, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if !bytes.Equal(got, original) {
		t.Fatalf("round trip mismatch")
	}
}
