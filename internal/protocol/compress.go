package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// compressMinSize is the smallest payload compression is attempted on;
// below this LZ4's own framing overhead usually outweighs the savings.
const compressMinSize = 128

// originalSizePrefix is the width of the uncompressed-length prefix that
// precedes every LZ4-compressed payload on the wire.
const originalSizePrefix = 2

var lz4BufferPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// compressLZ4 returns src compressed with LZ4, framed, with no
// original-size prefix (the caller adds that).
func compressLZ4(src []byte) []byte {
	buf := lz4BufferPool.Get().(*bytes.Buffer)
	defer lz4BufferPool.Put(buf)
	buf.Reset()

	w := lz4.NewWriter(buf)
	_, _ = w.Write(src)
	_ = w.Close()

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out
}

func decompressLZ4(src []byte, originalSize int) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(src))
	out := make([]byte, originalSize)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, fmt.Errorf("protocol: lz4 decompress: %w", err)
	}
	return out, nil
}

// maybeCompress returns the payload to place on the wire and whether the
// compression flag should be set: only payloads at least compressMinSize
// bytes are tried, and only a result that's actually smaller is kept.
func maybeCompress(payload []byte) (wire []byte, compressed bool) {
	if len(payload) < compressMinSize {
		return payload, false
	}
	body := compressLZ4(payload)
	if len(body)+originalSizePrefix >= len(payload) {
		return payload, false
	}
	wire = make([]byte, originalSizePrefix+len(body))
	binary.BigEndian.PutUint16(wire[0:2], uint16(len(payload)))
	copy(wire[originalSizePrefix:], body)
	return wire, true
}

func decompressPayload(data []byte) ([]byte, error) {
	if len(data) < originalSizePrefix {
		return nil, fmt.Errorf("protocol: compressed payload missing size prefix")
	}
	originalSize := int(binary.BigEndian.Uint16(data[0:2]))
	return decompressLZ4(data[originalSizePrefix:], originalSize)
}
