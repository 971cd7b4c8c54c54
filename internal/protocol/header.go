// Package protocol implements the UDP wire codec: a fixed 12-byte header
// followed by a POD payload per packet type, all big-endian, with an
// optional LZ4-compressed body above a size threshold.
package protocol

import (
	"encoding/binary"
	"fmt"
)

// PacketType identifies the payload layout following the header. The high
// bit (CompressionFlag) is reserved and never part of a type's own value.
type PacketType uint16

const (
	TypeConnect PacketType = iota + 1
	TypeDisconnect
	TypePlayerInput
	TypePing
	TypeAccept
	TypeReject
	TypeGameState
	TypeSpawn
	TypeDespawn
	TypeEvent
	TypePong
)

// CompressionFlag marks the payload as LZ4-compressed, prefixed by a 2-byte
// original-size field. It is carried in the type field's high bit.
const CompressionFlag PacketType = 0x8000

// HeaderSize is the wire size of Header: type(2) + sequence(2) + timestamp(8).
const HeaderSize = 12

// Header is the fixed frame prefixing every packet.
type Header struct {
	Type        PacketType
	Sequence    uint16
	TimestampNS uint64
}

// Compressed reports whether the high bit is set on Type.
func (h Header) Compressed() bool {
	return h.Type&CompressionFlag != 0
}

// BaseType strips the compression flag, returning the payload's real type.
func (h Header) BaseType() PacketType {
	return h.Type &^ CompressionFlag
}

// MarshalBinary writes the header in network byte order.
func (h Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	binary.BigEndian.PutUint16(buf[0:2], uint16(h.Type))
	binary.BigEndian.PutUint16(buf[2:4], h.Sequence)
	binary.BigEndian.PutUint64(buf[4:12], h.TimestampNS)
	return buf, nil
}

// UnmarshalBinary reads a header from its network byte order encoding.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("protocol: short header: need %d bytes, got %d", HeaderSize, len(data))
	}
	h.Type = PacketType(binary.BigEndian.Uint16(data[0:2]))
	h.Sequence = binary.BigEndian.Uint16(data[2:4])
	h.TimestampNS = binary.BigEndian.Uint64(data[4:12])
	return nil
}
