package protocol

import "fmt"

// Payload is implemented by every typed packet body.
type Payload interface {
	MarshalBinary() ([]byte, error)
}

// EncodeFrame marshals a packet's header and body into one datagram,
// compressing the body when it meets maybeCompress's threshold.
func EncodeFrame(packetType PacketType, sequence uint16, timestampNS uint64, body Payload) ([]byte, error) {
	payload, err := body.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("protocol: marshal %v payload: %w", packetType, err)
	}

	wire, compressed := maybeCompress(payload)
	hdr := Header{Type: packetType, Sequence: sequence, TimestampNS: timestampNS}
	if compressed {
		hdr.Type |= CompressionFlag
	}

	headerBytes, _ := hdr.MarshalBinary()
	frame := make([]byte, 0, len(headerBytes)+len(wire))
	frame = append(frame, headerBytes...)
	frame = append(frame, wire...)
	return frame, nil
}

// DecodeFrame parses a datagram's header and returns it alongside the
// decompressed payload bytes, ready for a type-specific UnmarshalBinary.
// Truncated or malformed frames return an error; callers (transport) drop
// the datagram silently rather than propagate it, since UDP has no
// connection to tear down over a bad frame.
func DecodeFrame(data []byte) (Header, []byte, error) {
	var hdr Header
	if err := hdr.UnmarshalBinary(data); err != nil {
		return Header{}, nil, err
	}
	body := data[HeaderSize:]
	if !hdr.Compressed() {
		return hdr, body, nil
	}
	payload, err := decompressPayload(body)
	if err != nil {
		return Header{}, nil, err
	}
	return hdr, payload, nil
}
