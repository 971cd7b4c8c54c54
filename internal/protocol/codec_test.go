package protocol

import (
	"bytes"
	"strings"
	"testing"
)

// P8: deserialize(serialize(pkt)) == pkt for every packet layout.
func TestHeaderRoundTrip(t *testing.T) {
	h := Header{Type: TypeGameState, Sequence: 4242, TimestampNS: 1_700_000_000_123}
	raw, err := h.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if len(raw) != HeaderSize {
		t.Fatalf("header size = %d, want %d", len(raw), HeaderSize)
	}
	var got Header
	if err := got.UnmarshalBinary(raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got != h {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, h)
	}
}

func TestConnectRoundTrip(t *testing.T) {
	p := Connect{PlayerName: "pilot-one"}
	raw, _ := p.MarshalBinary()
	if len(raw) != ConnectWireSize {
		t.Fatalf("wire size = %d, want %d", len(raw), ConnectWireSize)
	}
	var got Connect
	if err := got.UnmarshalBinary(raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got != p {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, p)
	}
}

func TestConnectNameTruncatedToPadding(t *testing.T) {
	p := Connect{PlayerName: strings.Repeat("x", 64)}
	raw, _ := p.MarshalBinary()
	var got Connect
	if err := got.UnmarshalBinary(raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got.PlayerName) != playerNameSize {
		t.Fatalf("expected name clipped to %d bytes, got %d", playerNameSize, len(got.PlayerName))
	}
}

func TestPlayerInputRoundTrip(t *testing.T) {
	p := PlayerInput{ClientTick: 987654, InputKeys: KeyUp | KeyShoot}
	raw, _ := p.MarshalBinary()
	var got PlayerInput
	if err := got.UnmarshalBinary(raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got != p {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, p)
	}
}

func TestAcceptRoundTrip(t *testing.T) {
	p := Accept{PlayerID: 7, ServerTick: 120, TickRate: 60}
	raw, _ := p.MarshalBinary()
	var got Accept
	if err := got.UnmarshalBinary(raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got != p {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, p)
	}
}

func TestGameStateRoundTrip(t *testing.T) {
	p := GameState{
		ServerTick:            9000,
		LastProcessedInputSeq: 41,
		Entities: []EntityState{
			{EntityID: 1, Type: 0, X: 100.25, Y: 300.5, VX: -120, VY: 0, Health: 100, Flags: 0},
			{EntityID: 2, Type: 3, X: 250, Y: 300, VX: 600, VY: 0, Health: 20, Flags: EntityFlagCharging},
		},
	}
	raw, err := p.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got GameState
	if err := got.UnmarshalBinary(raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ServerTick != p.ServerTick || got.LastProcessedInputSeq != p.LastProcessedInputSeq {
		t.Fatalf("header fields mismatch: got %+v, want %+v", got, p)
	}
	if len(got.Entities) != len(p.Entities) {
		t.Fatalf("entity count = %d, want %d", len(got.Entities), len(p.Entities))
	}
	for i := range p.Entities {
		if got.Entities[i] != p.Entities[i] {
			t.Fatalf("entity %d mismatch: got %+v, want %+v", i, got.Entities[i], p.Entities[i])
		}
	}
}

func TestSpawnDespawnEventRoundTrip(t *testing.T) {
	sp := Spawn{EntityID: 55, Type: 2, X: 10, Y: 20, Health: 40}
	raw, _ := sp.MarshalBinary()
	var gotSp Spawn
	if err := gotSp.UnmarshalBinary(raw); err != nil {
		t.Fatalf("spawn unmarshal: %v", err)
	}
	if gotSp != sp {
		t.Fatalf("spawn round trip mismatch: got %+v, want %+v", gotSp, sp)
	}

	de := Despawn{EntityID: 55}
	raw, _ = de.MarshalBinary()
	var gotDe Despawn
	if err := gotDe.UnmarshalBinary(raw); err != nil {
		t.Fatalf("despawn unmarshal: %v", err)
	}
	if gotDe != de {
		t.Fatalf("despawn round trip mismatch: got %+v, want %+v", gotDe, de)
	}

	ev := Event{Kind: EventKindKill, EntityID: 55, TargetID: 1, Value: 100}
	raw, _ = ev.MarshalBinary()
	var gotEv Event
	if err := gotEv.UnmarshalBinary(raw); err != nil {
		t.Fatalf("event unmarshal: %v", err)
	}
	if gotEv != ev {
		t.Fatalf("event round trip mismatch: got %+v, want %+v", gotEv, ev)
	}
}

func TestDecodeFrameRejectsTruncated(t *testing.T) {
	if _, _, err := DecodeFrame([]byte{0x00, 0x01}); err == nil {
		t.Fatal("expected error decoding a truncated frame")
	}
}

// EncodeFrame/DecodeFrame round trip for a large, compressible GameState
// payload exercises the LZ4 path; a small payload must stay uncompressed.
func TestEncodeDecodeFrameCompression(t *testing.T) {
	entities := make([]EntityState, 40)
	for i := range entities {
		entities[i] = EntityState{EntityID: uint32(i), Type: 1, X: 500, Y: 500, Health: 100}
	}
	gs := GameState{ServerTick: 1, Entities: entities}

	frame, err := EncodeFrame(TypeGameState, 1, 123, gs)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	hdr, payload, err := DecodeFrame(frame)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !hdr.Compressed() {
		t.Fatal("expected a 40-entity GameState to be compressed")
	}
	if hdr.BaseType() != TypeGameState {
		t.Fatalf("base type = %v, want %v", hdr.BaseType(), TypeGameState)
	}
	var got GameState
	if err := got.UnmarshalBinary(payload); err != nil {
		t.Fatalf("unmarshal decompressed payload: %v", err)
	}
	if len(got.Entities) != len(gs.Entities) {
		t.Fatalf("entity count after round trip = %d, want %d", len(got.Entities), len(gs.Entities))
	}

	small := Despawn{EntityID: 9}
	frame, err = EncodeFrame(TypeDespawn, 2, 456, small)
	if err != nil {
		t.Fatalf("encode small: %v", err)
	}
	hdr, payload, err = DecodeFrame(frame)
	if err != nil {
		t.Fatalf("decode small: %v", err)
	}
	if hdr.Compressed() {
		t.Fatal("small payload must not be compressed")
	}
	if !bytes.Equal(payload, frame[HeaderSize:]) {
		t.Fatal("uncompressed payload should pass through unchanged")
	}
}
