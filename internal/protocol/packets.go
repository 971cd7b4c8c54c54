package protocol

import (
	"encoding/binary"
	"fmt"
	"math"
)

// playerNameSize is the fixed, NUL-padded width of Connect.PlayerName.
const playerNameSize = 32

func errShort(packet string, need, got int) error {
	return fmt.Errorf("protocol: short %s payload: need %d bytes, got %d", packet, need, got)
}

func putFloat32(b []byte, v float64) {
	binary.BigEndian.PutUint32(b, math.Float32bits(float32(v)))
}

func getFloat32(b []byte) float64 {
	return float64(math.Float32frombits(binary.BigEndian.Uint32(b)))
}

func putString(b []byte, s string) {
	n := copy(b, s)
	for i := n; i < len(b); i++ {
		b[i] = 0
	}
}

func getString(b []byte) string {
	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}
	return string(b[:n])
}

// Connect is sent by a client requesting to join a room.
type Connect struct {
	PlayerName string // truncated/padded to playerNameSize on the wire
}

const ConnectWireSize = playerNameSize

func (p Connect) MarshalBinary() ([]byte, error) {
	buf := make([]byte, ConnectWireSize)
	putString(buf, p.PlayerName)
	return buf, nil
}

func (p *Connect) UnmarshalBinary(data []byte) error {
	if len(data) < ConnectWireSize {
		return errShort("Connect", ConnectWireSize, len(data))
	}
	p.PlayerName = getString(data[:playerNameSize])
	return nil
}

// Disconnect carries no payload beyond the header.
type Disconnect struct{}

const DisconnectWireSize = 0

func (p Disconnect) MarshalBinary() ([]byte, error) { return []byte{}, nil }
func (p *Disconnect) UnmarshalBinary(data []byte) error { return nil }

// InputKeys bitfield values for PlayerInput.
const (
	KeyUp    uint8 = 0x01
	KeyDown  uint8 = 0x02
	KeyLeft  uint8 = 0x04
	KeyRight uint8 = 0x08
	KeyShoot uint8 = 0x10
)

// PlayerInput carries one client tick's input state.
type PlayerInput struct {
	ClientTick uint32
	InputKeys  uint8
}

const PlayerInputWireSize = 4 + 1

func (p PlayerInput) MarshalBinary() ([]byte, error) {
	buf := make([]byte, PlayerInputWireSize)
	binary.BigEndian.PutUint32(buf[0:4], p.ClientTick)
	buf[4] = p.InputKeys
	return buf, nil
}

func (p *PlayerInput) UnmarshalBinary(data []byte) error {
	if len(data) < PlayerInputWireSize {
		return errShort("PlayerInput", PlayerInputWireSize, len(data))
	}
	p.ClientTick = binary.BigEndian.Uint32(data[0:4])
	p.InputKeys = data[4]
	return nil
}

// Ping carries a client-local timestamp to be echoed back in Pong.
type Ping struct {
	TimestampUS uint64
}

const PingWireSize = 8

func (p Ping) MarshalBinary() ([]byte, error) {
	buf := make([]byte, PingWireSize)
	binary.BigEndian.PutUint64(buf[0:8], p.TimestampUS)
	return buf, nil
}

func (p *Ping) UnmarshalBinary(data []byte) error {
	if len(data) < PingWireSize {
		return errShort("Ping", PingWireSize, len(data))
	}
	p.TimestampUS = binary.BigEndian.Uint64(data[0:8])
	return nil
}

// Pong echoes a Ping's timestamp back to the client unchanged.
type Pong struct {
	TimestampUS uint64
}

const PongWireSize = 8

func (p Pong) MarshalBinary() ([]byte, error) {
	buf := make([]byte, PongWireSize)
	binary.BigEndian.PutUint64(buf[0:8], p.TimestampUS)
	return buf, nil
}

func (p *Pong) UnmarshalBinary(data []byte) error {
	if len(data) < PongWireSize {
		return errShort("Pong", PongWireSize, len(data))
	}
	p.TimestampUS = binary.BigEndian.Uint64(data[0:8])
	return nil
}

// Accept confirms a Connect, assigning the new player its id.
type Accept struct {
	PlayerID   uint32
	ServerTick uint32
	TickRate   float32
}

const AcceptWireSize = 4 + 4 + 4

func (p Accept) MarshalBinary() ([]byte, error) {
	buf := make([]byte, AcceptWireSize)
	binary.BigEndian.PutUint32(buf[0:4], p.PlayerID)
	binary.BigEndian.PutUint32(buf[4:8], p.ServerTick)
	binary.BigEndian.PutUint32(buf[8:12], math.Float32bits(p.TickRate))
	return buf, nil
}

func (p *Accept) UnmarshalBinary(data []byte) error {
	if len(data) < AcceptWireSize {
		return errShort("Accept", AcceptWireSize, len(data))
	}
	p.PlayerID = binary.BigEndian.Uint32(data[0:4])
	p.ServerTick = binary.BigEndian.Uint32(data[4:8])
	p.TickRate = math.Float32frombits(binary.BigEndian.Uint32(data[8:12]))
	return nil
}

// RejectReason enumerates why a Connect was refused.
type RejectReason uint8

const (
	RejectRoomFull RejectReason = iota
	RejectBadName
	RejectRateLimited
)

// Reject refuses a Connect attempt; the connection is not registered.
type Reject struct {
	ReasonCode RejectReason
}

const RejectWireSize = 1

func (p Reject) MarshalBinary() ([]byte, error) {
	return []byte{byte(p.ReasonCode)}, nil
}

func (p *Reject) UnmarshalBinary(data []byte) error {
	if len(data) < RejectWireSize {
		return errShort("Reject", RejectWireSize, len(data))
	}
	p.ReasonCode = RejectReason(data[0])
	return nil
}

// EntityFlags bitfield carried in EntityState.Flags.
const (
	EntityFlagInvulnerable uint8 = 0x01
	EntityFlagCharging     uint8 = 0x02
)

// EntityState is one entity's replicated state within a GameState snapshot.
type EntityState struct {
	EntityID uint32
	Type     uint8
	X, Y     float64
	VX, VY   float64
	Health   uint8
	Flags    uint8
}

const EntityStateWireSize = 4 + 1 + 4 + 4 + 4 + 4 + 1 + 1

func (e EntityState) marshalInto(buf []byte) {
	binary.BigEndian.PutUint32(buf[0:4], e.EntityID)
	buf[4] = e.Type
	putFloat32(buf[5:9], e.X)
	putFloat32(buf[9:13], e.Y)
	putFloat32(buf[13:17], e.VX)
	putFloat32(buf[17:21], e.VY)
	buf[21] = e.Health
	buf[22] = e.Flags
}

func (e *EntityState) unmarshalFrom(buf []byte) {
	e.EntityID = binary.BigEndian.Uint32(buf[0:4])
	e.Type = buf[4]
	e.X = getFloat32(buf[5:9])
	e.Y = getFloat32(buf[9:13])
	e.VX = getFloat32(buf[13:17])
	e.VY = getFloat32(buf[17:21])
	e.Health = buf[21]
	e.Flags = buf[22]
}

// GameState is the per-tick authoritative snapshot broadcast to every
// player in a room.
type GameState struct {
	ServerTick            uint32
	LastProcessedInputSeq uint32
	Entities              []EntityState
}

func (p GameState) MarshalBinary() ([]byte, error) {
	if len(p.Entities) > 255 {
		return nil, fmt.Errorf("protocol: GameState entity count %d exceeds u8 range", len(p.Entities))
	}
	buf := make([]byte, 4+4+1+len(p.Entities)*EntityStateWireSize)
	binary.BigEndian.PutUint32(buf[0:4], p.ServerTick)
	binary.BigEndian.PutUint32(buf[4:8], p.LastProcessedInputSeq)
	buf[8] = uint8(len(p.Entities))
	off := 9
	for _, e := range p.Entities {
		e.marshalInto(buf[off : off+EntityStateWireSize])
		off += EntityStateWireSize
	}
	return buf, nil
}

func (p *GameState) UnmarshalBinary(data []byte) error {
	if len(data) < 9 {
		return errShort("GameState", 9, len(data))
	}
	p.ServerTick = binary.BigEndian.Uint32(data[0:4])
	p.LastProcessedInputSeq = binary.BigEndian.Uint32(data[4:8])
	count := int(data[8])
	need := 9 + count*EntityStateWireSize
	if len(data) < need {
		return errShort("GameState", need, len(data))
	}
	p.Entities = make([]EntityState, count)
	off := 9
	for i := range p.Entities {
		p.Entities[i].unmarshalFrom(data[off : off+EntityStateWireSize])
		off += EntityStateWireSize
	}
	return nil
}

// Spawn announces a new entity joining the world.
type Spawn struct {
	EntityID uint32
	Type     uint8
	X, Y     float64
	Health   uint8
}

const SpawnWireSize = 4 + 1 + 4 + 4 + 1

func (p Spawn) MarshalBinary() ([]byte, error) {
	buf := make([]byte, SpawnWireSize)
	binary.BigEndian.PutUint32(buf[0:4], p.EntityID)
	buf[4] = p.Type
	putFloat32(buf[5:9], p.X)
	putFloat32(buf[9:13], p.Y)
	buf[13] = p.Health
	return buf, nil
}

func (p *Spawn) UnmarshalBinary(data []byte) error {
	if len(data) < SpawnWireSize {
		return errShort("Spawn", SpawnWireSize, len(data))
	}
	p.EntityID = binary.BigEndian.Uint32(data[0:4])
	p.Type = data[4]
	p.X = getFloat32(data[5:9])
	p.Y = getFloat32(data[9:13])
	p.Health = data[13]
	return nil
}

// Despawn announces an entity's removal.
type Despawn struct {
	EntityID uint32
}

const DespawnWireSize = 4

func (p Despawn) MarshalBinary() ([]byte, error) {
	buf := make([]byte, DespawnWireSize)
	binary.BigEndian.PutUint32(buf[0:4], p.EntityID)
	return buf, nil
}

func (p *Despawn) UnmarshalBinary(data []byte) error {
	if len(data) < DespawnWireSize {
		return errShort("Despawn", DespawnWireSize, len(data))
	}
	p.EntityID = binary.BigEndian.Uint32(data[0:4])
	return nil
}

// EventKind enumerates the gameplay events carried by Event packets.
type EventKind uint8

const (
	EventKindKill EventKind = iota
	EventKindPowerUpPickup
	EventKindWaveCleared
	EventKindBossPhaseChange
	EventKindBossDefeated
	EventKindPlayerDied
)

// Event is a fire-and-forget notification about something that happened
// this tick, informational only: clients must never treat it as the
// source of truth for state already carried by GameState.
type Event struct {
	Kind     EventKind
	EntityID uint32
	TargetID uint32
	Value    int16
}

const EventWireSize = 1 + 4 + 4 + 2

func (p Event) MarshalBinary() ([]byte, error) {
	buf := make([]byte, EventWireSize)
	buf[0] = byte(p.Kind)
	binary.BigEndian.PutUint32(buf[1:5], p.EntityID)
	binary.BigEndian.PutUint32(buf[5:9], p.TargetID)
	binary.BigEndian.PutUint16(buf[9:11], uint16(p.Value))
	return buf, nil
}

func (p *Event) UnmarshalBinary(data []byte) error {
	if len(data) < EventWireSize {
		return errShort("Event", EventWireSize, len(data))
	}
	p.Kind = EventKind(data[0])
	p.EntityID = binary.BigEndian.Uint32(data[1:5])
	p.TargetID = binary.BigEndian.Uint32(data[5:9])
	p.Value = int16(binary.BigEndian.Uint16(data[9:11]))
	return nil
}
