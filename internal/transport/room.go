package transport

import (
	"net"
	"sync/atomic"
	"time"

	"github.com/lab1702/rtype-server/internal/engine"
	"github.com/lab1702/rtype-server/internal/instance"
	"github.com/lab1702/rtype-server/internal/protocol"
)

// sendFunc is how a roomSerializer pushes an encoded packet out, supplied
// by Server so the serializer never touches the shared UDP socket directly
// from more than one place.
type sendFunc func(addr *net.UDPAddr, t protocol.PacketType, body protocol.Payload)

// roomCmd is a unit of work posted to a roomSerializer; it runs exactly
// once, strictly between ticks or before the next one, preserving FIFO
// ordering per endpoint and atomicity per tick.
type roomCmd func(world *engine.GameWorld)

// roomEndpoint pairs a player's network address with its orchestrator id,
// so each recipient's GameState carries its own input-ack sequence number.
type roomEndpoint struct {
	addr     *net.UDPAddr
	playerID int
}

// roomSerializer is the single goroutine allowed to touch one room's
// GameWorld: every external request (Connect, Disconnect, PlayerInput) is a
// posted roomCmd, and the tick ticker is just another event on the same
// select loop.
type roomSerializer struct {
	room     *instance.Room
	tickRate int
	send     sendFunc

	cmds chan roomCmd
	done chan struct{}

	endpoints map[string]roomEndpoint

	tick atomic.Uint64
	seq  uint16

	knownEntities map[uint32]struct{}
}

func newRoomSerializer(room *instance.Room, tickRate int, send sendFunc) *roomSerializer {
	return &roomSerializer{
		room:          room,
		tickRate:      tickRate,
		send:          send,
		cmds:          make(chan roomCmd, 256),
		done:          make(chan struct{}),
		endpoints:     make(map[string]roomEndpoint),
		knownEntities: make(map[uint32]struct{}),
	}
}

func (rs *roomSerializer) tickCount() uint64 { return rs.tick.Load() }

// post enqueues a command and blocks until the serializer has run it,
// mirroring a synchronous call on top of the async reactor.
func (rs *roomSerializer) post(cmd roomCmd) {
	done := make(chan struct{})
	rs.cmds <- func(world *engine.GameWorld) {
		cmd(world)
		close(done)
	}
	<-done
}

func (rs *roomSerializer) addEndpoint(addr *net.UDPAddr, playerID int) {
	rs.post(func(*engine.GameWorld) {
		rs.endpoints[addr.String()] = roomEndpoint{addr: addr, playerID: playerID}
	})
}

func (rs *roomSerializer) removeEndpoint(endpoint string) {
	rs.post(func(*engine.GameWorld) {
		delete(rs.endpoints, endpoint)
	})
}

func (rs *roomSerializer) enqueueInput(playerID int, keys uint8, seq uint16) {
	rs.cmds <- func(world *engine.GameWorld) {
		world.ApplyPlayerInput(playerID, keys, uint32(seq))
	}
}

func (rs *roomSerializer) run() {
	interval := time.Second / time.Duration(rs.tickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	dt := interval.Seconds()

	for {
		select {
		case <-rs.done:
			return
		case cmd := <-rs.cmds:
			cmd(rs.room.World)
		case <-ticker.C:
			rs.room.World.Tick(dt)
			rs.tick.Add(1)
			rs.broadcast()
		}
	}
}

func (rs *roomSerializer) stop() {
	close(rs.done)
}

// broadcast sends this tick's GameState to every endpoint, plus Spawn and
// Despawn packets for entities that appeared or vanished since last tick.
func (rs *roomSerializer) broadcast() {
	snap := rs.room.World.GetSnapshot()

	entities := make([]protocol.EntityState, 0, len(snap.Players)+len(snap.Enemies))
	seen := make(map[uint32]struct{}, len(entities))

	for _, p := range snap.Players {
		id := playerEntityID(p.ID)
		seen[id] = struct{}{}
		health := uint8(0)
		if p.Health > 0 {
			health = uint8(clampByte(p.Health))
		}
		entities = append(entities, protocol.EntityState{
			EntityID: id, Type: entityTypePlayer,
			X: p.X, Y: p.Y, Health: health,
		})
		rs.noteSpawn(id, entityTypePlayer, p.X, p.Y, health)
	}
	for _, e := range snap.Enemies {
		seen[e.EntityID] = struct{}{}
		health := uint8(clampByte(e.Health))
		entities = append(entities, protocol.EntityState{
			EntityID: e.EntityID, Type: uint8(e.Type) + entityTypeEnemyBase,
			X: e.X, Y: e.Y, Health: health,
		})
		rs.noteSpawn(e.EntityID, uint8(e.Type)+entityTypeEnemyBase, e.X, e.Y, health)
	}
	if snap.Boss != nil {
		const bossEntityID = 0xFFFFFFF0
		seen[bossEntityID] = struct{}{}
		health := uint8(clampByte(snap.Boss.HP))
		entities = append(entities, protocol.EntityState{
			EntityID: bossEntityID, Type: entityTypeBoss, Health: health,
		})
		rs.noteSpawn(bossEntityID, entityTypeBoss, 0, 0, health)
	}

	for id := range rs.knownEntities {
		if _, ok := seen[id]; !ok {
			delete(rs.knownEntities, id)
			rs.broadcastPacket(protocol.TypeDespawn, protocol.Despawn{EntityID: id})
		}
	}

	for _, ep := range rs.endpoints {
		rs.seq++
		lastSeq, _ := rs.room.World.GetPlayerLastInputSeq(ep.playerID)
		rs.send(ep.addr, protocol.TypeGameState, protocol.GameState{
			ServerTick:            uint32(rs.tick.Load()),
			LastProcessedInputSeq: lastSeq,
			Entities:              entities,
		})
	}
}

func (rs *roomSerializer) noteSpawn(id uint32, entityType uint8, x, y float64, health uint8) {
	if _, ok := rs.knownEntities[id]; ok {
		return
	}
	rs.knownEntities[id] = struct{}{}
	rs.broadcastPacket(protocol.TypeSpawn, protocol.Spawn{EntityID: id, Type: entityType, X: x, Y: y, Health: health})
}

func (rs *roomSerializer) broadcastPacket(t protocol.PacketType, body protocol.Payload) {
	for _, ep := range rs.endpoints {
		rs.send(ep.addr, t, body)
	}
}

// Entity type tags carried on the wire; players and the boss use fixed
// slots, enemies offset from entityTypeEnemyBase by their domain.EnemyType.
const (
	entityTypePlayer    uint8 = 0
	entityTypeEnemyBase uint8 = 10
	entityTypeBoss      uint8 = 99
)

// playerEntityID maps a small orchestrator player id onto the wire's u32
// entity id space without colliding with ECS entity ids.
func playerEntityID(playerID int) uint32 {
	return 0xF0000000 | uint32(playerID)
}

func clampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
