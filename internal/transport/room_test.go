package transport

import (
	"net"
	"sync"
	"testing"
	"time"

	"github.com/lab1702/rtype-server/internal/engine"
	"github.com/lab1702/rtype-server/internal/instance"
	"github.com/lab1702/rtype-server/internal/protocol"
)

func TestRoomSerializerBroadcastsSpawnAndGameState(t *testing.T) {
	room := &instance.Room{Code: "test", World: engine.New(1, 10, time.Second)}
	addr, _ := net.ResolveUDPAddr("udp", "127.0.0.1:9999")

	var mu sync.Mutex
	var sent []protocol.PacketType
	send := func(_ *net.UDPAddr, t protocol.PacketType, _ protocol.Payload) {
		mu.Lock()
		sent = append(sent, t)
		mu.Unlock()
	}

	rs := newRoomSerializer(room, 60, send)
	go rs.run()
	defer rs.stop()

	playerID, ok := room.World.AddPlayer(addr)
	if !ok {
		t.Fatal("expected AddPlayer to succeed")
	}
	rs.addEndpoint(addr, playerID)

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	var sawSpawn, sawGameState bool
	for _, pt := range sent {
		switch pt {
		case protocol.TypeSpawn:
			sawSpawn = true
		case protocol.TypeGameState:
			sawGameState = true
		}
	}
	if !sawSpawn {
		t.Error("expected at least one Spawn packet for the newly connected player")
	}
	if !sawGameState {
		t.Error("expected at least one GameState packet")
	}
	if rs.tickCount() == 0 {
		t.Error("expected at least one tick to have run")
	}
}

func TestRoomSerializerPostRunsExactlyOnce(t *testing.T) {
	room := &instance.Room{Code: "test", World: engine.New(2, 10, time.Second)}
	rs := newRoomSerializer(room, 60, func(*net.UDPAddr, protocol.PacketType, protocol.Payload) {})
	go rs.run()
	defer rs.stop()

	calls := 0
	rs.post(func(*engine.GameWorld) { calls++ })
	rs.post(func(*engine.GameWorld) { calls++ })
	if calls != 2 {
		t.Fatalf("expected exactly 2 post invocations, got %d", calls)
	}
}
