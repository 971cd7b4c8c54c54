// Package instance hosts the room registry: one GameWorld per room code,
// created on first use. A room stays registered until RemoveInstance is
// called; the registry does not drop a room when its last player leaves.
package instance

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lab1702/rtype-server/internal/engine"
)

// Config bundles the per-room parameters GameWorld needs at creation.
type Config struct {
	BossSpawnWave int
	Seed          int64
	PlayerTimeout time.Duration
}

// Room pairs a GameWorld with the metadata the transport layer needs to
// address it: its code, a correlation token for logs, and its own mutex-free
// serializer contract (callers must only touch World from that room's
// serializer goroutine; the registry mutex below guards only the map).
type Room struct {
	Code  string
	Token uuid.UUID
	World *engine.GameWorld
}

// Manager is the GameInstanceManager: a room-code-keyed registry of active
// GameWorlds. The mutex guards the map only, never a Room's World — a
// GameWorld is owned by its room's serializer goroutine.
type Manager struct {
	mu     sync.RWMutex
	rooms  map[string]*Room
	config Config
}

func NewManager(config Config) *Manager {
	return &Manager{rooms: make(map[string]*Room), config: config}
}

// GetOrCreateInstance returns the room for code, creating a fresh GameWorld
// if none exists yet.
func (m *Manager) GetOrCreateInstance(code string) *Room {
	m.mu.RLock()
	room, ok := m.rooms[code]
	m.mu.RUnlock()
	if ok {
		return room
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if room, ok := m.rooms[code]; ok {
		return room
	}
	room = &Room{
		Code:  code,
		Token: uuid.New(),
		World: engine.New(m.config.Seed, m.config.BossSpawnWave, m.config.PlayerTimeout),
	}
	m.rooms[code] = room
	return room
}

// GetInstance returns the room for code if it already exists.
func (m *Manager) GetInstance(code string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	room, ok := m.rooms[code]
	return room, ok
}

// RemoveInstance drops a room from the registry. In-flight work against its
// World is unaffected: removing from the map does not deallocate it.
func (m *Manager) RemoveInstance(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, code)
}

// GetActiveRoomCodes lists every room currently registered.
func (m *Manager) GetActiveRoomCodes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	codes := make([]string, 0, len(m.rooms))
	for code := range m.rooms {
		codes = append(codes, code)
	}
	return codes
}

// GetInstanceCount returns the number of active rooms.
func (m *Manager) GetInstanceCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// GetTotalPlayerCount sums player counts across every active room.
func (m *Manager) GetTotalPlayerCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := 0
	for _, room := range m.rooms {
		total += room.World.PlayerCount()
	}
	return total
}
