package instance

import "testing"

func newTestManager() *Manager {
	return NewManager(Config{BossSpawnWave: 10, Seed: 1})
}

func TestGetOrCreateInstanceIsIdempotent(t *testing.T) {
	m := newTestManager()
	a := m.GetOrCreateInstance("ABCD")
	b := m.GetOrCreateInstance("ABCD")
	if a != b {
		t.Fatal("expected the same room for the same code")
	}
	if a.Token.String() == "" {
		t.Fatal("expected a non-empty instance token")
	}
}

func TestGetInstanceMissing(t *testing.T) {
	m := newTestManager()
	if _, ok := m.GetInstance("NOPE"); ok {
		t.Fatal("expected no instance for an unknown code")
	}
}

func TestRemoveInstance(t *testing.T) {
	m := newTestManager()
	m.GetOrCreateInstance("ROOM1")
	if m.GetInstanceCount() != 1 {
		t.Fatalf("expected 1 active room, got %d", m.GetInstanceCount())
	}
	m.RemoveInstance("ROOM1")
	if m.GetInstanceCount() != 0 {
		t.Fatalf("expected 0 active rooms after removal, got %d", m.GetInstanceCount())
	}
}

func TestGetActiveRoomCodesAndPlayerCount(t *testing.T) {
	m := newTestManager()
	r1 := m.GetOrCreateInstance("ROOM1")
	m.GetOrCreateInstance("ROOM2")

	codes := m.GetActiveRoomCodes()
	if len(codes) != 2 {
		t.Fatalf("expected 2 room codes, got %d", len(codes))
	}

	if _, ok := r1.World.AddPlayer(fakeAddr("1.2.3.4:1000")); !ok {
		t.Fatal("expected AddPlayer to succeed on a fresh room")
	}
	if got := m.GetTotalPlayerCount(); got != 1 {
		t.Fatalf("expected total player count 1, got %d", got)
	}
}

type fakeAddr string

func (f fakeAddr) Network() string { return "udp" }
func (f fakeAddr) String() string  { return string(f) }
