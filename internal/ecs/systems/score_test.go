package systems

import (
	"math"
	"testing"

	"github.com/lab1702/rtype-server/internal/ecs"
)

// S5: combo stays unchanged within the grace period, then decays toward 1.0
// at -0.5/s once past it.
func TestScenarioComboDecay(t *testing.T) {
	store, bridge := newHarness()
	player := store.CreateEntity(ecs.GroupPlayers)
	ecs.AddComponent(store, player, ecs.PlayerTag{PlayerID: 1})
	ecs.AddComponent(store, player, ecs.Score{ComboMult: 2.0, ComboTimer: 0})

	collision := NewCollisionSystem(bridge)
	damage := NewDamageSystem(bridge, collision)
	resolve := func(id int) (ecs.EntityID, bool) {
		if id == 1 {
			return player, true
		}
		return 0, false
	}
	score := NewScoreSystem(bridge, damage, resolve)

	score.Update(store, 0.1)
	sc, _ := ecs.GetComponent[ecs.Score](store, player)
	if sc.ComboMult != 2.0 {
		t.Fatalf("combo changed within grace period: %v", sc.ComboMult)
	}

	// Run until total elapsed reaches 4s (1s past the 3s grace).
	for i := 0; i < 39; i++ {
		score.Update(store, 0.1)
	}
	sc, _ = ecs.GetComponent[ecs.Score](store, player)
	if sc.ComboMult >= 2.0 {
		t.Fatalf("expected combo to have started decaying, got %v", sc.ComboMult)
	}

	for i := 0; i < 40; i++ {
		score.Update(store, 0.1)
	}
	sc, _ = ecs.GetComponent[ecs.Score](store, player)
	if math.Abs(sc.ComboMult-1.0) > 1e-6 {
		t.Fatalf("expected combo clamped at 1.0, got %v", sc.ComboMult)
	}
}

func TestScoreSystemBonusPointsBypassCombo(t *testing.T) {
	store, bridge := newHarness()
	player := store.CreateEntity(ecs.GroupPlayers)
	ecs.AddComponent(store, player, ecs.PlayerTag{PlayerID: 1})
	ecs.AddComponent(store, player, ecs.Score{ComboMult: 3.0})

	collision := NewCollisionSystem(bridge)
	damage := NewDamageSystem(bridge, collision)
	resolve := func(id int) (ecs.EntityID, bool) { return player, true }
	score := NewScoreSystem(bridge, damage, resolve)

	score.AddBonusPoints(1, 5000)
	score.Update(store, 0)

	sc, _ := ecs.GetComponent[ecs.Score](store, player)
	if sc.Total != 5000 {
		t.Fatalf("bonus points not applied: total=%d", sc.Total)
	}
	if len(score.Changes) != 1 || score.Changes[0].PointsAdded != 5000 {
		t.Fatalf("expected one ScoreChangedEvent with 5000 points, got %+v", score.Changes)
	}
}
