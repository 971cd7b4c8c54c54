package systems

import "github.com/lab1702/rtype-server/internal/ecs"

// CleanupSystem deletes entities with Position+Hitbox that have drifted
// fully offscreen, excluding Players and Enemies (enemies are handled
// elsewhere since they spawn off-screen-right and traverse left).
// Priority 700.
type CleanupSystem struct {
	Bridge *ecs.DomainBridge
}

func NewCleanupSystem(bridge *ecs.DomainBridge) *CleanupSystem {
	return &CleanupSystem{Bridge: bridge}
}

func (s *CleanupSystem) Name() string  { return "CleanupSystem" }
func (s *CleanupSystem) Priority() int { return 700 }

var cleanupGroups = []ecs.Group{
	ecs.GroupMissiles, ecs.GroupEnemyMissiles, ecs.GroupPowerUps,
	ecs.GroupForcePods, ecs.GroupWaveCannons,
}

func (s *CleanupSystem) Update(store *ecs.Store, dt float64) {
	for _, group := range cleanupGroups {
		for _, id := range store.EntitiesInGroup(group) {
			pos, okPos := ecs.GetComponent[ecs.Position](store, id)
			hb, okHB := ecs.GetComponent[ecs.Hitbox](store, id)
			if !okPos || !okHB {
				continue
			}
			if s.Bridge.IsOutOfBounds(hb.AABB(*pos)) {
				store.DeleteEntity(id)
			}
		}
	}
}
