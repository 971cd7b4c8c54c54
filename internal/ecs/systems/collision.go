package systems

import "github.com/lab1702/rtype-server/internal/ecs"

// CollisionEvent is one overlapping pair found this tick.
type CollisionEvent struct {
	EntityA, EntityB ecs.EntityID
	GroupA, GroupB   ecs.Group
}

// CollisionSystem checks only the cross-group pairs relevant to gameplay
// (never all-pairs): Missiles x Enemies, WaveCannons x Enemies,
// Players x EnemyMissiles, ForcePods x Enemies, Players x PowerUps,
// Missiles x Bosses, WaveCannons x Bosses. Priority 400.
type CollisionSystem struct {
	Bridge *ecs.DomainBridge
	Events []CollisionEvent
}

func NewCollisionSystem(bridge *ecs.DomainBridge) *CollisionSystem {
	return &CollisionSystem{Bridge: bridge}
}

func (s *CollisionSystem) Name() string  { return "CollisionSystem" }
func (s *CollisionSystem) Priority() int { return 400 }

var collisionPairs = [][2]ecs.Group{
	{ecs.GroupMissiles, ecs.GroupEnemies},
	{ecs.GroupWaveCannons, ecs.GroupEnemies},
	{ecs.GroupPlayers, ecs.GroupEnemyMissiles},
	{ecs.GroupForcePods, ecs.GroupEnemies},
	{ecs.GroupPlayers, ecs.GroupPowerUps},
	{ecs.GroupMissiles, ecs.GroupBosses},
	{ecs.GroupWaveCannons, ecs.GroupBosses},
}

func (s *CollisionSystem) Update(store *ecs.Store, dt float64) {
	s.Events = s.Events[:0]

	for _, pair := range collisionPairs {
		as := store.EntitiesInGroup(pair[0])
		bs := store.EntitiesInGroup(pair[1])
		for _, a := range as {
			aPos, ok := ecs.GetComponent[ecs.Position](store, a)
			if !ok {
				continue
			}
			aHB, ok := ecs.GetComponent[ecs.Hitbox](store, a)
			if !ok {
				continue
			}
			aBox := aHB.AABB(*aPos)
			for _, b := range bs {
				bPos, ok := ecs.GetComponent[ecs.Position](store, b)
				if !ok {
					continue
				}
				bHB, ok := ecs.GetComponent[ecs.Hitbox](store, b)
				if !ok {
					continue
				}
				if s.Bridge.AABBOverlap(aBox, bHB.AABB(*bPos)) {
					s.Events = append(s.Events, CollisionEvent{
						EntityA: a, EntityB: b, GroupA: pair[0], GroupB: pair[1],
					})
				}
			}
		}
	}
}
