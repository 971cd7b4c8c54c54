// Package ecs implements the typed entity/component store and system
// scheduler. Entities are opaque ids; components are plain data attached to
// them through generic pools; systems are scheduled in fixed priority order
// with deferred deletion flushed between each.
package ecs

// EntityID is a 32-bit opaque identifier. Ids may be reused once an entity
// is deleted and its slot recycled.
type EntityID uint32

// Group partitions entities into the closed set of queryable collections
// the simulation names.
type Group int

const (
	GroupPlayers Group = iota
	GroupMissiles
	GroupEnemyMissiles
	GroupEnemies
	GroupPowerUps
	GroupForcePods
	GroupWaveCannons
	GroupBosses
	groupCount
)

// entityRecord tracks one live entity slot.
type entityRecord struct {
	active bool
	group  Group
	gen    uint32
}
