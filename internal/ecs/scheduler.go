package ecs

import "sort"

// System processes all matching entities once per tick. Systems never
// delete entities directly; they call Store.DeleteEntity, which enqueues
// the deletion for the scheduler to flush once the system returns.
type System interface {
	// Name identifies the system for logging/debugging.
	Name() string
	// Priority fixes the system's position in the per-tick run order;
	// systems execute in ascending priority.
	Priority() int
	// Update runs one tick of this system's logic against store, given dt
	// in seconds (already scaled by the room's game-speed multiplier).
	Update(store *Store, dt float64)
}

// Scheduler runs registered systems in strictly increasing priority order,
// flushing deferred entity deletions between each so no system ever
// iterates over an entity set another system is mutating.
type Scheduler struct {
	systems []System
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Register adds a system to the scheduler and keeps the run order sorted
// by ascending priority.
func (s *Scheduler) Register(sys System) {
	s.systems = append(s.systems, sys)
	sort.SliceStable(s.systems, func(i, j int) bool {
		return s.systems[i].Priority() < s.systems[j].Priority()
	})
}

// Update runs every registered system once, in priority order, against
// store, with dt in seconds.
func (s *Scheduler) Update(store *Store, dt float64) {
	for _, sys := range s.systems {
		sys.Update(store, dt)
		store.FlushDeletions()
	}
}
