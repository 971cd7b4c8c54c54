package systems

import "github.com/lab1702/rtype-server/internal/ecs"

// LifetimeSystem decrements Lifetime.Remaining by dt and deletes the entity
// once it reaches zero. Priority 600.
type LifetimeSystem struct{}

func NewLifetimeSystem() *LifetimeSystem { return &LifetimeSystem{} }

func (s *LifetimeSystem) Name() string  { return "LifetimeSystem" }
func (s *LifetimeSystem) Priority() int { return 600 }

func (s *LifetimeSystem) Update(store *ecs.Store, dt float64) {
	for _, id := range ecs.Query1[ecs.Lifetime](store) {
		lt, _ := ecs.GetComponent[ecs.Lifetime](store, id)
		lt.Remaining -= dt
		if lt.Remaining <= 0 {
			store.DeleteEntity(id)
		}
	}
}
