package systems

import "github.com/lab1702/rtype-server/internal/ecs"

// MovementSystem integrates pos += vel*dt for every entity with both
// components. No clamping, no entity interaction. Priority 300.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem { return &MovementSystem{} }

func (s *MovementSystem) Name() string  { return "MovementSystem" }
func (s *MovementSystem) Priority() int { return 300 }

func (s *MovementSystem) Update(store *ecs.Store, dt float64) {
	for _, id := range ecs.Query2[ecs.Position, ecs.Velocity](store) {
		pos, _ := ecs.GetComponent[ecs.Position](store, id)
		vel, _ := ecs.GetComponent[ecs.Velocity](store, id)
		pos.X += vel.VX * dt
		pos.Y += vel.VY * dt
	}
}
