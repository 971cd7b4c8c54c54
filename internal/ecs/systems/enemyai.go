package systems

import (
	"github.com/lab1702/rtype-server/internal/domain"
	"github.com/lab1702/rtype-server/internal/ecs"
)

// MissileSpawnRequest is emitted by EnemyAISystem when an enemy's shoot
// cooldown elapses. The orchestrator (or a downstream system) turns this
// into an EnemyMissile entity.
type MissileSpawnRequest struct {
	X, Y      float64
	EnemyType domain.EnemyType
}

// NearestPlayerY supplies the nearest player's Y coordinate for tracker/AI
// targeting, falling back to screen center when no players are present.
type NearestPlayerY func(fromX, fromY float64) float64

// EnemyAISystem advances enemy movement patterns and emits missile-spawn
// requests on cooldown. Priority 100.
type EnemyAISystem struct {
	Bridge        *ecs.DomainBridge
	NearestY      NearestPlayerY
	SpawnRequests []MissileSpawnRequest
}

func NewEnemyAISystem(bridge *ecs.DomainBridge, nearestY NearestPlayerY) *EnemyAISystem {
	return &EnemyAISystem{Bridge: bridge, NearestY: nearestY}
}

func (s *EnemyAISystem) Name() string  { return "EnemyAISystem" }
func (s *EnemyAISystem) Priority() int { return 100 }

func (s *EnemyAISystem) Update(store *ecs.Store, dt float64) {
	for _, id := range ecs.Query3[ecs.EnemyTag, ecs.EnemyAI, ecs.Position](store) {
		tag, _ := ecs.GetComponent[ecs.EnemyTag](store, id)
		ai, _ := ecs.GetComponent[ecs.EnemyAI](store, id)
		pos, _ := ecs.GetComponent[ecs.Position](store, id)

		ai.AliveTime += dt

		targetY := ai.TargetY
		if s.NearestY != nil {
			targetY = s.NearestY(pos.X, pos.Y)
		}

		speedX := s.Bridge.EnemySpeed(tag.Type)
		in := domain.EnemyMoveInput{
			Type:        tag.Type,
			CurrentX:    pos.X,
			CurrentY:    pos.Y,
			BaseY:       ai.BaseY,
			AliveTime:   ai.AliveTime,
			PhaseOffset: ai.PhaseOffset,
			DT:          dt,
			TargetY:     targetY,
			ZigzagTimer: ai.ZigzagTimer,
			ZigzagUp:    ai.ZigzagUp,
		}
		res := s.Bridge.StepEnemy(in, speedX)
		ai.BaseY = res.NewBaseY
		ai.ZigzagTimer = res.ZigzagTimer
		ai.ZigzagUp = res.ZigzagUp

		if vel, ok := ecs.GetComponent[ecs.Velocity](store, id); ok && dt > 0 {
			vel.VX = (res.NewX - pos.X) / dt
			vel.VY = (res.NewY - pos.Y) / dt
		}

		ai.ShootCooldown -= dt
		if ai.ShootCooldown <= 0 {
			s.SpawnRequests = append(s.SpawnRequests, MissileSpawnRequest{
				X: pos.X - 30, Y: pos.Y, EnemyType: tag.Type,
			})
			ai.ShootCooldown = s.Bridge.EnemyShootInterval(tag.Type)
		}
	}
}

// DrainSpawnRequests returns and clears the accumulated missile-spawn
// requests for the orchestrator to process.
func (s *EnemyAISystem) DrainSpawnRequests() []MissileSpawnRequest {
	out := s.SpawnRequests
	s.SpawnRequests = nil
	return out
}
