package systems

import "github.com/lab1702/rtype-server/internal/ecs"

// ScoreChangedEvent is emitted whenever a player's score changes, consumed
// by the orchestrator (e.g. to push an Event packet to clients).
type ScoreChangedEvent struct {
	PlayerID    int
	NewTotal    int
	PointsAdded int
	NewCombo    float64
}

// BonusPoints lets the orchestrator award points that bypass the combo
// multiplier (e.g. wave-completion bonuses).
type BonusPoints struct {
	PlayerID int
	Points   int
}

// ScoreSystem advances combo decay and drains the kill-event queue
// (populated by DamageSystem this same tick) plus any bonus-point awards,
// emitting ScoreChangedEvents. Priority 800.
type ScoreSystem struct {
	Bridge  *ecs.DomainBridge
	Damage  *DamageSystem
	Resolve PlayerByID

	BonusRequests []BonusPoints
	Changes       []ScoreChangedEvent
}

func NewScoreSystem(bridge *ecs.DomainBridge, damage *DamageSystem, resolve PlayerByID) *ScoreSystem {
	return &ScoreSystem{Bridge: bridge, Damage: damage, Resolve: resolve}
}

func (s *ScoreSystem) Name() string  { return "ScoreSystem" }
func (s *ScoreSystem) Priority() int { return 800 }

func (s *ScoreSystem) Update(store *ecs.Store, dt float64) {
	s.Changes = s.Changes[:0]

	for _, id := range store.EntitiesInGroup(ecs.GroupPlayers) {
		sc, ok := ecs.GetComponent[ecs.Score](store, id)
		if !ok {
			continue
		}
		sc.ComboTimer += dt
		sc.ComboMult = s.Bridge.DecayCombo(sc.ComboMult, dt, sc.ComboTimer)
	}

	for _, kill := range s.Damage.Kills {
		id, ok := s.Resolve(kill.KillerPlayerID)
		if !ok || kill.KillerPlayerID == 0 {
			continue
		}
		sc, ok := ecs.GetComponent[ecs.Score](store, id)
		if !ok {
			continue
		}
		awarded := s.Bridge.ApplyComboBonus(kill.BasePoints, sc.ComboMult)
		sc.Total += awarded
		sc.Kills++
		sc.ComboMult = s.Bridge.IncrementCombo(sc.ComboMult)
		sc.ComboTimer = 0
		if sc.ComboMult > sc.MaxCombo {
			sc.MaxCombo = sc.ComboMult
		}
		s.Changes = append(s.Changes, ScoreChangedEvent{
			PlayerID: kill.KillerPlayerID, NewTotal: sc.Total,
			PointsAdded: awarded, NewCombo: sc.ComboMult,
		})
	}

	bonuses := s.BonusRequests
	s.BonusRequests = nil
	for _, b := range bonuses {
		id, ok := s.Resolve(b.PlayerID)
		if !ok {
			continue
		}
		sc, ok := ecs.GetComponent[ecs.Score](store, id)
		if !ok {
			continue
		}
		sc.Total += b.Points
		s.Changes = append(s.Changes, ScoreChangedEvent{
			PlayerID: b.PlayerID, NewTotal: sc.Total,
			PointsAdded: b.Points, NewCombo: sc.ComboMult,
		})
	}
}

// AddBonusPoints queues bonus points for playerID that bypass the combo
// multiplier, applied on the next Update.
func (s *ScoreSystem) AddBonusPoints(playerID, points int) {
	s.BonusRequests = append(s.BonusRequests, BonusPoints{PlayerID: playerID, Points: points})
}
