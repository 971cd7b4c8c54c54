// Package engine implements the per-room GameWorld orchestrator: the ECS
// store and scheduler, the nine systems wired together, and everything the
// systems layer deliberately doesn't know about (connected players, wave
// spawning, the boss fight, Force Pods, Bit Devices, power-ups).
package engine

import (
	"math/rand"
	"net"
	"time"

	"github.com/lab1702/rtype-server/internal/domain"
	"github.com/lab1702/rtype-server/internal/ecs"
	"github.com/lab1702/rtype-server/internal/ecs/systems"
)

const (
	maxPlayers          = 4
	playerShipWidth     = 40
	playerShipHeight    = 30
	enemyShipWidth      = 40
	enemyShipHeight     = 30
	enemyMissileSpeed   = -350.0
	enemyMissileDamage  = 10.0
	bossEntityWidth     = 160
	bossEntityHeight    = 160
	waveBonusPerWave    = 500
)

// GameWorld owns one room's entire simulation: ECS store, scheduler, the
// nine systems, and the orchestration state the systems layer has no
// business holding (player slots, companions, waves, the boss).
type GameWorld struct {
	store     *ecs.Store
	bridge    *ecs.DomainBridge
	scheduler *ecs.Scheduler
	rule      domain.GameRule

	inputSys     *systems.PlayerInputSystem
	enemyAISys   *systems.EnemyAISystem
	weaponSys    *systems.WeaponSystem
	collisionSys *systems.CollisionSystem
	damageSys    *systems.DamageSystem
	scoreSys     *systems.ScoreSystem

	players      map[int]*ConnectedPlayer
	endpointToID map[string]int

	forcePods  map[int]*ForcePod
	bitDevices map[int][2]*BitDevice

	wave            *waveScheduler
	boss            *Boss
	bossDefeatCount int
	bossSpawnWave   int

	gameSpeedMultiplier float64
	rng                 *rand.Rand
	tick                uint64
	playerTimeout       time.Duration
}

// defaultPlayerTimeout is used when New is called with timeout<=0.
const defaultPlayerTimeout = 30 * time.Second

// New creates an empty room ready to accept players. seed fixes the room's
// RNG stream (wave composition, power-up rolls, boss attack selection);
// bossSpawnWave is the wave number at which the boss first appears; timeout
// is the inactivity budget after which a player is evicted (config's
// playerTimeoutMs), or defaultPlayerTimeout when <= 0.
func New(seed int64, bossSpawnWave int, timeout time.Duration) *GameWorld {
	if timeout <= 0 {
		timeout = defaultPlayerTimeout
	}
	bridge := ecs.NewDomainBridge()
	w := &GameWorld{
		store:               ecs.NewStore(),
		bridge:              bridge,
		scheduler:           ecs.NewScheduler(),
		players:             make(map[int]*ConnectedPlayer),
		endpointToID:        make(map[string]int),
		forcePods:           make(map[int]*ForcePod),
		bitDevices:          make(map[int][2]*BitDevice),
		bossSpawnWave:       bossSpawnWave,
		gameSpeedMultiplier: 1.0,
		rng:                 rand.New(rand.NewSource(seed)),
		playerTimeout:       timeout,
	}
	w.wave = newWaveScheduler(w.rng)

	w.inputSys = systems.NewPlayerInputSystem(bridge, w.resolvePlayer)
	w.enemyAISys = systems.NewEnemyAISystem(bridge, w.nearestPlayerY)
	w.weaponSys = systems.NewWeaponSystem(bridge, w.resolvePlayer)
	movementSys := &systems.MovementSystem{}
	w.collisionSys = systems.NewCollisionSystem(bridge)
	w.damageSys = systems.NewDamageSystem(bridge, w.collisionSys)
	lifetimeSys := systems.NewLifetimeSystem()
	cleanupSys := systems.NewCleanupSystem(bridge)
	w.scoreSys = systems.NewScoreSystem(bridge, w.damageSys, w.resolvePlayer)

	w.scheduler.Register(w.inputSys)
	w.scheduler.Register(w.enemyAISys)
	w.scheduler.Register(w.weaponSys)
	w.scheduler.Register(movementSys)
	w.scheduler.Register(w.collisionSys)
	w.scheduler.Register(w.damageSys)
	w.scheduler.Register(lifetimeSys)
	w.scheduler.Register(cleanupSys)
	w.scheduler.Register(w.scoreSys)

	return w
}

func (w *GameWorld) resolvePlayer(playerID int) (ecs.EntityID, bool) {
	cp, ok := w.players[playerID]
	if !ok {
		return 0, false
	}
	return cp.Entity, true
}

// nearestPlayerY returns the Y of the living player closest to (fromX,
// fromY), falling back to screen center when no players are present.
func (w *GameWorld) nearestPlayerY(fromX, fromY float64) float64 {
	best, bestDist := domain.ScreenHeight/2.0, -1.0
	for _, cp := range w.players {
		pos, ok := ecs.GetComponent[ecs.Position](w.store, cp.Entity)
		if !ok {
			continue
		}
		dx, dy := pos.X-fromX, pos.Y-fromY
		dist := dx*dx + dy*dy
		if bestDist < 0 || dist < bestDist {
			bestDist, best = dist, pos.Y
		}
	}
	return best
}

// SetGameSpeedPercent scales every subsequent Tick's dt by percent/100.
func (w *GameWorld) SetGameSpeedPercent(percent int) {
	if percent < 1 {
		percent = 1
	}
	w.gameSpeedMultiplier = float64(percent) / 100.0
}

// AddPlayer allocates a free player slot for endpoint. ok is false once the
// room already holds maxPlayers.
func (w *GameWorld) AddPlayer(endpoint net.Addr) (playerID int, ok bool) {
	for id := 1; id <= maxPlayers; id++ {
		if _, taken := w.players[id]; taken {
			continue
		}
		entity := w.store.CreateEntity(ecs.GroupPlayers)
		ecs.AddComponent(w.store, entity, ecs.Position{X: 150, Y: 100 + float64(id-1)*200})
		ecs.AddComponent(w.store, entity, ecs.Velocity{})
		ecs.AddComponent(w.store, entity, ecs.Hitbox{W: playerShipWidth, H: playerShipHeight})
		ecs.AddComponent(w.store, entity, ecs.Health{Current: 100, Max: 100})
		ecs.AddComponent(w.store, entity, ecs.PlayerTag{PlayerID: id, IsAlive: true})
		ecs.AddComponent(w.store, entity, ecs.Weapon{CurrentType: domain.WeaponStandard})
		ecs.AddComponent(w.store, entity, ecs.SpeedLevel{})
		ecs.AddComponent(w.store, entity, ecs.Score{ComboMult: 1.0})

		cp := &ConnectedPlayer{Entity: entity, Endpoint: endpoint, LastActivity: time.Now()}
		w.players[id] = cp
		w.endpointToID[endpoint.String()] = id
		return id, true
	}
	return 0, false
}

// RemovePlayer evicts playerID and everything it owns (ship, Force Pod,
// Bit Devices).
func (w *GameWorld) RemovePlayer(playerID int) {
	cp, ok := w.players[playerID]
	if !ok {
		return
	}
	if fp, ok := w.forcePods[playerID]; ok {
		w.store.DeleteEntity(fp.Entity)
		delete(w.forcePods, playerID)
	}
	delete(w.bitDevices, playerID)
	delete(w.endpointToID, cp.Endpoint.String())
	w.store.DeleteEntity(cp.Entity)
	delete(w.players, playerID)
	w.store.FlushDeletions()
}

// RemovePlayerByEndpoint evicts whichever player slot endpoint occupies, if
// any.
func (w *GameWorld) RemovePlayerByEndpoint(endpoint net.Addr) {
	if id, ok := w.endpointToID[endpoint.String()]; ok {
		w.RemovePlayer(id)
	}
}

// GetAllEndpoints returns the network address of every connected player.
func (w *GameWorld) GetAllEndpoints() []net.Addr {
	out := make([]net.Addr, 0, len(w.players))
	for _, cp := range w.players {
		out = append(out, cp.Endpoint)
	}
	return out
}

// PlayerCount reports how many players currently occupy this room.
func (w *GameWorld) PlayerCount() int {
	return len(w.players)
}

// GetPlayerLastInputSeq reports the last input sequence number accepted
// from playerID, used for client-side reconciliation acks.
func (w *GameWorld) GetPlayerLastInputSeq(playerID int) (uint32, bool) {
	cp, ok := w.players[playerID]
	if !ok {
		return 0, false
	}
	return cp.LastInputSeq, true
}

// ApplyPlayerInput queues a movement sample and interprets the fire key's
// rising/falling edges: a short press fires a standard shot, a held press
// past ChargeLevel1Seconds releases a charged wave cannon.
func (w *GameWorld) ApplyPlayerInput(playerID int, keys uint8, seq uint32) {
	cp, ok := w.players[playerID]
	if !ok {
		return
	}
	cp.LastActivity = time.Now()
	cp.LastInputSeq = seq

	w.inputSys.Queue = append(w.inputSys.Queue, systems.InputCommand{PlayerID: playerID, Keys: keys, Seq: seq})

	fireDown := keys&systems.KeyShoot != 0
	switch {
	case fireDown && !cp.FireWasDown:
		w.weaponSys.ChargeStartRequests = append(w.weaponSys.ChargeStartRequests, systems.ChargeStartRequest{PlayerID: playerID})
	case !fireDown && cp.FireWasDown:
		wp, ok := ecs.GetComponent[ecs.Weapon](w.store, cp.Entity)
		if ok && wp.ChargeTime < systems.ChargeLevel1Seconds {
			// A short tap: clear the charge WeaponSystem's ChargeStartRequest
			// set, so handleShoot's IsCharging guard doesn't swallow the shot.
			wp.IsCharging = false
			wp.ChargeTime = 0
			w.weaponSys.ShootRequests = append(w.weaponSys.ShootRequests, systems.ShootRequest{PlayerID: playerID})
			w.spawnForceMissiles(playerID)
		} else {
			w.weaponSys.ChargeReleaseRequests = append(w.weaponSys.ChargeReleaseRequests, systems.ChargeReleaseRequest{PlayerID: playerID})
		}
	}
	cp.FireWasDown = fireDown

	if keys&systems.KeySwitchNext != 0 {
		w.weaponSys.SwitchRequests = append(w.weaponSys.SwitchRequests, systems.SwitchWeaponRequest{PlayerID: playerID, Dir: 1})
	} else if keys&systems.KeySwitchPrev != 0 {
		w.weaponSys.SwitchRequests = append(w.weaponSys.SwitchRequests, systems.SwitchWeaponRequest{PlayerID: playerID, Dir: -1})
	}
}

// Tick advances the simulation by dt seconds (scaled by the room's
// game-speed multiplier): wave spawning, the nine-system pass, companion
// updates, the boss FSM and player timeout eviction.
func (w *GameWorld) Tick(dt float64) {
	dt *= w.gameSpeedMultiplier
	w.tick++

	for _, entry := range w.wave.advance(dt) {
		w.spawnEnemy(entry)
	}
	if w.boss == nil && w.wave.waveNumber >= w.bossSpawnWave {
		w.spawnBoss()
	}

	w.scheduler.Update(w.store, dt)

	for _, req := range w.enemyAISys.DrainSpawnRequests() {
		w.spawnEnemyMissile(req)
	}

	for _, kill := range w.damageSys.Kills {
		w.rollPowerUpDrop(kill.X, kill.Y, domain.EnemyType(kill.KilledType) == domain.EnemyArmored)
	}

	w.resolvePowerUpPickups()
	w.updateForcePods(dt)
	w.updateBitDevices(dt)

	if w.boss != nil {
		w.tickBoss(dt)
	}

	now := time.Now()
	for id, cp := range w.players {
		if now.Sub(cp.LastActivity) > w.playerTimeout {
			w.RemovePlayer(id)
		}
	}
}

// resolvePowerUpPickups turns this tick's Player x PowerUp overlaps
// (found by CollisionSystem but deliberately left unresolved by
// DamageSystem) into applied power-up effects.
func (w *GameWorld) resolvePowerUpPickups() {
	var pickups []powerUpPickup
	for _, ev := range w.collisionSys.Events {
		if ev.GroupA != ecs.GroupPlayers || ev.GroupB != ecs.GroupPowerUps {
			continue
		}
		pt, ok := ecs.GetComponent[ecs.PlayerTag](w.store, ev.EntityA)
		if !ok {
			continue
		}
		pickups = append(pickups, powerUpPickup{playerID: pt.PlayerID, powerUp: ev.EntityB})
	}
	w.checkPowerUpCollisions(pickups)
}

func (w *GameWorld) spawnEnemy(entry waveSpawnEntry) {
	hp := w.bridge.EnemyHealth(entry.Type)
	id := w.store.CreateEntity(ecs.GroupEnemies)
	ecs.AddComponent(w.store, id, ecs.Position{X: spawnX, Y: entry.Y})
	ecs.AddComponent(w.store, id, ecs.Velocity{})
	ecs.AddComponent(w.store, id, ecs.Hitbox{W: enemyShipWidth, H: enemyShipHeight})
	ecs.AddComponent(w.store, id, ecs.Health{Current: hp, Max: hp})
	ecs.AddComponent(w.store, id, ecs.EnemyTag{Type: entry.Type, Points: w.bridge.EnemyPointValue(entry.Type)})
	ecs.AddComponent(w.store, id, ecs.EnemyAI{
		ShootInterval: w.bridge.EnemyShootInterval(entry.Type),
		BaseY:         entry.Y,
		TargetY:       entry.Y,
		PhaseOffset:   randRange(w.rng, 0, 6.283),
	})
}

func (w *GameWorld) spawnEnemyMissile(req systems.MissileSpawnRequest) {
	id := w.store.CreateEntity(ecs.GroupEnemyMissiles)
	ecs.AddComponent(w.store, id, ecs.Position{X: req.X, Y: req.Y})
	ecs.AddComponent(w.store, id, ecs.Velocity{VX: enemyMissileSpeed})
	ecs.AddComponent(w.store, id, ecs.Hitbox{W: 12, H: 6})
	ecs.AddComponent(w.store, id, ecs.Lifetime{Remaining: 10, Total: 10})
	ecs.AddComponent(w.store, id, ecs.MissileTag{BaseDamage: enemyMissileDamage})
}

// GetSnapshot builds a read-only point-in-time view of the room, for the
// spectator feed and GameState packets.
func (w *GameWorld) GetSnapshot() GameSnapshot {
	snap := GameSnapshot{Tick: w.tick}
	for _, id := range w.store.EntitiesInGroup(ecs.GroupPlayers) {
		pos, _ := ecs.GetComponent[ecs.Position](w.store, id)
		hp, _ := ecs.GetComponent[ecs.Health](w.store, id)
		pt, _ := ecs.GetComponent[ecs.PlayerTag](w.store, id)
		if pos == nil || hp == nil || pt == nil {
			continue
		}
		snap.Players = append(snap.Players, PlayerSnapshot{ID: pt.PlayerID, X: pos.X, Y: pos.Y, Health: hp.Current, Alive: pt.IsAlive})
	}
	for _, id := range w.store.EntitiesInGroup(ecs.GroupEnemies) {
		pos, _ := ecs.GetComponent[ecs.Position](w.store, id)
		hp, _ := ecs.GetComponent[ecs.Health](w.store, id)
		tag, _ := ecs.GetComponent[ecs.EnemyTag](w.store, id)
		if pos == nil || hp == nil || tag == nil {
			continue
		}
		snap.Enemies = append(snap.Enemies, EnemySnapshot{EntityID: uint32(id), Type: int(tag.Type), X: pos.X, Y: pos.Y, Health: hp.Current})
	}
	if w.boss != nil {
		snap.Boss = &BossSnapshot{HP: w.boss.HP, MaxHP: w.boss.MaxHP, Phase: int(w.boss.Phase)}
	}
	return snap
}
