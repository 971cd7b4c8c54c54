package engine

import (
	"math/rand"

	"github.com/lab1702/rtype-server/internal/domain"
)

// waveSpawnEntry is one enemy queued by a scheduled wave, counting down its
// per-entry delay before it actually spawns.
type waveSpawnEntry struct {
	Delay float64
	Y     float64
	Type  domain.EnemyType
}

// waveScheduler decides when and what to spawn: a random enemy count in
// [2,6] per wave and a random 6-12 s interval between waves. It only counts
// waves; GameWorld.Tick spawns the boss once waveNumber reaches the
// configured boss wave.
type waveScheduler struct {
	timer           float64
	currentInterval float64
	waveNumber      int
	queue           []waveSpawnEntry
	rng             *rand.Rand
}

func newWaveScheduler(rng *rand.Rand) *waveScheduler {
	return &waveScheduler{currentInterval: randRange(rng, 6, 12), rng: rng}
}

var enemyTypePool = []domain.EnemyType{
	domain.EnemyBasic, domain.EnemyTracker, domain.EnemyZigzag,
	domain.EnemyFast, domain.EnemyBomber, domain.EnemyArmored,
}

const spawnX = 1950

// advance runs one tick of wave scheduling: it may queue a new wave and
// always pops ready entries, returning the enemies to spawn this tick.
func (w *waveScheduler) advance(dt float64) []waveSpawnEntry {
	w.timer += dt
	if w.timer >= w.currentInterval {
		w.timer = 0
		w.currentInterval = randRange(w.rng, 6, 12)
		w.scheduleWave()
	}

	ready := make([]waveSpawnEntry, 0)
	remaining := w.queue[:0]
	for _, e := range w.queue {
		e.Delay -= dt
		if e.Delay <= 0 {
			ready = append(ready, e)
		} else {
			remaining = append(remaining, e)
		}
	}
	w.queue = remaining
	return ready
}

func (w *waveScheduler) scheduleWave() {
	w.waveNumber++
	count := 2 + w.rng.Intn(5) // [2,6]
	for i := 0; i < count; i++ {
		w.queue = append(w.queue, waveSpawnEntry{
			Delay: randRange(w.rng, 0.3, 1.2),
			Y:     randRange(w.rng, 100, 900),
			Type:  enemyTypePool[w.rng.Intn(len(enemyTypePool))],
		})
	}
}

func randRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
