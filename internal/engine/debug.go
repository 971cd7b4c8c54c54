package engine

import "log"

// Debug flags for various subsystems: flip one on to get verbose
// per-decision logging without touching call sites.
var (
	DebugWeapons      = false
	DebugBossPhases   = false
)

func logWeaponDecision(playerID int, decision, reason string) {
	if DebugWeapons {
		log.Printf("[WEAPON DEBUG] player=%d decision=%s reason=%s", playerID, decision, reason)
	}
}

func logBossPhase(from, to int) {
	if DebugBossPhases {
		log.Printf("[BOSS DEBUG] phase %d -> %d", from, to)
	}
}
