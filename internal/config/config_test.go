package config

import "testing"

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.TickRate != 60 {
		t.Fatalf("tick rate = %d, want 60", cfg.TickRate)
	}
	if cfg.BossSpawnWave != 10 {
		t.Fatalf("boss spawn wave = %d, want 10", cfg.BossSpawnWave)
	}
	if cfg.GameSpeedPercent != 100 {
		t.Fatalf("game speed percent = %d, want 100", cfg.GameSpeedPercent)
	}
	if cfg.TickInterval() <= 0 {
		t.Fatal("expected a positive tick interval")
	}
	if cfg.PlayerTimeout() <= 0 {
		t.Fatal("expected a positive player timeout")
	}
}

func TestParseRejectsOutOfRangeGameSpeed(t *testing.T) {
	if _, err := Parse([]string{"-game-speed-percent=10"}); err == nil {
		t.Fatal("expected an error for an out-of-range game speed percent")
	}
}

func TestParseRejectsZeroTickRate(t *testing.T) {
	if _, err := Parse([]string{"-tick-rate=0"}); err == nil {
		t.Fatal("expected an error for a zero tick rate")
	}
}
