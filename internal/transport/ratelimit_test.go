package transport

import (
	"testing"
	"time"
)

func TestEndpointRateLimiterAllowsWithinBurst(t *testing.T) {
	rl := NewEndpointRateLimiter(RateLimitConfig{PacketsPerSecond: 10, Burst: 3, CleanupInterval: time.Minute})
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4:1000") {
			t.Fatalf("expected packet %d within burst to be allowed", i)
		}
	}
	if rl.Allow("1.2.3.4:1000") {
		t.Fatal("expected the 4th packet past burst to be rejected")
	}
}

func TestEndpointRateLimiterTracksEndpointsIndependently(t *testing.T) {
	rl := NewEndpointRateLimiter(RateLimitConfig{PacketsPerSecond: 10, Burst: 1, CleanupInterval: time.Minute})
	defer rl.Stop()

	if !rl.Allow("1.2.3.4:1000") {
		t.Fatal("expected first packet from endpoint A to be allowed")
	}
	if !rl.Allow("5.6.7.8:2000") {
		t.Fatal("expected first packet from endpoint B to be allowed independently")
	}
}

func TestConnectionRateLimiterCapsPerHost(t *testing.T) {
	cl := NewConnectionRateLimiter(2)
	if !cl.Allow("1.2.3.4") || !cl.Allow("1.2.3.4") {
		t.Fatal("expected first two connections to be allowed")
	}
	if cl.Allow("1.2.3.4") {
		t.Fatal("expected the third connection to be rejected")
	}
	cl.Release("1.2.3.4")
	if !cl.Allow("1.2.3.4") {
		t.Fatal("expected a connection slot to free up after Release")
	}
}
