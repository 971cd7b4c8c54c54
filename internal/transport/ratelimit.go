package transport

import (
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig configures the per-endpoint UDP datagram limiter.
type RateLimitConfig struct {
	PacketsPerSecond float64
	Burst            int
	CleanupInterval  time.Duration
}

// DefaultRateLimitConfig allows a generous input rate (60Hz client plus
// occasional retransmits) while still bounding a single flooding endpoint.
var DefaultRateLimitConfig = RateLimitConfig{
	PacketsPerSecond: 120,
	Burst:            240,
	CleanupInterval:  5 * time.Minute,
}

type endpointLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// EndpointRateLimiter throttles inbound datagrams per source endpoint so one
// adversarial or malfunctioning client cannot starve a room's serializer.
type EndpointRateLimiter struct {
	limiters sync.Map // map[string]*endpointLimiterEntry
	config   RateLimitConfig
	stopChan chan struct{}
	stopOnce sync.Once

	rejectedCount uint64
	allowedCount  uint64
}

func NewEndpointRateLimiter(cfg RateLimitConfig) *EndpointRateLimiter {
	rl := &EndpointRateLimiter{config: cfg, stopChan: make(chan struct{})}
	go rl.cleanupLoop()
	return rl
}

func (rl *EndpointRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopChan) })
}

func (rl *EndpointRateLimiter) getLimiter(endpoint string) *rate.Limiter {
	now := time.Now()
	if entry, ok := rl.limiters.Load(endpoint); ok {
		e := entry.(*endpointLimiterEntry)
		e.lastSeen = now
		return e.limiter
	}
	entry := &endpointLimiterEntry{
		limiter:  rate.NewLimiter(rate.Limit(rl.config.PacketsPerSecond), rl.config.Burst),
		lastSeen: now,
	}
	actual, _ := rl.limiters.LoadOrStore(endpoint, entry)
	return actual.(*endpointLimiterEntry).limiter
}

func (rl *EndpointRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stopChan:
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

func (rl *EndpointRateLimiter) cleanup() {
	cutoff := time.Now().Add(-rl.config.CleanupInterval * 2)
	rl.limiters.Range(func(key, value any) bool {
		if value.(*endpointLimiterEntry).lastSeen.Before(cutoff) {
			rl.limiters.Delete(key)
		}
		return true
	})
}

// Allow reports whether a datagram from endpoint should be processed.
func (rl *EndpointRateLimiter) Allow(endpoint string) bool {
	if rl.getLimiter(endpoint).Allow() {
		atomic.AddUint64(&rl.allowedCount, 1)
		return true
	}
	atomic.AddUint64(&rl.rejectedCount, 1)
	return false
}

// Stats reports allowed/rejected counters for observability.
func (rl *EndpointRateLimiter) Stats() (allowed, rejected uint64) {
	return atomic.LoadUint64(&rl.allowedCount), atomic.LoadUint64(&rl.rejectedCount)
}

// ConnectionRateLimiter caps concurrent connections per host key (an IP),
// mirroring the per-IP WebSocket connection cap idiom: Allow takes a slot,
// Release returns it. Used for the UDP Connect handshake and for spectator
// WebSocket upgrades.
type ConnectionRateLimiter struct {
	connections sync.Map // map[string]*int32
	maxPerHost  int
}

func NewConnectionRateLimiter(maxPerHost int) *ConnectionRateLimiter {
	return &ConnectionRateLimiter{maxPerHost: maxPerHost}
}

func (c *ConnectionRateLimiter) Allow(host string) bool {
	actual, _ := c.connections.LoadOrStore(host, new(int32))
	counter := actual.(*int32)
	for {
		current := atomic.LoadInt32(counter)
		if int(current) >= c.maxPerHost {
			return false
		}
		if atomic.CompareAndSwapInt32(counter, current, current+1) {
			return true
		}
	}
}

func (c *ConnectionRateLimiter) Release(host string) {
	if val, ok := c.connections.Load(host); ok {
		atomic.AddInt32(val.(*int32), -1)
	}
}
