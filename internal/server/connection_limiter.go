package server

import (
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Renderer sockets are long-lived, so the WebSocket endpoint guards itself
// with three independent limits: a global cap per instance, a per-IP cap,
// and a per-IP connect rate.

// globalConnectionLimiter caps total concurrent renderer connections.
type globalConnectionLimiter struct {
	current atomic.Int64
	max     int64
}

func (l *globalConnectionLimiter) acquire() bool {
	for {
		current := l.current.Load()
		if current >= l.max {
			return false
		}
		if l.current.CompareAndSwap(current, current+1) {
			return true
		}
	}
}

func (l *globalConnectionLimiter) release() {
	l.current.Add(-1)
}

// ipConnectionLimiter caps concurrent connections per IP address.
type ipConnectionLimiter struct {
	mu     sync.Mutex
	ips    map[string]int
	maxPer int
}

func (l *ipConnectionLimiter) acquire(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.ips[ip] >= l.maxPer {
		return false
	}
	l.ips[ip]++
	return true
}

func (l *ipConnectionLimiter) release(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if count := l.ips[ip]; count > 0 {
		l.ips[ip] = count - 1
		if l.ips[ip] == 0 {
			delete(l.ips, ip)
		}
	}
}

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleExpiry      = 10 * time.Minute
)

// connectionRateLimiter caps the rate of new connections per IP with a token
// bucket.
type connectionRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*rateLimiterEntry
	rate      rate.Limit
	burst     int
	cleanupAt time.Time
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func (l *connectionRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if time.Now().After(l.cleanupAt) {
		cutoff := time.Now().Add(-limiterIdleExpiry)
		for ip, entry := range l.limiters {
			if entry.lastSeen.Before(cutoff) {
				delete(l.limiters, ip)
			}
		}
		l.cleanupAt = time.Now().Add(limiterCleanupInterval)
	}

	entry, exists := l.limiters[ip]
	if !exists {
		entry = &rateLimiterEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[ip] = entry
	}

	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

// ConnectionLimits combines the three limiters behind one acquire/release
// pair.
type ConnectionLimits struct {
	global *globalConnectionLimiter
	perIP  *ipConnectionLimiter
	rate   *connectionRateLimiter
}

// NewConnectionLimits creates a combined connection limiter.
func NewConnectionLimits(globalMax int64, perIPMax int, connectionsPerSecond float64, burst int) *ConnectionLimits {
	return &ConnectionLimits{
		global: &globalConnectionLimiter{max: globalMax},
		perIP:  &ipConnectionLimiter{ips: make(map[string]int), maxPer: perIPMax},
		rate: &connectionRateLimiter{
			limiters:  make(map[string]*rateLimiterEntry),
			rate:      rate.Limit(connectionsPerSecond),
			burst:     burst,
			cleanupAt: time.Now().Add(limiterCleanupInterval),
		},
	}
}

// LimitReason describes why a connection was rejected.
type LimitReason string

const (
	LimitReasonGlobal LimitReason = "global_limit"
	LimitReasonPerIP  LimitReason = "per_ip_limit"
	LimitReasonRate   LimitReason = "rate_limit"
)

// Acquire attempts all three limits for the given IP. Returns false and the
// reason when any limit is exceeded.
func (l *ConnectionLimits) Acquire(ip string) (bool, LimitReason) {
	// Rate check first, it is the cheapest.
	if !l.rate.allow(ip) {
		return false, LimitReasonRate
	}

	if !l.global.acquire() {
		return false, LimitReasonGlobal
	}

	if !l.perIP.acquire(ip) {
		l.global.release()
		return false, LimitReasonPerIP
	}

	return true, ""
}

// Release releases all limits for the given IP.
func (l *ConnectionLimits) Release(ip string) {
	l.perIP.release(ip)
	l.global.release()
}
