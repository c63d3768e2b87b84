// Package ratelimit provides per-client rate limiting for the registry API
// using token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// TokenBucket allows up to capacity requests at once and refills at a steady
// rate.
type TokenBucket struct {
	capacity   int
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	now        func() time.Time
	mu         sync.Mutex
}

func newTokenBucket(capacity int, refillRate float64, now func() time.Time) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: now(),
		now:        now,
	}
}

// refill must be called with mu held.
func (tb *TokenBucket) refill() time.Time {
	now := tb.now()
	elapsed := now.Sub(tb.lastRefill)
	tb.tokens = min(float64(tb.capacity), tb.tokens+elapsed.Seconds()*tb.refillRate)
	tb.lastRefill = now
	return now
}

// take consumes a token if one is available and reports the bucket state
// afterwards. retryAfter is the wait until the next token when denied.
func (tb *TokenBucket) take() (allowed bool, remaining int, resetTime time.Time, retryAfter time.Duration) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.refill()
	if tb.tokens >= 1.0 {
		tb.tokens--
		allowed = true
	} else if tb.refillRate > 0 {
		retryAfter = time.Duration((1 - tb.tokens) / tb.refillRate * float64(time.Second))
	}

	remaining = int(tb.tokens)
	resetTime = now
	if tb.tokens < float64(tb.capacity) && tb.refillRate > 0 {
		missing := float64(tb.capacity) - tb.tokens
		resetTime = now.Add(time.Duration(missing / tb.refillRate * float64(time.Second)))
	}
	return allowed, remaining, resetTime, retryAfter
}

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// Limiter keeps one bucket per client and endpoint pattern.
type Limiter struct {
	config *Config
	now    func() time.Time

	mu         sync.Mutex
	buckets    map[string]*TokenBucket
	lastAccess map[string]time.Time

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
	stopOnce      sync.Once
}

// NewLimiter creates a new rate limiter with the given configuration.
func NewLimiter(config *Config) *Limiter {
	return newLimiter(config, time.Now)
}

func newLimiter(config *Config, now func() time.Time) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
			Whitelist:       make(map[string]bool),
			Blacklist:       make(map[string]bool),
		}
	}

	l := &Limiter{
		config:     config,
		now:        now,
		buckets:    make(map[string]*TokenBucket),
		lastAccess: make(map[string]time.Time),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(config.CleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanup()
	}
	return l
}

// Allow checks if a request from clientID to path is allowed. Requests
// matching the same endpoint pattern share a bucket, so every CV id counts
// against one budget.
func (l *Limiter) Allow(clientID string, path string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	endpoint := MatchEndpoint(path, method, l.config.EndpointConfigs)
	key := clientID + ":" + method + ":" + path
	if endpoint == nil {
		endpoint = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	} else {
		key = clientID + ":" + method + ":" + endpoint.Path
	}
	if endpoint.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	allowed, remaining, resetTime, retryAfter := l.bucket(key, endpoint).take()

	return allowed, Info{
		Allowed:    allowed,
		Limit:      endpoint.Limit,
		Remaining:  remaining,
		ResetTime:  resetTime,
		RetryAfter: retryAfter,
	}
}

func (l *Limiter) bucket(key string, endpoint *EndpointConfig) *TokenBucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lastAccess[key] = l.now()
	if b, ok := l.buckets[key]; ok {
		return b
	}
	capacity := endpoint.Burst
	if capacity <= 0 {
		capacity = endpoint.Limit
	}
	b := newTokenBucket(capacity, float64(endpoint.Limit)/endpoint.Window.Seconds(), l.now)
	l.buckets[key] = b
	return b
}

func (l *Limiter) cleanup() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.cleanupBuckets()
		case <-l.cleanupStop:
			return
		}
	}
}

// cleanupBuckets drops buckets idle for over an hour.
func (l *Limiter) cleanupBuckets() {
	cutoff := l.now().Add(-time.Hour)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, last := range l.lastAccess {
		if last.Before(cutoff) {
			delete(l.buckets, key)
			delete(l.lastAccess, key)
		}
	}
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.cleanupTicker != nil {
			l.cleanupTicker.Stop()
		}
		if l.cleanupStop != nil {
			close(l.cleanupStop)
		}
	})
}
