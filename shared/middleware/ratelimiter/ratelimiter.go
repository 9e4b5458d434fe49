// Package ratelimiter implements per-client token buckets.
package ratelimiter

import (
	"sync"
	"time"
)

// ClientRateLimiter hands out one token bucket per client key. Buckets
// refill continuously at rate tokens per second up to capacity, and a
// bucket is dropped after idleFor without requests so one-off clients
// do not accumulate.
type ClientRateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     float64
	capacity float64
	idleFor  time.Duration
}

type bucket struct {
	tokens     float64
	lastRefill time.Time
	expiry     *time.Timer
}

func New(rate, capacity float64, idleFor time.Duration) *ClientRateLimiter {
	return &ClientRateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		capacity: capacity,
		idleFor:  idleFor,
	}
}

// Allow reports whether the client identified by key may proceed,
// consuming one token when it can. New clients start with a full
// bucket.
func (c *ClientRateLimiter) Allow(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	b, ok := c.buckets[key]
	if !ok {
		b = &bucket{tokens: c.capacity, lastRefill: now}
		c.buckets[key] = b
	} else {
		b.expiry.Stop()
		b.tokens += now.Sub(b.lastRefill).Seconds() * c.rate
		if b.tokens > c.capacity {
			b.tokens = c.capacity
		}
		b.lastRefill = now
	}
	b.expiry = time.AfterFunc(c.idleFor, func() { c.drop(key) })

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (c *ClientRateLimiter) drop(key string) {
	c.mu.Lock()
	delete(c.buckets, key)
	c.mu.Unlock()
}

// Stop cancels every pending expiry timer.
func (c *ClientRateLimiter) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, b := range c.buckets {
		b.expiry.Stop()
	}
}
