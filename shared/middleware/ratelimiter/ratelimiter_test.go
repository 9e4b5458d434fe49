package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBurstThenDeny(t *testing.T) {
	rl := New(0.001, 3, time.Hour) // effectively no refill
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("client"), "request %d within capacity", i+1)
	}
	assert.False(t, rl.Allow("client"))
}

func TestKeysAreIndependent(t *testing.T) {
	rl := New(0.001, 1, time.Hour)
	defer rl.Stop()

	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"))
}

func TestRefillOverTime(t *testing.T) {
	rl := New(100, 1, time.Hour) // 100 tokens/sec
	defer rl.Stop()

	assert.True(t, rl.Allow("client"))
	assert.False(t, rl.Allow("client"))

	time.Sleep(50 * time.Millisecond)
	assert.True(t, rl.Allow("client"), "bucket must refill while idle")
}

func TestIdleBucketIsDropped(t *testing.T) {
	rl := New(0.001, 1, 20*time.Millisecond)
	defer rl.Stop()

	assert.True(t, rl.Allow("client"))
	assert.False(t, rl.Allow("client"))

	// After the idle window the bucket is recreated at full capacity.
	time.Sleep(60 * time.Millisecond)
	assert.True(t, rl.Allow("client"))
}
