package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func allow(t *testing.T, l *TokenBucketLimiter, key string) bool {
	t.Helper()
	ok, err := l.Allow(context.Background(), key)
	require.NoError(t, err)
	return ok
}

func TestTokenBucket_BurstThenRefill(t *testing.T) {
	c := &clock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	l := NewTokenBucketLimiter(3, time.Second)
	l.SetClock(c.now)

	for i := 0; i < 3; i++ {
		assert.True(t, allow(t, l, "a"), "request %d", i)
	}
	assert.False(t, allow(t, l, "a"))
	assert.True(t, allow(t, l, "b"), "keys are independent")

	c.advance(1500 * time.Millisecond)
	assert.True(t, allow(t, l, "a"))
	assert.False(t, allow(t, l, "a"))

	c.advance(500 * time.Millisecond)
	assert.True(t, allow(t, l, "a"), "partial refill time is carried over")
}

func TestTokenBucket_ResetAndSweep(t *testing.T) {
	c := &clock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	l := PerMinute(1)
	l.SetClock(c.now)

	assert.True(t, allow(t, l, "a"))
	assert.False(t, allow(t, l, "a"))
	require.NoError(t, l.Reset(context.Background(), "a"))
	assert.True(t, allow(t, l, "a"))

	c.advance(2 * time.Hour)
	assert.True(t, allow(t, l, "b"))
	assert.Equal(t, 1, l.Len(), "idle buckets are swept")
}
