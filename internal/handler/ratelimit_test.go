package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClientLimiter(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	l := newClientLimiter(1, 2)
	l.now = func() time.Time { return now }
	l.lastPrune = now

	assert.True(t, l.allow("10.0.0.1"))
	assert.True(t, l.allow("10.0.0.1"))
	assert.False(t, l.allow("10.0.0.1"), "burst exhausted")
	assert.True(t, l.allow("10.0.0.2"), "clients have separate buckets")

	now = now.Add(time.Second)
	assert.True(t, l.allow("10.0.0.1"), "one token refilled")

	now = now.Add(idleClientTTL + time.Second)
	l.allow("10.0.0.3")
	assert.Len(t, l.clients, 1, "idle buckets are pruned")
}

func TestClientLimiterDisabled(t *testing.T) {
	l := newClientLimiter(0, 0)
	for i := 0; i < 100; i++ {
		assert.True(t, l.allow("10.0.0.1"))
	}
}
