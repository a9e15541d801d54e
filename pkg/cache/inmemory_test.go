package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetAs(t *testing.T) {
	c := NewCache(time.Minute, time.Minute)
	c.Set("answer", 42, time.Minute)

	got, ok := GetAs[int](c, "answer")
	assert.True(t, ok)
	assert.Equal(t, 42, got)

	_, ok = GetAs[string](c, "answer")
	assert.False(t, ok, "wrong type is a miss")

	_, ok = GetAs[int](c, "missing")
	assert.False(t, ok)

	_, ok = GetAs[int](nil, "answer")
	assert.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	c := NewCache(time.Minute, time.Minute)
	c.Set("short", "v", 20*time.Millisecond)

	_, ok := c.Get("short")
	assert.True(t, ok)

	time.Sleep(40 * time.Millisecond)
	_, ok = c.Get("short")
	assert.False(t, ok)
}

func TestCache_InstancesAreIndependent(t *testing.T) {
	a := NewCache(time.Minute, time.Minute)
	b := NewCache(time.Minute, time.Minute)
	a.Set("k", 1, time.Minute)

	_, ok := b.Get("k")
	assert.False(t, ok)

	a.Delete("k")
	_, ok = a.Get("k")
	assert.False(t, ok)
}
