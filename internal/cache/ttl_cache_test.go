package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCache_SetGet(t *testing.T) {
	c := NewTTLCache[string, int]()

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", 42, time.Minute)
	got, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 42, got)
}

func TestTTLCache_Expiry(t *testing.T) {
	c := NewTTLCache[string, int]()

	c.Set("a", 1, time.Nanosecond)
	time.Sleep(2 * time.Millisecond)

	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestTTLCache_ZeroTTLNotStored(t *testing.T) {
	c := NewTTLCache[string, int]()

	c.Set("a", 1, 0)
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestKey_NormalizesCodeAndDate(t *testing.T) {
	at := time.Date(2026, 6, 1, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, "es|2026-06-01", Key(at, "ES"))
	assert.Equal(t, "es|2026-06-01", Key(at, " es "))
	assert.Equal(t, "es|standard|2026-06-01", Key(at, "ES", "STANDARD"))
}
