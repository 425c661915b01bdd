package cache

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache(t *testing.T) {
	c := New(time.Minute, time.Minute)

	c.Set("search", []string{"a"})
	got, ok := c.Get("search")
	assert.True(t, ok)
	assert.Equal(t, []string{"a"}, got)
	assert.Equal(t, 1, c.ItemCount())

	c.Delete("search")
	_, ok = c.Get("search")
	assert.False(t, ok)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()
	assert.Equal(t, 0, c.ItemCount())
}

func TestCacheRefusesValuesFromBeforeClear(t *testing.T) {
	c := New(time.Minute, time.Minute)

	gen := c.Generation()
	// a change lands while the value is being computed
	c.Clear()
	assert.False(t, c.SetAt("owned", 0, gen))
	_, ok := c.Get("owned")
	assert.False(t, ok)

	assert.True(t, c.SetAt("owned", 1, c.Generation()))
	got, ok := c.Get("owned")
	assert.True(t, ok)
	assert.Equal(t, 1, got)
}

func TestCacheExpiry(t *testing.T) {
	c := New(20*time.Millisecond, time.Hour)
	c.Set("k", "v")
	assert.Eventually(t, func() bool {
		_, ok := c.Get("k")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestKey(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
		want  string
	}{
		{"no query", nil, "search"},
		{"single", url.Values{"q": {"s-j imports"}}, "search?q=s-j+imports"},
		{"order independent", url.Values{"year": {"2025", "2024"}, "case": {"A"}}, "search?case=A&year=2024%2C2025"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key("search", tt.query))
		})
	}
}
