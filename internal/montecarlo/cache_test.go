package montecarlo

import (
	"testing"
	"time"

	"clinch-calc/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCurveCacheDisabled(t *testing.T) {
	assert.Nil(t, NewCurveCache(0, 10))
	assert.Nil(t, NewCurveCache(time.Minute, 0))

	var c *CurveCache
	c.Set("k", &Curve{})
	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
	c.Clear()
}

func TestCurveCacheExpiry(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	c := NewCurveCache(time.Minute, 10)
	c.now = func() time.Time { return now }

	curve := &Curve{Trials: 5}
	c.Set("a", curve)

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Same(t, curve, got)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok)
}

func TestCurveCacheEviction(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	c := NewCurveCache(time.Minute, 2)
	c.now = func() time.Time { return now }

	c.Set("a", &Curve{Trials: 1})
	now = now.Add(time.Second)
	c.Set("b", &Curve{Trials: 2})
	now = now.Add(time.Second)
	c.Set("c", &Curve{Trials: 3})

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok, "entry closest to expiry is evicted")
	_, ok = c.Get("c")
	assert.True(t, ok)

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestCacheKey(t *testing.T) {
	s := model.Scenario{PointsLeader: 60, PointsChaser: 55, Remaining: 5, PpgLeader: 2, PpgChaser: 1}
	opts := Options{Volatility: 0.5, Trials: 100, Workers: 2, Seed: 9}

	assert.Equal(t, CacheKey(s, opts), CacheKey(s, opts))
	assert.Len(t, CacheKey(s, opts), 64)

	other := opts
	other.Seed = 10
	assert.NotEqual(t, CacheKey(s, opts), CacheKey(s, other))

	renamed := s
	renamed.LeaderName = "Inter"
	assert.Equal(t, CacheKey(s, opts), CacheKey(renamed, opts), "names do not change the curve")
}
