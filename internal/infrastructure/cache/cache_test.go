package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	c := New(time.Minute, time.Minute)

	c.Set("analytics:t1:kpi_summary", 42, time.Minute)

	v, ok := c.Get("analytics:t1:kpi_summary")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = c.Get("analytics:t1:missing")
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	c := New(time.Minute, time.Minute)

	c.Set("k", "v", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestDeleteByPrefix(t *testing.T) {
	c := New(time.Minute, time.Minute)

	c.Set("analytics:t1:kpi_summary", 1, time.Minute)
	c.Set("analytics:t1:revenue_trend", 2, time.Minute)
	c.Set("analytics:t2:kpi_summary", 3, time.Minute)

	c.DeleteByPrefix("analytics:t1:")

	_, ok := c.Get("analytics:t1:kpi_summary")
	assert.False(t, ok)
	_, ok = c.Get("analytics:t1:revenue_trend")
	assert.False(t, ok)

	v, ok := c.Get("analytics:t2:kpi_summary")
	require.True(t, ok, "other tenant must survive")
	assert.Equal(t, 3, v)
}
