package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/domain/appointment"
)

func newTestCache(t *testing.T) (*AvailabilityCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewAvailabilityCache(rdb), mr
}

func sampleEntries() []domain.SlotEntry {
	return []domain.SlotEntry{
		{Time: "08:00", MechanicID: 1, MechanicName: "Tuan", Status: domain.SlotAvailable},
		{Time: "09:00", MechanicID: 1, MechanicName: "Tuan", Status: domain.SlotBooked},
	}
}

func TestAvailabilityCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, ok := c.Get(ctx, "2024-06-01", nil)
	assert.False(t, ok)

	c.Set(ctx, "2024-06-01", nil, sampleEntries())

	got, ok := c.Get(ctx, "2024-06-01", nil)
	require.True(t, ok)
	assert.Equal(t, sampleEntries(), got)
}

func TestAvailabilityCacheKeysByMechanic(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	mechID := uint(7)
	c.Set(ctx, "2024-06-01", &mechID, sampleEntries())

	_, ok := c.Get(ctx, "2024-06-01", nil)
	assert.False(t, ok)

	otherID := uint(8)
	_, ok = c.Get(ctx, "2024-06-01", &otherID)
	assert.False(t, ok)

	_, ok = c.Get(ctx, "2024-06-01", &mechID)
	assert.True(t, ok)
}

func TestAvailabilityCacheInvalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	mechID := uint(7)
	c.Set(ctx, "2024-06-01", nil, sampleEntries())
	c.Set(ctx, "2024-06-01", &mechID, sampleEntries())
	c.Set(ctx, "2024-06-02", nil, sampleEntries())

	// a write for one mechanic drops that mechanic's key and the
	// all-mechanics key for the same date
	c.Invalidate(ctx, "2024-06-01", &mechID)

	_, ok := c.Get(ctx, "2024-06-01", nil)
	assert.False(t, ok)
	_, ok = c.Get(ctx, "2024-06-01", &mechID)
	assert.False(t, ok)

	_, ok = c.Get(ctx, "2024-06-02", nil)
	assert.True(t, ok)
}

func TestAvailabilityCacheExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "2024-06-01", nil, sampleEntries())
	mr.FastForward(availabilityTTL * 2)

	_, ok := c.Get(ctx, "2024-06-01", nil)
	assert.False(t, ok)
}

func TestAvailabilityCacheDegradesWithoutRedis(t *testing.T) {
	var c *AvailabilityCache
	ctx := context.Background()

	_, ok := c.Get(ctx, "2024-06-01", nil)
	assert.False(t, ok)
	c.Set(ctx, "2024-06-01", nil, sampleEntries())
	c.Invalidate(ctx, "2024-06-01", nil)

	c = NewAvailabilityCache(nil)
	_, ok = c.Get(ctx, "2024-06-01", nil)
	assert.False(t, ok)
}
