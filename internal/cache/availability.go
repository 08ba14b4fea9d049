package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/domain/appointment"
)

const availabilityTTL = 30 * time.Second

// AvailabilityCache fronts the slot-availability read path. It is best
// effort: a redis failure falls through to the database and is never
// surfaced to the caller.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailabilityCache(rdb *redis.Client) *AvailabilityCache {
	return &AvailabilityCache{
		rdb: rdb,
		ttl: availabilityTTL,
	}
}

func key(date string, mechanicID *uint) string {
	if mechanicID == nil {
		return "availability:" + date + ":all"
	}
	return fmt.Sprintf("availability:%s:%d", date, *mechanicID)
}

func (c *AvailabilityCache) Get(
	ctx context.Context,
	date string,
	mechanicID *uint,
) ([]domain.SlotEntry, bool) {

	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key(date, mechanicID)).Bytes()
	if err != nil {
		return nil, false
	}

	var entries []domain.SlotEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (c *AvailabilityCache) Set(
	ctx context.Context,
	date string,
	mechanicID *uint,
	entries []domain.SlotEntry,
) {

	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key(date, mechanicID), raw, c.ttl)
}

// Invalidate drops both the per-mechanic key and the all-mechanics key
// for the date a booking write touched.
func (c *AvailabilityCache) Invalidate(
	ctx context.Context,
	date string,
	mechanicID *uint,
) {

	if c == nil || c.rdb == nil {
		return
	}

	keys := []string{key(date, nil)}
	if mechanicID != nil {
		keys = append(keys, key(date, mechanicID))
	}
	c.rdb.Del(ctx, keys...)
}
