package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Siddhant-kochhar/goatfit/models"

	"github.com/go-redis/redis/v8"
)

const (
	latestVitalsKeyPrefix = "vitals:latest:"
	alertCooldownPrefix   = "alerts:cooldown:"

	latestVitalsTTL = 1 * time.Hour
	// AlertCooldown is how long a vital stays muted after an alert so a
	// sustained spike does not re-email every cycle.
	AlertCooldown = 15 * time.Minute
)

// VitalsCache keeps the newest reading per vital in Redis plus the alert
// cooldown keys. A nil cache (Redis down or tests) disables caching and
// cooldowns degrade to "always fire".
type VitalsCache struct {
	rdb *redis.Client
}

func NewVitalsCache(rdb *redis.Client) *VitalsCache {
	if rdb == nil {
		return nil
	}
	return &VitalsCache{rdb: rdb}
}

// CacheLatest stores the newest reading per vital type for a user.
func (c *VitalsCache) CacheLatest(ctx context.Context, userID uint, readings []models.VitalReading) error {
	if c == nil || len(readings) == 0 {
		return nil
	}

	newest := map[string]models.VitalReading{}
	for _, r := range readings {
		if cur, ok := newest[r.Type]; !ok || r.RecordedAt.After(cur.RecordedAt) {
			newest[r.Type] = r
		}
	}

	key := fmt.Sprintf("%s%d", latestVitalsKeyPrefix, userID)
	pipe := c.rdb.Pipeline()
	for vitalType, r := range newest {
		data, err := json.Marshal(r)
		if err != nil {
			return err
		}
		pipe.HSet(ctx, key, vitalType, data)
	}
	pipe.Expire(ctx, key, latestVitalsTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache latest vitals: %w", err)
	}
	return nil
}

// Latest returns the cached newest reading per vital type, or an empty map
// when the cache is cold or disabled.
func (c *VitalsCache) Latest(ctx context.Context, userID uint) (map[string]models.VitalReading, error) {
	if c == nil {
		return nil, nil
	}

	key := fmt.Sprintf("%s%d", latestVitalsKeyPrefix, userID)
	fields, err := c.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read latest vitals: %w", err)
	}

	out := make(map[string]models.VitalReading, len(fields))
	for vitalType, data := range fields {
		var r models.VitalReading
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			continue
		}
		out[vitalType] = r
	}
	return out, nil
}

// AcquireAlertCooldown reports whether an alert for this user+vital may
// fire, and if so starts the cooldown window. Without Redis every alert
// fires.
func (c *VitalsCache) AcquireAlertCooldown(ctx context.Context, userID uint, vitalType string, ttl time.Duration) bool {
	if c == nil {
		return true
	}
	key := fmt.Sprintf("%s%d:%s", alertCooldownPrefix, userID, vitalType)
	ok, err := c.rdb.SetNX(ctx, key, time.Now().Unix(), ttl).Result()
	if err != nil {
		return true
	}
	return ok
}
