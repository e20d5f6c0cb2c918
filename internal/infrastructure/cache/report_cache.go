package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/shopledger/backend/internal/domain/report"
)

// KeyValueClient is the part of the Redis client the report cache needs
type KeyValueClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisReportCache keeps the latest daily report of each shop day in Redis
type RedisReportCache struct {
	client    KeyValueClient
	keyPrefix string
	ttl       time.Duration
}

// NewRedisReportCache creates a report cache; ttl <= 0 means 48 hours
func NewRedisReportCache(client KeyValueClient, keyPrefix string, ttl time.Duration) *RedisReportCache {
	if keyPrefix == "" {
		keyPrefix = "shop:report:"
	}
	if ttl <= 0 {
		ttl = 48 * time.Hour
	}
	return &RedisReportCache{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

func (c *RedisReportCache) key(shopID uuid.UUID, date string) string {
	return c.keyPrefix + shopID.String() + ":" + date
}

// Save stores the report under its shop and date
func (c *RedisReportCache) Save(ctx context.Context, r report.DailySalesReport) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return c.client.Set(ctx, c.key(r.ShopID, r.Date), data, c.ttl).Err()
}

// Load returns the cached report, or false when there is none
func (c *RedisReportCache) Load(ctx context.Context, shopID uuid.UUID, date string) (report.DailySalesReport, bool, error) {
	data, err := c.client.Get(ctx, c.key(shopID, date)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return report.DailySalesReport{}, false, nil
		}
		return report.DailySalesReport{}, false, err
	}

	var r report.DailySalesReport
	if err := json.Unmarshal(data, &r); err != nil {
		return report.DailySalesReport{}, false, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return r, true, nil
}
