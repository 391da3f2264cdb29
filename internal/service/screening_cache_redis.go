package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"flowsense/internal/domain"
)

type redisScreeningCache struct {
	client redisKV
	ttl    time.Duration
	prefix string
}

type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// NewRedisScreeningCache crea el cache de reportes sobre redis. Es
// fail-open: cualquier error de red o serializacion cuenta como cache miss
// y el screening se recomputa (recomputar es barato y deterministico).
func NewRedisScreeningCache(client *redis.Client, ttl time.Duration) ScreeningCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &redisScreeningCache{
		client: client,
		ttl:    ttl,
		prefix: "screening:",
	}
}

func (c *redisScreeningCache) key(userID string, inputHash uint64) string {
	return fmt.Sprintf("%s%s:%016x", c.prefix, userID, inputHash)
}

func (c *redisScreeningCache) Get(ctx context.Context, userID string, inputHash uint64) (domain.HealthScreeningReport, bool) {
	if c == nil || c.client == nil {
		return domain.HealthScreeningReport{}, false
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	raw, err := c.client.Get(ctx, c.key(userID, inputHash)).Bytes()
	if err != nil {
		return domain.HealthScreeningReport{}, false
	}
	var report domain.HealthScreeningReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return domain.HealthScreeningReport{}, false
	}
	return report, true
}

func (c *redisScreeningCache) Set(ctx context.Context, userID string, inputHash uint64, report domain.HealthScreeningReport) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	c.client.Set(ctx, c.key(userID, inputHash), raw, c.ttl)
}
