package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/ZapAtende01/whatsapp-crm/internal/config"
)

// Cache é um cache de leitura opcional sobre Redis. Sem REDIS_URL o
// handle fica desligado e todas as operações são no-ops: a API nunca
// depende do Redis para responder.
type Cache struct {
	rdb *redis.Client
}

func New(cfg *config.Config) *Cache {
	if cfg.RedisURL == "" {
		return &Cache{}
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logrus.WithError(err).Warn("invalid REDIS_URL, cache disabled")
		return &Cache{}
	}

	return &Cache{rdb: redis.NewClient(opt)}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// Get preenche dest e devolve true quando a chave existe.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if !c.Enabled() {
		return false
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logrus.WithError(err).WithField("key", key).Warn("cache get failed")
		}
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false
	}

	return true
}

func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if !c.Enabled() {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("cache set failed")
	}
}

func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logrus.WithError(err).Warn("cache delete failed")
	}
}
