package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
)

const (
	tierLocal = "local"
	tierRedis = "redis"

	keyPrefix = "tireservice:"
)

// Options параметры кеша
type Options struct {
	LocalSize int           // 0 - локальный уровень выключен
	LocalTTL  time.Duration // время жизни записи в памяти
	RedisTTL  time.Duration // время жизни записи в Redis
}

// Cache двухуровневый JSON-кеш: LRU в памяти процесса перед Redis
// Любой уровень может отсутствовать; без обоих уровней кеш ничего не хранит
type Cache struct {
	local    *expirable.LRU[string, []byte]
	redis    redis.UniversalClient
	redisTTL time.Duration
	metrics  Metrics
	logger   Logger
}

// New создает кеш. redisClient может быть nil
func New(opts Options, redisClient redis.UniversalClient, metrics Metrics, logger Logger) *Cache {
	c := &Cache{
		redis:    redisClient,
		redisTTL: opts.RedisTTL,
		metrics:  metrics,
		logger:   logger,
	}
	if opts.LocalSize > 0 {
		c.local = expirable.NewLRU[string, []byte](opts.LocalSize, nil, opts.LocalTTL)
	}
	return c
}

// Disabled кеш без уровней хранения
func Disabled() *Cache {
	return &Cache{}
}

// Get читает значение в out. Возвращает false при промахе или ошибке декодирования
func (c *Cache) Get(ctx context.Context, key string, out interface{}) bool {
	key = keyPrefix + key

	if c.local != nil {
		data, ok := c.local.Get(key)
		c.record(tierLocal, ok)
		if ok && json.Unmarshal(data, out) == nil {
			return true
		}
	}

	if c.redis == nil {
		return false
	}

	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.warn("cache: redis get %s: %v", key, err)
		}
		c.record(tierRedis, false)
		return false
	}
	c.record(tierRedis, true)

	if err := json.Unmarshal(data, out); err != nil {
		c.warn("cache: decode %s: %v", key, err)
		return false
	}

	// Прогреваем локальный уровень
	if c.local != nil {
		c.local.Add(key, data)
	}
	return true
}

// Set сохраняет значение на всех уровнях. Ошибки Redis только логируются
func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	if c.local == nil && c.redis == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.warn("cache: encode %s: %v", key, err)
		return
	}

	key = keyPrefix + key
	if c.local != nil {
		c.local.Add(key, data)
	}
	if c.redis != nil {
		if err := c.redis.Set(ctx, key, data, c.redisTTL).Err(); err != nil {
			c.warn("cache: redis set %s: %v", key, err)
		}
	}
}

// Delete удаляет ключи со всех уровней
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = keyPrefix + key
		if c.local != nil {
			c.local.Remove(prefixed[i])
		}
	}

	if c.redis != nil {
		if err := c.redis.Del(ctx, prefixed...).Err(); err != nil {
			c.warn("cache: redis del %v: %v", keys, err)
		}
	}
}

func (c *Cache) record(tier string, hit bool) {
	if c.metrics != nil {
		c.metrics.RecordCache(tier, hit)
	}
}

func (c *Cache) warn(format string, v ...interface{}) {
	if c.logger != nil {
		c.logger.Warn(format, v...)
	}
}

// ServicePointKey ключ сервисной точки
func ServicePointKey(id int64) string {
	return fmt.Sprintf("service_point:%d", id)
}

// TimeSlotsKey ключ списка слотов точки на день недели
func TimeSlotsKey(servicePointID int64, day time.Weekday) string {
	return fmt.Sprintf("time_slots:%d:%d", servicePointID, int(day))
}

// AllTimeSlotsKeys ключи слотов точки на все дни недели
func AllTimeSlotsKeys(servicePointID int64) []string {
	keys := make([]string, 0, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		keys = append(keys, TimeSlotsKey(servicePointID, day))
	}
	return keys
}
