package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keys
const (
	DailyStatsKey = "stats:daily"
	ModelListKey  = "models:list"
)

const (
	dailyStatsTTL = 30 * time.Second
	modelListTTL  = 5 * time.Minute
)

var client *redis.Client

// Init connects to Redis. On failure the client stays nil and every helper
// below degrades to a no-op, so the API keeps working without a cache.
func Init(addr, password string, db int) error {
	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		c.Close()
		client = nil
		return err
	}
	client = c
	return nil
}

// GetClient returns the Redis client, nil when caching is disabled
func GetClient() *redis.Client {
	return client
}

// SetClient replaces the client. Passing nil disables caching.
func SetClient(c *redis.Client) {
	client = c
}

func Close() {
	if client != nil {
		client.Close()
		client = nil
	}
}

type dailyEntry struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// GetCachedDailyTotal returns the cached paid total for date, if present
func GetCachedDailyTotal(ctx context.Context, date string) (float64, bool) {
	if client == nil {
		return 0, false
	}
	data, err := client.Get(ctx, DailyStatsKey).Bytes()
	if err != nil {
		return 0, false
	}
	var e dailyEntry
	if err := json.Unmarshal(data, &e); err != nil || e.Date != date {
		return 0, false
	}
	return e.Total, true
}

// CacheDailyTotal caches the paid total for date for 30 seconds
func CacheDailyTotal(ctx context.Context, date string, total float64) {
	if client == nil {
		return
	}
	data, err := json.Marshal(dailyEntry{Date: date, Total: total})
	if err != nil {
		return
	}
	client.Set(ctx, DailyStatsKey, data, dailyStatsTTL)
}

// InvalidateDailyStats drops the cached total; called after every jobcard mutation
func InvalidateDailyStats(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, DailyStatsKey)
}

// GetCachedModels returns the cached JSON model list if available
func GetCachedModels(ctx context.Context) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, ModelListKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheModels caches the JSON model list for 5 minutes
func CacheModels(ctx context.Context, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, ModelListKey, data, modelListTTL)
}

func InvalidateModels(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, ModelListKey)
}
