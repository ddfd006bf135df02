// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"hotelsupport/config"

	"github.com/go-redis/redis/v8"
)

// SessionCacheClient backs the redis session store.
var SessionCacheClient *redis.Client

// InitSessionCache connects to the Redis DB reserved for conversation sessions.
func InitSessionCache() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("connect to Redis (Sessions): %w", err)
	}
	SessionCacheClient = client
	return nil
}

// GetSessionCacheClient returns the Redis client for sessions.
func GetSessionCacheClient() (*redis.Client, error) {
	if SessionCacheClient == nil {
		if err := InitSessionCache(); err != nil {
			return nil, err
		}
	}
	return SessionCacheClient, nil
}
