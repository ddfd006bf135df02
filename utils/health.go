package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of the session backends. A nil
// field means the backend is not in use.
type HealthStatus struct {
	Mongo     *bool     `json:"mongo,omitempty"`
	Redis     *bool     `json:"redis,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Healthy reports whether every backend in use answered its last ping.
func (h HealthStatus) Healthy() bool {
	return (h.Mongo == nil || *h.Mongo) && (h.Redis == nil || *h.Redis)
}

var (
	currentHealth = HealthStatus{CheckedAt: time.Now()}
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// CheckHealth pings the configured backends and stores the result.
func CheckHealth(ctx context.Context, redisClient *redis.Client, mongoClient *mongo.Client) HealthStatus {
	status := HealthStatus{CheckedAt: time.Now()}
	if redisClient != nil {
		ok := redisClient.Ping(ctx).Err() == nil
		status.Redis = &ok
	}
	if mongoClient != nil {
		ok := mongoClient.Ping(ctx, nil) == nil
		status.Mongo = &ok
	}

	mu.Lock()
	currentHealth = status
	mu.Unlock()
	return status
}

// StartHealthMonitor performs periodic health checks until ctx is done.
func StartHealthMonitor(ctx context.Context, redisClient *redis.Client, mongoClient *mongo.Client) {
	CheckHealth(ctx, redisClient, mongoClient)
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
				CheckHealth(pingCtx, redisClient, mongoClient)
				cancel()
			}
		}
	}()
}
