package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hotelsupport/models"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "hotel:session:"

// RedisStore keeps sessions as JSON documents that expire after ttl of
// inactivity.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Create(ctx context.Context, s *models.Session) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	created, err := r.client.SetNX(ctx, sessionKeyPrefix+s.ID, b, r.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	if !created {
		return "", models.NewInvalidInput("session %s already exists", s.ID)
	}
	return s.ID, nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (*models.Session, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+id).Result()
	if err == redis.Nil {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var s models.Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	if s.Rooms == nil {
		s.Rooms = map[string]models.Room{}
	}
	return &s, nil
}

// Save overwrites an existing session and refreshes its expiry. It never
// resurrects a session that expired or was deleted.
func (r *RedisStore) Save(ctx context.Context, s *models.Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	updated, err := r.client.SetXX(ctx, sessionKeyPrefix+s.ID, b, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	if !updated {
		return notFound(s.ID)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := r.client.Del(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n == 0 {
		return notFound(id)
	}
	return nil
}
