// Package cache keeps userDetails projections in Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harentsoaR/hospital-api/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	profileKeyPrefix  = "profile:" // profile:{user_id}
	defaultProfileTTL = 10 * time.Minute
)

// RedisProfiles stores profile projections as JSON under profile:{id}.
type RedisProfiles struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisProfiles(client *redis.Client, ttl time.Duration) *RedisProfiles {
	if ttl <= 0 {
		ttl = defaultProfileTTL
	}
	return &RedisProfiles{client: client, ttl: ttl}
}

// Get returns nil, nil when id is not cached.
func (r *RedisProfiles) Get(ctx context.Context, id string) (*models.Profile, error) {
	data, err := r.client.Get(ctx, profileKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var p models.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &p, nil
}

func (r *RedisProfiles) Set(ctx context.Context, id string, p *models.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if err := r.client.Set(ctx, profileKey(id), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache profile: %w", err)
	}
	return nil
}

func (r *RedisProfiles) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, profileKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to drop profile: %w", err)
	}
	return nil
}

// Ping checks the connection at startup.
func (r *RedisProfiles) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func profileKey(id string) string {
	return profileKeyPrefix + id
}
