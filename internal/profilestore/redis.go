package profilestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/NovaPlay-Games/social_bridge/internal/social"
)

// redisKeyPrefix namespaces profile keys in a shared redis.
const redisKeyPrefix = "social_bridge:profile:"

// RedisStore keeps profiles in redis as JSON blobs keyed by provider.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store over an existing redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Save persists the profile under its provider key.
func (r *RedisStore) Save(ctx context.Context, profile social.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := r.client.Set(ctx, redisKey(profile.Provider), data, 0).Err(); err != nil {
		return fmt.Errorf("save profile for %s: %w", profile.Provider, err)
	}
	return nil
}

// Load returns the cached profile for a provider.
func (r *RedisStore) Load(ctx context.Context, id social.ProviderID) (social.UserProfile, bool, error) {
	data, err := r.client.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return social.UserProfile{}, false, nil
	}
	if err != nil {
		return social.UserProfile{}, false, fmt.Errorf("load profile for %s: %w", id, err)
	}

	var profile social.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return social.UserProfile{}, false, fmt.Errorf("unmarshal profile for %s: %w", id, err)
	}
	return profile, true, nil
}

// Delete removes the cached profile for a provider.
func (r *RedisStore) Delete(ctx context.Context, id social.ProviderID) error {
	if err := r.client.Del(ctx, redisKey(id)).Err(); err != nil {
		return fmt.Errorf("delete profile for %s: %w", id, err)
	}
	return nil
}

func redisKey(id social.ProviderID) string {
	return redisKeyPrefix + string(id)
}
