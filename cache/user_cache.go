// Package cache is a read-through side channel for hot profile lookups.
// Redis is never the source of truth here: every write path invalidates and
// the database answers on a miss.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"chat-app-core/dto/res"
)

const userTTL = time.Hour

type UserCache struct {
	client *redis.Client
}

func NewUserCache(client *redis.Client) *UserCache {
	return &UserCache{client: client}
}

func userKey(id string) string {
	return "user:" + id
}

// Get returns the cached profile and whether it was present. Cache errors
// degrade to a miss; the caller falls through to the database.
func (cache *UserCache) Get(ctx context.Context, id string) (res.UserResponse, bool) {
	if cache == nil || cache.client == nil {
		return res.UserResponse{}, false
	}

	raw, err := cache.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		return res.UserResponse{}, false
	}

	var user res.UserResponse
	if err := json.Unmarshal(raw, &user); err != nil {
		return res.UserResponse{}, false
	}
	return user, true
}

func (cache *UserCache) Set(ctx context.Context, user res.UserResponse) error {
	if cache == nil || cache.client == nil {
		return nil
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return cache.client.Set(ctx, userKey(user.ID), raw, userTTL).Err()
}

func (cache *UserCache) Delete(ctx context.Context, id string) error {
	if cache == nil || cache.client == nil {
		return nil
	}

	err := cache.client.Del(ctx, userKey(id)).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}
