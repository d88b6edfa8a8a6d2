// Copyright (c) 2026 BookWise. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/amitkr8158/bookwise/internal/platform/apperr"
	"github.com/amitkr8158/bookwise/internal/platform/constants"
)

// RedisResetTokenStore holds password reset tokens with their TTL.
//
// Keys carry the token's hash, never the raw token, so a Redis snapshot
// cannot be replayed against the reset endpoint.
type RedisResetTokenStore struct {
	client *redis.Client
}

func NewRedisResetTokenStore(client *redis.Client) *RedisResetTokenStore {
	return &RedisResetTokenStore{client: client}
}

func (store *RedisResetTokenStore) Set(ctx context.Context, tokenHash, userID string, ttl time.Duration) error {
	key := constants.RedisPrefixResetToken + tokenHash

	if err := store.client.Set(ctx, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("reset_token_set_failed: %w", err)
	}
	return nil
}

func (store *RedisResetTokenStore) Get(ctx context.Context, tokenHash string) (string, error) {
	key := constants.RedisPrefixResetToken + tokenHash

	userID, err := store.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.Unauthorized("Reset token is invalid or expired")
		}
		return "", fmt.Errorf("reset_token_get_failed: %w", err)
	}

	return userID, nil
}

func (store *RedisResetTokenStore) Delete(ctx context.Context, tokenHash string) error {
	key := constants.RedisPrefixResetToken + tokenHash

	if err := store.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("reset_token_delete_failed: %w", err)
	}
	return nil
}
