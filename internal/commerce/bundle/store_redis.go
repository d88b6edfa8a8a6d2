// Copyright (c) 2026 BookWise. All rights reserved.

package bundle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/amitkr8158/bookwise/internal/platform/apperr"
	"github.com/amitkr8158/bookwise/internal/platform/constants"
)

// RedisCustomStore keeps each user's custom bundles in a single Redis hash
// (field per bundle ID). Every write refreshes the hash TTL, so active users
// never lose their drafts while idle ones expire together.
type RedisCustomStore struct {
	client *redis.Client
}

func NewRedisCustomStore(client *redis.Client) *RedisCustomStore {
	return &RedisCustomStore{client: client}
}

func customKey(userID string) string {
	return constants.RedisPrefixCustomBundle + userID
}

func (store *RedisCustomStore) Save(ctx context.Context, b *CustomBundle) error {
	payload, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("custom_bundle_marshal_failed: %w", err)
	}

	key := customKey(b.UserID)

	pipe := store.client.TxPipeline()
	pipe.HSet(ctx, key, b.ID, payload)
	pipe.Expire(ctx, key, CustomTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("custom_bundle_save_failed: %w", err)
	}

	return nil
}

func (store *RedisCustomStore) Get(ctx context.Context, userID, id string) (*CustomBundle, error) {
	payload, err := store.client.HGet(ctx, customKey(userID), id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Custom bundle")
		}
		return nil, fmt.Errorf("custom_bundle_get_failed: %w", err)
	}

	b := &CustomBundle{}
	if err := json.Unmarshal([]byte(payload), b); err != nil {
		return nil, fmt.Errorf("custom_bundle_unmarshal_failed: %w", err)
	}
	b.UserID = userID

	return b, nil
}

func (store *RedisCustomStore) ListByUser(ctx context.Context, userID string) ([]*CustomBundle, error) {
	entries, err := store.client.HGetAll(ctx, customKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("custom_bundle_list_failed: %w", err)
	}

	bundles := make([]*CustomBundle, 0, len(entries))
	for _, payload := range entries {
		b := &CustomBundle{}
		if err := json.Unmarshal([]byte(payload), b); err != nil {
			return nil, fmt.Errorf("custom_bundle_unmarshal_failed: %w", err)
		}
		b.UserID = userID
		bundles = append(bundles, b)
	}

	return bundles, nil
}

func (store *RedisCustomStore) Delete(ctx context.Context, userID, id string) error {
	removed, err := store.client.HDel(ctx, customKey(userID), id).Result()
	if err != nil {
		return fmt.Errorf("custom_bundle_delete_failed: %w", err)
	}

	if removed == 0 {
		return apperr.NotFound("Custom bundle")
	}
	return nil
}
