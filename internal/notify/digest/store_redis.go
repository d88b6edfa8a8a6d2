// Copyright (c) 2026 BookWise. All rights reserved.

package digest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/amitkr8158/bookwise/internal/platform/apperr"
	"github.com/amitkr8158/bookwise/internal/platform/constants"
)

// dailyTTL keeps yesterday's quote around briefly for clients straddling
// midnight, then lets Redis reclaim it.
const dailyTTL = 48 * time.Hour

// RedisSettingsStore persists the digest settings as a single JSON document.
type RedisSettingsStore struct {
	client *redis.Client
}

func NewRedisSettingsStore(client *redis.Client) *RedisSettingsStore {
	return &RedisSettingsStore{client: client}
}

// Load returns the stored settings, or the defaults when none were ever saved.
func (store *RedisSettingsStore) Load(ctx context.Context) (Settings, error) {
	payload, err := store.client.Get(ctx, constants.RedisKeyDigestSettings).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return DefaultSettings(), nil
		}
		return Settings{}, fmt.Errorf("digest_settings_load_failed: %w", err)
	}

	var s Settings
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		return Settings{}, fmt.Errorf("digest_settings_unmarshal_failed: %w", err)
	}

	return s, nil
}

func (store *RedisSettingsStore) Save(ctx context.Context, s Settings) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("digest_settings_marshal_failed: %w", err)
	}

	if err := store.client.Set(ctx, constants.RedisKeyDigestSettings, payload, 0).Err(); err != nil {
		return fmt.Errorf("digest_settings_save_failed: %w", err)
	}

	return nil
}

// RedisDailyCache pins the quote of the day per calendar date.
type RedisDailyCache struct {
	client *redis.Client
}

func NewRedisDailyCache(client *redis.Client) *RedisDailyCache {
	return &RedisDailyCache{client: client}
}

func (cache *RedisDailyCache) GetDaily(ctx context.Context, date string) (*Quote, error) {
	payload, err := cache.client.Get(ctx, constants.RedisPrefixDailyQuote+date).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Daily quote")
		}
		return nil, fmt.Errorf("daily_quote_get_failed: %w", err)
	}

	q := &Quote{}
	if err := json.Unmarshal([]byte(payload), q); err != nil {
		return nil, fmt.Errorf("daily_quote_unmarshal_failed: %w", err)
	}

	return q, nil
}

func (cache *RedisDailyCache) SetDaily(ctx context.Context, date string, q *Quote) error {
	payload, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("daily_quote_marshal_failed: %w", err)
	}

	if err := cache.client.Set(ctx, constants.RedisPrefixDailyQuote+date, payload, dailyTTL).Err(); err != nil {
		return fmt.Errorf("daily_quote_set_failed: %w", err)
	}

	return nil
}
