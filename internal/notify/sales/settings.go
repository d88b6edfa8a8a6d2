// Copyright (c) 2026 BookWise. All rights reserved.

/*
Package sales implements the storefront's social-proof sales notifications.

A background generator periodically emits "someone just bought X" events to
connected clients over Server-Sent Events. Admins tune its behavior through a
Redis-backed settings document; the generator re-reads it every tick, so
changes apply without a restart.
*/
package sales

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/amitkr8158/bookwise/internal/platform/constants"
)

// Settings controls the notification generator.
type Settings struct {
	// Enabled gates emission entirely; the generator keeps ticking while
	// disabled so re-enabling takes effect on the next tick.
	Enabled bool `json:"enabled"`
	// FrequencySeconds is the tick interval.
	FrequencySeconds int `json:"frequency_seconds"`
	// DurationSeconds is how long clients should display each notification.
	// It is carried in the payload; dismissal itself is a client concern.
	DurationSeconds int `json:"duration_seconds"`
	// Position is the screen corner where clients render the toast.
	Position string `json:"position"`
	// UseRealData switches the source from the sample pool to recent purchases.
	UseRealData bool `json:"use_real_data"`
	// MinAmount filters real purchases below this value.
	MinAmount float64 `json:"min_amount"`
}

// Screen corners a notification may be rendered in.
const (
	PositionBottomLeft  = "bottom-left"
	PositionBottomRight = "bottom-right"
	PositionTopLeft     = "top-left"
	PositionTopRight    = "top-right"
)

// DefaultSettings are used until an admin first saves.
func DefaultSettings() Settings {
	return Settings{
		Enabled:          true,
		FrequencySeconds: 30,
		DurationSeconds:  5,
		Position:         PositionBottomLeft,
		UseRealData:      false,
		MinAmount:        10,
	}
}

// SettingsStore loads and saves the generator settings.
type SettingsStore interface {
	Load(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) error
}

// RedisSettingsStore persists the settings as a single JSON document.
type RedisSettingsStore struct {
	client *redis.Client
}

func NewRedisSettingsStore(client *redis.Client) *RedisSettingsStore {
	return &RedisSettingsStore{client: client}
}

// Load returns the stored settings, or the defaults when none were ever saved.
func (store *RedisSettingsStore) Load(ctx context.Context) (Settings, error) {
	payload, err := store.client.Get(ctx, constants.RedisKeySalesSettings).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return DefaultSettings(), nil
		}
		return Settings{}, fmt.Errorf("sales_settings_load_failed: %w", err)
	}

	var s Settings
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		return Settings{}, fmt.Errorf("sales_settings_unmarshal_failed: %w", err)
	}

	return s, nil
}

// Save writes the settings. What is saved is exactly what [Load] returns.
func (store *RedisSettingsStore) Save(ctx context.Context, s Settings) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("sales_settings_marshal_failed: %w", err)
	}

	if err := store.client.Set(ctx, constants.RedisKeySalesSettings, payload, 0).Err(); err != nil {
		return fmt.Errorf("sales_settings_save_failed: %w", err)
	}

	return nil
}
