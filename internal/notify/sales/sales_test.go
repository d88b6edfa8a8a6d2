// Copyright (c) 2026 BookWise. All rights reserved.

package sales_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amitkr8158/bookwise/internal/commerce/purchase"
	"github.com/amitkr8158/bookwise/internal/notify/sales"
)

// memorySettingsStore is an in-memory SettingsStore with load-or-default
// semantics matching the Redis implementation.
type memorySettingsStore struct {
	saved *sales.Settings
}

func (m *memorySettingsStore) Load(_ context.Context) (sales.Settings, error) {
	if m.saved == nil {
		return sales.DefaultSettings(), nil
	}
	return *m.saved, nil
}

func (m *memorySettingsStore) Save(_ context.Context, s sales.Settings) error {
	m.saved = &s
	return nil
}

/*
TestSettingsStore_RoundTrip verifies the settings law: saving then loading
returns exactly what was written, and an empty store yields the defaults.
*/
func TestSettingsStore_RoundTrip(t *testing.T) {
	store := &memorySettingsStore{}
	ctx := context.Background()

	initial, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sales.DefaultSettings(), initial)

	custom := sales.Settings{
		Enabled:          false,
		FrequencySeconds: 12,
		DurationSeconds:  8,
		Position:         sales.PositionTopRight,
		UseRealData:      true,
		MinAmount:        25.50,
	}
	require.NoError(t, store.Save(ctx, custom))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, custom, loaded)
}

type fakePurchases struct {
	purchases []*purchase.Purchase
}

func (f *fakePurchases) Recent(_ context.Context, minAmount float64, _ time.Duration, _ int) ([]*purchase.Purchase, error) {
	var out []*purchase.Purchase
	for _, p := range f.purchases {
		if p.Amount >= minAmount {
			out = append(out, p)
		}
	}
	return out, nil
}

/*
TestGenerator_Broadcast checks fan-out: every subscriber receives the event,
and unsubscribed channels stop receiving.
*/
func TestGenerator_Broadcast(t *testing.T) {
	generator := sales.NewGenerator(&memorySettingsStore{}, nil, slog.Default())

	first, cancelFirst := generator.Subscribe()
	second, cancelSecond := generator.Subscribe()
	defer cancelSecond()

	assert.Equal(t, 2, generator.SubscriberCount())

	notification := sales.Notification{ID: "n1", BookTitle: "Atomic Habits", Amount: 12.99}
	generator.Broadcast(notification)

	assert.Equal(t, notification, <-first)
	assert.Equal(t, notification, <-second)

	cancelFirst()
	assert.Equal(t, 1, generator.SubscriberCount())

	generator.Broadcast(notification)
	assert.Equal(t, notification, <-second)
	select {
	case <-first:
		t.Fatal("unsubscribed channel received an event")
	default:
	}
}

/*
TestGenerator_RunStopsOnCancel ensures the generator goroutine honors context
cancellation promptly.
*/
func TestGenerator_RunStopsOnCancel(t *testing.T) {
	store := &memorySettingsStore{}
	require.NoError(t, store.Save(context.Background(), sales.Settings{
		Enabled:          true,
		FrequencySeconds: 1,
		DurationSeconds:  5,
	}))

	generator := sales.NewGenerator(store, &fakePurchases{}, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		generator.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("generator did not stop after cancellation")
	}
}
