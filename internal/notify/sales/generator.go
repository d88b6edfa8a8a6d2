// Copyright (c) 2026 BookWise. All rights reserved.

package sales

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/amitkr8158/bookwise/internal/commerce/purchase"
	"github.com/amitkr8158/bookwise/pkg/uuidv7"
)

// emitProbability is the chance a tick produces a notification.
const emitProbability = 0.3

// realDataWindow bounds how far back real purchases are sampled from.
const realDataWindow = 24 * time.Hour

// Notification is one sales event pushed to connected clients.
type Notification struct {
	ID        string    `json:"id"`
	BuyerName string    `json:"buyer_name"`
	BookTitle string    `json:"book_title"`
	Amount    float64   `json:"amount"`
	// DurationSeconds tells the client how long to display the toast.
	DurationSeconds int       `json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
}

// Sample pools used when real data is disabled or unavailable.
var (
	sampleBuyers = []string{
		"Aarav", "Priya", "Rohan", "Ananya", "Vikram",
		"Meera", "Karan", "Divya", "Arjun", "Sneha",
	}
	sampleBooks = []struct {
		title  string
		amount float64
	}{
		{"Atomic Habits", 12.99},
		{"The Psychology of Money", 14.99},
		{"Deep Work", 12.99},
		{"Ikigai", 10.99},
		{"Think and Grow Rich", 9.99},
		{"The 7 Habits of Highly Effective People", 13.99},
		{"Rich Dad Poor Dad", 11.99},
		{"The Power of Now", 12.49},
	}
)

// RecentPurchases supplies real purchase data for notifications.
type RecentPurchases interface {
	Recent(ctx context.Context, minAmount float64, window time.Duration, limit int) ([]*purchase.Purchase, error)
}

// Generator emits sales notifications on a settings-driven schedule and
// fans them out to SSE subscribers.
//
// # Concurrency
//
// Run owns the ticker goroutine; Subscribe/unsubscribe and Broadcast may be
// called from any goroutine.
type Generator struct {
	settings  SettingsStore
	purchases RecentPurchases
	logger    *slog.Logger

	mu          sync.Mutex
	subscribers map[chan Notification]struct{}
}

func NewGenerator(settings SettingsStore, purchases RecentPurchases, logger *slog.Logger) *Generator {
	return &Generator{
		settings:    settings,
		purchases:   purchases,
		logger:      logger,
		subscribers: make(map[chan Notification]struct{}),
	}
}

// Run drives the generator until ctx is cancelled.
//
// Settings are reloaded every tick, so frequency or source changes apply
// without restarting the process.
func (generator *Generator) Run(ctx context.Context) {
	for {
		settings, err := generator.settings.Load(ctx)
		if err != nil {
			generator.logger.Error("sales_settings_load_failed", slog.Any("error", err))
			settings = DefaultSettings()
		}

		interval := time.Duration(settings.FrequencySeconds) * time.Second
		if interval <= 0 {
			interval = time.Duration(DefaultSettings().FrequencySeconds) * time.Second
		}

		select {
		case <-ctx.Done():
			generator.logger.Info("sales_generator_stopped")
			return
		case <-time.After(interval):
		}

		if !settings.Enabled || rand.Float64() >= emitProbability {
			continue
		}

		notification := generator.build(ctx, settings)
		generator.Broadcast(notification)
	}
}

// build produces the next notification from real purchases when configured,
// falling back to the sample pool.
func (generator *Generator) build(ctx context.Context, settings Settings) Notification {
	if settings.UseRealData && generator.purchases != nil {
		recent, err := generator.purchases.Recent(ctx, settings.MinAmount, realDataWindow, 50)
		if err != nil {
			generator.logger.Warn("sales_real_data_unavailable", slog.Any("error", err))
		} else if len(recent) > 0 {
			picked := recent[rand.Intn(len(recent))]
			return Notification{
				ID:              uuidv7.New(),
				BuyerName:       sampleBuyers[rand.Intn(len(sampleBuyers))],
				BookTitle:       picked.Title,
				Amount:          picked.Amount,
				DurationSeconds: settings.DurationSeconds,
				CreatedAt:       time.Now().UTC(),
			}
		}
	}

	book := sampleBooks[rand.Intn(len(sampleBooks))]
	return Notification{
		ID:              uuidv7.New(),
		BuyerName:       sampleBuyers[rand.Intn(len(sampleBuyers))],
		BookTitle:       book.title,
		Amount:          book.amount,
		DurationSeconds: settings.DurationSeconds,
		CreatedAt:       time.Now().UTC(),
	}
}

// Subscribe registers a listener and returns its channel with a cancel func.
//
// The channel is buffered; a subscriber that stops draining loses events
// rather than blocking the generator.
func (generator *Generator) Subscribe() (<-chan Notification, func()) {
	ch := make(chan Notification, 8)

	generator.mu.Lock()
	generator.subscribers[ch] = struct{}{}
	generator.mu.Unlock()

	cancel := func() {
		generator.mu.Lock()
		delete(generator.subscribers, ch)
		generator.mu.Unlock()
	}

	return ch, cancel
}

// Broadcast delivers a notification to every subscriber without blocking.
func (generator *Generator) Broadcast(notification Notification) {
	generator.mu.Lock()
	defer generator.mu.Unlock()

	for ch := range generator.subscribers {
		select {
		case ch <- notification:
		default:
			// Slow subscriber: drop rather than stall the generator.
		}
	}
}

// SubscriberCount reports connected listeners (health / admin visibility).
func (generator *Generator) SubscriberCount() int {
	generator.mu.Lock()
	defer generator.mu.Unlock()
	return len(generator.subscribers)
}
