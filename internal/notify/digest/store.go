// Copyright (c) 2026 BookWise. All rights reserved.

package digest

import "context"

// QuoteRepository persists curated quotes.
type QuoteRepository interface {
	ListQuotes(ctx context.Context) ([]*Quote, error)
	GetQuote(ctx context.Context, id string) (*Quote, error)
	CreateQuote(ctx context.Context, q *Quote) error
	UpdateQuote(ctx context.Context, q *Quote) error
	DeleteQuote(ctx context.Context, id string) error

	// RandomQuote picks a uniformly random quote. NotFound when none exist.
	RandomQuote(ctx context.Context) (*Quote, error)
}

// SettingsStore loads and saves the digest settings.
type SettingsStore interface {
	Load(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) error
}

// DailyCache pins one quote per calendar date.
type DailyCache interface {
	// GetDaily returns the cached quote for the date key, or NotFound.
	GetDaily(ctx context.Context, date string) (*Quote, error)
	SetDaily(ctx context.Context, date string, q *Quote) error
}
