// Copyright (c) 2026 BookWise. All rights reserved.

/*
Package digest implements the daily reading-quote email digest.

Architecture:

  - Quote: Admin-curated quotes, persisted in PostgreSQL.
  - Daily quote: One quote is picked per calendar date and cached in Redis,
    so every reader sees the same quote all day.
  - Settings: Redis-backed subscription settings (send time, subject,
    template) with load-or-default semantics.
  - Scheduler: A goroutine that fires once a day at the configured time and
    sends the rendered digest via SMTP to all subscribed profiles.
*/
package digest

import (
	"strings"
	"time"
)

// Template placeholders substituted by [RenderTemplate].
const (
	PlaceholderQuote  = "{{QUOTE}}"
	PlaceholderAuthor = "{{AUTHOR}}"
	PlaceholderSource = "{{SOURCE}}"
)

// Quote is a curated reading quote.
type Quote struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Settings controls the digest subscription.
type Settings struct {
	Enabled bool `json:"enabled"`
	// SendTime is the daily send time in 24h "HH:MM" form, server-local.
	SendTime string `json:"send_time"`
	Subject  string `json:"subject"`
	// Template is the HTML body with {{QUOTE}}, {{AUTHOR}} and {{SOURCE}}
	// placeholders.
	Template string `json:"template"`
}

// DefaultSettings are used until an admin first saves.
func DefaultSettings() Settings {
	return Settings{
		Enabled:  false,
		SendTime: "08:00",
		Subject:  "Your BookWise quote of the day",
		Template: `<blockquote>{{QUOTE}}</blockquote><p>— {{AUTHOR}}, <em>{{SOURCE}}</em></p>`,
	}
}

// RenderTemplate substitutes the quote placeholders into the template.
//
// Unknown placeholders are left untouched; substitution is a single pass, so
// placeholder-like text inside the quote itself is never re-expanded.
func RenderTemplate(template string, q *Quote) string {
	replacer := strings.NewReplacer(
		PlaceholderQuote, q.Text,
		PlaceholderAuthor, q.Author,
		PlaceholderSource, q.Source,
	)
	return replacer.Replace(template)
}

// Global field names for validation
const (
	FieldText     = "text"
	FieldAuthor   = "author"
	FieldSource   = "source"
	FieldSendTime = "send_time"
	FieldSubject  = "subject"
	FieldTemplate = "template"
)
