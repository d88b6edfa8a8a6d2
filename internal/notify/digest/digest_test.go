// Copyright (c) 2026 BookWise. All rights reserved.

package digest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

/*
TestRenderTemplate covers placeholder substitution, including partial
templates and placeholder-like content inside the quote text.
*/
func TestRenderTemplate(t *testing.T) {
	quote := &Quote{
		Text:   "We are what we repeatedly do.",
		Author: "Will Durant",
		Source: "The Story of Philosophy",
	}

	t.Run("all_placeholders", func(t *testing.T) {
		out := RenderTemplate(`<b>{{QUOTE}}</b> — {{AUTHOR}} ({{SOURCE}})`, quote)

		assert.Equal(t, `<b>We are what we repeatedly do.</b> — Will Durant (The Story of Philosophy)`, out)
	})

	t.Run("missing_placeholders_are_left_out", func(t *testing.T) {
		out := RenderTemplate(`{{QUOTE}}`, quote)

		assert.Equal(t, "We are what we repeatedly do.", out)
	})

	t.Run("unknown_placeholders_untouched", func(t *testing.T) {
		out := RenderTemplate(`{{QUOTE}} {{DATE}}`, quote)

		assert.Equal(t, "We are what we repeatedly do. {{DATE}}", out)
	})

	t.Run("placeholder_in_quote_text_not_reexpanded", func(t *testing.T) {
		tricky := &Quote{Text: "Say {{AUTHOR}} out loud", Author: "Nobody", Source: "Nowhere"}

		out := RenderTemplate(`{{QUOTE}}`, tricky)

		assert.Equal(t, "Say {{AUTHOR}} out loud", out)
	})
}

/*
TestUntilNextSend checks the daily scheduler arithmetic around the send time
boundary and malformed input.
*/
func TestUntilNextSend(t *testing.T) {
	base := time.Date(2026, 8, 31, 7, 30, 0, 0, time.UTC)

	t.Run("later_today", func(t *testing.T) {
		assert.Equal(t, 30*time.Minute, untilNextSend(base, "08:00"))
	})

	t.Run("already_passed_rolls_to_tomorrow", func(t *testing.T) {
		assert.Equal(t, 23*time.Hour+30*time.Minute, untilNextSend(base, "07:00"))
	})

	t.Run("exact_boundary_rolls_to_tomorrow", func(t *testing.T) {
		assert.Equal(t, 24*time.Hour, untilNextSend(base, "07:30"))
	})

	t.Run("malformed_time_uses_default", func(t *testing.T) {
		assert.Equal(t, 30*time.Minute, untilNextSend(base, "not-a-time"))
	})
}

func TestValidSendTime(t *testing.T) {
	assert.True(t, validSendTime("00:00"))
	assert.True(t, validSendTime("23:59"))
	assert.False(t, validSendTime("24:00"))
	assert.False(t, validSendTime("8am"))
	assert.False(t, validSendTime(""))
}
