// Copyright (c) 2026 BookWise. All rights reserved.

package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amitkr8158/bookwise/pkg/money"
)

/*
TestRound verifies the half-up-to-cents rounding rule.
*/
func TestRound(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   float64
	}{
		{"exact_cents", 22.38, 22.38},
		{"round_down", 22.384, 22.38},
		{"half_rounds_up", 22.385, 22.39},
		{"computed_half_cent", 12.99 * 15 * 0.70, 136.40},
		{"round_up", 22.386, 22.39},
		{"zero", 0, 0},
		{"whole_dollars", 36.0, 36.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, money.Round(tt.amount), 1e-9)
		})
	}
}

/*
TestApplyDiscount checks the promo scenario from the storefront:
$27.98 subtotal with a flat 20%% code yields a $22.38 total.
*/
func TestApplyDiscount(t *testing.T) {
	subtotal := 12.99 + 14.99
	assert.InDelta(t, 27.98, subtotal, 1e-9)

	// Raw discount is 5.596; the rounded total must be 22.38.
	assert.InDelta(t, 5.596, money.Percent(subtotal, 20), 1e-9)
	assert.InDelta(t, 22.38, money.ApplyDiscount(subtotal, 20), 1e-9)
}
