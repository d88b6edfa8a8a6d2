// Copyright (c) 2026 BookWise. All rights reserved.

/*
Package money provides currency arithmetic for the BookWise storefront.

All customer-facing amounts are US dollar values carried as float64 in the
API layer but rounded through a single, consistent rule before they are
persisted or returned.

Rounding Rule:

  - Round half-up to cents (2 decimal places).
  - Applied at every boundary where an amount leaves pure computation:
    cart totals, bundle prices, recorded purchases.

Centralizing the rule here keeps pricing math identical between the cart,
bundle, and purchase slices.
*/
package money

import "math"

// Round rounds a dollar amount half-up to the nearest cent.
//
// # Examples
//
//	Round(22.384) // 22.38
//	Round(22.385) // 22.39
func Round(amount float64) float64 {
	cents := amount * 100
	// Computed half-cent values can land a few ULPs under .5 in binary
	// floating point (12.99*15*0.70 scales to 13639.4999…); a relative
	// nudge keeps them rounding up without disturbing genuine sub-half
	// amounts.
	cents += math.Abs(cents) * 1e-9
	return math.Floor(cents+0.5) / 100
}

// Percent returns pct percent of amount, unrounded.
//
// Callers decide when to apply [Round]; keeping the intermediate value exact
// avoids double-rounding drift when several percentages stack.
func Percent(amount, pct float64) float64 {
	return amount * pct / 100
}

// ApplyDiscount subtracts pct percent from amount and rounds the result.
func ApplyDiscount(amount, pct float64) float64 {
	return Round(amount - Percent(amount, pct))
}
