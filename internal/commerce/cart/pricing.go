// Copyright (c) 2026 BookWise. All rights reserved.

package cart

import "github.com/amitkr8158/bookwise/pkg/money"

// Totals holds the computed amounts for a cart snapshot.
type Totals struct {
	Subtotal float64
	Discount float64
	Total    float64
}

// PriceLine fills the LineTotal of a priced item from its unit price and quantity.
func PriceLine(item *PricedItem) {
	item.LineTotal = money.Round(item.UnitPrice * float64(item.Quantity))
}

// ComputeTotals derives cart totals from priced lines and a discount percent.
//
// The discount is a live percentage of the current subtotal. Applying the
// same percentage again yields the same totals (never compounds), and a
// zero percent leaves total == subtotal exactly.
func ComputeTotals(items []PricedItem, discountPercent float64) Totals {
	subtotal := 0.0
	for _, item := range items {
		subtotal += item.LineTotal
	}
	subtotal = money.Round(subtotal)

	return Totals{
		Subtotal: subtotal,
		Discount: money.Round(money.Percent(subtotal, discountPercent)),
		Total:    money.ApplyDiscount(subtotal, discountPercent),
	}
}
