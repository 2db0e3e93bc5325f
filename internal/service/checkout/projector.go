package checkout

import "kebuli-storefront/internal/domain"

// SelectedSubtotal sums unitPrice*quantity over the selected lines.
func SelectedSubtotal(lines []domain.CartLine, selected map[string]bool) int64 {
	var subtotal int64
	for _, l := range lines {
		if selected[l.Key()] {
			subtotal += l.UnitPriceCents * int64(l.Quantity)
		}
	}
	return subtotal
}

// SelectedCount sums quantities over the selected lines, which is distinct
// from the number of distinct selected lines.
func SelectedCount(lines []domain.CartLine, selected map[string]bool) int {
	count := 0
	for _, l := range lines {
		if selected[l.Key()] {
			count += l.Quantity
		}
	}
	return count
}

// Total adds the flat shipping fee when anything is selected. An empty
// selection totals zero; there is no phantom shipping fee.
func Total(subtotal int64, count int, shippingFeeCents int64) int64 {
	if count == 0 {
		return 0
	}
	return subtotal + shippingFeeCents
}
