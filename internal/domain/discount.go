package domain

// Discount is one of a small fixed set of loyalty tiers.
type Discount struct {
	ID           int64 `json:"id"`
	DiscountRate int   `json:"discount_rate"`
}

// DiscountRateForCount maps a completed-rental count for the current month
// to a discount percentage. Thresholds are deliberately coarse tiers.
func DiscountRateForCount(completed int) int {
	switch {
	case completed >= 20:
		return 20
	case completed >= 10:
		return 15
	case completed >= 5:
		return 10
	case completed >= 3:
		return 5
	}
	return 0
}
