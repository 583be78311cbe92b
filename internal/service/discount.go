package service

import (
	"context"
	"time"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/logger"
	"autorent-backend/internal/repository"
	"autorent-backend/internal/utils"
)

type discountService struct {
	store repository.Store
	now   func() time.Time
}

func NewDiscountService(store repository.Store, now func() time.Time) DiscountService {
	if now == nil {
		now = time.Now
	}
	return &discountService{store: store, now: now}
}

// CalculateDiscount counts the user's rentals completed in the current
// calendar month, maps the count to a loyalty tier and persists the tier on
// the user record. Any failure degrades to 0% rather than surfacing.
func (s *discountService) CalculateDiscount(ctx context.Context, userID int64) int {
	rate, err := s.calculate(ctx, userID)
	if err != nil {
		logger.Warn("Discount calculation degraded to 0%", "user_id", userID, "error", err)
		return 0
	}
	return rate
}

func (s *discountService) calculate(ctx context.Context, userID int64) (int, error) {
	completed, err := s.store.Rentals().ListByUserAndStatus(ctx, userID, domain.RentalStatusCompleted)
	if err != nil {
		return 0, err
	}

	// Rentals with an absent or unparseable return date are excluded from
	// the count rather than treated as errors.
	now := s.now()
	count := 0
	for _, rental := range completed {
		if rental.ReturnDate != nil && utils.SameMonth(*rental.ReturnDate, now) {
			count++
		}
	}

	rate := domain.DiscountRateForCount(count)
	if rate == 0 {
		if err := s.store.Users().UpdateDiscount(ctx, userID, nil); err != nil {
			return 0, err
		}
		return 0, nil
	}

	discount, err := s.store.Discounts().GetByRate(ctx, rate)
	if err != nil {
		return 0, err
	}
	if err := s.store.Users().UpdateDiscount(ctx, userID, &discount.ID); err != nil {
		return 0, err
	}
	return discount.DiscountRate, nil
}
