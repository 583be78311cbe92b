package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"autorent-backend/internal/domain"
)

func completedRentals(now time.Time, thisMonth, lastMonth int) []domain.Rental {
	var rentals []domain.Rental
	for i := 0; i < thisMonth; i++ {
		rd := now.AddDate(0, 0, -i%5)
		rentals = append(rentals, domain.Rental{Status: domain.RentalStatusCompleted, ReturnDate: &rd})
	}
	for i := 0; i < lastMonth; i++ {
		rd := now.AddDate(0, -1, 0)
		rentals = append(rentals, domain.Rental{Status: domain.RentalStatusCompleted, ReturnDate: &rd})
	}
	return rentals
}

func TestDiscountService_CalculateDiscount(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("Tier Assigned", func(t *testing.T) {
		store := NewMockStore()
		svc := NewDiscountService(store, fixedClock(now))

		store.rentals.On("ListByUserAndStatus", ctx, int64(1), domain.RentalStatusCompleted).
			Return(completedRentals(now, 10, 0), nil)
		store.discounts.On("GetByRate", ctx, 15).
			Return(&domain.Discount{ID: 3, DiscountRate: 15}, nil)
		store.users.On("UpdateDiscount", ctx, int64(1), mock.MatchedBy(func(id *int64) bool {
			return id != nil && *id == 3
		})).Return(nil)

		rate := svc.CalculateDiscount(ctx, 1)
		assert.Equal(t, 15, rate)
		store.users.AssertExpectations(t)
	})

	t.Run("Previous Month Does Not Count", func(t *testing.T) {
		store := NewMockStore()
		svc := NewDiscountService(store, fixedClock(now))

		// 2 this month plus 8 last month stays below every tier.
		store.rentals.On("ListByUserAndStatus", ctx, int64(1), domain.RentalStatusCompleted).
			Return(completedRentals(now, 2, 8), nil)
		store.users.On("UpdateDiscount", ctx, int64(1), (*int64)(nil)).Return(nil)

		rate := svc.CalculateDiscount(ctx, 1)
		assert.Equal(t, 0, rate)
		store.discounts.AssertNotCalled(t, "GetByRate", mock.Anything, mock.Anything)
	})

	t.Run("Missing Return Date Excluded", func(t *testing.T) {
		store := NewMockStore()
		svc := NewDiscountService(store, fixedClock(now))

		rentals := completedRentals(now, 2, 0)
		rentals = append(rentals, domain.Rental{Status: domain.RentalStatusCompleted, ReturnDate: nil})
		store.rentals.On("ListByUserAndStatus", ctx, int64(1), domain.RentalStatusCompleted).
			Return(rentals, nil)
		store.users.On("UpdateDiscount", ctx, int64(1), (*int64)(nil)).Return(nil)

		rate := svc.CalculateDiscount(ctx, 1)
		assert.Equal(t, 0, rate)
	})

	t.Run("Repository Error Degrades To Zero", func(t *testing.T) {
		store := NewMockStore()
		svc := NewDiscountService(store, fixedClock(now))

		store.rentals.On("ListByUserAndStatus", ctx, int64(1), domain.RentalStatusCompleted).
			Return(nil, assert.AnError)

		rate := svc.CalculateDiscount(ctx, 1)
		assert.Equal(t, 0, rate)
	})

	t.Run("Top Tier", func(t *testing.T) {
		store := NewMockStore()
		svc := NewDiscountService(store, fixedClock(now))

		store.rentals.On("ListByUserAndStatus", ctx, int64(1), domain.RentalStatusCompleted).
			Return(completedRentals(now, 25, 0), nil)
		store.discounts.On("GetByRate", ctx, 20).
			Return(&domain.Discount{ID: 4, DiscountRate: 20}, nil)
		store.users.On("UpdateDiscount", ctx, int64(1), mock.Anything).Return(nil)

		rate := svc.CalculateDiscount(ctx, 1)
		assert.Equal(t, 20, rate)
	})
}
