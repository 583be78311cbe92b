package service

import (
	"context"
	"time"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/repository"
)

type penaltyService struct {
	store repository.Store
	now   func() time.Time
}

func NewPenaltyService(store repository.Store, now func() time.Time) PenaltyService {
	if now == nil {
		now = time.Now
	}
	return &penaltyService{store: store, now: now}
}

func (s *penaltyService) ListUserPenalties(ctx context.Context, userID int64) ([]domain.Penalty, error) {
	return s.store.Penalties().ListByUser(ctx, userID)
}

// PayPenalty marks a penalty as paid. The lookup is scoped to the user's own
// rentals, so a foreign id reads as not found.
func (s *penaltyService) PayPenalty(ctx context.Context, userID, penaltyID int64) (*domain.Penalty, error) {
	penalty, err := s.store.Penalties().GetByIDForUser(ctx, penaltyID, userID)
	if err != nil {
		return nil, err
	}
	if penalty.IsPaid {
		return nil, domain.NewStateError("penalty is already paid")
	}

	now := s.now()
	penalty.IsPaid = true
	penalty.PaidAt = &now
	if err := s.store.Penalties().Update(ctx, penalty); err != nil {
		return nil, err
	}
	return penalty, nil
}

func (s *penaltyService) ListForAccounting(ctx context.Context, status, period string) ([]domain.Penalty, int64, error) {
	var filter repository.PenaltyFilter
	switch status {
	case "paid":
		paid := true
		filter.Paid = &paid
	case "unpaid":
		paid := false
		filter.Paid = &paid
	}

	if days := periodDays(period); days > 0 {
		since := s.now().AddDate(0, 0, -days)
		filter.CreatedSince = &since
	}

	penalties, err := s.store.Penalties().List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	totalPaid, err := s.store.Penalties().SumPaid(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return penalties, totalPaid, nil
}

func periodDays(period string) int {
	switch period {
	case "week":
		return 7
	case "month":
		return 30
	case "half_year":
		return 180
	}
	return 0
}
