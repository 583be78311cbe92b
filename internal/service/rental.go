package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/logger"
	"autorent-backend/internal/repository"
	"autorent-backend/internal/utils"
)

type rentalService struct {
	store       repository.Store
	emailSvc    EmailService
	discountSvc DiscountService
	now         func() time.Time
}

func NewRentalService(store repository.Store, emailSvc EmailService, discountSvc DiscountService, now func() time.Time) RentalService {
	if now == nil {
		now = time.Now
	}
	return &rentalService{
		store:       store,
		emailSvc:    emailSvc,
		discountSvc: discountSvc,
		now:         now,
	}
}

func (s *rentalService) CreateRental(ctx context.Context, userID int64, in CreateRentalInput) (*domain.Rental, error) {
	if !in.StartDate.Before(in.EndDate) {
		return nil, domain.NewValidationError("end_date", "must be after start_date")
	}
	if in.TotalPrice <= 0 {
		return nil, domain.NewValidationError("total_price", "must be positive")
	}

	rental := &domain.Rental{
		Reference:       uuid.NewString(),
		CarID:           in.CarID,
		UserID:          userID,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		TotalPrice:      in.TotalPrice,
		AppliedDiscount: in.AppliedDiscount,
		PersonalInfo:    in.PersonalInfo,
		Status:          domain.RentalStatusPending,
		CreatedAt:       s.now(),
	}

	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		car, err := tx.Cars().GetByIDForUpdate(ctx, in.CarID)
		if err != nil {
			return err
		}
		if car.Status != domain.CarStatusAvailable {
			return domain.NewStateError("car is not available for rent")
		}
		if err := tx.Rentals().Create(ctx, rental); err != nil {
			return err
		}
		car.Status = domain.CarStatusPending
		return tx.Cars().Update(ctx, car)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Rental request created", "rental_id", rental.ID, "car_id", rental.CarID, "user_id", userID)
	return rental, nil
}

func (s *rentalService) ApproveRental(ctx context.Context, operatorID, rentalID int64) (*domain.Rental, error) {
	var rental *domain.Rental
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		rental, err = tx.Rentals().GetByIDForUpdate(ctx, rentalID)
		if err != nil {
			return err
		}
		if rental.Status != domain.RentalStatusPending {
			return domain.NewStateError("only pending rentals can be approved")
		}
		car, err := tx.Cars().GetByIDForUpdate(ctx, rental.CarID)
		if err != nil {
			return err
		}

		now := s.now()
		rental.Status = domain.RentalStatusActive
		rental.ApprovedBy = &operatorID
		rental.ApprovedAt = &now
		if err := tx.Rentals().Update(ctx, rental); err != nil {
			return err
		}
		car.Status = domain.CarStatusInRent
		return tx.Cars().Update(ctx, car)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Rental approved", "rental_id", rentalID, "operator_id", operatorID)
	s.notifyApproved(ctx, rental)
	return rental, nil
}

func (s *rentalService) RejectRental(ctx context.Context, operatorID, rentalID int64, reason string) (*domain.Rental, error) {
	var rental *domain.Rental
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		rental, err = tx.Rentals().GetByIDForUpdate(ctx, rentalID)
		if err != nil {
			return err
		}
		if rental.Status != domain.RentalStatusPending {
			return domain.NewStateError("only pending rentals can be rejected")
		}
		car, err := tx.Cars().GetByIDForUpdate(ctx, rental.CarID)
		if err != nil {
			return err
		}

		rental.Status = domain.RentalStatusRejected
		rental.RejectionReason = reason
		if err := tx.Rentals().Update(ctx, rental); err != nil {
			return err
		}
		car.Status = domain.CarStatusAvailable
		return tx.Cars().Update(ctx, car)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Rental rejected", "rental_id", rentalID, "operator_id", operatorID)
	s.notifyRejected(ctx, rental, reason)
	return rental, nil
}

func (s *rentalService) ReturnRental(ctx context.Context, rentalID int64, in ReturnInput) (*domain.Rental, error) {
	return s.completeReturn(ctx, rentalID, in, nil)
}

func (s *rentalService) CompleteReturn(ctx context.Context, operatorID, rentalID int64, in ReturnInput) (*domain.Rental, error) {
	return s.completeReturn(ctx, rentalID, in, &operatorID)
}

// completeReturn performs the active -> completed transition: it stamps the
// return, frees the car, downgrades its condition per the damage report and
// assesses penalties. The whole sequence commits as one unit.
func (s *rentalService) completeReturn(ctx context.Context, rentalID int64, in ReturnInput, returnApprovedBy *int64) (*domain.Rental, error) {
	var (
		rental  *domain.Rental
		penalty *domain.Penalty
	)
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		rental, err = tx.Rentals().GetByIDForUpdate(ctx, rentalID)
		if err != nil {
			return err
		}
		if rental.Status != domain.RentalStatusActive {
			return domain.NewStateError("only active rentals can be completed")
		}
		car, err := tx.Cars().GetByIDForUpdate(ctx, rental.CarID)
		if err != nil {
			return err
		}

		now := s.now()
		rental.Status = domain.RentalStatusCompleted
		rental.ReturnDate = &now
		rental.ReturnCondition = in.ReturnCondition
		rental.ReturnApprovedBy = returnApprovedBy
		if err := tx.Rentals().Update(ctx, rental); err != nil {
			return err
		}

		car.Status = domain.CarStatusAvailable
		// Damage only ever worsens the recorded condition; restoration
		// happens exclusively through completed maintenance.
		if candidate, ok := in.DamageLevel.Condition(); ok && candidate.WorseThan(car.Condition) {
			car.Condition = candidate
		}
		if err := tx.Cars().Update(ctx, car); err != nil {
			return err
		}

		assessment := utils.AssessReturnPenalty(rental.TotalPrice, in.FuelLevel, in.DamageLevel)
		if assessment.Amount > 0 {
			penalty = &domain.Penalty{
				RentalID:    rental.ID,
				Amount:      assessment.Amount,
				Description: assessment.Description(),
				IsPaid:      false,
				CreatedAt:   now,
			}
			return tx.Penalties().Create(ctx, penalty)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Rental completed", "rental_id", rentalID, "penalty_created", penalty != nil)

	// Completion counts toward this month's loyalty tier.
	s.discountSvc.CalculateDiscount(ctx, rental.UserID)
	if penalty != nil {
		s.notifyPenalty(ctx, rental, penalty)
	}
	return rental, nil
}

func (s *rentalService) GetRental(ctx context.Context, userID, rentalID int64) (*domain.Rental, error) {
	rental, err := s.store.Rentals().GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return rental, nil
}

func (s *rentalService) ListUserRentals(ctx context.Context, userID int64) ([]domain.Rental, error) {
	return s.store.Rentals().ListByUser(ctx, userID)
}

func (s *rentalService) ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	return s.store.Rentals().ListByStatus(ctx, status)
}

func (s *rentalService) Quote(ctx context.Context, userID, carID int64, start, end time.Time) (int64, int, error) {
	if !start.Before(end) {
		return 0, 0, domain.NewValidationError("end_date", "must be after start_date")
	}
	car, err := s.store.Cars().GetByID(ctx, carID)
	if err != nil {
		return 0, 0, err
	}
	discount := s.discountSvc.CalculateDiscount(ctx, userID)
	return utils.QuoteTotalPrice(start, end, car.PricePerDay, discount), discount, nil
}

// Notifications are best effort: a delivery failure never undoes a committed
// transition.
func (s *rentalService) notifyApproved(ctx context.Context, rental *domain.Rental) {
	user, car, ok := s.lookupParties(ctx, rental)
	if !ok {
		return
	}
	if err := s.emailSvc.SendRentalApprovedNotification(ctx, user.Email, user.FullName, car.Name()); err != nil {
		logger.Warn("Failed to send approval notification", "rental_id", rental.ID, "error", err)
	}
}

func (s *rentalService) notifyRejected(ctx context.Context, rental *domain.Rental, reason string) {
	user, car, ok := s.lookupParties(ctx, rental)
	if !ok {
		return
	}
	if err := s.emailSvc.SendRentalRejectedNotification(ctx, user.Email, user.FullName, car.Name(), reason); err != nil {
		logger.Warn("Failed to send rejection notification", "rental_id", rental.ID, "error", err)
	}
}

func (s *rentalService) notifyPenalty(ctx context.Context, rental *domain.Rental, penalty *domain.Penalty) {
	user, _, ok := s.lookupParties(ctx, rental)
	if !ok {
		return
	}
	if err := s.emailSvc.SendPenaltyNotice(ctx, user.Email, user.FullName, penalty.Amount, penalty.Description); err != nil {
		logger.Warn("Failed to send penalty notice", "rental_id", rental.ID, "error", err)
	}
}

func (s *rentalService) lookupParties(ctx context.Context, rental *domain.Rental) (*domain.User, *domain.Car, bool) {
	user, err := s.store.Users().GetByID(ctx, rental.UserID)
	if err != nil {
		logger.Warn("Notification lookup failed", "rental_id", rental.ID, "error", err)
		return nil, nil, false
	}
	car, err := s.store.Cars().GetByID(ctx, rental.CarID)
	if err != nil {
		logger.Warn("Notification lookup failed", "rental_id", rental.ID, "error", err)
		return nil, nil, false
	}
	return user, car, true
}
