package repository

import (
	"context"
	"time"

	"autorent-backend/internal/domain"
)

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
	// GetByIDForUpdate locks the car row for the duration of the enclosing
	// transaction. Call it only inside Store.WithinTx.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Car, error)
	Update(ctx context.Context, car *domain.Car) error
	List(ctx context.Context) ([]domain.Car, error)
	ListByStatus(ctx context.Context, status domain.CarStatus) ([]domain.Car, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.CarStatus) (int64, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Rental, error)
	ListByUserAndStatus(ctx context.Context, userID int64, status domain.RentalStatus) ([]domain.Rental, error)
	ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error)
	// ListCompletedSince returns completed rentals whose return_date is at or
	// after since.
	ListCompletedSince(ctx context.Context, since time.Time) ([]domain.Rental, error)
	SumTotalPriceByCar(ctx context.Context, carID int64, status domain.RentalStatus) (int64, error)
	SumTotalPriceCompletedBetween(ctx context.Context, from, to time.Time) (int64, error)
}

type MaintenanceRepository interface {
	Create(ctx context.Context, m *domain.Maintenance) error
	GetByID(ctx context.Context, id int64) (*domain.Maintenance, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Maintenance, error)
	Update(ctx context.Context, m *domain.Maintenance) error
	// ListActive returns tickets still pending or in progress.
	ListActive(ctx context.Context) ([]domain.Maintenance, error)
	ListByCar(ctx context.Context, carID int64) ([]domain.Maintenance, error)
	ListCompletedSince(ctx context.Context, since time.Time) ([]domain.Maintenance, error)
	SumCostCompletedByCar(ctx context.Context, carID int64) (int64, error)
	SumCostCompleted(ctx context.Context) (int64, error)
	SumCostCompletedBetween(ctx context.Context, from, to time.Time) (int64, error)
}

// PenaltyFilter narrows accounting penalty listings.
type PenaltyFilter struct {
	Paid         *bool
	CreatedSince *time.Time
}

type PenaltyRepository interface {
	Create(ctx context.Context, p *domain.Penalty) error
	GetByID(ctx context.Context, id int64) (*domain.Penalty, error)
	// GetByIDForUser resolves a penalty only when it belongs to a rental of
	// the given user.
	GetByIDForUser(ctx context.Context, id, userID int64) (*domain.Penalty, error)
	Update(ctx context.Context, p *domain.Penalty) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Penalty, error)
	List(ctx context.Context, filter PenaltyFilter) ([]domain.Penalty, error)
	ListUnpaid(ctx context.Context) ([]domain.Penalty, error)
	ListPaidSince(ctx context.Context, since time.Time) ([]domain.Penalty, error)
	SumPaid(ctx context.Context, filter PenaltyFilter) (int64, error)
	SumPaidBetween(ctx context.Context, from, to time.Time) (int64, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	// UpdateDiscount persists the user's current loyalty tier; nil clears it.
	UpdateDiscount(ctx context.Context, userID int64, discountID *int64) error
}

type DiscountRepository interface {
	GetByRate(ctx context.Context, rate int) (*domain.Discount, error)
	List(ctx context.Context) ([]domain.Discount, error)
}

// Store bundles the repositories behind one entity-store handle.
type Store interface {
	Cars() CarRepository
	Rentals() RentalRepository
	Maintenance() MaintenanceRepository
	Penalties() PenaltyRepository
	Users() UserRepository
	Discounts() DiscountRepository

	// WithinTx runs fn against a store view bound to a single database
	// transaction, so a transition's read-check-mutate sequence commits or
	// rolls back as one unit. Row locks taken via GetByIDForUpdate hold
	// until fn returns.
	WithinTx(ctx context.Context, fn func(Store) error) error
}
