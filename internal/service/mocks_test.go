package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/repository"
)

// MockStore hands out the mocked repositories and runs transactional
// closures directly against itself.
type MockStore struct {
	cars        *MockCarRepo
	rentals     *MockRentalRepo
	maintenance *MockMaintenanceRepo
	penalties   *MockPenaltyRepo
	users       *MockUserRepo
	discounts   *MockDiscountRepo
}

func NewMockStore() *MockStore {
	return &MockStore{
		cars:        new(MockCarRepo),
		rentals:     new(MockRentalRepo),
		maintenance: new(MockMaintenanceRepo),
		penalties:   new(MockPenaltyRepo),
		users:       new(MockUserRepo),
		discounts:   new(MockDiscountRepo),
	}
}

func (s *MockStore) Cars() repository.CarRepository                { return s.cars }
func (s *MockStore) Rentals() repository.RentalRepository          { return s.rentals }
func (s *MockStore) Maintenance() repository.MaintenanceRepository { return s.maintenance }
func (s *MockStore) Penalties() repository.PenaltyRepository       { return s.penalties }
func (s *MockStore) Users() repository.UserRepository              { return s.users }
func (s *MockStore) Discounts() repository.DiscountRepository      { return s.discounts }

func (s *MockStore) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

// MockCarRepo
type MockCarRepo struct {
	mock.Mock
}

func (m *MockCarRepo) Create(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}
func (m *MockCarRepo) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarRepo) Update(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}
func (m *MockCarRepo) List(ctx context.Context) ([]domain.Car, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Car), args.Error(1)
}
func (m *MockCarRepo) ListByStatus(ctx context.Context, status domain.CarStatus) ([]domain.Car, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Car), args.Error(1)
}
func (m *MockCarRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockCarRepo) CountByStatus(ctx context.Context, status domain.CarStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Update(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Rental, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListByUserAndStatus(ctx context.Context, userID int64, status domain.RentalStatus) ([]domain.Rental, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListCompletedSince(ctx context.Context, since time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) SumTotalPriceByCar(ctx context.Context, carID int64, status domain.RentalStatus) (int64, error) {
	args := m.Called(ctx, carID, status)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockRentalRepo) SumTotalPriceCompletedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

// MockMaintenanceRepo
type MockMaintenanceRepo struct {
	mock.Mock
}

func (m *MockMaintenanceRepo) Create(ctx context.Context, mt *domain.Maintenance) error {
	args := m.Called(ctx, mt)
	return args.Error(0)
}
func (m *MockMaintenanceRepo) GetByID(ctx context.Context, id int64) (*domain.Maintenance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Maintenance), args.Error(1)
}
func (m *MockMaintenanceRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Maintenance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Maintenance), args.Error(1)
}
func (m *MockMaintenanceRepo) Update(ctx context.Context, mt *domain.Maintenance) error {
	args := m.Called(ctx, mt)
	return args.Error(0)
}
func (m *MockMaintenanceRepo) ListActive(ctx context.Context) ([]domain.Maintenance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Maintenance), args.Error(1)
}
func (m *MockMaintenanceRepo) ListByCar(ctx context.Context, carID int64) ([]domain.Maintenance, error) {
	args := m.Called(ctx, carID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Maintenance), args.Error(1)
}
func (m *MockMaintenanceRepo) ListCompletedSince(ctx context.Context, since time.Time) ([]domain.Maintenance, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Maintenance), args.Error(1)
}
func (m *MockMaintenanceRepo) SumCostCompletedByCar(ctx context.Context, carID int64) (int64, error) {
	args := m.Called(ctx, carID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockMaintenanceRepo) SumCostCompleted(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockMaintenanceRepo) SumCostCompletedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

// MockPenaltyRepo
type MockPenaltyRepo struct {
	mock.Mock
}

func (m *MockPenaltyRepo) Create(ctx context.Context, p *domain.Penalty) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPenaltyRepo) GetByID(ctx context.Context, id int64) (*domain.Penalty, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Penalty), args.Error(1)
}
func (m *MockPenaltyRepo) GetByIDForUser(ctx context.Context, id, userID int64) (*domain.Penalty, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Penalty), args.Error(1)
}
func (m *MockPenaltyRepo) Update(ctx context.Context, p *domain.Penalty) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPenaltyRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Penalty, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Penalty), args.Error(1)
}
func (m *MockPenaltyRepo) List(ctx context.Context, filter repository.PenaltyFilter) ([]domain.Penalty, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Penalty), args.Error(1)
}
func (m *MockPenaltyRepo) ListUnpaid(ctx context.Context) ([]domain.Penalty, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Penalty), args.Error(1)
}
func (m *MockPenaltyRepo) ListPaidSince(ctx context.Context, since time.Time) ([]domain.Penalty, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Penalty), args.Error(1)
}
func (m *MockPenaltyRepo) SumPaid(ctx context.Context, filter repository.PenaltyFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockPenaltyRepo) SumPaidBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdateDiscount(ctx context.Context, userID int64, discountID *int64) error {
	args := m.Called(ctx, userID, discountID)
	return args.Error(0)
}

// MockDiscountRepo
type MockDiscountRepo struct {
	mock.Mock
}

func (m *MockDiscountRepo) GetByRate(ctx context.Context, rate int) (*domain.Discount, error) {
	args := m.Called(ctx, rate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Discount), args.Error(1)
}
func (m *MockDiscountRepo) List(ctx context.Context) ([]domain.Discount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Discount), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRentalApprovedNotification(ctx context.Context, email, name, carName string) error {
	args := m.Called(ctx, email, name, carName)
	return args.Error(0)
}
func (m *MockEmailService) SendRentalRejectedNotification(ctx context.Context, email, name, carName, reason string) error {
	args := m.Called(ctx, email, name, carName, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendPenaltyNotice(ctx context.Context, email, name string, amount int64, description string) error {
	args := m.Called(ctx, email, name, amount, description)
	return args.Error(0)
}
func (m *MockEmailService) SendPenaltyReminder(ctx context.Context, email, name string, amount int64) error {
	args := m.Called(ctx, email, name, amount)
	return args.Error(0)
}

// MockDiscountService
type MockDiscountService struct {
	mock.Mock
}

func (m *MockDiscountService) CalculateDiscount(ctx context.Context, userID int64) int {
	args := m.Called(ctx, userID)
	return args.Int(0)
}
