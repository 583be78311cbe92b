package service

import (
	"context"
	"encoding/json"
	"time"

	"autorent-backend/internal/domain"
)

// CreateRentalInput carries the client-supplied fields of a rental request.
type CreateRentalInput struct {
	CarID           int64
	StartDate       time.Time
	EndDate         time.Time
	PersonalInfo    json.RawMessage
	TotalPrice      int64
	AppliedDiscount int
}

// ReturnInput carries the return-time report for an active rental.
type ReturnInput struct {
	ReturnCondition string
	FuelLevel       int
	DamageLevel     domain.DamageLevel
}

type RentalService interface {
	CreateRental(ctx context.Context, userID int64, in CreateRentalInput) (*domain.Rental, error)
	ApproveRental(ctx context.Context, operatorID, rentalID int64) (*domain.Rental, error)
	RejectRental(ctx context.Context, operatorID, rentalID int64, reason string) (*domain.Rental, error)
	// ReturnRental is the client-initiated completion path.
	ReturnRental(ctx context.Context, rentalID int64, in ReturnInput) (*domain.Rental, error)
	// CompleteReturn is the operator-driven completion path; it additionally
	// records who approved the return.
	CompleteReturn(ctx context.Context, operatorID, rentalID int64, in ReturnInput) (*domain.Rental, error)
	GetRental(ctx context.Context, userID, rentalID int64) (*domain.Rental, error)
	ListUserRentals(ctx context.Context, userID int64) ([]domain.Rental, error)
	ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error)
	// Quote computes the expected total price for a prospective rental,
	// including the user's current loyalty discount.
	Quote(ctx context.Context, userID, carID int64, start, end time.Time) (int64, int, error)
}

type MaintenanceService interface {
	EnterMaintenance(ctx context.Context, carID int64, description string, priority domain.MaintenancePriority) (*domain.Maintenance, error)
	AcceptMaintenance(ctx context.Context, maintenanceID int64) (*domain.Maintenance, error)
	CompleteMaintenance(ctx context.Context, maintenanceID int64, description string, cost int64) (*domain.Maintenance, error)
	ListActive(ctx context.Context) ([]domain.Maintenance, error)
	CarHistory(ctx context.Context, carID int64) ([]domain.Maintenance, error)
}

type DiscountService interface {
	// CalculateDiscount derives the user's loyalty tier from this month's
	// completed rentals and persists it. It never fails; any internal error
	// degrades to 0%.
	CalculateDiscount(ctx context.Context, userID int64) int
}

type PenaltyService interface {
	ListUserPenalties(ctx context.Context, userID int64) ([]domain.Penalty, error)
	PayPenalty(ctx context.Context, userID, penaltyID int64) (*domain.Penalty, error)
	// ListForAccounting filters penalties by payment status (paid, unpaid,
	// all) and period (week, month, half_year, all) and reports the paid sum
	// over the same filter.
	ListForAccounting(ctx context.Context, status, period string) ([]domain.Penalty, int64, error)
}

// CarFinanceSummary is the per-car income/expense report line.
type CarFinanceSummary struct {
	CarID         int64  `json:"id"`
	Brand         string `json:"brand"`
	Model         string `json:"model"`
	TotalIncome   int64  `json:"total_income"`
	TotalExpenses int64  `json:"total_expenses"`
	Efficiency    int    `json:"efficiency"`
}

type PopularCar struct {
	Name    string `json:"name"`
	Rentals int    `json:"rentals"`
}

type StatisticsReport struct {
	Labels                []string     `json:"labels"`
	IncomeSeries          []int64      `json:"income_data"`
	ExpenseSeries         []int64      `json:"expense_data"`
	TotalIncome           int64        `json:"total_income"`
	TotalExpense          int64        `json:"total_expense"`
	TotalProfit           int64        `json:"total_profit"`
	PopularCars           []PopularCar `json:"popular_cars"`
	TotalRentals          int          `json:"total_rentals"`
	AverageRentalDuration float64      `json:"average_rental_duration"`
	FleetUtilization      int          `json:"fleet_utilization"`
	TotalMaintenanceCosts int64        `json:"total_maintenance_costs"`
}

type TaxReport struct {
	Period             string    `json:"period"`
	PeriodStart        time.Time `json:"period_start"`
	PeriodEnd          time.Time `json:"period_end"`
	RentalIncome       int64     `json:"rental_income"`
	PenaltyIncome      int64     `json:"penalty_income"`
	TotalIncome        int64     `json:"total_income"`
	MaintenanceExpense int64     `json:"maintenance_expense"`
	Profit             int64     `json:"profit"`
	TaxRatePercent     int       `json:"tax_rate_percent"`
	TaxAmount          int64     `json:"tax_amount"`
}

type FinanceService interface {
	CarFinancialHistory(ctx context.Context) ([]CarFinanceSummary, error)
	Statistics(ctx context.Context, period string, includePenalties bool) (*StatisticsReport, error)
	TaxReport(ctx context.Context, period string) (*TaxReport, error)
}

type EmailService interface {
	SendRentalApprovedNotification(ctx context.Context, email, name, carName string) error
	SendRentalRejectedNotification(ctx context.Context, email, name, carName, reason string) error
	SendPenaltyNotice(ctx context.Context, email, name string, amount int64, description string) error
	SendPenaltyReminder(ctx context.Context, email, name string, amount int64) error
}
