package service

import (
	"context"
	"math"
	"time"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/logger"
	"autorent-backend/internal/repository"
)

// defaultRentalDuration is reported when no completed rental carries usable
// dates.
const defaultRentalDuration = 3.0

type financeService struct {
	store          repository.Store
	taxRatePercent int
	now            func() time.Time
}

func NewFinanceService(store repository.Store, taxRatePercent int, now func() time.Time) FinanceService {
	if now == nil {
		now = time.Now
	}
	return &financeService{store: store, taxRatePercent: taxRatePercent, now: now}
}

func (s *financeService) CarFinancialHistory(ctx context.Context) ([]CarFinanceSummary, error) {
	cars, err := s.store.Cars().List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]CarFinanceSummary, 0, len(cars))
	for _, car := range cars {
		income, err := s.store.Rentals().SumTotalPriceByCar(ctx, car.ID, domain.RentalStatusCompleted)
		if err != nil {
			logger.Warn("Income aggregation degraded to 0", "car_id", car.ID, "error", err)
			income = 0
		}
		expenses, err := s.store.Maintenance().SumCostCompletedByCar(ctx, car.ID)
		if err != nil {
			logger.Warn("Expense aggregation degraded to 0", "car_id", car.ID, "error", err)
			expenses = 0
		}

		efficiency := 0
		if income > 0 {
			efficiency = int(math.Round(float64(income-expenses) / float64(income) * 100))
		}
		summaries = append(summaries, CarFinanceSummary{
			CarID:         car.ID,
			Brand:         car.Brand,
			Model:         car.Model,
			TotalIncome:   income,
			TotalExpenses: expenses,
			Efficiency:    efficiency,
		})
	}
	return summaries, nil
}

func (s *financeService) Statistics(ctx context.Context, period string, includePenalties bool) (*StatisticsReport, error) {
	now := s.now()

	// Daily buckets for the short windows, 30-day buckets for the long ones.
	windowDays, stepDays, labelLayout := 30, 1, "02.01"
	switch period {
	case "week":
		windowDays = 7
	case "half_year":
		windowDays, stepDays, labelLayout = 180, 30, "01.2006"
	case "year":
		windowDays, stepDays, labelLayout = 365, 30, "01.2006"
	}
	start := now.AddDate(0, 0, -windowDays)

	rentals, err := s.store.Rentals().ListCompletedSince(ctx, start)
	if err != nil {
		logger.Warn("Statistics rentals query degraded to empty", "error", err)
		rentals = nil
	}
	maintenances, err := s.store.Maintenance().ListCompletedSince(ctx, start)
	if err != nil {
		logger.Warn("Statistics maintenance query degraded to empty", "error", err)
		maintenances = nil
	}
	var penalties []domain.Penalty
	if includePenalties {
		penalties, err = s.store.Penalties().ListPaidSince(ctx, start)
		if err != nil {
			logger.Warn("Statistics penalties query degraded to empty", "error", err)
			penalties = nil
		}
	}

	report := &StatisticsReport{
		TotalRentals:          len(rentals),
		AverageRentalDuration: averageRentalDuration(rentals),
		PopularCars:           s.popularCars(ctx, rentals),
		FleetUtilization:      s.fleetUtilization(ctx),
	}

	for cur := start; !cur.After(now); cur = cur.AddDate(0, 0, stepDays) {
		bucketEnd := cur.AddDate(0, 0, stepDays)
		report.Labels = append(report.Labels, cur.Format(labelLayout))

		var income, expense int64
		for _, rt := range rentals {
			if rt.ReturnDate != nil && inBucket(*rt.ReturnDate, cur, bucketEnd) {
				income += rt.TotalPrice
			}
		}
		for _, p := range penalties {
			if p.PaidAt != nil && inBucket(*p.PaidAt, cur, bucketEnd) {
				income += p.Amount
			}
		}
		for _, m := range maintenances {
			if m.CompletedDate != nil && inBucket(*m.CompletedDate, cur, bucketEnd) {
				expense += m.Cost
			}
		}
		report.IncomeSeries = append(report.IncomeSeries, income)
		report.ExpenseSeries = append(report.ExpenseSeries, expense)
		report.TotalIncome += income
		report.TotalExpense += expense
	}
	report.TotalProfit = report.TotalIncome - report.TotalExpense

	if costs, err := s.store.Maintenance().SumCostCompleted(ctx); err == nil {
		report.TotalMaintenanceCosts = costs
	} else {
		logger.Warn("Total maintenance cost aggregation degraded to 0", "error", err)
	}
	return report, nil
}

func inBucket(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

func averageRentalDuration(rentals []domain.Rental) float64 {
	totalDays, counted := 0, 0
	for _, rt := range rentals {
		if rt.ReturnDate == nil {
			continue
		}
		days := int(rt.ReturnDate.Sub(rt.StartDate).Hours() / 24)
		if days < 0 {
			continue
		}
		if days < 1 {
			days = 1
		}
		totalDays += days
		counted++
	}
	if counted == 0 {
		return defaultRentalDuration
	}
	return math.Round(float64(totalDays)/float64(counted)*10) / 10
}

// popularCars ranks the top five cars by completed-rental count; ties keep
// encounter order.
func (s *financeService) popularCars(ctx context.Context, rentals []domain.Rental) []PopularCar {
	if len(rentals) == 0 {
		return nil
	}
	cars, err := s.store.Cars().List(ctx)
	if err != nil {
		logger.Warn("Popular cars degraded to empty", "error", err)
		return nil
	}
	names := make(map[int64]string, len(cars))
	for _, car := range cars {
		names[car.ID] = car.Name()
	}

	counts := make(map[int64]int)
	var order []int64
	for _, rt := range rentals {
		if _, seen := counts[rt.CarID]; !seen {
			order = append(order, rt.CarID)
		}
		counts[rt.CarID]++
	}

	popular := make([]PopularCar, 0, len(order))
	for _, carID := range order {
		name, ok := names[carID]
		if !ok {
			continue
		}
		popular = append(popular, PopularCar{Name: name, Rentals: counts[carID]})
	}
	// Stable insertion sort keeps encounter order among equal counts.
	for i := 1; i < len(popular); i++ {
		for j := i; j > 0 && popular[j].Rentals > popular[j-1].Rentals; j-- {
			popular[j], popular[j-1] = popular[j-1], popular[j]
		}
	}
	if len(popular) > 5 {
		popular = popular[:5]
	}
	return popular
}

func (s *financeService) fleetUtilization(ctx context.Context) int {
	total, err := s.store.Cars().Count(ctx)
	if err != nil || total == 0 {
		if err != nil {
			logger.Warn("Fleet utilization degraded to 0", "error", err)
		}
		return 0
	}
	rented, err := s.store.Cars().CountByStatus(ctx, domain.CarStatusInRent)
	if err != nil {
		logger.Warn("Fleet utilization degraded to 0", "error", err)
		return 0
	}
	return int(math.Round(float64(rented) / float64(total) * 100))
}

func (s *financeService) TaxReport(ctx context.Context, period string) (*TaxReport, error) {
	now := s.now()

	var start, end time.Time
	switch period {
	case "quarter":
		quarter := (int(now.Month()) - 1) / 3
		start = time.Date(now.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 3, 0).Add(-time.Second)
	case "year":
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(1, 0, 0).Add(-time.Second)
	default:
		period = "month"
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, 0).Add(-time.Second)
	}

	rentalIncome, err := s.store.Rentals().SumTotalPriceCompletedBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	penaltyIncome, err := s.store.Penalties().SumPaidBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	expense, err := s.store.Maintenance().SumCostCompletedBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	profit := rentalIncome + penaltyIncome - expense
	var tax int64
	if profit > 0 {
		tax = profit * int64(s.taxRatePercent) / 100
	}
	return &TaxReport{
		Period:             period,
		PeriodStart:        start,
		PeriodEnd:          end,
		RentalIncome:       rentalIncome,
		PenaltyIncome:      penaltyIncome,
		TotalIncome:        rentalIncome + penaltyIncome,
		MaintenanceExpense: expense,
		Profit:             profit,
		TaxRatePercent:     s.taxRatePercent,
		TaxAmount:          tax,
	}, nil
}
