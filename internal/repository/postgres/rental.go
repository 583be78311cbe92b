package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/utils"
)

type rentalRepository struct {
	run dbtx
}

const rentalColumns = `id, reference, car_id, user_id, start_date, end_date, total_price, applied_discount,
	personal_info, status, created_at, approved_by, approved_at, return_date, return_condition,
	return_approved_by, rejection_reason`

// return_date is a text column carried over from the legacy import; new rows
// are always written in RFC3339, old rows are normalized on scan.
const returnDateLayout = time.RFC3339

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (reference, car_id, user_id, start_date, end_date, total_price,
	          applied_discount, personal_info, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	return r.run.QueryRowContext(ctx, query,
		rt.Reference, rt.CarID, rt.UserID, rt.StartDate, rt.EndDate, rt.TotalPrice,
		rt.AppliedDiscount, []byte(rt.PersonalInfo), rt.Status, rt.CreatedAt,
	).Scan(&rt.ID)
}

func (r *rentalRepository) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	return scanRental(r.run.QueryRowContext(ctx, query, id), id)
}

func (r *rentalRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1 FOR UPDATE`
	return scanRental(r.run.QueryRowContext(ctx, query, id), id)
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET status=$1, approved_by=$2, approved_at=$3, return_date=$4,
	          return_condition=$5, return_approved_by=$6, rejection_reason=$7 WHERE id=$8`
	var returnDate sql.NullString
	if rt.ReturnDate != nil {
		returnDate = sql.NullString{String: rt.ReturnDate.Format(returnDateLayout), Valid: true}
	}
	res, err := r.run.ExecContext(ctx, query,
		rt.Status, nullInt64(rt.ApprovedBy), nullTime(rt.ApprovedAt), returnDate,
		rt.ReturnCondition, nullInt64(rt.ReturnApprovedBy), rt.RejectionReason, rt.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("rental %d: %w", rt.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *rentalRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryRentals(ctx, query, userID)
}

func (r *rentalRepository) ListByUserAndStatus(ctx context.Context, userID int64, status domain.RentalStatus) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE user_id = $1 AND status = $2 ORDER BY created_at DESC`
	return r.queryRentals(ctx, query, userID, status)
}

func (r *rentalRepository) ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE status = $1 ORDER BY created_at DESC`
	return r.queryRentals(ctx, query, status)
}

func (r *rentalRepository) ListCompletedSince(ctx context.Context, since time.Time) ([]domain.Rental, error) {
	// The range check repeats in Go after normalization because legacy rows
	// may hold return_date in older text formats.
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE status = $1 ORDER BY created_at DESC`
	rentals, err := r.queryRentals(ctx, query, domain.RentalStatusCompleted)
	if err != nil {
		return nil, err
	}
	var matched []domain.Rental
	for _, rt := range rentals {
		if rt.ReturnDate != nil && !rt.ReturnDate.Before(since) {
			matched = append(matched, rt)
		}
	}
	return matched, nil
}

func (r *rentalRepository) SumTotalPriceByCar(ctx context.Context, carID int64, status domain.RentalStatus) (int64, error) {
	var sum int64
	query := `SELECT COALESCE(SUM(total_price), 0) FROM rentals WHERE car_id = $1 AND status = $2`
	err := r.run.QueryRowContext(ctx, query, carID, status).Scan(&sum)
	return sum, err
}

func (r *rentalRepository) SumTotalPriceCompletedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	rentals, err := r.ListCompletedSince(ctx, from)
	if err != nil {
		return 0, err
	}
	var sum int64
	for _, rt := range rentals {
		if rt.ReturnDate != nil && !rt.ReturnDate.After(to) {
			sum += rt.TotalPrice
		}
	}
	return sum, nil
}

func (r *rentalRepository) queryRentals(ctx context.Context, query string, args ...any) ([]domain.Rental, error) {
	rows, err := r.run.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRentalRow(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRental(row *sql.Row, id int64) (*domain.Rental, error) {
	rt, err := scanRentalRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("rental %d: %w", id, domain.ErrNotFound)
	}
	return rt, err
}

func scanRentalRow(row rowScanner) (*domain.Rental, error) {
	rt := &domain.Rental{}
	var (
		personalInfo     []byte
		approvedBy       sql.NullInt64
		approvedAt       sql.NullTime
		returnDate       sql.NullString
		returnCondition  sql.NullString
		returnApprovedBy sql.NullInt64
		rejectionReason  sql.NullString
	)
	err := row.Scan(&rt.ID, &rt.Reference, &rt.CarID, &rt.UserID, &rt.StartDate, &rt.EndDate,
		&rt.TotalPrice, &rt.AppliedDiscount, &personalInfo, &rt.Status, &rt.CreatedAt,
		&approvedBy, &approvedAt, &returnDate, &returnCondition, &returnApprovedBy, &rejectionReason)
	if err != nil {
		return nil, err
	}
	rt.PersonalInfo = personalInfo
	rt.ApprovedBy = int64Ptr(approvedBy)
	rt.ApprovedAt = timePtr(approvedAt)
	rt.ReturnCondition = returnCondition.String
	rt.ReturnApprovedBy = int64Ptr(returnApprovedBy)
	rt.RejectionReason = rejectionReason.String
	if returnDate.Valid {
		// Legacy rows carry return_date in assorted text formats; a value
		// matching none of them is treated as absent, not as an error.
		if t, ok := utils.ParseFlexibleTime(returnDate.String); ok {
			rt.ReturnDate = &t
		}
	}
	return rt, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
