package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/repository"
)

type penaltyRepository struct {
	run dbtx
}

const penaltyColumns = `id, rental_id, amount, description, is_paid, created_at, paid_at`

func (r *penaltyRepository) Create(ctx context.Context, p *domain.Penalty) error {
	query := `INSERT INTO penalties (rental_id, amount, description, is_paid, created_at)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.run.QueryRowContext(ctx, query,
		p.RentalID, p.Amount, p.Description, p.IsPaid, p.CreatedAt,
	).Scan(&p.ID)
}

func (r *penaltyRepository) GetByID(ctx context.Context, id int64) (*domain.Penalty, error) {
	query := `SELECT ` + penaltyColumns + ` FROM penalties WHERE id = $1`
	return r.scanOne(r.run.QueryRowContext(ctx, query, id), id)
}

func (r *penaltyRepository) GetByIDForUser(ctx context.Context, id, userID int64) (*domain.Penalty, error) {
	query := `SELECT p.id, p.rental_id, p.amount, p.description, p.is_paid, p.created_at, p.paid_at
	          FROM penalties p JOIN rentals r ON r.id = p.rental_id
	          WHERE p.id = $1 AND r.user_id = $2`
	return r.scanOne(r.run.QueryRowContext(ctx, query, id, userID), id)
}

func (r *penaltyRepository) scanOne(row *sql.Row, id int64) (*domain.Penalty, error) {
	p := &domain.Penalty{}
	var paidAt sql.NullTime
	err := row.Scan(&p.ID, &p.RentalID, &p.Amount, &p.Description, &p.IsPaid, &p.CreatedAt, &paidAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("penalty %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	p.PaidAt = timePtr(paidAt)
	return p, nil
}

func (r *penaltyRepository) Update(ctx context.Context, p *domain.Penalty) error {
	query := `UPDATE penalties SET is_paid=$1, paid_at=$2 WHERE id=$3`
	res, err := r.run.ExecContext(ctx, query, p.IsPaid, nullTime(p.PaidAt), p.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("penalty %d: %w", p.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *penaltyRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Penalty, error) {
	query := `SELECT p.id, p.rental_id, p.amount, p.description, p.is_paid, p.created_at, p.paid_at
	          FROM penalties p JOIN rentals r ON r.id = p.rental_id
	          WHERE r.user_id = $1 ORDER BY p.created_at DESC`
	return r.query(ctx, query, userID)
}

func (r *penaltyRepository) List(ctx context.Context, filter repository.PenaltyFilter) ([]domain.Penalty, error) {
	query := `SELECT ` + penaltyColumns + ` FROM penalties`
	where, args := penaltyFilterClause(filter)
	return r.query(ctx, query+where+` ORDER BY created_at DESC`, args...)
}

func (r *penaltyRepository) ListUnpaid(ctx context.Context) ([]domain.Penalty, error) {
	query := `SELECT ` + penaltyColumns + ` FROM penalties WHERE is_paid = false ORDER BY created_at`
	return r.query(ctx, query)
}

func (r *penaltyRepository) ListPaidSince(ctx context.Context, since time.Time) ([]domain.Penalty, error) {
	query := `SELECT ` + penaltyColumns + ` FROM penalties WHERE is_paid = true AND paid_at >= $1 ORDER BY paid_at`
	return r.query(ctx, query, since)
}

func (r *penaltyRepository) SumPaid(ctx context.Context, filter repository.PenaltyFilter) (int64, error) {
	paid := true
	filter.Paid = &paid
	where, args := penaltyFilterClause(filter)
	var sum int64
	query := `SELECT COALESCE(SUM(amount), 0) FROM penalties` + where
	err := r.run.QueryRowContext(ctx, query, args...).Scan(&sum)
	return sum, err
}

func (r *penaltyRepository) SumPaidBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var sum int64
	query := `SELECT COALESCE(SUM(amount), 0) FROM penalties WHERE is_paid = true AND paid_at >= $1 AND paid_at <= $2`
	err := r.run.QueryRowContext(ctx, query, from, to).Scan(&sum)
	return sum, err
}

func penaltyFilterClause(filter repository.PenaltyFilter) (string, []any) {
	var (
		where string
		args  []any
	)
	and := func(cond string) {
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}
	if filter.Paid != nil {
		args = append(args, *filter.Paid)
		and(fmt.Sprintf("is_paid = $%d", len(args)))
	}
	if filter.CreatedSince != nil {
		args = append(args, *filter.CreatedSince)
		and(fmt.Sprintf("created_at >= $%d", len(args)))
	}
	return where, args
}

func (r *penaltyRepository) query(ctx context.Context, query string, args ...any) ([]domain.Penalty, error) {
	rows, err := r.run.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var penalties []domain.Penalty
	for rows.Next() {
		var p domain.Penalty
		var paidAt sql.NullTime
		if err := rows.Scan(&p.ID, &p.RentalID, &p.Amount, &p.Description, &p.IsPaid, &p.CreatedAt, &paidAt); err != nil {
			return nil, err
		}
		p.PaidAt = timePtr(paidAt)
		penalties = append(penalties, p)
	}
	return penalties, rows.Err()
}
