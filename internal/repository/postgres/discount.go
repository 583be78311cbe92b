package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"autorent-backend/internal/domain"
)

type discountRepository struct {
	run dbtx
}

func (r *discountRepository) GetByRate(ctx context.Context, rate int) (*domain.Discount, error) {
	d := &domain.Discount{}
	query := `SELECT id, discount_rate FROM discounts WHERE discount_rate = $1`
	err := r.run.QueryRowContext(ctx, query, rate).Scan(&d.ID, &d.DiscountRate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("discount rate %d%%: %w", rate, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *discountRepository) List(ctx context.Context) ([]domain.Discount, error) {
	rows, err := r.run.QueryContext(ctx, `SELECT id, discount_rate FROM discounts ORDER BY discount_rate`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var discounts []domain.Discount
	for rows.Next() {
		var d domain.Discount
		if err := rows.Scan(&d.ID, &d.DiscountRate); err != nil {
			return nil, err
		}
		discounts = append(discounts, d)
	}
	return discounts, rows.Err()
}
