package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"autorent-backend/internal/domain"
)

type userRepository struct {
	run dbtx
}

const userColumns = `id, username, email, full_name, phone, role, discount_id`

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u := &domain.User{}
	var phone sql.NullString
	var discountID sql.NullInt64
	err := r.run.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Username, &u.Email, &u.FullName, &phone, &u.Role, &discountID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	u.Phone = phone.String
	u.DiscountID = int64Ptr(discountID)
	return u, nil
}

func (r *userRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY id`
	rows, err := r.run.QueryContext(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		var phone sql.NullString
		var discountID sql.NullInt64
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &phone, &u.Role, &discountID); err != nil {
			return nil, err
		}
		u.Phone = phone.String
		u.DiscountID = int64Ptr(discountID)
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) UpdateDiscount(ctx context.Context, userID int64, discountID *int64) error {
	query := `UPDATE users SET discount_id = $1 WHERE id = $2`
	res, err := r.run.ExecContext(ctx, query, nullInt64(discountID), userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
	}
	return nil
}
