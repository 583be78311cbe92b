package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"autorent-backend/internal/domain"
)

type carRepository struct {
	run dbtx
}

const carColumns = `id, brand, model, year, price_per_day, description, condition, status`

func (r *carRepository) Create(ctx context.Context, car *domain.Car) error {
	query := `INSERT INTO cars (brand, model, year, price_per_day, description, condition, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.run.QueryRowContext(ctx, query,
		car.Brand, car.Model, car.Year, car.PricePerDay, car.Description, car.Condition, car.Status,
	).Scan(&car.ID)
}

func (r *carRepository) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`
	return r.scanCar(r.run.QueryRowContext(ctx, query, id), id)
}

func (r *carRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1 FOR UPDATE`
	return r.scanCar(r.run.QueryRowContext(ctx, query, id), id)
}

func (r *carRepository) scanCar(row *sql.Row, id int64) (*domain.Car, error) {
	car := &domain.Car{}
	var description sql.NullString
	err := row.Scan(&car.ID, &car.Brand, &car.Model, &car.Year, &car.PricePerDay,
		&description, &car.Condition, &car.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("car %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	car.Description = description.String
	return car, nil
}

func (r *carRepository) Update(ctx context.Context, car *domain.Car) error {
	query := `UPDATE cars SET brand=$1, model=$2, year=$3, price_per_day=$4, description=$5, condition=$6, status=$7 WHERE id=$8`
	res, err := r.run.ExecContext(ctx, query,
		car.Brand, car.Model, car.Year, car.PricePerDay, car.Description, car.Condition, car.Status, car.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("car %d: %w", car.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *carRepository) List(ctx context.Context) ([]domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars ORDER BY id`
	return r.queryCars(ctx, query)
}

func (r *carRepository) ListByStatus(ctx context.Context, status domain.CarStatus) ([]domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE status = $1 ORDER BY id`
	return r.queryCars(ctx, query, status)
}

func (r *carRepository) queryCars(ctx context.Context, query string, args ...any) ([]domain.Car, error) {
	rows, err := r.run.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cars []domain.Car
	for rows.Next() {
		var car domain.Car
		var description sql.NullString
		if err := rows.Scan(&car.ID, &car.Brand, &car.Model, &car.Year, &car.PricePerDay,
			&description, &car.Condition, &car.Status); err != nil {
			return nil, err
		}
		car.Description = description.String
		cars = append(cars, car)
	}
	return cars, rows.Err()
}

func (r *carRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.run.QueryRowContext(ctx, `SELECT count(*) FROM cars`).Scan(&count)
	return count, err
}

func (r *carRepository) CountByStatus(ctx context.Context, status domain.CarStatus) (int64, error) {
	var count int64
	err := r.run.QueryRowContext(ctx, `SELECT count(*) FROM cars WHERE status = $1`, status).Scan(&count)
	return count, err
}
