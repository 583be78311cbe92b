package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"autorent-backend/internal/domain"
)

type maintenanceRepository struct {
	run dbtx
}

const maintenanceColumns = `id, car_id, maintenance_date, description, cost, status, priority, completed_date`

func (r *maintenanceRepository) Create(ctx context.Context, m *domain.Maintenance) error {
	query := `INSERT INTO maintenance (car_id, maintenance_date, description, cost, status, priority)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.run.QueryRowContext(ctx, query,
		m.CarID, m.MaintenanceDate, m.Description, m.Cost, m.Status, m.Priority,
	).Scan(&m.ID)
}

func (r *maintenanceRepository) GetByID(ctx context.Context, id int64) (*domain.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance WHERE id = $1`
	return r.scanOne(r.run.QueryRowContext(ctx, query, id), id)
}

func (r *maintenanceRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.run.QueryRowContext(ctx, query, id), id)
}

func (r *maintenanceRepository) scanOne(row *sql.Row, id int64) (*domain.Maintenance, error) {
	m := &domain.Maintenance{}
	var completed sql.NullTime
	err := row.Scan(&m.ID, &m.CarID, &m.MaintenanceDate, &m.Description, &m.Cost,
		&m.Status, &m.Priority, &completed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("maintenance %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	m.CompletedDate = timePtr(completed)
	return m, nil
}

func (r *maintenanceRepository) Update(ctx context.Context, m *domain.Maintenance) error {
	query := `UPDATE maintenance SET description=$1, cost=$2, status=$3, priority=$4, completed_date=$5 WHERE id=$6`
	res, err := r.run.ExecContext(ctx, query,
		m.Description, m.Cost, m.Status, m.Priority, nullTime(m.CompletedDate), m.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("maintenance %d: %w", m.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *maintenanceRepository) ListActive(ctx context.Context) ([]domain.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance WHERE status IN ($1, $2) ORDER BY maintenance_date`
	return r.query(ctx, query, domain.MaintenanceStatusPending, domain.MaintenanceStatusInProgress)
}

func (r *maintenanceRepository) ListByCar(ctx context.Context, carID int64) ([]domain.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance WHERE car_id = $1 ORDER BY maintenance_date DESC`
	return r.query(ctx, query, carID)
}

func (r *maintenanceRepository) ListCompletedSince(ctx context.Context, since time.Time) ([]domain.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance WHERE status = $1 AND completed_date >= $2 ORDER BY completed_date`
	return r.query(ctx, query, domain.MaintenanceStatusCompleted, since)
}

func (r *maintenanceRepository) SumCostCompletedByCar(ctx context.Context, carID int64) (int64, error) {
	var sum int64
	query := `SELECT COALESCE(SUM(cost), 0) FROM maintenance WHERE car_id = $1 AND status = $2`
	err := r.run.QueryRowContext(ctx, query, carID, domain.MaintenanceStatusCompleted).Scan(&sum)
	return sum, err
}

func (r *maintenanceRepository) SumCostCompleted(ctx context.Context) (int64, error) {
	var sum int64
	query := `SELECT COALESCE(SUM(cost), 0) FROM maintenance WHERE status = $1`
	err := r.run.QueryRowContext(ctx, query, domain.MaintenanceStatusCompleted).Scan(&sum)
	return sum, err
}

func (r *maintenanceRepository) SumCostCompletedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var sum int64
	query := `SELECT COALESCE(SUM(cost), 0) FROM maintenance WHERE status = $1 AND completed_date >= $2 AND completed_date <= $3`
	err := r.run.QueryRowContext(ctx, query, domain.MaintenanceStatusCompleted, from, to).Scan(&sum)
	return sum, err
}

func (r *maintenanceRepository) query(ctx context.Context, query string, args ...any) ([]domain.Maintenance, error) {
	rows, err := r.run.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Maintenance
	for rows.Next() {
		var m domain.Maintenance
		var completed sql.NullTime
		if err := rows.Scan(&m.ID, &m.CarID, &m.MaintenanceDate, &m.Description, &m.Cost,
			&m.Status, &m.Priority, &completed); err != nil {
			return nil, err
		}
		m.CompletedDate = timePtr(completed)
		items = append(items, m)
	}
	return items, rows.Err()
}
