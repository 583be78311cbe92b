package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"autorent-backend/internal/domain"
)

var maintenanceTestColumns = []string{
	"id", "car_id", "maintenance_date", "description", "cost", "status", "priority", "completed_date",
}

func TestMaintenanceRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := &maintenanceRepository{run: db}
	ctx := context.Background()

	when := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	m := &domain.Maintenance{
		CarID:           4,
		MaintenanceDate: when,
		Description:     "Brake pad replacement",
		Cost:            0,
		Status:          domain.MaintenanceStatusPending,
		Priority:        domain.MaintenancePriorityHigh,
	}

	mock.ExpectQuery("INSERT INTO maintenance").
		WithArgs(int64(4), when, "Brake pad replacement", int64(0),
			domain.MaintenanceStatusPending, domain.MaintenancePriorityHigh).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	err = repo.Create(ctx, m)
	assert.NoError(t, err)
	assert.Equal(t, int64(11), m.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaintenanceRepository_GetByIDForUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := &maintenanceRepository{run: db}
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		when := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
		rows := sqlmock.NewRows(maintenanceTestColumns).
			AddRow(int64(11), int64(4), when, "Brake pad replacement", int64(0),
				domain.MaintenanceStatusInProgress, domain.MaintenancePriorityHigh, nil)

		mock.ExpectQuery("SELECT (.+) FROM maintenance WHERE id = \\$1 FOR UPDATE").
			WithArgs(int64(11)).
			WillReturnRows(rows)

		m, err := repo.GetByIDForUpdate(ctx, 11)
		assert.NoError(t, err)
		assert.Equal(t, domain.MaintenanceStatusInProgress, m.Status)
		assert.Nil(t, m.CompletedDate)
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM maintenance WHERE id = \\$1 FOR UPDATE").
			WithArgs(int64(77)).
			WillReturnRows(sqlmock.NewRows(maintenanceTestColumns))

		m, err := repo.GetByIDForUpdate(ctx, 77)
		assert.Nil(t, m)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaintenanceRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := &maintenanceRepository{run: db}
	ctx := context.Background()

	completed := time.Date(2026, 3, 12, 16, 0, 0, 0, time.UTC)
	m := &domain.Maintenance{
		ID:            11,
		Description:   "Brake pad replacement",
		Cost:          45000,
		Status:        domain.MaintenanceStatusCompleted,
		Priority:      domain.MaintenancePriorityHigh,
		CompletedDate: &completed,
	}

	mock.ExpectExec("UPDATE maintenance SET").
		WithArgs("Brake pad replacement", int64(45000), domain.MaintenanceStatusCompleted,
			domain.MaintenancePriorityHigh, completed, int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Update(ctx, m)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaintenanceRepository_ListCompletedSince(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := &maintenanceRepository{run: db}
	ctx := context.Background()

	since := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	completed := time.Date(2026, 2, 20, 11, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(maintenanceTestColumns).
		AddRow(int64(5), int64(2), completed.AddDate(0, 0, -1), "Oil change", int64(8000),
			domain.MaintenanceStatusCompleted, domain.MaintenancePriorityNormal, completed)

	mock.ExpectQuery("SELECT (.+) FROM maintenance WHERE status = \\$1 AND completed_date >= \\$2").
		WithArgs(domain.MaintenanceStatusCompleted, since).
		WillReturnRows(rows)

	items, err := repo.ListCompletedSince(ctx, since)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(8000), items[0].Cost)
	assert.Equal(t, completed, *items[0].CompletedDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaintenanceRepository_SumCostCompletedByCar(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := &maintenanceRepository{run: db}
	ctx := context.Background()

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(cost\\), 0\\) FROM maintenance WHERE car_id = \\$1 AND status = \\$2").
		WithArgs(int64(4), domain.MaintenanceStatusCompleted).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(53000))

	sum, err := repo.SumCostCompletedByCar(ctx, 4)
	assert.NoError(t, err)
	assert.Equal(t, int64(53000), sum)
	assert.NoError(t, mock.ExpectationsWereMet())
}
