package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"autorent-backend/internal/domain"
)

var rentalTestColumns = []string{
	"id", "reference", "car_id", "user_id", "start_date", "end_date", "total_price",
	"applied_discount", "personal_info", "status", "created_at", "approved_by",
	"approved_at", "return_date", "return_condition", "return_approved_by", "rejection_reason",
}

func TestRentalRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	store := NewStore(db)
	ctx := context.Background()

	rental := &domain.Rental{
		Reference:  "ref-1",
		CarID:      2,
		UserID:     3,
		StartDate:  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		TotalPrice: 20000,
		Status:     domain.RentalStatusPending,
		CreatedAt:  time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC),
	}

	mock.ExpectQuery("INSERT INTO rentals").
		WithArgs(rental.Reference, rental.CarID, rental.UserID, rental.StartDate, rental.EndDate,
			rental.TotalPrice, rental.AppliedDiscount, sqlmock.AnyArg(), rental.Status, rental.CreatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	err = store.Rentals().Create(ctx, rental)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), rental.ID)
}

func TestRentalRepository_GetByID_LegacyReturnDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	store := NewStore(db)
	ctx := context.Background()
	created := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	row := func(id int64, returnDate any) *sqlmock.Rows {
		return sqlmock.NewRows(rentalTestColumns).
			AddRow(id, "ref", 2, 3, created, created.AddDate(0, 0, 2), 20000, 0,
				nil, "completed", created, nil, nil, returnDate, nil, nil, nil)
	}

	t.Run("Legacy Space Separated Format", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id = \\$1").
			WithArgs(int64(1)).
			WillReturnRows(row(1, "2026-03-11 15:04:05"))

		rental, err := store.Rentals().GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.NotNil(t, rental.ReturnDate)
		assert.Equal(t, 2026, rental.ReturnDate.Year())
	})

	t.Run("Date Only Format", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id = \\$1").
			WithArgs(int64(2)).
			WillReturnRows(row(2, "2026-03-11"))

		rental, err := store.Rentals().GetByID(ctx, 2)
		assert.NoError(t, err)
		assert.NotNil(t, rental.ReturnDate)
	})

	t.Run("Unparseable Value Treated As Absent", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id = \\$1").
			WithArgs(int64(3)).
			WillReturnRows(row(3, "not-a-date"))

		rental, err := store.Rentals().GetByID(ctx, 3)
		assert.NoError(t, err)
		assert.Nil(t, rental.ReturnDate)
	})
}

func TestRentalRepository_Update_WritesRFC3339ReturnDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	store := NewStore(db)
	ctx := context.Background()

	returned := time.Date(2026, 3, 20, 18, 30, 0, 0, time.UTC)
	approver := int64(9)
	rental := &domain.Rental{
		ID:               7,
		Status:           domain.RentalStatusCompleted,
		ReturnDate:       &returned,
		ReturnCondition:  "good",
		ReturnApprovedBy: &approver,
	}

	mock.ExpectExec("UPDATE rentals SET").
		WithArgs(rental.Status, sqlmock.AnyArg(), sqlmock.AnyArg(), "2026-03-20T18:30:00Z",
			rental.ReturnCondition, sqlmock.AnyArg(), rental.RejectionReason, rental.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = store.Rentals().Update(ctx, rental)
	assert.NoError(t, err)
}

func TestRentalRepository_ListCompletedSince_FiltersAfterNormalization(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	store := NewStore(db)
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(rentalTestColumns).
		AddRow(1, "a", 2, 3, created, created, 100, 0, nil, "completed", created, nil, nil, "2026-03-10T10:00:00Z", nil, nil, nil).
		AddRow(2, "b", 2, 3, created, created, 100, 0, nil, "completed", created, nil, nil, "2026-02-01 08:00:00", nil, nil, nil).
		AddRow(3, "c", 2, 3, created, created, 100, 0, nil, "completed", created, nil, nil, "garbage", nil, nil, nil)

	mock.ExpectQuery("SELECT (.+) FROM rentals WHERE status = \\$1").
		WithArgs(domain.RentalStatusCompleted).
		WillReturnRows(rows)

	since := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rentals, err := store.Rentals().ListCompletedSince(ctx, since)
	assert.NoError(t, err)
	// Only the March return qualifies; the February one is too old and the
	// unparseable one is excluded.
	assert.Len(t, rentals, 1)
	assert.Equal(t, int64(1), rentals[0].ID)
}
