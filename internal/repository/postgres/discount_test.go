package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"autorent-backend/internal/domain"
)

func TestDiscountRepository_GetByRate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := &discountRepository{run: db}
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, discount_rate FROM discounts WHERE discount_rate = \\$1").
			WithArgs(15).
			WillReturnRows(sqlmock.NewRows([]string{"id", "discount_rate"}).AddRow(3, 15))

		d, err := repo.GetByRate(ctx, 15)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), d.ID)
		assert.Equal(t, 15, d.DiscountRate)
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, discount_rate FROM discounts WHERE discount_rate = \\$1").
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows([]string{"id", "discount_rate"}))

		d, err := repo.GetByRate(ctx, 7)
		assert.Nil(t, d)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDiscountRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := &discountRepository{run: db}
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "discount_rate"}).
		AddRow(1, 5).
		AddRow(2, 10).
		AddRow(3, 15).
		AddRow(4, 20)

	mock.ExpectQuery("SELECT id, discount_rate FROM discounts ORDER BY discount_rate").
		WillReturnRows(rows)

	discounts, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, discounts, 4)
	assert.Equal(t, 20, discounts[3].DiscountRate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
