package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"autorent-backend/internal/repository"

	_ "github.com/lib/pq"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx, so every repository works
// unchanged inside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	tx *sql.Tx

	cars        *carRepository
	rentals     *rentalRepository
	maintenance *maintenanceRepository
	penalties   *penaltyRepository
	users       *userRepository
	discounts   *discountRepository
}

func NewStore(db *sql.DB) *Store {
	return newStore(db, nil)
}

func newStore(db *sql.DB, tx *sql.Tx) *Store {
	var run dbtx = db
	if tx != nil {
		run = tx
	}
	return &Store{
		db:          db,
		tx:          tx,
		cars:        &carRepository{run: run},
		rentals:     &rentalRepository{run: run},
		maintenance: &maintenanceRepository{run: run},
		penalties:   &penaltyRepository{run: run},
		users:       &userRepository{run: run},
		discounts:   &discountRepository{run: run},
	}
}

func (s *Store) Cars() repository.CarRepository                { return s.cars }
func (s *Store) Rentals() repository.RentalRepository          { return s.rentals }
func (s *Store) Maintenance() repository.MaintenanceRepository { return s.maintenance }
func (s *Store) Penalties() repository.PenaltyRepository       { return s.penalties }
func (s *Store) Users() repository.UserRepository              { return s.users }
func (s *Store) Discounts() repository.DiscountRepository      { return s.discounts }

// WithinTx executes fn against a transaction-bound store view. A nested call
// joins the transaction already in progress.
func (s *Store) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.tx != nil {
		return fn(s)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(newStore(s.db, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
