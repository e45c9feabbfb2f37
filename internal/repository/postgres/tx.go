package postgres

import (
	"context"
	"database/sql"

	"cabbooking/internal/repository"
)

// Transactor is a PostgreSQL implementation of repository.Transactor.
type Transactor struct {
	db *sql.DB
}

// NewTransactor creates a new Transactor.
func NewTransactor(db *sql.DB) *Transactor {
	return &Transactor{db: db}
}

// WithinTx runs fn inside a database transaction with transaction-scoped repositories.
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) (err error) {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	repos := repository.TxRepositories{
		Users:     NewUserRepositoryWithTx(tx),
		Drivers:   NewDriverRepositoryWithTx(tx),
		Vehicles:  NewVehicleRepositoryWithTx(tx),
		Locations: NewLocationRepositoryWithTx(tx),
		Discounts: NewDiscountRepositoryWithTx(tx),
		Rides:     NewRideRepositoryWithTx(tx),
	}

	if err = fn(ctx, repos); err != nil {
		return err
	}

	err = tx.Commit()
	return err
}

var _ repository.Transactor = (*Transactor)(nil)
