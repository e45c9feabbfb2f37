package postgres

import (
	"context"
	"database/sql"
	"errors"

	"cabbooking/internal/domain"
	"cabbooking/internal/repository"
)

// DriverRepository is a PostgreSQL implementation of repository.DriverRepository.
type DriverRepository struct {
	q Querier
}

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{q: db}
}

// NewDriverRepositoryWithTx creates a driver repository using a transaction.
func NewDriverRepositoryWithTx(tx *sql.Tx) *DriverRepository {
	return &DriverRepository{q: tx}
}

// Create adds a new driver.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	query := `
		INSERT INTO drivers (id, name, phone, email, license_number, rating, status, deleted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.q.ExecContext(ctx, query,
		driver.ID,
		driver.Name,
		driver.Phone,
		nullString(driver.Email),
		driver.LicenseNumber,
		driver.Rating,
		driver.Status,
		driver.Deleted,
		driver.CreatedAt,
	)
	return translateWriteError(err)
}

// GetByID retrieves an active driver by ID.
func (r *DriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	query := `
		SELECT id, name, phone, COALESCE(email, ''), license_number, COALESCE(rating, 0), status, deleted, created_at
		FROM drivers WHERE id = $1 AND ` + activeOnly("")

	var driver domain.Driver
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&driver.ID,
		&driver.Name,
		&driver.Phone,
		&driver.Email,
		&driver.LicenseNumber,
		&driver.Rating,
		&driver.Status,
		&driver.Deleted,
		&driver.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &driver, nil
}

var _ repository.DriverRepository = (*DriverRepository)(nil)
