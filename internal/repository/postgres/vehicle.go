package postgres

import (
	"context"
	"database/sql"
	"errors"

	"cabbooking/internal/domain"
	"cabbooking/internal/repository"
)

// VehicleRepository is a PostgreSQL implementation of repository.VehicleRepository.
type VehicleRepository struct {
	q Querier
}

// NewVehicleRepository creates a new PostgreSQL vehicle repository.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{q: db}
}

// NewVehicleRepositoryWithTx creates a vehicle repository using a transaction.
func NewVehicleRepositoryWithTx(tx *sql.Tx) *VehicleRepository {
	return &VehicleRepository{q: tx}
}

// Create adds a new vehicle.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, driver_id, vehicle_number, model, type, capacity, deleted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.q.ExecContext(ctx, query,
		vehicle.ID,
		nullString(vehicle.DriverID),
		vehicle.VehicleNumber,
		nullString(vehicle.Model),
		vehicle.Type,
		vehicle.Capacity,
		vehicle.Deleted,
		vehicle.CreatedAt,
	)
	return translateWriteError(err)
}

// GetByID retrieves an active vehicle by ID.
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `
		SELECT id, driver_id, vehicle_number, COALESCE(model, ''), type, COALESCE(capacity, 0), deleted, created_at
		FROM vehicles WHERE id = $1 AND ` + activeOnly("")

	var vehicle domain.Vehicle
	var driverID sql.NullString
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&vehicle.ID,
		&driverID,
		&vehicle.VehicleNumber,
		&vehicle.Model,
		&vehicle.Type,
		&vehicle.Capacity,
		&vehicle.Deleted,
		&vehicle.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	vehicle.DriverID = driverID.String

	return &vehicle, nil
}

var _ repository.VehicleRepository = (*VehicleRepository)(nil)
