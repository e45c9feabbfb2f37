package postgres

import (
	"context"
	"database/sql"
	"errors"

	"cabbooking/internal/domain"
	"cabbooking/internal/repository"
)

// LocationRepository is a PostgreSQL implementation of repository.LocationRepository.
type LocationRepository struct {
	q Querier
}

// NewLocationRepository creates a new PostgreSQL location repository.
func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{q: db}
}

// NewLocationRepositoryWithTx creates a location repository using a transaction.
func NewLocationRepositoryWithTx(tx *sql.Tx) *LocationRepository {
	return &LocationRepository{q: tx}
}

// Create persists a new location.
func (r *LocationRepository) Create(ctx context.Context, location *domain.Location) error {
	query := `
		INSERT INTO locations (id, latitude, longitude, recorded_at, deleted)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.q.ExecContext(ctx, query,
		location.ID,
		location.Latitude,
		location.Longitude,
		location.RecordedAt,
		location.Deleted,
	)
	return err
}

// GetByID retrieves an active location by ID.
func (r *LocationRepository) GetByID(ctx context.Context, id string) (*domain.Location, error) {
	query := `
		SELECT id, latitude, longitude, recorded_at, deleted
		FROM locations WHERE id = $1 AND ` + activeOnly("")

	var location domain.Location
	var recordedAt sql.NullTime
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&location.ID,
		&location.Latitude,
		&location.Longitude,
		&recordedAt,
		&location.Deleted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	location.RecordedAt = recordedAt.Time

	return &location, nil
}

var _ repository.LocationRepository = (*LocationRepository)(nil)
