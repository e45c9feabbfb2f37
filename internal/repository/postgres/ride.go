package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"cabbooking/internal/domain"
	"cabbooking/internal/repository"
)

const rideColumns = `r.id, r.user_id, r.driver_id, r.vehicle_id, r.pickup_location_id, r.drop_location_id, r.status, r.fare, r.distance_km, r.start_time, r.end_time, r.deleted, r.created_at`

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
type RideRepository struct {
	q Querier
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{q: db}
}

// NewRideRepositoryWithTx creates a ride repository using a transaction.
func NewRideRepositoryWithTx(tx *sql.Tx) *RideRepository {
	return &RideRepository{q: tx}
}

// Create persists a new ride and links its discounts.
// Callers wanting atomicity use a transaction-scoped repository.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	query := `
		INSERT INTO rides (id, user_id, driver_id, vehicle_id, pickup_location_id, drop_location_id, status, fare, distance_km, start_time, end_time, deleted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.q.ExecContext(ctx, query,
		ride.ID,
		ride.UserID,
		nullString(ride.DriverID),
		nullString(ride.VehicleID),
		nullString(ride.PickupLocationID),
		nullString(ride.DropLocationID),
		ride.Status,
		nullFloat(ride.Fare),
		nullFloat(ride.DistanceKm),
		nullTime(ride.StartTime),
		nullTime(ride.EndTime),
		ride.Deleted,
		ride.CreatedAt,
	)
	if err != nil {
		return err
	}

	for _, discount := range ride.Discounts {
		_, err := r.q.ExecContext(ctx,
			`INSERT INTO ride_discounts (ride_id, discount_id) VALUES ($1, $2)`,
			ride.ID, discount.ID,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves an active ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides r WHERE r.id = $1 AND ` + activeOnly("r")

	ride, err := scanRide(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if err := r.attachDiscounts(ctx, []*domain.Ride{ride}); err != nil {
		return nil, err
	}
	return ride, nil
}

// ListCreatedBetween returns rides created within [start, end).
func (r *RideRepository) ListCreatedBetween(ctx context.Context, start, end time.Time) ([]*domain.Ride, error) {
	query := `
		SELECT ` + rideColumns + `
		FROM rides r
		WHERE ` + activeOnly("r") + ` AND r.created_at >= $1 AND r.created_at < $2
		ORDER BY r.created_at, r.id
	`
	return r.list(ctx, query, start, end)
}

// ListByStatusEndedBetween returns rides in status whose end time is within [start, end).
func (r *RideRepository) ListByStatusEndedBetween(ctx context.Context, status domain.RideStatus, start, end time.Time) ([]*domain.Ride, error) {
	query := `
		SELECT ` + rideColumns + `
		FROM rides r
		WHERE ` + activeOnly("r") + ` AND r.status = $1 AND r.end_time >= $2 AND r.end_time < $3
		ORDER BY r.end_time, r.id
	`
	return r.list(ctx, query, status, start, end)
}

// ListByStatusesCreatedBetween returns rides in any of statuses created within [start, end).
func (r *RideRepository) ListByStatusesCreatedBetween(ctx context.Context, statuses []domain.RideStatus, start, end time.Time) ([]*domain.Ride, error) {
	if len(statuses) == 0 {
		return nil, nil
	}

	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}

	query := `
		SELECT ` + rideColumns + `
		FROM rides r
		WHERE ` + activeOnly("r") + ` AND r.status = ANY($1) AND r.created_at >= $2 AND r.created_at < $3
		ORDER BY r.created_at, r.id
	`
	return r.list(ctx, query, pq.Array(values), start, end)
}

// ListHighValueCreatedBetween returns rides created within [start, end) that are long or expensive.
func (r *RideRepository) ListHighValueCreatedBetween(ctx context.Context, start, end time.Time, minDistanceKm, minFare float64) ([]*domain.Ride, error) {
	query := `
		SELECT ` + rideColumns + `
		FROM rides r
		WHERE ` + activeOnly("r") + ` AND r.created_at >= $1 AND r.created_at < $2
		  AND ((r.distance_km IS NOT NULL AND r.distance_km > $3)
		    OR (r.fare IS NOT NULL AND r.fare > $4))
		ORDER BY r.created_at, r.id
	`
	return r.list(ctx, query, start, end, minDistanceKm, minFare)
}

// ListByDiscountCode returns distinct rides linked to a discount with the given code.
// The discount's validity window is not consulted.
func (r *RideRepository) ListByDiscountCode(ctx context.Context, code string) ([]*domain.Ride, error) {
	query := `
		SELECT DISTINCT ` + rideColumns + `
		FROM rides r
		JOIN ride_discounts rd ON rd.ride_id = r.id
		JOIN discounts d ON d.id = rd.discount_id
		WHERE ` + activeOnly("r") + ` AND ` + activeOnly("d") + ` AND d.code = $1
		ORDER BY r.created_at, r.id
	`
	return r.list(ctx, query, code)
}

func (r *RideRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Ride, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []*domain.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Release the connection before the follow-up query when running inside a transaction.
	rows.Close()

	if err := r.attachDiscounts(ctx, rides); err != nil {
		return nil, err
	}
	return rides, nil
}

// attachDiscounts loads the active discounts of all rides with a single query.
func (r *RideRepository) attachDiscounts(ctx context.Context, rides []*domain.Ride) error {
	if len(rides) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Ride, len(rides))
	ids := make([]string, 0, len(rides))
	for _, ride := range rides {
		byID[ride.ID] = ride
		ids = append(ids, ride.ID)
	}

	query := `
		SELECT rd.ride_id, ` + discountColumns + `
		FROM ride_discounts rd
		JOIN discounts d ON d.id = rd.discount_id
		WHERE rd.ride_id = ANY($1) AND ` + activeOnly("d") + `
		ORDER BY d.code
	`

	rows, err := r.q.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var rideID string
		var discount domain.Discount
		var validFrom, validTo sql.NullTime
		if err := rows.Scan(
			&rideID,
			&discount.ID,
			&discount.Code,
			&discount.Description,
			&discount.Percentage,
			&validFrom,
			&validTo,
			&discount.Deleted,
			&discount.CreatedAt,
		); err != nil {
			return err
		}
		discount.ValidFrom = timePtr(validFrom)
		discount.ValidTo = timePtr(validTo)

		if ride, ok := byID[rideID]; ok {
			ride.Discounts = append(ride.Discounts, discount)
		}
	}
	return rows.Err()
}

func scanRide(row rowScanner) (*domain.Ride, error) {
	var ride domain.Ride
	var driverID, vehicleID, pickupID, dropID sql.NullString
	var fare, distance sql.NullFloat64
	var startTime, endTime sql.NullTime

	if err := row.Scan(
		&ride.ID,
		&ride.UserID,
		&driverID,
		&vehicleID,
		&pickupID,
		&dropID,
		&ride.Status,
		&fare,
		&distance,
		&startTime,
		&endTime,
		&ride.Deleted,
		&ride.CreatedAt,
	); err != nil {
		return nil, err
	}

	ride.DriverID = driverID.String
	ride.VehicleID = vehicleID.String
	ride.PickupLocationID = pickupID.String
	ride.DropLocationID = dropID.String
	ride.Fare = floatPtr(fare)
	ride.DistanceKm = floatPtr(distance)
	ride.StartTime = timePtr(startTime)
	ride.EndTime = timePtr(endTime)

	return &ride, nil
}

// Ensure RideRepository implements repository.RideRepository.
var _ repository.RideRepository = (*RideRepository)(nil)
