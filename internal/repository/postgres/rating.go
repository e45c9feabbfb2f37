package postgres

import (
	"context"
	"database/sql"

	"cabbooking/internal/domain"
	"cabbooking/internal/repository"
)

// RatingRepository is a PostgreSQL implementation of repository.RatingRepository.
type RatingRepository struct {
	q Querier
}

// NewRatingRepository creates a new PostgreSQL rating repository.
func NewRatingRepository(db *sql.DB) *RatingRepository {
	return &RatingRepository{q: db}
}

// ListByRideID returns the active ratings left on a ride.
func (r *RatingRepository) ListByRideID(ctx context.Context, rideID string) ([]domain.Rating, error) {
	query := `
		SELECT id, ride_id, COALESCE(given_by, ''), COALESCE(given_to, ''), rating, COALESCE(comments, ''), deleted, created_at
		FROM ratings WHERE ride_id = $1 AND ` + activeOnly("") + `
		ORDER BY created_at
	`

	rows, err := r.q.QueryContext(ctx, query, rideID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []domain.Rating
	for rows.Next() {
		var rating domain.Rating
		if err := rows.Scan(
			&rating.ID,
			&rating.RideID,
			&rating.GivenBy,
			&rating.GivenTo,
			&rating.Value,
			&rating.Comments,
			&rating.Deleted,
			&rating.CreatedAt,
		); err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	return ratings, rows.Err()
}

var _ repository.RatingRepository = (*RatingRepository)(nil)
