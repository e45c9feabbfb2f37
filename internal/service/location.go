package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"cabbooking/internal/domain"
	"cabbooking/internal/repository"
)

// LocationSpec identifies a ride endpoint either by an existing location
// ID or by a coordinate pair. ID wins when both are given.
type LocationSpec struct {
	ID        string
	Latitude  *float64
	Longitude *float64
}

// LocationResolver turns a LocationSpec into a stored Location.
type LocationResolver struct {
	locationRepo repository.LocationRepository
	now          func() time.Time
}

// NewLocationResolver creates a new LocationResolver.
func NewLocationResolver(locationRepo repository.LocationRepository) *LocationResolver {
	return &LocationResolver{
		locationRepo: locationRepo,
		now:          time.Now,
	}
}

// WithRepository returns a resolver that reads and writes through repo,
// typically a transaction-scoped repository.
func (r *LocationResolver) WithRepository(repo repository.LocationRepository) *LocationResolver {
	return &LocationResolver{locationRepo: repo, now: r.now}
}

// Resolve loads the referenced location or persists a new one from coordinates.
func (r *LocationResolver) Resolve(ctx context.Context, spec LocationSpec) (*domain.Location, error) {
	if spec.ID != "" {
		location, err := r.locationRepo.GetByID(ctx, spec.ID)
		if err != nil {
			return nil, notFoundAs(err, ErrLocationNotFound)
		}
		return location, nil
	}

	if err := validateCoordinates(spec); err != nil {
		return nil, err
	}

	location := &domain.Location{
		ID:         uuid.New().String(),
		Latitude:   domain.RoundCoordinate(*spec.Latitude),
		Longitude:  domain.RoundCoordinate(*spec.Longitude),
		RecordedAt: r.now(),
	}
	if err := r.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

func validateCoordinates(spec LocationSpec) error {
	if spec.Latitude == nil || spec.Longitude == nil {
		return ErrLocationCoordinatesMissing
	}
	if !isValidLatitude(*spec.Latitude) || !isValidLongitude(*spec.Longitude) {
		return ErrInvalidCoordinates
	}
	return nil
}

func isValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func isValidLongitude(lng float64) bool {
	return lng >= -180 && lng <= 180
}
