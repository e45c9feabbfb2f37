package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"cabbooking/internal/domain"
	"cabbooking/internal/repository"
)

// RideService handles the ride lifecycle.
type RideService struct {
	transactor   repository.Transactor
	rideRepo     repository.RideRepository
	locationRepo repository.LocationRepository
	paymentRepo  repository.PaymentRepository
	ratingRepo   repository.RatingRepository
	resolver     *LocationResolver
	discounts    *DiscountService
	loc          *time.Location
	now          func() time.Time
	logger       logrus.FieldLogger
}

// NewRideService creates a new RideService.
func NewRideService(
	transactor repository.Transactor,
	rideRepo repository.RideRepository,
	locationRepo repository.LocationRepository,
	paymentRepo repository.PaymentRepository,
	ratingRepo repository.RatingRepository,
	discounts *DiscountService,
	loc *time.Location,
	logger logrus.FieldLogger,
) *RideService {
	return &RideService{
		transactor:   transactor,
		rideRepo:     rideRepo,
		locationRepo: locationRepo,
		paymentRepo:  paymentRepo,
		ratingRepo:   ratingRepo,
		resolver:     NewLocationResolver(locationRepo),
		discounts:    discounts,
		loc:          loc,
		now:          time.Now,
		logger:       logger,
	}
}

// CreateRideRequest contains the parameters for creating a ride.
type CreateRideRequest struct {
	UserID        string
	DriverID      string // optional
	VehicleID     string // optional
	Pickup        LocationSpec
	Drop          LocationSpec
	Fare          *float64
	DistanceKm    *float64
	StartTime     *time.Time
	EndTime       *time.Time
	DiscountCodes []string
}

// CreateRide books a new ride in REQUESTED state. Every lookup and write
// happens in one transaction; on any failure nothing is persisted.
func (s *RideService) CreateRide(ctx context.Context, req CreateRideRequest) (*domain.Ride, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}

	var ride *domain.Ride
	var dropped []string

	err := s.transactor.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		if _, err := repos.Users.GetByID(ctx, req.UserID); err != nil {
			return notFoundAs(err, ErrUserNotFound)
		}

		if req.DriverID != "" {
			if _, err := repos.Drivers.GetByID(ctx, req.DriverID); err != nil {
				return notFoundAs(err, ErrDriverNotFound)
			}
		}

		if req.VehicleID != "" {
			if _, err := repos.Vehicles.GetByID(ctx, req.VehicleID); err != nil {
				return notFoundAs(err, ErrVehicleNotFound)
			}
		}

		resolver := s.resolver.WithRepository(repos.Locations)
		pickup, err := resolver.Resolve(ctx, req.Pickup)
		if err != nil {
			return err
		}
		drop, err := resolver.Resolve(ctx, req.Drop)
		if err != nil {
			return err
		}

		createdAt := s.now()

		matched, err := s.discounts.WithRepository(repos.Discounts).DiscountsByCodes(ctx, req.DiscountCodes)
		if err != nil {
			return err
		}
		attached := make([]domain.Discount, 0, len(matched))
		for _, d := range matched {
			if d.ActiveOn(createdAt.In(s.loc)) {
				attached = append(attached, d)
			} else {
				dropped = append(dropped, d.Code)
			}
		}

		ride = &domain.Ride{
			ID:               uuid.New().String(),
			UserID:           req.UserID,
			DriverID:         req.DriverID,
			VehicleID:        req.VehicleID,
			PickupLocationID: pickup.ID,
			DropLocationID:   drop.ID,
			Status:           domain.RideStatusRequested,
			Fare:             roundMoney(req.Fare),
			DistanceKm:       roundMoney(req.DistanceKm),
			StartTime:        req.StartTime,
			EndTime:          req.EndTime,
			Discounts:        attached,
			CreatedAt:        createdAt,
		}

		return repos.Rides.Create(ctx, ride)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"ride_id":   ride.ID,
		"user_id":   ride.UserID,
		"driver_id": ride.DriverID,
		"discounts": ride.DiscountCodes(),
		"inactive":  dropped,
	}).Info("ride created")

	return ride, nil
}

func (s *RideService) validateCreateRequest(req CreateRideRequest) error {
	if req.UserID == "" {
		return ErrInvalidRiderID
	}
	if req.Fare != nil && *req.Fare <= 0 {
		return ErrInvalidFare
	}
	if req.DistanceKm != nil && *req.DistanceKm <= 0 {
		return ErrInvalidDistance
	}
	for _, spec := range []LocationSpec{req.Pickup, req.Drop} {
		if spec.ID != "" {
			continue
		}
		if err := validateCoordinates(spec); err != nil {
			return err
		}
	}
	return nil
}

// GetRide retrieves an active ride with its discounts.
func (s *RideService) GetRide(ctx context.Context, rideID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, notFoundAs(err, ErrRideNotFound)
	}
	return ride, nil
}

// GetRideDetails retrieves a ride together with its endpoints, payment and ratings.
// Endpoints that have since been soft-deleted are left nil.
func (s *RideService) GetRideDetails(ctx context.Context, rideID string) (*domain.RideDetails, error) {
	ride, err := s.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}

	details := &domain.RideDetails{Ride: ride}

	if details.Pickup, err = s.optionalLocation(ctx, ride.PickupLocationID); err != nil {
		return nil, err
	}
	if details.Drop, err = s.optionalLocation(ctx, ride.DropLocationID); err != nil {
		return nil, err
	}

	if details.Payment, err = s.paymentRepo.GetByRideID(ctx, ride.ID); err != nil {
		return nil, err
	}

	if details.Ratings, err = s.ratingRepo.ListByRideID(ctx, ride.ID); err != nil {
		return nil, err
	}

	return details, nil
}

func (s *RideService) optionalLocation(ctx context.Context, id string) (*domain.Location, error) {
	location, err := s.locationRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return location, err
}

// roundMoney rounds to the two decimals the store keeps for fare and distance.
func roundMoney(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := math.Round(*v*100) / 100
	return &r
}
