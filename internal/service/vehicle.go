package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"cabbooking/internal/domain"
	"cabbooking/internal/repository"
)

// VehicleService handles vehicle registration.
type VehicleService struct {
	vehicleRepo repository.VehicleRepository
	driverRepo  repository.DriverRepository
	now         func() time.Time
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(vehicleRepo repository.VehicleRepository, driverRepo repository.DriverRepository) *VehicleService {
	return &VehicleService{vehicleRepo: vehicleRepo, driverRepo: driverRepo, now: time.Now}
}

// RegisterVehicleRequest contains the parameters for registering a vehicle.
type RegisterVehicleRequest struct {
	DriverID      string // optional owner
	VehicleNumber string
	Model         string
	Type          domain.VehicleType
	Capacity      int
}

// Register creates a vehicle. When an owner is given it must be an active driver.
func (s *VehicleService) Register(ctx context.Context, req RegisterVehicleRequest) (*domain.Vehicle, error) {
	if req.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	if req.DriverID != "" {
		if _, err := s.driverRepo.GetByID(ctx, req.DriverID); err != nil {
			return nil, notFoundAs(err, ErrDriverNotFound)
		}
	}

	vehicle := &domain.Vehicle{
		ID:            uuid.New().String(),
		DriverID:      req.DriverID,
		VehicleNumber: req.VehicleNumber,
		Model:         req.Model,
		Type:          req.Type,
		Capacity:      req.Capacity,
		CreatedAt:     s.now(),
	}
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// Get retrieves an active vehicle.
func (s *VehicleService) Get(ctx context.Context, id string) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrVehicleNotFound)
	}
	return vehicle, nil
}
