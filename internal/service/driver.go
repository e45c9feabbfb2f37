package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"cabbooking/internal/domain"
	"cabbooking/internal/repository"
)

// DriverService handles driver operations.
type DriverService struct {
	driverRepo repository.DriverRepository
	now        func() time.Time
}

// NewDriverService creates a new DriverService.
func NewDriverService(driverRepo repository.DriverRepository) *DriverService {
	return &DriverService{driverRepo: driverRepo, now: time.Now}
}

// RegisterDriverRequest contains the parameters for registering a driver.
type RegisterDriverRequest struct {
	Name          string
	Phone         string
	Email         string
	LicenseNumber string
}

// Register creates an OFFLINE driver with no rating.
func (s *DriverService) Register(ctx context.Context, req RegisterDriverRequest) (*domain.Driver, error) {
	driver := &domain.Driver{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		LicenseNumber: req.LicenseNumber,
		Status:        domain.DriverStatusOffline,
		CreatedAt:     s.now(),
	}
	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// Get retrieves an active driver.
func (s *DriverService) Get(ctx context.Context, id string) (*domain.Driver, error) {
	driver, err := s.driverRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrDriverNotFound)
	}
	return driver, nil
}
