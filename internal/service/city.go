package service

import (
	"cabbooking/internal/config"
	"cabbooking/internal/domain"
)

// CityService exposes the operating city profile.
type CityService struct {
	profile domain.CityProfile
}

// NewCityService creates a new CityService from configuration.
func NewCityService(cfg config.CityConfig) *CityService {
	return &CityService{profile: domain.CityProfile{
		Name:         cfg.Name,
		State:        cfg.State,
		Country:      cfg.Country,
		Timezone:     cfg.Timezone,
		SupportEmail: cfg.SupportEmail,
	}}
}

// Profile returns the city profile.
func (s *CityService) Profile() domain.CityProfile {
	return s.profile
}
