package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabbooking/internal/domain"
)

// CityProfiler provides the operating city profile.
type CityProfiler interface {
	Profile() domain.CityProfile
}

// CityHandler serves the city profile.
type CityHandler struct {
	city CityProfiler
}

// NewCityHandler creates a new CityHandler.
func NewCityHandler(city CityProfiler) *CityHandler {
	return &CityHandler{city: city}
}

// CityResponse is the HTTP response for the city profile.
type CityResponse struct {
	Name         string `json:"name"`
	State        string `json:"state"`
	Country      string `json:"country"`
	Timezone     string `json:"timezone"`
	SupportEmail string `json:"support_email"`
}

// Get handles GET /v1/city
func (h *CityHandler) Get(c *gin.Context) {
	p := h.city.Profile()
	respondJSON(c, http.StatusOK, CityResponse{
		Name:         p.Name,
		State:        p.State,
		Country:      p.Country,
		Timezone:     p.Timezone,
		SupportEmail: p.SupportEmail,
	})
}
