package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cabbooking/internal/domain"
	"cabbooking/internal/service"
)

// DriverService is the driver registration used by DriverHandler.
type DriverService interface {
	Register(ctx context.Context, req service.RegisterDriverRequest) (*domain.Driver, error)
	Get(ctx context.Context, id string) (*domain.Driver, error)
}

// DriverHandler handles HTTP requests for drivers.
type DriverHandler struct {
	drivers DriverService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(drivers DriverService) *DriverHandler {
	return &DriverHandler{drivers: drivers}
}

// RegisterDriverRequest is the HTTP request body for driver registration.
type RegisterDriverRequest struct {
	Name          string `json:"name" binding:"required,max=100"`
	Phone         string `json:"phone" binding:"required,phone"`
	Email         string `json:"email" binding:"required,email,max=100"`
	LicenseNumber string `json:"license_number" binding:"required,max=50"`
}

// DriverResponse is the HTTP response for driver data.
type DriverResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	LicenseNumber string    `json:"license_number"`
	Rating        float64   `json:"rating"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// Register handles POST /v1/drivers
func (h *DriverHandler) Register(c *gin.Context) {
	var req RegisterDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	driver, err := h.drivers.Register(c.Request.Context(), service.RegisterDriverRequest{
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		LicenseNumber: req.LicenseNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toDriverResponse(driver))
}

// Get handles GET /v1/drivers/:id
func (h *DriverHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	driver, err := h.drivers.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toDriverResponse(driver))
}

func toDriverResponse(d *domain.Driver) DriverResponse {
	return DriverResponse{
		ID:            d.ID,
		Name:          d.Name,
		Phone:         d.Phone,
		Email:         d.Email,
		LicenseNumber: d.LicenseNumber,
		Rating:        d.Rating,
		Status:        string(d.Status),
		CreatedAt:     d.CreatedAt,
	}
}
