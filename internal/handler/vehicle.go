package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cabbooking/internal/domain"
	"cabbooking/internal/service"
)

// VehicleService is the vehicle registration used by VehicleHandler.
type VehicleService interface {
	Register(ctx context.Context, req service.RegisterVehicleRequest) (*domain.Vehicle, error)
	Get(ctx context.Context, id string) (*domain.Vehicle, error)
}

// VehicleHandler handles HTTP requests for vehicles.
type VehicleHandler struct {
	vehicles VehicleService
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vehicles VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

// RegisterVehicleRequest is the HTTP request body for vehicle registration.
type RegisterVehicleRequest struct {
	DriverID      string `json:"driver_id" binding:"omitempty,uuid"`
	VehicleNumber string `json:"vehicle_number" binding:"required,max=20"`
	Model         string `json:"model" binding:"max=100"`
	Type          string `json:"type" binding:"required,oneof=BIKE AUTO CAR SUV"`
	Capacity      int    `json:"capacity" binding:"required,gt=0"`
}

// VehicleResponse is the HTTP response for vehicle data.
type VehicleResponse struct {
	ID            string    `json:"id"`
	DriverID      string    `json:"driver_id,omitempty"`
	VehicleNumber string    `json:"vehicle_number"`
	Model         string    `json:"model,omitempty"`
	Type          string    `json:"type"`
	Capacity      int       `json:"capacity"`
	CreatedAt     time.Time `json:"created_at"`
}

// Register handles POST /v1/vehicles
func (h *VehicleHandler) Register(c *gin.Context) {
	var req RegisterVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	vehicle, err := h.vehicles.Register(c.Request.Context(), service.RegisterVehicleRequest{
		DriverID:      req.DriverID,
		VehicleNumber: req.VehicleNumber,
		Model:         req.Model,
		Type:          domain.VehicleType(req.Type),
		Capacity:      req.Capacity,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toVehicleResponse(vehicle))
}

// Get handles GET /v1/vehicles/:id
func (h *VehicleHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	vehicle, err := h.vehicles.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toVehicleResponse(vehicle))
}

func toVehicleResponse(v *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:            v.ID,
		DriverID:      v.DriverID,
		VehicleNumber: v.VehicleNumber,
		Model:         v.Model,
		Type:          string(v.Type),
		Capacity:      v.Capacity,
		CreatedAt:     v.CreatedAt,
	}
}
