package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"cabbooking/internal/domain"
	"cabbooking/internal/service"
)

// RideService is the ride lifecycle used by RideHandler.
type RideService interface {
	CreateRide(ctx context.Context, req service.CreateRideRequest) (*domain.Ride, error)
	GetRideDetails(ctx context.Context, rideID string) (*domain.RideDetails, error)
}

// RideQueries is the read side used by RideHandler.
type RideQueries interface {
	RidesByCreationDate(ctx context.Context, date time.Time) ([]*domain.Ride, error)
	CompletedForWeek(ctx context.Context, date time.Time) ([]*domain.Ride, error)
	InProgressToday(ctx context.Context) ([]*domain.Ride, error)
	HighValueForWeek(ctx context.Context, date time.Time, minFare *float64) ([]*domain.Ride, error)
	RidesByDiscountCode(ctx context.Context, code string) ([]*domain.Ride, error)
}

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	rides   RideService
	queries RideQueries
	loc     *time.Location
}

// NewRideHandler creates a new RideHandler. Query dates are read in loc.
func NewRideHandler(rides RideService, queries RideQueries, loc *time.Location) *RideHandler {
	return &RideHandler{rides: rides, queries: queries, loc: loc}
}

// LocationRequest identifies a pickup or drop point.
type LocationRequest struct {
	LocationID string   `json:"location_id" binding:"omitempty,uuid"`
	Latitude   *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude  *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
}

func (r LocationRequest) spec() service.LocationSpec {
	return service.LocationSpec{ID: r.LocationID, Latitude: r.Latitude, Longitude: r.Longitude}
}

// CreateRideRequest is the HTTP request body for creating a ride.
type CreateRideRequest struct {
	UserID        string          `json:"user_id" binding:"required,uuid"`
	DriverID      string          `json:"driver_id" binding:"omitempty,uuid"`
	VehicleID     string          `json:"vehicle_id" binding:"omitempty,uuid"`
	Pickup        LocationRequest `json:"pickup"`
	Drop          LocationRequest `json:"drop"`
	Fare          *float64        `json:"fare" binding:"omitempty,gt=0"`
	DistanceKm    *float64        `json:"distance_km" binding:"omitempty,gt=0"`
	StartTime     *time.Time      `json:"start_time"`
	EndTime       *time.Time      `json:"end_time"`
	DiscountCodes []string        `json:"discount_codes" binding:"omitempty,dive,discount_code"`
}

// DiscountResponse is the HTTP representation of a discount.
type DiscountResponse struct {
	ID          string  `json:"id"`
	Code        string  `json:"code"`
	Description string  `json:"description,omitempty"`
	Percentage  int     `json:"percentage"`
	ValidFrom   *string `json:"valid_from,omitempty"`
	ValidTo     *string `json:"valid_to,omitempty"`
}

// RideResponse is the HTTP representation of a ride.
type RideResponse struct {
	ID               string             `json:"id"`
	UserID           string             `json:"user_id"`
	DriverID         string             `json:"driver_id,omitempty"`
	VehicleID        string             `json:"vehicle_id,omitempty"`
	PickupLocationID string             `json:"pickup_location_id"`
	DropLocationID   string             `json:"drop_location_id"`
	Status           string             `json:"status"`
	Fare             *float64           `json:"fare,omitempty"`
	DistanceKm       *float64           `json:"distance_km,omitempty"`
	StartTime        *time.Time         `json:"start_time,omitempty"`
	EndTime          *time.Time         `json:"end_time,omitempty"`
	Discounts        []DiscountResponse `json:"discounts"`
	CreatedAt        time.Time          `json:"created_at"`
}

// RideListResponse wraps the result of a ride query.
type RideListResponse struct {
	Rides []RideResponse `json:"rides"`
	Count int            `json:"count"`
}

// LocationResponse is the HTTP representation of a location.
type LocationResponse struct {
	ID         string    `json:"id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	RecordedAt time.Time `json:"recorded_at"`
}

// PaymentResponse is the HTTP representation of a ride payment.
type PaymentResponse struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
	Status string  `json:"status"`
}

// RatingResponse is the HTTP representation of a ride rating.
type RatingResponse struct {
	ID       string `json:"id"`
	GivenBy  string `json:"given_by"`
	GivenTo  string `json:"given_to"`
	Rating   int    `json:"rating"`
	Comments string `json:"comments,omitempty"`
}

// RideDetailsResponse is a ride with its related records.
type RideDetailsResponse struct {
	RideResponse
	Pickup  *LocationResponse `json:"pickup,omitempty"`
	Drop    *LocationResponse `json:"drop,omitempty"`
	Payment *PaymentResponse  `json:"payment,omitempty"`
	Ratings []RatingResponse  `json:"ratings"`
}

// CreateRide handles POST /v1/rides
func (h *RideHandler) CreateRide(c *gin.Context) {
	var req CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ride, err := h.rides.CreateRide(c.Request.Context(), service.CreateRideRequest{
		UserID:        req.UserID,
		DriverID:      req.DriverID,
		VehicleID:     req.VehicleID,
		Pickup:        req.Pickup.spec(),
		Drop:          req.Drop.spec(),
		Fare:          req.Fare,
		DistanceKm:    req.DistanceKm,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		DiscountCodes: req.DiscountCodes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Location", "/v1/rides/"+ride.ID)
	respondJSON(c, http.StatusCreated, toRideResponse(ride))
}

// GetRide handles GET /v1/rides/:id
func (h *RideHandler) GetRide(c *gin.Context) {
	rideID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	details, err := h.rides.GetRideDetails(c.Request.Context(), rideID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideDetailsResponse(details))
}

// ByCreationDate handles GET /v1/rides/by-date?date=YYYY-MM-DD
func (h *RideHandler) ByCreationDate(c *gin.Context) {
	date, ok := h.dateQuery(c)
	if !ok {
		return
	}
	h.respondRides(c)(h.queries.RidesByCreationDate(c.Request.Context(), date))
}

// CompletedForWeek handles GET /v1/rides/completed-week?date=YYYY-MM-DD
func (h *RideHandler) CompletedForWeek(c *gin.Context) {
	date, ok := h.dateQuery(c)
	if !ok {
		return
	}
	h.respondRides(c)(h.queries.CompletedForWeek(c.Request.Context(), date))
}

// InProgressToday handles GET /v1/rides/in-progress/today
func (h *RideHandler) InProgressToday(c *gin.Context) {
	h.respondRides(c)(h.queries.InProgressToday(c.Request.Context()))
}

// HighValueForWeek handles GET /v1/rides/high-value-week?date=YYYY-MM-DD&minFare=N
func (h *RideHandler) HighValueForWeek(c *gin.Context) {
	date, ok := h.dateQuery(c)
	if !ok {
		return
	}

	var minFare *float64
	if raw := c.Query("minFare"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "minFare must be a number"})
			return
		}
		minFare = &v
	}

	h.respondRides(c)(h.queries.HighValueForWeek(c.Request.Context(), date, minFare))
}

// ByDiscountCode handles GET /v1/rides/discount/:code
func (h *RideHandler) ByDiscountCode(c *gin.Context) {
	h.respondRides(c)(h.queries.RidesByDiscountCode(c.Request.Context(), c.Param("code")))
}

func (h *RideHandler) respondRides(c *gin.Context) func([]*domain.Ride, error) {
	return func(rides []*domain.Ride, err error) {
		if err != nil {
			respondError(c, err)
			return
		}

		response := RideListResponse{Rides: make([]RideResponse, 0, len(rides)), Count: len(rides)}
		for _, r := range rides {
			response.Rides = append(response.Rides, toRideResponse(r))
		}
		respondJSON(c, http.StatusOK, response)
	}
}

// dateQuery parses the optional date query parameter in the city timezone.
// Absent means the zero time.
func (h *RideHandler) dateQuery(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Time{}, true
	}

	date, err := time.ParseInLocation(dateLayout, raw, h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "date must be formatted as YYYY-MM-DD"})
		return time.Time{}, false
	}
	return date, true
}

func toRideResponse(r *domain.Ride) RideResponse {
	resp := RideResponse{
		ID:               r.ID,
		UserID:           r.UserID,
		DriverID:         r.DriverID,
		VehicleID:        r.VehicleID,
		PickupLocationID: r.PickupLocationID,
		DropLocationID:   r.DropLocationID,
		Status:           string(r.Status),
		Fare:             r.Fare,
		DistanceKm:       r.DistanceKm,
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
		Discounts:        make([]DiscountResponse, 0, len(r.Discounts)),
		CreatedAt:        r.CreatedAt,
	}
	for i := range r.Discounts {
		resp.Discounts = append(resp.Discounts, toDiscountResponse(&r.Discounts[i]))
	}
	return resp
}

func toRideDetailsResponse(d *domain.RideDetails) RideDetailsResponse {
	resp := RideDetailsResponse{
		RideResponse: toRideResponse(d.Ride),
		Pickup:       toLocationResponse(d.Pickup),
		Drop:         toLocationResponse(d.Drop),
		Ratings:      make([]RatingResponse, 0, len(d.Ratings)),
	}
	if d.Payment != nil {
		resp.Payment = &PaymentResponse{
			ID:     d.Payment.ID,
			Amount: d.Payment.Amount,
			Method: string(d.Payment.Method),
			Status: string(d.Payment.Status),
		}
	}
	for _, r := range d.Ratings {
		resp.Ratings = append(resp.Ratings, RatingResponse{
			ID:       r.ID,
			GivenBy:  string(r.GivenBy),
			GivenTo:  string(r.GivenTo),
			Rating:   r.Value,
			Comments: r.Comments,
		})
	}
	return resp
}

func toLocationResponse(l *domain.Location) *LocationResponse {
	if l == nil {
		return nil
	}
	return &LocationResponse{
		ID:         l.ID,
		Latitude:   l.Latitude,
		Longitude:  l.Longitude,
		RecordedAt: l.RecordedAt,
	}
}
