package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cabbooking/internal/domain"
	"cabbooking/internal/service"
)

const dateLayout = "2006-01-02"

// DiscountLookup is the discount read side used by DiscountHandler.
type DiscountLookup interface {
	ActiveDiscounts(ctx context.Context, asOf time.Time) ([]domain.Discount, error)
	DiscountByCode(ctx context.Context, code string) (*domain.Discount, error)
}

// DiscountHandler handles HTTP requests for discounts.
type DiscountHandler struct {
	discounts DiscountLookup
}

// NewDiscountHandler creates a new DiscountHandler.
func NewDiscountHandler(discounts DiscountLookup) *DiscountHandler {
	return &DiscountHandler{discounts: discounts}
}

// Available handles GET /v1/discounts/available
func (h *DiscountHandler) Available(c *gin.Context) {
	discounts, err := h.discounts.ActiveDiscounts(c.Request.Context(), time.Time{})
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]DiscountResponse, 0, len(discounts))
	for i := range discounts {
		response = append(response, toDiscountResponse(&discounts[i]))
	}
	respondJSON(c, http.StatusOK, response)
}

// GetByCode handles GET /v1/discounts/:code
func (h *DiscountHandler) GetByCode(c *gin.Context) {
	discount, err := h.discounts.DiscountByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	if discount == nil {
		respondError(c, service.ErrDiscountNotFound)
		return
	}

	respondJSON(c, http.StatusOK, toDiscountResponse(discount))
}

func toDiscountResponse(d *domain.Discount) DiscountResponse {
	return DiscountResponse{
		ID:          d.ID,
		Code:        d.Code,
		Description: d.Description,
		Percentage:  d.Percentage,
		ValidFrom:   formatDate(d.ValidFrom),
		ValidTo:     formatDate(d.ValidTo),
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
