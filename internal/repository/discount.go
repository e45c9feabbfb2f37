package repository

import (
	"context"
	"time"

	"cabbooking/internal/domain"
)

// DiscountRepository defines the read operations for discounts.
type DiscountRepository interface {
	// ListActive returns the non-deleted discounts whose validity window contains asOf.
	ListActive(ctx context.Context, asOf time.Time) ([]domain.Discount, error)

	// ListByCodes returns the non-deleted discounts whose code is in codes.
	ListByCodes(ctx context.Context, codes []string) ([]domain.Discount, error)

	// GetByCode retrieves a non-deleted discount by its code.
	GetByCode(ctx context.Context, code string) (*domain.Discount, error)
}
