package redis

import (
	"context"

	"cabbooking/internal/domain"
)

// DiscountCacheInterface defines the interface for the active discount cache.
type DiscountCacheInterface interface {
	GetActive(ctx context.Context, day string) ([]domain.Discount, bool, error)
	SetActive(ctx context.Context, day string, discounts []domain.Discount) error
}

// Ensure concrete types implement interfaces.
var _ DiscountCacheInterface = (*DiscountCache)(nil)
