package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"cabbooking/internal/domain"
)

const activeDiscountsPrefix = "cache:discounts:active:"

// DiscountCache caches the active discount list per calendar day.
type DiscountCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDiscountCache creates a new DiscountCache.
func NewDiscountCache(client *redis.Client, ttl time.Duration) *DiscountCache {
	return &DiscountCache{client: client, ttl: ttl}
}

// CachedDiscount is the JSON form of a discount held in Redis.
type CachedDiscount struct {
	ID          string     `json:"id"`
	Code        string     `json:"code"`
	Description string     `json:"description"`
	Percentage  int        `json:"percentage"`
	ValidFrom   *time.Time `json:"valid_from,omitempty"`
	ValidTo     *time.Time `json:"valid_to,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// GetActive returns the cached active discounts for day (YYYY-MM-DD).
// The boolean is false on a cache miss.
func (c *DiscountCache) GetActive(ctx context.Context, day string) ([]domain.Discount, bool, error) {
	data, err := c.client.Get(ctx, activeDiscountsPrefix+day).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}

	var cached []CachedDiscount
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false, err
	}

	discounts := make([]domain.Discount, 0, len(cached))
	for _, d := range cached {
		discounts = append(discounts, domain.Discount{
			ID:          d.ID,
			Code:        d.Code,
			Description: d.Description,
			Percentage:  d.Percentage,
			ValidFrom:   d.ValidFrom,
			ValidTo:     d.ValidTo,
			CreatedAt:   d.CreatedAt,
		})
	}
	return discounts, true, nil
}

// SetActive stores the active discounts for day (YYYY-MM-DD).
func (c *DiscountCache) SetActive(ctx context.Context, day string, discounts []domain.Discount) error {
	cached := make([]CachedDiscount, 0, len(discounts))
	for _, d := range discounts {
		cached = append(cached, CachedDiscount{
			ID:          d.ID,
			Code:        d.Code,
			Description: d.Description,
			Percentage:  d.Percentage,
			ValidFrom:   d.ValidFrom,
			ValidTo:     d.ValidTo,
			CreatedAt:   d.CreatedAt,
		})
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, activeDiscountsPrefix+day, data, c.ttl).Err()
}
