package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"cabbooking/internal/domain"
	"cabbooking/internal/redis"
	"cabbooking/internal/repository"
)

// DiscountService answers discount lookups.
type DiscountService struct {
	discountRepo repository.DiscountRepository
	cache        redis.DiscountCacheInterface // optional
	loc          *time.Location
	now          func() time.Time
	logger       logrus.FieldLogger
}

// NewDiscountService creates a new DiscountService. cache may be nil.
func NewDiscountService(
	discountRepo repository.DiscountRepository,
	cache redis.DiscountCacheInterface,
	loc *time.Location,
	logger logrus.FieldLogger,
) *DiscountService {
	return &DiscountService{
		discountRepo: discountRepo,
		cache:        cache,
		loc:          loc,
		now:          time.Now,
		logger:       logger,
	}
}

// WithRepository returns an uncached service reading through repo,
// typically a transaction-scoped repository.
func (s *DiscountService) WithRepository(repo repository.DiscountRepository) *DiscountService {
	return &DiscountService{
		discountRepo: repo,
		loc:          s.loc,
		now:          s.now,
		logger:       s.logger,
	}
}

// Today returns the current time in the city timezone.
func (s *DiscountService) Today() time.Time {
	return s.now().In(s.loc)
}

// ActiveDiscounts returns every non-deleted discount valid on the calendar
// day of asOf. A zero asOf means today.
func (s *DiscountService) ActiveDiscounts(ctx context.Context, asOf time.Time) ([]domain.Discount, error) {
	if asOf.IsZero() {
		asOf = s.now()
	}
	asOf = asOf.In(s.loc)
	day := asOf.Format("2006-01-02")

	if s.cache != nil {
		cached, ok, err := s.cache.GetActive(ctx, day)
		if err != nil {
			s.logger.WithError(err).WithField("day", day).Warn("discount cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	discounts, err := s.discountRepo.ListActive(ctx, asOf)
	if err != nil {
		return nil, err
	}
	if discounts == nil {
		discounts = []domain.Discount{}
	}

	if s.cache != nil {
		if err := s.cache.SetActive(ctx, day, discounts); err != nil {
			s.logger.WithError(err).WithField("day", day).Warn("discount cache write failed")
		}
	}

	return discounts, nil
}

// DiscountsByCodes returns the non-deleted discounts matching any of codes.
// Unknown codes are absent from the result and never an error.
func (s *DiscountService) DiscountsByCodes(ctx context.Context, codes []string) ([]domain.Discount, error) {
	normalized := normalizeCodes(codes)
	if len(normalized) == 0 {
		return []domain.Discount{}, nil
	}

	discounts, err := s.discountRepo.ListByCodes(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if discounts == nil {
		discounts = []domain.Discount{}
	}
	return discounts, nil
}

// DiscountByCode returns the discount with code if it is usable today.
// Returns nil when code is blank or no such discount is active.
func (s *DiscountService) DiscountByCode(ctx context.Context, code string) (*domain.Discount, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}

	discount, err := s.discountRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if !discount.ActiveOn(s.Today()) {
		return nil, nil
	}
	return discount, nil
}

func normalizeCodes(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" || utf8.RuneCountInString(code) > domain.MaxDiscountCodeLength {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}
