package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"cabbooking/internal/domain"
	"cabbooking/internal/repository"
)

const discountColumns = `d.id, d.code, COALESCE(d.description, ''), COALESCE(d.percentage, 0), d.valid_from, d.valid_to, d.deleted, d.created_at`

// DiscountRepository is a PostgreSQL implementation of repository.DiscountRepository.
type DiscountRepository struct {
	q Querier
}

// NewDiscountRepository creates a new PostgreSQL discount repository.
func NewDiscountRepository(db *sql.DB) *DiscountRepository {
	return &DiscountRepository{q: db}
}

// NewDiscountRepositoryWithTx creates a discount repository using a transaction.
func NewDiscountRepositoryWithTx(tx *sql.Tx) *DiscountRepository {
	return &DiscountRepository{q: tx}
}

// ListActive returns the non-deleted discounts whose validity window contains asOf.
// Both bounds are inclusive and a NULL bound is open-ended.
func (r *DiscountRepository) ListActive(ctx context.Context, asOf time.Time) ([]domain.Discount, error) {
	query := `
		SELECT ` + discountColumns + `
		FROM discounts d
		WHERE ` + activeOnly("d") + `
		  AND (d.valid_from IS NULL OR d.valid_from <= $1::date)
		  AND (d.valid_to IS NULL OR d.valid_to >= $1::date)
		ORDER BY d.code
	`
	return r.list(ctx, query, civilDate(asOf))
}

// ListByCodes returns the non-deleted discounts whose code is in codes.
func (r *DiscountRepository) ListByCodes(ctx context.Context, codes []string) ([]domain.Discount, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + discountColumns + `
		FROM discounts d
		WHERE ` + activeOnly("d") + ` AND d.code = ANY($1)
		ORDER BY d.code
	`
	return r.list(ctx, query, pq.Array(codes))
}

// GetByCode retrieves a non-deleted discount by its code.
func (r *DiscountRepository) GetByCode(ctx context.Context, code string) (*domain.Discount, error) {
	query := `
		SELECT ` + discountColumns + `
		FROM discounts d
		WHERE ` + activeOnly("d") + ` AND d.code = $1
	`

	discount, err := scanDiscount(r.q.QueryRowContext(ctx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return discount, nil
}

func (r *DiscountRepository) list(ctx context.Context, query string, args ...any) ([]domain.Discount, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var discounts []domain.Discount
	for rows.Next() {
		discount, err := scanDiscount(rows)
		if err != nil {
			return nil, err
		}
		discounts = append(discounts, *discount)
	}
	return discounts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDiscount(row rowScanner) (*domain.Discount, error) {
	var discount domain.Discount
	var validFrom, validTo sql.NullTime
	if err := row.Scan(
		&discount.ID,
		&discount.Code,
		&discount.Description,
		&discount.Percentage,
		&validFrom,
		&validTo,
		&discount.Deleted,
		&discount.CreatedAt,
	); err != nil {
		return nil, err
	}
	discount.ValidFrom = timePtr(validFrom)
	discount.ValidTo = timePtr(validTo)
	return &discount, nil
}

var _ repository.DiscountRepository = (*DiscountRepository)(nil)
