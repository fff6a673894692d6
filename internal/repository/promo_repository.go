package repository

import (
	"context"
	"strings"
	"time"

	"bookit/internal/model"
	apperrors "bookit/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PromoRepository interface {
	// FindActiveByCode matches case-insensitively (codes are stored
	// uppercase) and only returns codes that are active, inside their
	// validity window and below their usage limit at time now.
	FindActiveByCode(ctx context.Context, code string, now time.Time) (*model.PromoCode, error)
	FindByCode(ctx context.Context, code string) (*model.PromoCode, error)

	// Transaction methods
	FindActiveByCodeWithTx(ctx context.Context, tx pgx.Tx, code string, now time.Time) (*model.PromoCode, error)
	IncrementUsage(ctx context.Context, tx pgx.Tx, id int) error
}

type PromoRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewPromoRepository(pool *pgxpool.Pool) PromoRepository {
	return &PromoRepositoryImpl{
		pool: pool,
	}
}

const promoColumns = `
	id, code, description, discount_type, discount_value,
	max_discount_amount, min_order_amount, valid_from, valid_until,
	usage_limit, used_count, is_active, created_at
`

const activePromoQuery = `
	SELECT ` + promoColumns + `
	FROM promo_codes
	WHERE code = $1
	  AND is_active = TRUE
	  AND valid_from <= $2
	  AND valid_until >= $2
	  AND (usage_limit IS NULL OR used_count < usage_limit)
`

func scanPromo(row pgx.Row) (*model.PromoCode, error) {
	var promo model.PromoCode
	err := row.Scan(
		&promo.ID,
		&promo.Code,
		&promo.Description,
		&promo.DiscountType,
		&promo.DiscountValue,
		&promo.MaxDiscountAmount,
		&promo.MinOrderAmount,
		&promo.ValidFrom,
		&promo.ValidUntil,
		&promo.UsageLimit,
		&promo.UsedCount,
		&promo.IsActive,
		&promo.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *PromoRepositoryImpl) FindActiveByCode(ctx context.Context, code string, now time.Time) (*model.PromoCode, error) {
	promo, err := scanPromo(r.pool.QueryRow(ctx, activePromoQuery, strings.ToUpper(code), now))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrPromoNotFound
		}
		return nil, err
	}

	return promo, nil
}

func (r *PromoRepositoryImpl) FindActiveByCodeWithTx(ctx context.Context, tx pgx.Tx, code string, now time.Time) (*model.PromoCode, error) {
	promo, err := scanPromo(tx.QueryRow(ctx, activePromoQuery, strings.ToUpper(code), now))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrPromoNotFound
		}
		return nil, err
	}

	return promo, nil
}

func (r *PromoRepositoryImpl) FindByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	query := `
		SELECT ` + promoColumns + `
		FROM promo_codes
		WHERE code = $1
	`

	promo, err := scanPromo(r.pool.QueryRow(ctx, query, strings.ToUpper(code)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrPromoNotFound
		}
		return nil, err
	}

	return promo, nil
}

// IncrementUsage bumps used_count inside the booking transaction. The
// usage-limit predicate guards against racing past the limit: zero rows
// affected means the code was exhausted between lookup and increment.
func (r *PromoRepositoryImpl) IncrementUsage(ctx context.Context, tx pgx.Tx, id int) error {
	query := `
		UPDATE promo_codes
		SET used_count = used_count + 1
		WHERE id = $1
		  AND (usage_limit IS NULL OR used_count < usage_limit)
	`

	result, err := tx.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrPromoNotFound
	}

	return nil
}
