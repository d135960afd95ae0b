package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oleeahmmed/ecommerce/internal/coupon/app"
	"github.com/oleeahmmed/ecommerce/internal/coupon/domain"
)

type CouponRepo struct {
	db *sql.DB
}

func NewCouponRepo(db *sql.DB) *CouponRepo {
	return &CouponRepo{db: db}
}

const couponColumns = `id, code, discount_type, discount_value, minimum_amount,
	maximum_discount, valid_from, valid_to, usage_limit, used_count, is_active`

func (r *CouponRepo) Create(ctx context.Context, c domain.Coupon) (domain.Coupon, error) {
	var maxDiscount decimal.NullDecimal
	if c.MaximumDiscount != nil {
		maxDiscount = decimal.NullDecimal{Decimal: *c.MaximumDiscount, Valid: true}
	}
	var usageLimit sql.NullInt64
	if c.UsageLimit != nil {
		usageLimit = sql.NullInt64{Int64: int64(*c.UsageLimit), Valid: true}
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO coupons (code, discount_type, discount_value, minimum_amount,
			maximum_discount, valid_from, valid_to, usage_limit, used_count, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, $9)
		RETURNING `+couponColumns,
		c.Code, c.Type.String(), c.Value, c.MinimumAmount, maxDiscount,
		c.ValidFrom, c.ValidTo, usageLimit, c.Active,
	)
	created, err := scanCoupon(row)
	if isUniqueViolation(err) {
		return domain.Coupon{}, app.ErrAlreadyExists
	}
	return created, err
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

func (r *CouponRepo) FindByCode(ctx context.Context, code string) (domain.Coupon, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+couponColumns+` FROM coupons WHERE code = $1`, code)
	c, err := scanCoupon(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coupon{}, app.ErrNotFound
	}
	return c, err
}

func (r *CouponRepo) ListActive(ctx context.Context) ([]domain.Coupon, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+couponColumns+` FROM coupons WHERE is_active ORDER BY valid_to`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Coupon
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Redeem performs the read-validate-increment as one guarded UPDATE, so
// two checkouts racing for the last usage slot cannot both win: the row
// lock serializes them and the second re-evaluates the predicate against
// the incremented used_count.
func (r *CouponRepo) Redeem(ctx context.Context, code string, now time.Time) (domain.Coupon, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE coupons
		SET used_count = used_count + 1
		WHERE code = $1
		  AND is_active
		  AND valid_from <= $2
		  AND valid_to >= $2
		  AND (usage_limit IS NULL OR used_count < usage_limit)
		RETURNING `+couponColumns,
		code, now,
	)
	c, err := scanCoupon(row)
	if errors.Is(err, sql.ErrNoRows) {
		// Distinguish an unknown code from a coupon that lost eligibility.
		if _, findErr := r.FindByCode(ctx, code); errors.Is(findErr, app.ErrNotFound) {
			return domain.Coupon{}, app.ErrNotFound
		}
		return domain.Coupon{}, app.ErrNotRedeemable
	}
	return c, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCoupon(row rowScanner) (domain.Coupon, error) {
	var (
		id          uuid.UUID
		c           domain.Coupon
		typeName    string
		maxDiscount decimal.NullDecimal
		usageLimit  sql.NullInt64
	)
	err := row.Scan(&id, &c.Code, &typeName, &c.Value, &c.MinimumAmount,
		&maxDiscount, &c.ValidFrom, &c.ValidTo, &usageLimit, &c.UsedCount, &c.Active)
	if err != nil {
		return domain.Coupon{}, err
	}

	c.ID = id.String()
	c.Type, err = domain.ParseDiscountType(typeName)
	if err != nil {
		return domain.Coupon{}, err
	}
	if maxDiscount.Valid {
		d := maxDiscount.Decimal
		c.MaximumDiscount = &d
	}
	if usageLimit.Valid {
		n := int(usageLimit.Int64)
		c.UsageLimit = &n
	}
	return c, nil
}
