package app

import (
	"context"
	"time"

	"github.com/oleeahmmed/ecommerce/internal/coupon/domain"
)

type CouponRepo interface {
	Create(ctx context.Context, c domain.Coupon) (domain.Coupon, error)
	FindByCode(ctx context.Context, code string) (domain.Coupon, error)
	ListActive(ctx context.Context) ([]domain.Coupon, error)

	// Redeem atomically re-checks validity and increments used_count for a
	// single coupon row. It returns ErrNotRedeemable when the coupon exists
	// but lost its window, its active flag, or its last usage slot.
	Redeem(ctx context.Context, code string, now time.Time) (domain.Coupon, error)
}
