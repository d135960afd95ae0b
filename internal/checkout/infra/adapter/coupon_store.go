package adapter

import (
	"context"

	couponapp "github.com/oleeahmmed/ecommerce/internal/coupon/app"
	coupondomain "github.com/oleeahmmed/ecommerce/internal/coupon/domain"
)

type CouponServiceStore struct {
	svc *couponapp.Service
}

func NewCouponServiceStore(svc *couponapp.Service) *CouponServiceStore {
	return &CouponServiceStore{svc: svc}
}

func (s *CouponServiceStore) FindByCode(ctx context.Context, code string) (coupondomain.Coupon, error) {
	return s.svc.FindByCode(ctx, code)
}

func (s *CouponServiceStore) Redeem(ctx context.Context, code string) (coupondomain.Coupon, error) {
	return s.svc.Redeem(ctx, code)
}
