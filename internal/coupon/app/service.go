package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oleeahmmed/ecommerce/internal/coupon/domain"
	"github.com/oleeahmmed/ecommerce/pkg/money"
)

var (
	ErrNotFound      = errors.New("coupon not found")
	ErrNotRedeemable = errors.New("coupon not redeemable")
	ErrInvalidInput  = errors.New("invalid input")
	ErrAlreadyExists = errors.New("coupon code already exists")
)

// MinimumNotMetError carries the coupon's minimum so the storefront can
// show it to the shopper.
type MinimumNotMetError struct {
	Minimum decimal.Decimal
}

func (e MinimumNotMetError) Error() string {
	return fmt.Sprintf("minimum order amount is %s", e.Minimum)
}

type Service struct {
	repo CouponRepo
	now  func() time.Time
}

func NewService(repo CouponRepo) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Preview is the advisory coupon-apply check shown before checkout. The
// finalizer recomputes everything server-side at submission time.
type Preview struct {
	Valid    bool
	Discount decimal.Decimal
	Message  string
}

func (s *Service) PreviewDiscount(ctx context.Context, code string, cartTotal decimal.Decimal) (Preview, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Preview{}, ErrInvalidInput
	}

	c, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Preview{Discount: money.Zero(), Message: "Invalid coupon code"}, nil
		}
		return Preview{}, err
	}

	now := s.now()
	if !c.IsValid(now) {
		return Preview{Discount: money.Zero(), Message: "This coupon has expired or is no longer available"}, nil
	}
	if cartTotal.LessThan(c.MinimumAmount) {
		e := MinimumNotMetError{Minimum: c.MinimumAmount}
		return Preview{Discount: money.Zero(), Message: e.Error()}, nil
	}

	return Preview{
		Valid:    true,
		Discount: c.Discount(cartTotal, now),
		Message:  "Coupon applied",
	}, nil
}

// Redeem consumes one usage slot. The repository performs the
// read-validate-increment as a single compare-and-swap so concurrent
// checkouts cannot overrun the usage limit.
func (s *Service) Redeem(ctx context.Context, code string) (domain.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.Coupon{}, ErrInvalidInput
	}
	return s.repo.Redeem(ctx, code, s.now())
}

func (s *Service) FindByCode(ctx context.Context, code string) (domain.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.Coupon{}, ErrInvalidInput
	}
	return s.repo.FindByCode(ctx, code)
}

type CreateCouponInput struct {
	Code            string
	Type            domain.DiscountType
	Value           decimal.Decimal
	MinimumAmount   decimal.Decimal
	MaximumDiscount *decimal.Decimal
	ValidFrom       time.Time
	ValidTo         time.Time
	UsageLimit      *int
}

func (s *Service) CreateCoupon(ctx context.Context, in CreateCouponInput) (domain.Coupon, error) {
	in.Code = strings.TrimSpace(in.Code)
	if in.Code == "" || !in.Value.IsPositive() {
		return domain.Coupon{}, ErrInvalidInput
	}
	if in.ValidTo.Before(in.ValidFrom) {
		return domain.Coupon{}, ErrInvalidInput
	}
	if in.MinimumAmount.IsNegative() {
		return domain.Coupon{}, ErrInvalidInput
	}
	if in.UsageLimit != nil && *in.UsageLimit <= 0 {
		return domain.Coupon{}, ErrInvalidInput
	}

	c := domain.Coupon{
		Code:            in.Code,
		Type:            in.Type,
		Value:           in.Value,
		MinimumAmount:   in.MinimumAmount,
		MaximumDiscount: in.MaximumDiscount,
		ValidFrom:       in.ValidFrom,
		ValidTo:         in.ValidTo,
		UsageLimit:      in.UsageLimit,
		Active:          true,
	}
	return s.repo.Create(ctx, c)
}

func (s *Service) ListActive(ctx context.Context) ([]domain.Coupon, error) {
	return s.repo.ListActive(ctx)
}
