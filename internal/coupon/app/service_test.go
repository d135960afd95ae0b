package app

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oleeahmmed/ecommerce/internal/coupon/domain"
)

// memRepo redeems under a mutex: the same read-validate-increment
// serialization the postgres repo gets from its CAS update.
type memRepo struct {
	mu      sync.Mutex
	coupons map[string]*domain.Coupon
}

func newMemRepo(cs ...domain.Coupon) *memRepo {
	r := &memRepo{coupons: make(map[string]*domain.Coupon)}
	for i := range cs {
		c := cs[i]
		r.coupons[c.Code] = &c
	}
	return r
}

func (r *memRepo) Create(ctx context.Context, c domain.Coupon) (domain.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.coupons[c.Code] = &c
	return c, nil
}

func (r *memRepo) FindByCode(ctx context.Context, code string) (domain.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.coupons[code]
	if !ok {
		return domain.Coupon{}, ErrNotFound
	}
	return *c, nil
}

func (r *memRepo) ListActive(ctx context.Context) ([]domain.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Coupon
	for _, c := range r.coupons {
		if c.Active {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memRepo) Redeem(ctx context.Context, code string, now time.Time) (domain.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.coupons[code]
	if !ok {
		return domain.Coupon{}, ErrNotFound
	}
	if !c.IsValid(now) {
		return domain.Coupon{}, ErrNotRedeemable
	}
	c.UsedCount++
	return *c, nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testCoupon() domain.Coupon {
	return domain.Coupon{
		Code:          "SAVE50",
		Type:          domain.DiscountFixed,
		Value:         dec("50"),
		MinimumAmount: dec("1000"),
		ValidFrom:     time.Now().Add(-time.Hour),
		ValidTo:       time.Now().Add(time.Hour),
		Active:        true,
	}
}

func TestPreviewDiscount(t *testing.T) {
	svc := NewService(newMemRepo(testCoupon()))

	t.Run("unknown code", func(t *testing.T) {
		p, err := svc.PreviewDiscount(context.Background(), "NOPE", dec("5000"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Valid || !p.Discount.IsZero() {
			t.Fatalf("expected invalid zero preview, got %+v", p)
		}
	})

	t.Run("below minimum reports the minimum", func(t *testing.T) {
		p, err := svc.PreviewDiscount(context.Background(), "SAVE50", dec("40"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Valid {
			t.Fatal("expected invalid preview")
		}
		if !strings.Contains(p.Message, "1000") {
			t.Fatalf("message %q should mention the minimum", p.Message)
		}
	})

	t.Run("valid preview", func(t *testing.T) {
		p, err := svc.PreviewDiscount(context.Background(), "SAVE50", dec("1500"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !p.Valid || !p.Discount.Equal(dec("50")) {
			t.Fatalf("expected valid 50 discount, got %+v", p)
		}
	})

	t.Run("empty code -> invalid input", func(t *testing.T) {
		if _, err := svc.PreviewDiscount(context.Background(), "  ", dec("1500")); err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestRedeemConsumesUsage(t *testing.T) {
	limit := 2
	c := testCoupon()
	c.UsageLimit = &limit

	repo := newMemRepo(c)
	svc := NewService(repo)

	for i := 0; i < limit; i++ {
		if _, err := svc.Redeem(context.Background(), "SAVE50"); err != nil {
			t.Fatalf("redeem %d: %v", i, err)
		}
	}

	if _, err := svc.Redeem(context.Background(), "SAVE50"); err != ErrNotRedeemable {
		t.Fatalf("expected ErrNotRedeemable after limit, got %v", err)
	}

	got, _ := repo.FindByCode(context.Background(), "SAVE50")
	if got.UsedCount != limit {
		t.Fatalf("used count = %d, want %d", got.UsedCount, limit)
	}
}

func TestCreateCouponValidation(t *testing.T) {
	svc := NewService(newMemRepo())

	_, err := svc.CreateCoupon(context.Background(), CreateCouponInput{
		Code: "X", Type: domain.DiscountFixed, Value: dec("0"),
	})
	if err != ErrInvalidInput {
		t.Fatalf("zero value: expected ErrInvalidInput, got %v", err)
	}

	_, err = svc.CreateCoupon(context.Background(), CreateCouponInput{
		Code: "X", Type: domain.DiscountFixed, Value: dec("10"),
		ValidFrom: time.Now(), ValidTo: time.Now().Add(-time.Hour),
	})
	if err != ErrInvalidInput {
		t.Fatalf("inverted window: expected ErrInvalidInput, got %v", err)
	}
}
