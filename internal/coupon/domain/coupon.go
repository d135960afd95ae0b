package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oleeahmmed/ecommerce/pkg/money"
)

// DiscountType is a tagged variant so the calculator switch is exhaustive;
// the database stores the string form.
type DiscountType int

const (
	DiscountPercentage DiscountType = iota
	DiscountFixed
)

func (t DiscountType) String() string {
	switch t {
	case DiscountPercentage:
		return "percentage"
	case DiscountFixed:
		return "fixed"
	}
	return fmt.Sprintf("DiscountType(%d)", int(t))
}

func ParseDiscountType(s string) (DiscountType, error) {
	switch s {
	case "percentage":
		return DiscountPercentage, nil
	case "fixed":
		return DiscountFixed, nil
	}
	return 0, fmt.Errorf("unknown discount type %q", s)
}

type Coupon struct {
	ID            string
	Code          string
	Type          DiscountType
	Value         decimal.Decimal
	MinimumAmount decimal.Decimal
	// MaximumDiscount caps percentage discounts only.
	MaximumDiscount *decimal.Decimal
	ValidFrom       time.Time
	ValidTo         time.Time
	// Nil UsageLimit means unlimited redemptions.
	UsageLimit *int
	UsedCount  int
	Active     bool
}

// IsValid reports whether the coupon is redeemable at now. Callers must
// re-evaluate this at redemption time; validity can change between cart
// view and checkout submission.
func (c Coupon) IsValid(now time.Time) bool {
	if !c.Active {
		return false
	}
	if now.Before(c.ValidFrom) || now.After(c.ValidTo) {
		return false
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return false
	}
	return true
}

// Discount computes the reduction for amount at now. Fails closed: an
// invalid coupon or an amount below the minimum yields zero. The result
// never exceeds amount.
func (c Coupon) Discount(amount decimal.Decimal, now time.Time) decimal.Decimal {
	if !c.IsValid(now) || amount.LessThan(c.MinimumAmount) {
		return money.Zero()
	}

	var discount decimal.Decimal
	switch c.Type {
	case DiscountPercentage:
		discount = money.Percent(amount, c.Value)
		if c.MaximumDiscount != nil {
			discount = money.Min(discount, *c.MaximumDiscount)
		}
	case DiscountFixed:
		discount = c.Value
	default:
		return money.Zero()
	}

	return money.Min(discount, amount)
}
