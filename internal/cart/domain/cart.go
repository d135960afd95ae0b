package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Owner identifies who a cart belongs to: an authenticated user or an
// anonymous session, exactly one of the two.
type Owner struct {
	UserID     string
	SessionKey string
}

var ErrBadOwner = errors.New("cart owner must be exactly one of user id or session key")

func (o Owner) Validate() error {
	if (o.UserID == "") == (o.SessionKey == "") {
		return ErrBadOwner
	}
	return nil
}

type CartItem struct {
	ProductID string
	Quantity  int32
}

type Cart struct {
	ID        string
	Owner     Owner
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PricedLine is a cart item joined with the current catalog price, the
// input to the aggregator.
type PricedLine struct {
	ProductID string
	Name      string
	// EffectiveUnitPrice is the sale price when the product is on sale,
	// otherwise the regular price.
	EffectiveUnitPrice decimal.Decimal
	Quantity           int32
}

func (l PricedLine) LineTotal() decimal.Decimal {
	return l.EffectiveUnitPrice.Mul(decimal.NewFromInt32(l.Quantity))
}

// Summary is the aggregated cart view rendered by the storefront.
type Summary struct {
	TotalItems int64
	TotalPrice decimal.Decimal
}

// Summarize computes total item count and total price across priced
// lines. A nil or empty slice yields zero for both.
func Summarize(lines []PricedLine) Summary {
	s := Summary{TotalPrice: decimal.Zero}
	for _, l := range lines {
		s.TotalItems += int64(l.Quantity)
		s.TotalPrice = s.TotalPrice.Add(l.LineTotal())
	}
	return s
}
