package app

import (
	"context"

	"github.com/shopspring/decimal"

	coupondomain "github.com/oleeahmmed/ecommerce/internal/coupon/domain"
	orderdomain "github.com/oleeahmmed/ecommerce/internal/order/domain"
)

// Owner mirrors the cart's ownership rule: a user id or an anonymous
// session key, exactly one.
type Owner struct {
	UserID     string
	SessionKey string
}

type CartLine struct {
	ProductID string
	Quantity  int32
}

type Cart struct {
	ID    string
	Lines []CartLine
}

type CartStore interface {
	GetCart(ctx context.Context, owner Owner) (Cart, error)
	Clear(ctx context.Context, cartID string) error
}

type Product struct {
	ID                 string
	Name               string
	EffectiveUnitPrice decimal.Decimal
	Active             bool
}

type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}

// CouponStore's Redeem is the serialized read-validate-increment from the
// coupon context; the finalizer never increments a counter it read.
type CouponStore interface {
	FindByCode(ctx context.Context, code string) (coupondomain.Coupon, error)
	Redeem(ctx context.Context, code string) (coupondomain.Coupon, error)
}

type OrderWriter interface {
	CreateOrderTx(ctx context.Context, order orderdomain.Order) (orderdomain.Order, error)
}
