package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/oleeahmmed/ecommerce/internal/cart/domain"
)

type CartRepo interface {
	Get(ctx context.Context, owner domain.Owner) (domain.Cart, error)
	GetOrCreate(ctx context.Context, owner domain.Owner) (domain.Cart, error)
	AddItem(ctx context.Context, cartID string, item domain.CartItem) error
	SetItemQuantity(ctx context.Context, cartID string, item domain.CartItem) error
	RemoveItem(ctx context.Context, cartID string, productID string) error
	Clear(ctx context.Context, cartID string) error
}

// CatalogReader prices cart lines; the cart context never reaches into
// catalog tables directly.
type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (PricedProduct, error)
}

type PricedProduct struct {
	ID                 string
	Name               string
	EffectiveUnitPrice decimal.Decimal
	Active             bool
}
