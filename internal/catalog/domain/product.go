package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. DiscountPrice is optional; whether the
// product is on sale is always derived from the current prices, never
// stored as a flag.
type Product struct {
	ID            string
	Slug          string
	Name          string
	Description   string
	Price         decimal.Decimal
	DiscountPrice *decimal.Decimal
	// CategoryID is empty for uncategorized products.
	CategoryID string
	Stock      int
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const lowStockThreshold = 5

// OnSale reports whether a discount price is set and strictly below the
// regular price.
func (p Product) OnSale() bool {
	return p.DiscountPrice != nil && p.DiscountPrice.LessThan(p.Price)
}

// EffectivePrice is the unit price a buyer actually pays right now.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.OnSale() {
		return *p.DiscountPrice
	}
	return p.Price
}

// SalePercentage is the rounded-down percentage off, 0 when not on sale.
func (p Product) SalePercentage() int {
	if !p.OnSale() {
		return 0
	}
	pct := p.Price.Sub(*p.DiscountPrice).
		Div(p.Price).
		Mul(decimal.NewFromInt(100))
	return int(pct.IntPart())
}

// InStock and LowStock feed the storefront display only. Stock is not
// checked or decremented at checkout.
func (p Product) InStock() bool {
	return p.Stock > 0
}

func (p Product) LowStock() bool {
	return p.Stock > 0 && p.Stock <= lowStockThreshold
}
