package adapter

import (
	"context"

	cartapp "github.com/oleeahmmed/ecommerce/internal/cart/app"
	catalogapp "github.com/oleeahmmed/ecommerce/internal/catalog/app"
)

type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) GetProduct(ctx context.Context, productID string) (cartapp.PricedProduct, error) {
	p, err := r.svc.GetProduct(ctx, productID)
	if err != nil {
		return cartapp.PricedProduct{}, err
	}

	return cartapp.PricedProduct{
		ID:                 p.ID,
		Name:               p.Name,
		EffectiveUnitPrice: p.EffectivePrice(),
		Active:             p.Active,
	}, nil
}
