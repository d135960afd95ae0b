package adapter

import (
	"context"

	cartapp "github.com/oleeahmmed/ecommerce/internal/cart/app"
	cartdomain "github.com/oleeahmmed/ecommerce/internal/cart/domain"
	checkoutapp "github.com/oleeahmmed/ecommerce/internal/checkout/app"
)

type CartServiceStore struct {
	svc *cartapp.Service
}

func NewCartServiceStore(svc *cartapp.Service) *CartServiceStore {
	return &CartServiceStore{svc: svc}
}

func (s *CartServiceStore) GetCart(ctx context.Context, owner checkoutapp.Owner) (checkoutapp.Cart, error) {
	cart, err := s.svc.GetCart(ctx, cartdomain.Owner{
		UserID:     owner.UserID,
		SessionKey: owner.SessionKey,
	})
	if err != nil {
		return checkoutapp.Cart{}, err
	}

	lines := make([]checkoutapp.CartLine, 0, len(cart.Items))
	for _, it := range cart.Items {
		lines = append(lines, checkoutapp.CartLine{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}
	return checkoutapp.Cart{ID: cart.ID, Lines: lines}, nil
}

func (s *CartServiceStore) Clear(ctx context.Context, cartID string) error {
	return s.svc.Clear(ctx, cartID)
}
