package app

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/oleeahmmed/ecommerce/internal/cart/domain"
)

var (
	ErrNotFound        = errors.New("cart not found")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrBadQuantity     = errors.New("quantity must be at least 1")
	ErrProductInactive = errors.New("product is not available")
)

type Service struct {
	repo    CartRepo
	catalog CatalogReader

	maxConcurrent int
}

func NewService(repo CartRepo, catalog CatalogReader, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	return &Service{repo: repo, catalog: catalog, maxConcurrent: maxConcurrent}
}

func (s *Service) GetCart(ctx context.Context, owner domain.Owner) (domain.Cart, error) {
	if err := owner.Validate(); err != nil {
		return domain.Cart{}, err
	}
	return s.repo.Get(ctx, owner)
}

// GetOrCreate lazily creates the cart on first interaction.
func (s *Service) GetOrCreate(ctx context.Context, owner domain.Owner) (domain.Cart, error) {
	if err := owner.Validate(); err != nil {
		return domain.Cart{}, err
	}
	return s.repo.GetOrCreate(ctx, owner)
}

// AddItem adds quantity of a product; if the product is already in the
// cart its quantity is incremented rather than a second row created.
func (s *Service) AddItem(ctx context.Context, owner domain.Owner, item domain.CartItem) (domain.Cart, error) {
	if item.Quantity < 1 {
		return domain.Cart{}, ErrBadQuantity
	}

	p, err := s.catalog.GetProduct(ctx, item.ProductID)
	if err != nil {
		return domain.Cart{}, err
	}
	if !p.Active {
		return domain.Cart{}, ErrProductInactive
	}

	cart, err := s.GetOrCreate(ctx, owner)
	if err != nil {
		return domain.Cart{}, err
	}
	if err := s.repo.AddItem(ctx, cart.ID, item); err != nil {
		return domain.Cart{}, err
	}
	return s.repo.Get(ctx, owner)
}

// SetItemQuantity updates an item; quantity 0 removes it.
func (s *Service) SetItemQuantity(ctx context.Context, owner domain.Owner, item domain.CartItem) (domain.Cart, error) {
	cart, err := s.GetCart(ctx, owner)
	if err != nil {
		return domain.Cart{}, err
	}

	if item.Quantity <= 0 {
		err = s.repo.RemoveItem(ctx, cart.ID, item.ProductID)
	} else {
		err = s.repo.SetItemQuantity(ctx, cart.ID, item)
	}
	if err != nil {
		return domain.Cart{}, err
	}
	return s.repo.Get(ctx, owner)
}

func (s *Service) RemoveItem(ctx context.Context, owner domain.Owner, productID string) (domain.Cart, error) {
	cart, err := s.GetCart(ctx, owner)
	if err != nil {
		return domain.Cart{}, err
	}
	if err := s.repo.RemoveItem(ctx, cart.ID, productID); err != nil {
		return domain.Cart{}, err
	}
	return s.repo.Get(ctx, owner)
}

func (s *Service) Clear(ctx context.Context, cartID string) error {
	return s.repo.Clear(ctx, cartID)
}

// PriceLines joins cart items with current catalog prices, fanning the
// lookups out with a bounded errgroup.
func (s *Service) PriceLines(ctx context.Context, cart domain.Cart) ([]domain.PricedLine, error) {
	lines := make([]domain.PricedLine, len(cart.Items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range cart.Items {
		g.Go(func() error {
			it := cart.Items[idx]
			p, err := s.catalog.GetProduct(ctx, it.ProductID)
			if err != nil {
				return fmt.Errorf("price product %s: %w", it.ProductID, err)
			}
			lines[idx] = domain.PricedLine{
				ProductID:          p.ID,
				Name:               p.Name,
				EffectiveUnitPrice: p.EffectiveUnitPrice,
				Quantity:           it.Quantity,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lines, nil
}

// Summary aggregates the cart for display: total item count and total
// price with per-item sale pricing applied. Pure read, no side effects.
func (s *Service) Summary(ctx context.Context, owner domain.Owner) (domain.Summary, error) {
	cart, err := s.GetCart(ctx, owner)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.Summarize(nil), nil
		}
		return domain.Summary{}, err
	}

	lines, err := s.PriceLines(ctx, cart)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(lines), nil
}
