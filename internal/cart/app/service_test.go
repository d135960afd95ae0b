package app

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/oleeahmmed/ecommerce/internal/cart/domain"
)

type memCartRepo struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart // keyed by owner
	next  int
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: make(map[string]*domain.Cart)}
}

func ownerKey(o domain.Owner) string { return o.UserID + "|" + o.SessionKey }

func (r *memCartRepo) Get(ctx context.Context, owner domain.Owner) (domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[ownerKey(owner)]
	if !ok {
		return domain.Cart{}, ErrNotFound
	}
	return *c, nil
}

func (r *memCartRepo) GetOrCreate(ctx context.Context, owner domain.Owner) (domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.carts[ownerKey(owner)]; ok {
		return *c, nil
	}
	r.next++
	c := &domain.Cart{ID: ownerKey(owner), Owner: owner}
	r.carts[ownerKey(owner)] = c
	return *c, nil
}

func (r *memCartRepo) byID(cartID string) *domain.Cart {
	for _, c := range r.carts {
		if c.ID == cartID {
			return c
		}
	}
	return nil
}

func (r *memCartRepo) AddItem(ctx context.Context, cartID string, item domain.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.byID(cartID)
	if c == nil {
		return ErrNotFound
	}
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			return nil
		}
	}
	c.Items = append(c.Items, item)
	return nil
}

func (r *memCartRepo) SetItemQuantity(ctx context.Context, cartID string, item domain.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.byID(cartID)
	if c == nil {
		return ErrNotFound
	}
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity = item.Quantity
			return nil
		}
	}
	return ErrItemNotFound
}

func (r *memCartRepo) RemoveItem(ctx context.Context, cartID string, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.byID(cartID)
	if c == nil {
		return ErrNotFound
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memCartRepo) Clear(ctx context.Context, cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c := r.byID(cartID); c != nil {
		c.Items = nil
	}
	return nil
}

type memCatalog struct {
	products map[string]PricedProduct
}

func (c memCatalog) GetProduct(ctx context.Context, productID string) (PricedProduct, error) {
	p, ok := c.products[productID]
	if !ok {
		return PricedProduct{}, ErrNotFound
	}
	return p, nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testCatalog() memCatalog {
	return memCatalog{products: map[string]PricedProduct{
		"almond": {ID: "almond", Name: "Almonds", EffectiveUnitPrice: dec("450"), Active: true},
		"cashew": {ID: "cashew", Name: "Cashews", EffectiveUnitPrice: dec("320.50"), Active: true},
		"dated":  {ID: "dated", Name: "Old stock", EffectiveUnitPrice: dec("10"), Active: false},
	}}
}

func TestAddItemIncrementsExisting(t *testing.T) {
	svc := NewService(newMemCartRepo(), testCatalog(), 4)
	owner := domain.Owner{UserID: "u1"}

	if _, err := svc.AddItem(context.Background(), owner, domain.CartItem{ProductID: "almond", Quantity: 2}); err != nil {
		t.Fatalf("add: %v", err)
	}
	cart, err := svc.AddItem(context.Background(), owner, domain.CartItem{ProductID: "almond", Quantity: 3})
	if err != nil {
		t.Fatalf("add again: %v", err)
	}

	if len(cart.Items) != 1 {
		t.Fatalf("expected one line for the product, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 5 {
		t.Fatalf("quantity = %d, want 5", cart.Items[0].Quantity)
	}
}

func TestAddItemRejections(t *testing.T) {
	svc := NewService(newMemCartRepo(), testCatalog(), 4)
	owner := domain.Owner{SessionKey: "sess-1"}

	if _, err := svc.AddItem(context.Background(), owner, domain.CartItem{ProductID: "almond", Quantity: 0}); err != ErrBadQuantity {
		t.Fatalf("expected ErrBadQuantity, got %v", err)
	}
	if _, err := svc.AddItem(context.Background(), owner, domain.CartItem{ProductID: "dated", Quantity: 1}); err != ErrProductInactive {
		t.Fatalf("expected ErrProductInactive, got %v", err)
	}
}

func TestSetQuantityZeroRemoves(t *testing.T) {
	svc := NewService(newMemCartRepo(), testCatalog(), 4)
	owner := domain.Owner{UserID: "u1"}

	if _, err := svc.AddItem(context.Background(), owner, domain.CartItem{ProductID: "almond", Quantity: 2}); err != nil {
		t.Fatalf("add: %v", err)
	}
	cart, err := svc.SetItemQuantity(context.Background(), owner, domain.CartItem{ProductID: "almond", Quantity: 0})
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(cart.Items))
	}
}

func TestSummary(t *testing.T) {
	svc := NewService(newMemCartRepo(), testCatalog(), 4)
	owner := domain.Owner{UserID: "u1"}

	t.Run("missing cart summarizes to zero", func(t *testing.T) {
		s, err := svc.Summary(context.Background(), owner)
		if err != nil {
			t.Fatalf("summary: %v", err)
		}
		if s.TotalItems != 0 || !s.TotalPrice.IsZero() {
			t.Fatalf("expected zero summary, got %+v", s)
		}
	})

	t.Run("summarizes priced lines", func(t *testing.T) {
		if _, err := svc.AddItem(context.Background(), owner, domain.CartItem{ProductID: "almond", Quantity: 2}); err != nil {
			t.Fatalf("add: %v", err)
		}
		if _, err := svc.AddItem(context.Background(), owner, domain.CartItem{ProductID: "cashew", Quantity: 1}); err != nil {
			t.Fatalf("add: %v", err)
		}

		s, err := svc.Summary(context.Background(), owner)
		if err != nil {
			t.Fatalf("summary: %v", err)
		}
		if s.TotalItems != 3 {
			t.Fatalf("total items = %d, want 3", s.TotalItems)
		}
		if !s.TotalPrice.Equal(dec("1220.50")) {
			t.Fatalf("total price = %s, want 1220.50", s.TotalPrice)
		}
	})
}

func TestConcurrentAddItemIncrement(t *testing.T) {
	svc := NewService(newMemCartRepo(), testCatalog(), 4)
	owner := domain.Owner{UserID: "u1"}

	const n = 100
	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < n; i++ {
		g.Go(func() error {
			_, err := svc.AddItem(ctx, owner, domain.CartItem{ProductID: "almond", Quantity: 1})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent add: %v", err)
	}

	cart, err := svc.GetCart(context.Background(), owner)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != n {
		t.Fatalf("expected single line qty %d, got %+v", n, cart.Items)
	}
}
