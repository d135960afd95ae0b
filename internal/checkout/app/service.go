package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/oleeahmmed/ecommerce/internal/events"
	orderdomain "github.com/oleeahmmed/ecommerce/internal/order/domain"
	"github.com/oleeahmmed/ecommerce/pkg/money"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrProductUnavailable = errors.New("product is no longer available")
	// ErrPersistence wraps order-write failures; the transactional repo
	// guarantees no partial order exists when it surfaces.
	ErrPersistence = errors.New("persistence failure")
)

type Service struct {
	cart      CartStore
	catalog   CatalogReader
	coupons   CouponStore
	orders    OrderWriter
	publisher events.Publisher
	log       *slog.Logger

	maxConcurrent int
	now           func() time.Time
}

func NewService(cart CartStore, catalog CatalogReader, coupons CouponStore,
	orders OrderWriter, publisher events.Publisher, log *slog.Logger, maxConcurrent int) *Service {

	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		cart:          cart,
		catalog:       catalog,
		coupons:       coupons,
		orders:        orders,
		publisher:     publisher,
		log:           log,
		maxConcurrent: maxConcurrent,
		now:           time.Now,
	}
}

type CheckoutRequest struct {
	Owner      Owner
	Customer   orderdomain.Customer
	CouponCode string
}

// Checkout turns the owner's cart into an immutable order.
//
// The client-visible discount is advisory only: the coupon is re-validated
// and the discount recomputed here against the current cart total. An
// unknown or invalid coupon does not block checkout; the order simply
// carries no discount. A redeemed usage slot is consumed exactly once per
// successful application, even under concurrent checkouts.
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (orderdomain.Order, error) {
	cart, err := s.cart.GetCart(ctx, req.Owner)
	if err != nil {
		return orderdomain.Order{}, err
	}
	if len(cart.Lines) == 0 {
		return orderdomain.Order{}, ErrEmptyCart
	}

	items, total, err := s.priceCart(ctx, cart)
	if err != nil {
		return orderdomain.Order{}, err
	}

	discount := money.Zero()
	couponCode := strings.TrimSpace(req.CouponCode)
	if couponCode != "" {
		discount = s.applyCoupon(ctx, couponCode, total)
		if discount.IsZero() {
			couponCode = ""
		}
	}

	order := orderdomain.Order{
		OrderNumber:    newOrderNumber(),
		UserID:         req.Owner.UserID,
		Customer:       req.Customer,
		TotalAmount:    total.Sub(discount),
		DiscountAmount: discount,
		CouponCode:     couponCode,
		Status:         orderdomain.StatusPending,
		Items:          items,
	}

	created, err := s.orders.CreateOrderTx(ctx, order)
	if err != nil {
		return orderdomain.Order{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// The order exists from here on. Cart clearing and event publishing
	// are best-effort; their failure must not surface as a failed checkout.
	if err := s.cart.Clear(ctx, cart.ID); err != nil {
		s.log.Error("cart clear failed after order creation",
			slog.String("order_number", created.OrderNumber),
			slog.String("cart_id", cart.ID),
			slog.Any("err", err))
	}

	s.publishOrderPlaced(ctx, created)
	return created, nil
}

func (s *Service) priceCart(ctx context.Context, cart Cart) ([]orderdomain.OrderItem, decimal.Decimal, error) {
	items := make([]orderdomain.OrderItem, len(cart.Lines))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range cart.Lines {
		g.Go(func() error {
			line := cart.Lines[idx]
			if line.Quantity <= 0 {
				return fmt.Errorf("quantity must be greater than zero: %d", line.Quantity)
			}

			p, err := s.catalog.GetProduct(gctx, line.ProductID)
			if err != nil {
				return fmt.Errorf("get product %s: %w", line.ProductID, err)
			}
			if !p.Active {
				return fmt.Errorf("%w: %s", ErrProductUnavailable, p.Name)
			}

			// Freeze the effective unit price at time of purchase.
			items[idx] = orderdomain.OrderItem{
				ProductID: p.ID,
				Name:      p.Name,
				UnitPrice: p.EffectiveUnitPrice,
				Quantity:  line.Quantity,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, money.Zero(), err
	}

	total := money.Zero()
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return items, total, nil
}

// applyCoupon recomputes the discount server-side and consumes a usage
// slot only when the discount is actually applied. Every failure path
// returns zero: checkout proceeds without a discount.
func (s *Service) applyCoupon(ctx context.Context, code string, total decimal.Decimal) decimal.Decimal {
	c, err := s.coupons.FindByCode(ctx, code)
	if err != nil {
		s.log.Info("checkout coupon lookup failed, proceeding without discount",
			slog.String("code", code), slog.Any("err", err))
		return money.Zero()
	}

	discount := c.Discount(total, s.now())
	if !discount.IsPositive() {
		return money.Zero()
	}

	// Validity can change between the calculation above and the increment;
	// Redeem re-checks under the coupon row's serialization, so losing the
	// race here costs the discount, never an overrun of the usage limit.
	if _, err := s.coupons.Redeem(ctx, code); err != nil {
		s.log.Info("coupon redemption lost, proceeding without discount",
			slog.String("code", code), slog.Any("err", err))
		return money.Zero()
	}
	return discount
}

func (s *Service) publishOrderPlaced(ctx context.Context, o orderdomain.Order) {
	lines := make([]events.OrderLine, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, events.OrderLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	event := events.OrderPlacedEvent{
		EventID:        uuid.NewString(),
		OrderNumber:    o.OrderNumber,
		UserID:         o.UserID,
		TotalAmount:    o.TotalAmount,
		DiscountAmount: o.DiscountAmount,
		CouponCode:     o.CouponCode,
		Items:          lines,
		Timestamp:      s.now(),
	}

	if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
		s.log.Error("order event publish failed",
			slog.String("order_number", o.OrderNumber),
			slog.Any("err", err))
	}
}

// newOrderNumber returns a 20-character random identifier, collision odds
// negligible at storefront volume.
func newOrderNumber() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:20])
}
