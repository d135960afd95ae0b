// Package events publishes order lifecycle messages for downstream
// consumers (fulfilment, notifications). Publishing is best-effort: a
// failed publish never undoes a placed order.
package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type OrderPlacedEvent struct {
	EventID        string          `json:"event_id"`
	OrderNumber    string          `json:"order_number"`
	UserID         string          `json:"user_id,omitempty"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	CouponCode     string          `json:"coupon_code,omitempty"`
	Items          []OrderLine     `json:"items"`
	Timestamp      time.Time       `json:"timestamp"`
}

type OrderLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int32           `json:"quantity"`
}

type Publisher interface {
	PublishOrderPlaced(ctx context.Context, event OrderPlacedEvent) error
}

// NopPublisher is used when no broker is configured, and in tests.
type NopPublisher struct{}

func (NopPublisher) PublishOrderPlaced(context.Context, OrderPlacedEvent) error { return nil }
