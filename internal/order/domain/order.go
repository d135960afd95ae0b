package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// Customer is the contact block captured at checkout. Field validation
// (non-empty, well-formed email) happens at the transport boundary.
type Customer struct {
	FullName            string
	Email               string
	Phone               string
	Address             string
	SpecialInstructions string
}

// Order is a write-once snapshot. Everything except Status is frozen at
// creation; later product price changes never alter it.
type Order struct {
	ID          string
	OrderNumber string
	// UserID is empty for guest checkouts.
	UserID      string
	Customer    Customer
	TotalAmount decimal.Decimal
	// DiscountAmount records the coupon reduction applied at checkout,
	// zero when no coupon was used.
	DiscountAmount decimal.Decimal
	CouponCode     string
	Status         Status
	Items          []OrderItem
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OrderItem freezes quantity and the effective unit price at time of
// purchase. ProductID is kept for display lookups only.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int32
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt32(i.Quantity))
}
