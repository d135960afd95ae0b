package app

import (
	"context"

	"github.com/oleeahmmed/ecommerce/internal/order/domain"
)

type OrderRepo interface {
	// CreateOrderTx persists the order header and all items in one
	// transaction: a failure anywhere leaves no partial order.
	CreateOrderTx(ctx context.Context, order domain.Order) (domain.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderNumber string, status domain.Status) error
}
