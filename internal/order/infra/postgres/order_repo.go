package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/oleeahmmed/ecommerce/internal/order/app"
	"github.com/oleeahmmed/ecommerce/internal/order/domain"
)

type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) execTX(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %w; rollback err: %v", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

const orderColumns = `id, order_number, COALESCE(user_id, ''), full_name, email, phone, address,
	special_instructions, total_amount, discount_amount, COALESCE(coupon_code, ''), status, created_at, updated_at`

func (r *OrderRepo) CreateOrderTx(ctx context.Context, order domain.Order) (domain.Order, error) {
	var created domain.Order

	err := r.execTX(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			INSERT INTO orders (order_number, user_id, full_name, email, phone, address,
				special_instructions, total_amount, discount_amount, coupon_code, status)
			VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11)
			RETURNING `+orderColumns,
			order.OrderNumber, order.UserID, order.Customer.FullName, order.Customer.Email,
			order.Customer.Phone, order.Customer.Address, order.Customer.SpecialInstructions,
			order.TotalAmount, order.DiscountAmount, order.CouponCode, string(order.Status),
		)

		o, err := scanOrder(row)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		orderUUID := uuid.MustParse(o.ID)
		for i, item := range order.Items {
			productUUID, err := uuid.Parse(item.ProductID)
			if err != nil {
				return fmt.Errorf("item %d: invalid product id: %w", i, err)
			}

			var itemID uuid.UUID
			err = tx.QueryRowContext(ctx, `
				INSERT INTO order_items (order_id, product_id, name, unit_price, quantity)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id`,
				orderUUID, productUUID, item.Name, item.UnitPrice, item.Quantity,
			).Scan(&itemID)
			if err != nil {
				return fmt.Errorf("insert item %d: %w", i, err)
			}

			o.Items = append(o.Items, domain.OrderItem{
				ID:        itemID.String(),
				OrderID:   o.ID,
				ProductID: item.ProductID,
				Name:      item.Name,
				UnitPrice: item.UnitPrice,
				Quantity:  item.Quantity,
			})
		}

		created = o
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	return created, nil
}

func (r *OrderRepo) GetByNumber(ctx context.Context, orderNumber string) (domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, orderNumber)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}

	items, err := r.listItems(ctx, o.ID)
	if err != nil {
		return domain.Order{}, err
	}
	o.Items = items
	return o, nil
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, orderNumber string, status domain.Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $2, updated_at = now() WHERE order_number = $1`,
		orderNumber, string(status),
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return app.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) listItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	orderUUID, err := uuid.Parse(orderID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, name, unit_price, quantity
		FROM order_items WHERE order_id = $1`, orderUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var id, productID uuid.UUID
		item := domain.OrderItem{OrderID: orderID}
		if err := rows.Scan(&id, &productID, &item.Name, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, err
		}
		item.ID = id.String()
		item.ProductID = productID.String()
		items = append(items, item)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var (
		id     uuid.UUID
		o      domain.Order
		status string
	)
	err := row.Scan(&id, &o.OrderNumber, &o.UserID, &o.Customer.FullName, &o.Customer.Email,
		&o.Customer.Phone, &o.Customer.Address, &o.Customer.SpecialInstructions,
		&o.TotalAmount, &o.DiscountAmount, &o.CouponCode, &status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return domain.Order{}, err
	}
	o.ID = id.String()
	o.Status, err = domain.ParseStatus(status)
	if err != nil {
		return domain.Order{}, err
	}
	return o, nil
}
