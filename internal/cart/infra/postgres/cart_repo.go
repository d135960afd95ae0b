package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/oleeahmmed/ecommerce/internal/cart/app"
	"github.com/oleeahmmed/ecommerce/internal/cart/domain"
)

type CartRepo struct {
	db *sql.DB
}

func NewCartRepo(db *sql.DB) *CartRepo {
	return &CartRepo{db: db}
}

func (r *CartRepo) Get(ctx context.Context, owner domain.Owner) (domain.Cart, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, COALESCE(user_id, ''), COALESCE(session_key, ''), created_at, updated_at
		FROM carts
		WHERE ($1 <> '' AND user_id = $1) OR ($2 <> '' AND session_key = $2)`,
		owner.UserID, owner.SessionKey,
	)

	var cart domain.Cart
	var id uuid.UUID
	err := row.Scan(&id, &cart.Owner.UserID, &cart.Owner.SessionKey, &cart.CreatedAt, &cart.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Cart{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Cart{}, err
	}
	cart.ID = id.String()

	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, quantity FROM cart_items WHERE cart_id = $1 ORDER BY added_at`, id)
	if err != nil {
		return domain.Cart{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var productID uuid.UUID
		var item domain.CartItem
		if err := rows.Scan(&productID, &item.Quantity); err != nil {
			return domain.Cart{}, err
		}
		item.ProductID = productID.String()
		cart.Items = append(cart.Items, item)
	}
	return cart, rows.Err()
}

func (r *CartRepo) GetOrCreate(ctx context.Context, owner domain.Owner) (domain.Cart, error) {
	cart, err := r.Get(ctx, owner)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, app.ErrNotFound) {
		return domain.Cart{}, err
	}

	_, createErr := r.db.ExecContext(ctx, `
		INSERT INTO carts (user_id, session_key)
		VALUES (NULLIF($1, ''), NULLIF($2, ''))`,
		owner.UserID, owner.SessionKey,
	)
	if createErr == nil {
		return r.Get(ctx, owner)
	}

	// Lost the race to a concurrent first interaction; the row is there now.
	if isUniqueViolation(createErr) {
		return r.Get(ctx, owner)
	}
	return domain.Cart{}, createErr
}

// AddItem upserts: a product already in the cart gets its quantity
// incremented, never a duplicate row.
func (r *CartRepo) AddItem(ctx context.Context, cartID string, item domain.CartItem) error {
	cartUUID, err := uuid.Parse(cartID)
	if err != nil {
		return err
	}
	productUUID, err := uuid.Parse(item.ProductID)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		cartUUID, productUUID, item.Quantity,
	)
	return err
}

func (r *CartRepo) SetItemQuantity(ctx context.Context, cartID string, item domain.CartItem) error {
	cartUUID, err := uuid.Parse(cartID)
	if err != nil {
		return err
	}
	productUUID, err := uuid.Parse(item.ProductID)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE cart_items SET quantity = $3
		WHERE cart_id = $1 AND product_id = $2`,
		cartUUID, productUUID, item.Quantity,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return app.ErrItemNotFound
	}
	return nil
}

func (r *CartRepo) RemoveItem(ctx context.Context, cartID string, productID string) error {
	cartUUID, err := uuid.Parse(cartID)
	if err != nil {
		return err
	}
	productUUID, err := uuid.Parse(productID)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`,
		cartUUID, productUUID,
	)
	return err
}

func (r *CartRepo) Clear(ctx context.Context, cartID string) error {
	cartUUID, err := uuid.Parse(cartID)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartUUID)
	return err
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
