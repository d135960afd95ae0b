package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oleeahmmed/ecommerce/internal/catalog/app"
	"github.com/oleeahmmed/ecommerce/internal/catalog/domain"
)

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

const productColumns = `id, slug, name, description, price, discount_price, COALESCE(category_id::text, ''), stock, is_active, created_at, updated_at`

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	var discount decimal.NullDecimal
	if p.DiscountPrice != nil {
		discount = decimal.NullDecimal{Decimal: *p.DiscountPrice, Valid: true}
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO products (slug, name, description, price, discount_price, category_id, stock, is_active)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid, $7, $8)
		RETURNING `+productColumns,
		p.Slug, p.Name, p.Description, p.Price, discount, p.CategoryID, p.Stock, p.Active,
	)
	created, err := scanProduct(row)
	if isUniqueViolation(err) {
		return domain.Product{}, app.ErrAlreadyExists
	}
	return created, err
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	prodID, err := uuid.Parse(id)
	if err != nil {
		return domain.Product{}, app.ErrInvalidInput
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+` FROM products WHERE id = $1`, prodID)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, app.ErrNotFound
	}
	return p, err
}

func (r *ProductRepo) GetBySlug(ctx context.Context, slug string) (domain.Product, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, app.ErrNotFound
	}
	return p, err
}

func (r *ProductRepo) List(ctx context.Context, query, categorySlug string, limit int, cursor string) ([]domain.Product, string, error) {
	var cur uuid.NullUUID
	if strings.TrimSpace(cursor) != "" {
		uid, err := uuid.Parse(strings.TrimSpace(cursor))
		if err != nil {
			return nil, "", app.ErrInvalidInput
		}
		cur = uuid.NullUUID{UUID: uid, Valid: true}
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE is_active
		  AND ($1 = '' OR name ILIKE '%' || $1 || '%')
		  AND ($5 = '' OR category_id = (SELECT id FROM categories WHERE slug = $5))
		  AND (NOT $3::bool OR id > $2)
		ORDER BY id
		LIMIT $4`,
		strings.TrimSpace(query), cur.UUID, cur.Valid, limit, categorySlug,
	)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	out := make([]domain.Product, 0, limit)
	var nextCursor string
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, "", err
		}
		out = append(out, p)
		nextCursor = p.ID
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}
	if len(out) < limit {
		nextCursor = ""
	}
	return out, nextCursor, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		id        uuid.UUID
		p         domain.Product
		discount  decimal.NullDecimal
		createdAt time.Time
		updatedAt time.Time
	)
	err := row.Scan(&id, &p.Slug, &p.Name, &p.Description, &p.Price, &discount,
		&p.CategoryID, &p.Stock, &p.Active, &createdAt, &updatedAt)
	if err != nil {
		return domain.Product{}, err
	}
	p.ID = id.String()
	if discount.Valid {
		d := discount.Decimal
		p.DiscountPrice = &d
	}
	p.CreatedAt = createdAt
	p.UpdatedAt = updatedAt
	return p, nil
}
