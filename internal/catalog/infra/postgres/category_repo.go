package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/oleeahmmed/ecommerce/internal/catalog/app"
	"github.com/oleeahmmed/ecommerce/internal/catalog/domain"
)

type CategoryRepo struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

const categoryColumns = `id, slug, name, serial, is_active`

func (r *CategoryRepo) Create(ctx context.Context, c domain.Category) (domain.Category, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO categories (slug, name, serial, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING `+categoryColumns,
		c.Slug, c.Name, c.Serial, c.Active,
	)
	created, err := scanCategory(row)
	if isUniqueViolation(err) {
		return domain.Category{}, app.ErrAlreadyExists
	}
	return created, err
}

func (r *CategoryRepo) GetBySlug(ctx context.Context, slug string) (domain.Category, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Category{}, app.ErrNotFound
	}
	return c, err
}

func (r *CategoryRepo) ListActive(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+categoryColumns+` FROM categories WHERE is_active ORDER BY serial, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCategory(row rowScanner) (domain.Category, error) {
	var (
		id uuid.UUID
		c  domain.Category
	)
	err := row.Scan(&id, &c.Slug, &c.Name, &c.Serial, &c.Active)
	if err != nil {
		return domain.Category{}, err
	}
	c.ID = id.String()
	return c, nil
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
