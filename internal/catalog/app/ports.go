package app

import (
	"context"

	"github.com/oleeahmmed/ecommerce/internal/catalog/domain"
)

type CategoryRepo interface {
	Create(ctx context.Context, c domain.Category) (domain.Category, error)
	GetBySlug(ctx context.Context, slug string) (domain.Category, error)
	// ListActive returns active categories ordered by serial, then name.
	ListActive(ctx context.Context) ([]domain.Category, error)
}

type ProductRepo interface {
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (domain.Product, error)
	// List filters by name search and/or category slug; empty values mean
	// no filter.
	List(ctx context.Context, query, categorySlug string, limit int, cursor string) ([]domain.Product, string, error)
}
