package app

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/oleeahmmed/ecommerce/internal/catalog/domain"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

type Service struct {
	repo       ProductRepo
	categories CategoryRepo
}

func NewService(repo ProductRepo, categories CategoryRepo) *Service {
	return &Service{repo: repo, categories: categories}
}

type CreateProductInput struct {
	Slug          string
	Name          string
	Description   string
	Price         decimal.Decimal
	DiscountPrice *decimal.Decimal
	// CategorySlug is optional; when set the category must exist.
	CategorySlug string
	Stock        int
}

func (s *Service) CreateProduct(ctx context.Context, in CreateProductInput) (domain.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Slug = strings.TrimSpace(in.Slug)

	if in.Name == "" || in.Slug == "" {
		return domain.Product{}, ErrInvalidInput
	}
	if !in.Price.IsPositive() {
		return domain.Product{}, ErrInvalidInput
	}
	if in.DiscountPrice != nil && in.DiscountPrice.IsNegative() {
		return domain.Product{}, ErrInvalidInput
	}
	if in.Stock < 0 {
		return domain.Product{}, ErrInvalidInput
	}

	p := domain.Product{
		Slug:          in.Slug,
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		DiscountPrice: in.DiscountPrice,
		Stock:         in.Stock,
		Active:        true,
	}
	if slug := strings.TrimSpace(in.CategorySlug); slug != "" {
		cat, err := s.categories.GetBySlug(ctx, slug)
		if err != nil {
			return domain.Product{}, err
		}
		p.CategoryID = cat.ID
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) GetProductBySlug(ctx context.Context, slug string) (domain.Product, error) {
	if strings.TrimSpace(slug) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.GetBySlug(ctx, slug)
}

func (s *Service) ListProducts(ctx context.Context, query, categorySlug string, limit int, cursor string) ([]domain.Product, string, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, query, strings.TrimSpace(categorySlug), limit, cursor)
}

type CreateCategoryInput struct {
	Slug   string
	Name   string
	Serial int
}

func (s *Service) CreateCategory(ctx context.Context, in CreateCategoryInput) (domain.Category, error) {
	in.Slug = strings.TrimSpace(in.Slug)
	in.Name = strings.TrimSpace(in.Name)
	if in.Slug == "" || in.Name == "" || in.Serial < 0 {
		return domain.Category{}, ErrInvalidInput
	}

	return s.categories.Create(ctx, domain.Category{
		Slug:   in.Slug,
		Name:   in.Name,
		Serial: in.Serial,
		Active: true,
	})
}

// ListCategories feeds the storefront navigation: active only, display
// order.
func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.ListActive(ctx)
}
