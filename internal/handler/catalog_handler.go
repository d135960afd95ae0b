package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	catalogapp "github.com/oleeahmmed/ecommerce/internal/catalog/app"
	catalogdomain "github.com/oleeahmmed/ecommerce/internal/catalog/domain"
	"github.com/oleeahmmed/ecommerce/pkg/money"
)

type CatalogHandler struct {
	svc *catalogapp.Service
	log *slog.Logger
}

func NewCatalogHandler(svc *catalogapp.Service, log *slog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: log}
}

type productView struct {
	ID             string           `json:"id"`
	Slug           string           `json:"slug"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Price          decimal.Decimal  `json:"price"`
	DiscountPrice  *decimal.Decimal `json:"discount_price,omitempty"`
	CategoryID     string           `json:"category_id,omitempty"`
	EffectivePrice decimal.Decimal  `json:"effective_price"`
	OnSale         bool             `json:"on_sale"`
	SalePercentage int              `json:"sale_percentage"`
	InStock        bool             `json:"in_stock"`
	LowStock       bool             `json:"low_stock"`
}

func toProductView(p catalogdomain.Product) productView {
	return productView{
		ID:             p.ID,
		Slug:           p.Slug,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		DiscountPrice:  p.DiscountPrice,
		CategoryID:     p.CategoryID,
		EffectivePrice: p.EffectivePrice(),
		OnSale:         p.OnSale(),
		SalePercentage: p.SalePercentage(),
		InStock:        p.InStock(),
		LowStock:       p.LowStock(),
	}
}

func (h *CatalogHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	products, next, err := h.svc.ListProducts(c.Request.Context(),
		c.Query("q"), c.Query("category"), limit, c.Query("cursor"))
	if err != nil {
		if errors.Is(err, catalogapp.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT"})
			return
		}
		h.log.Error("product list failed", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL"})
		return
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}
	c.JSON(http.StatusOK, gin.H{"products": views, "next_cursor": next})
}

func (h *CatalogHandler) GetBySlug(c *gin.Context) {
	p, err := h.svc.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, catalogapp.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "NOT_FOUND"})
			return
		}
		h.log.Error("product get failed", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL"})
		return
	}
	c.JSON(http.StatusOK, toProductView(p))
}

type createProductRequest struct {
	Slug          string  `json:"slug" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         string  `json:"price" binding:"required"`
	DiscountPrice *string `json:"discount_price"`
	CategorySlug  string  `json:"category_slug"`
	Stock         int     `json:"stock" binding:"min=0"`
}

func (h *CatalogHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": err.Error()})
		return
	}

	price, err := money.Parse(req.Price)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": err.Error()})
		return
	}

	in := catalogapp.CreateProductInput{
		Slug:         req.Slug,
		Name:         req.Name,
		Description:  req.Description,
		Price:        price,
		CategorySlug: req.CategorySlug,
		Stock:        req.Stock,
	}
	if req.DiscountPrice != nil {
		dp, err := money.Parse(*req.DiscountPrice)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": err.Error()})
			return
		}
		in.DiscountPrice = &dp
	}

	p, err := h.svc.CreateProduct(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, catalogapp.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT"})
		case errors.Is(err, catalogapp.ErrNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": "unknown category"})
		case errors.Is(err, catalogapp.ErrAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "CONFLICT", "message": "slug is already taken"})
		default:
			h.log.Error("product create failed", slog.Any("err", err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL"})
		}
		return
	}
	c.JSON(http.StatusCreated, toProductView(p))
}

type categoryView struct {
	ID     string `json:"id"`
	Slug   string `json:"slug"`
	Name   string `json:"name"`
	Serial int    `json:"serial"`
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		h.log.Error("category list failed", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL"})
		return
	}

	views := make([]categoryView, 0, len(categories))
	for _, cat := range categories {
		views = append(views, categoryView{ID: cat.ID, Slug: cat.Slug, Name: cat.Name, Serial: cat.Serial})
	}
	c.JSON(http.StatusOK, gin.H{"categories": views})
}

type createCategoryRequest struct {
	Slug   string `json:"slug" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Serial int    `json:"serial" binding:"min=0"`
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": err.Error()})
		return
	}

	cat, err := h.svc.CreateCategory(c.Request.Context(), catalogapp.CreateCategoryInput{
		Slug:   req.Slug,
		Name:   req.Name,
		Serial: req.Serial,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalogapp.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT"})
		case errors.Is(err, catalogapp.ErrAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "CONFLICT", "message": "slug is already taken"})
		default:
			h.log.Error("category create failed", slog.Any("err", err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL"})
		}
		return
	}
	c.JSON(http.StatusCreated, categoryView{ID: cat.ID, Slug: cat.Slug, Name: cat.Name, Serial: cat.Serial})
}
