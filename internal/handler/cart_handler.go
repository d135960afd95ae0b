package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	cartapp "github.com/oleeahmmed/ecommerce/internal/cart/app"
	cartdomain "github.com/oleeahmmed/ecommerce/internal/cart/domain"
	catalogapp "github.com/oleeahmmed/ecommerce/internal/catalog/app"
)

type CartHandler struct {
	svc *cartapp.Service
	log *slog.Logger
}

func NewCartHandler(svc *cartapp.Service, log *slog.Logger) *CartHandler {
	return &CartHandler{svc: svc, log: log}
}

// ownerFrom resolves cart ownership from the authenticated user header or
// the anonymous session header. Authentication itself happens upstream.
func ownerFrom(c *gin.Context) (cartdomain.Owner, bool) {
	owner := cartdomain.Owner{
		UserID:     c.GetHeader("X-User-ID"),
		SessionKey: c.GetHeader("X-Session-Key"),
	}
	if owner.UserID != "" && owner.SessionKey != "" {
		// Authenticated requests win; the session cart was merged at login.
		owner.SessionKey = ""
	}
	if err := owner.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "INVALID_INPUT",
			"message": "a user id or session key is required",
		})
		return cartdomain.Owner{}, false
	}
	return owner, true
}

type cartLineView struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int32           `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type cartView struct {
	Items      []cartLineView  `json:"items"`
	TotalItems int64           `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

func (h *CartHandler) render(c *gin.Context, cart cartdomain.Cart) {
	lines, err := h.svc.PriceLines(c.Request.Context(), cart)
	if err != nil {
		h.log.Error("cart pricing failed", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL"})
		return
	}

	summary := cartdomain.Summarize(lines)
	view := cartView{
		Items:      make([]cartLineView, 0, len(lines)),
		TotalItems: summary.TotalItems,
		TotalPrice: summary.TotalPrice,
	}
	for _, l := range lines {
		view.Items = append(view.Items, cartLineView{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.EffectiveUnitPrice,
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal(),
		})
	}
	c.JSON(http.StatusOK, view)
}

func (h *CartHandler) GetCart(c *gin.Context) {
	owner, ok := ownerFrom(c)
	if !ok {
		return
	}

	cart, err := h.svc.GetCart(c.Request.Context(), owner)
	if err != nil {
		if errors.Is(err, cartapp.ErrNotFound) {
			c.JSON(http.StatusOK, cartView{Items: []cartLineView{}, TotalPrice: decimal.Zero})
			return
		}
		h.log.Error("get cart failed", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL"})
		return
	}
	h.render(c, cart)
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int32  `json:"quantity" binding:"required,min=1"`
}

func (h *CartHandler) AddItem(c *gin.Context) {
	owner, ok := ownerFrom(c)
	if !ok {
		return
	}

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": err.Error()})
		return
	}

	cart, err := h.svc.AddItem(c.Request.Context(), owner, cartdomain.CartItem{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.writeItemError(c, err)
		return
	}
	h.render(c, cart)
}

type setQuantityRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int32  `json:"quantity"`
}

func (h *CartHandler) SetItemQuantity(c *gin.Context) {
	owner, ok := ownerFrom(c)
	if !ok {
		return
	}

	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": err.Error()})
		return
	}

	cart, err := h.svc.SetItemQuantity(c.Request.Context(), owner, cartdomain.CartItem{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.writeItemError(c, err)
		return
	}
	h.render(c, cart)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	owner, ok := ownerFrom(c)
	if !ok {
		return
	}

	cart, err := h.svc.RemoveItem(c.Request.Context(), owner, c.Param("productID"))
	if err != nil {
		h.writeItemError(c, err)
		return
	}
	h.render(c, cart)
}

func (h *CartHandler) writeItemError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cartapp.ErrBadQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": err.Error()})
	case errors.Is(err, cartapp.ErrProductInactive):
		c.JSON(http.StatusConflict, gin.H{"error": "PRODUCT_UNAVAILABLE", "message": err.Error()})
	case errors.Is(err, cartapp.ErrNotFound), errors.Is(err, cartapp.ErrItemNotFound),
		errors.Is(err, catalogapp.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "NOT_FOUND", "message": err.Error()})
	default:
		h.log.Error("cart operation failed", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL"})
	}
}
