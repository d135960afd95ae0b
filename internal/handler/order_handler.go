package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	orderapp "github.com/oleeahmmed/ecommerce/internal/order/app"
	orderdomain "github.com/oleeahmmed/ecommerce/internal/order/domain"
)

type OrderHandler struct {
	svc *orderapp.Service
	log *slog.Logger
}

func NewOrderHandler(svc *orderapp.Service, log *slog.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, log: log}
}

type orderItemView struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int32           `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type orderView struct {
	OrderNumber    string             `json:"order_number"`
	Status         orderdomain.Status `json:"status"`
	FullName       string             `json:"full_name"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone"`
	Address        string             `json:"address"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	CouponCode     string             `json:"coupon_code,omitempty"`
	Items          []orderItemView    `json:"items"`
	CreatedAt      string             `json:"created_at"`
}

func toOrderView(o orderdomain.Order) orderView {
	v := orderView{
		OrderNumber:    o.OrderNumber,
		Status:         o.Status,
		FullName:       o.Customer.FullName,
		Email:          o.Customer.Email,
		Phone:          o.Customer.Phone,
		Address:        o.Customer.Address,
		TotalAmount:    o.TotalAmount,
		DiscountAmount: o.DiscountAmount,
		CouponCode:     o.CouponCode,
		Items:          make([]orderItemView, 0, len(o.Items)),
		CreatedAt:      o.CreatedAt.Format(time.RFC3339),
	}
	for _, it := range o.Items {
		v.Items = append(v.Items, orderItemView{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			LineTotal: it.LineTotal(),
		})
	}
	return v
}

// GetByNumber serves the confirmation page. The requester header scopes
// visibility: a user sees only their own orders, a guest order is visible
// only through its number.
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	o, err := h.svc.GetByNumber(c.Request.Context(), c.Param("number"), c.GetHeader("X-User-ID"))
	if err != nil {
		switch {
		case errors.Is(err, orderapp.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "NOT_FOUND"})
		case errors.Is(err, orderapp.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT"})
		default:
			h.log.Error("order lookup failed", slog.Any("err", err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL"})
		}
		return
	}
	c.JSON(http.StatusOK, toOrderView(o))
}

func (h *OrderHandler) ListMine(c *gin.Context) {
	orders, err := h.svc.ListByUser(c.Request.Context(), c.GetHeader("X-User-ID"))
	if err != nil {
		if errors.Is(err, orderapp.ErrInvalidInput) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHENTICATED"})
			return
		}
		h.log.Error("order history failed", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL"})
		return
	}

	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, toOrderView(o))
	}
	c.JSON(http.StatusOK, gin.H{"orders": views})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": err.Error()})
		return
	}

	err := h.svc.UpdateStatus(c.Request.Context(), c.Param("number"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, orderapp.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT"})
		case errors.Is(err, orderapp.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "NOT_FOUND"})
		default:
			h.log.Error("order status update failed", slog.Any("err", err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_number": c.Param("number"), "status": req.Status})
}
