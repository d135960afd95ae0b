package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	cartapp "github.com/oleeahmmed/ecommerce/internal/cart/app"
	checkoutapp "github.com/oleeahmmed/ecommerce/internal/checkout/app"
	orderdomain "github.com/oleeahmmed/ecommerce/internal/order/domain"
)

type CheckoutHandler struct {
	svc *checkoutapp.Service
	log *slog.Logger
}

func NewCheckoutHandler(svc *checkoutapp.Service, log *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{svc: svc, log: log}
}

type checkoutRequest struct {
	FullName            string `json:"full_name" binding:"required"`
	Email               string `json:"email" binding:"required,email"`
	Phone               string `json:"phone" binding:"required"`
	Address             string `json:"address" binding:"required"`
	SpecialInstructions string `json:"special_instructions"`
	CouponCode          string `json:"coupon_code"`
}

type checkoutResponse struct {
	OrderNumber    string             `json:"order_number"`
	Status         orderdomain.Status `json:"status"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	Message        string             `json:"message"`
}

func (h *CheckoutHandler) Checkout(c *gin.Context) {
	owner, ok := ownerFrom(c)
	if !ok {
		return
	}

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": err.Error()})
		return
	}

	order, err := h.svc.Checkout(c.Request.Context(), checkoutapp.CheckoutRequest{
		Owner: checkoutapp.Owner{UserID: owner.UserID, SessionKey: owner.SessionKey},
		Customer: orderdomain.Customer{
			FullName:            req.FullName,
			Email:               req.Email,
			Phone:               req.Phone,
			Address:             req.Address,
			SpecialInstructions: req.SpecialInstructions,
		},
		CouponCode: req.CouponCode,
	})
	if err != nil {
		h.writeCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusCreated, checkoutResponse{
		OrderNumber:    order.OrderNumber,
		Status:         order.Status,
		TotalAmount:    order.TotalAmount,
		DiscountAmount: order.DiscountAmount,
		Message:        "Order placed successfully",
	})
}

func (h *CheckoutHandler) writeCheckoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, checkoutapp.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "EMPTY_CART",
			"message": "Your cart is empty",
		})
	case errors.Is(err, cartapp.ErrNotFound):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "EMPTY_CART",
			"message": "Your cart is empty",
		})
	case errors.Is(err, checkoutapp.ErrProductUnavailable):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "PRODUCT_UNAVAILABLE",
			"message": err.Error(),
		})
	case errors.Is(err, checkoutapp.ErrPersistence):
		// Operators get the detail; the shopper gets a generic failure.
		h.log.Error("checkout persistence failure",
			slog.String("request_id", c.GetString("request_id")),
			slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "ORDER_FAILED",
			"message":    "We could not place your order, please try again",
			"request_id": c.GetString("request_id"),
		})
	default:
		h.log.Error("checkout failed", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL"})
	}
}
