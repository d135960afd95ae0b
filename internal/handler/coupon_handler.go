package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	couponapp "github.com/oleeahmmed/ecommerce/internal/coupon/app"
	coupondomain "github.com/oleeahmmed/ecommerce/internal/coupon/domain"
	"github.com/oleeahmmed/ecommerce/pkg/money"
)

type CouponHandler struct {
	svc *couponapp.Service
	log *slog.Logger
}

func NewCouponHandler(svc *couponapp.Service, log *slog.Logger) *CouponHandler {
	return &CouponHandler{svc: svc, log: log}
}

type applyCouponRequest struct {
	CouponCode string `json:"coupon_code" binding:"required"`
	CartTotal  string `json:"cart_total" binding:"required"`
}

type applyCouponResponse struct {
	Valid          bool            `json:"valid"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Message        string          `json:"message"`
}

// Apply is the advisory pre-checkout check. Whatever it returns, the
// finalizer re-validates and recomputes at submission time.
func (h *CouponHandler) Apply(c *gin.Context) {
	var req applyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": err.Error()})
		return
	}

	// Currency amounts are validated here, before any calculator sees them.
	total, err := money.Parse(req.CartTotal)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": err.Error()})
		return
	}

	preview, err := h.svc.PreviewDiscount(c.Request.Context(), req.CouponCode, total)
	if err != nil {
		if errors.Is(err, couponapp.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": err.Error()})
			return
		}
		h.log.Error("coupon preview failed", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL"})
		return
	}

	c.JSON(http.StatusOK, applyCouponResponse{
		Valid:          preview.Valid,
		DiscountAmount: preview.Discount,
		Message:        preview.Message,
	})
}

type createCouponRequest struct {
	Code            string  `json:"code" binding:"required"`
	DiscountType    string  `json:"discount_type" binding:"required,oneof=percentage fixed"`
	DiscountValue   string  `json:"discount_value" binding:"required"`
	MinimumAmount   string  `json:"minimum_amount"`
	MaximumDiscount *string `json:"maximum_discount"`
	ValidFrom       string  `json:"valid_from" binding:"required"`
	ValidTo         string  `json:"valid_to" binding:"required"`
	UsageLimit      *int    `json:"usage_limit"`
}

func (h *CouponHandler) Create(c *gin.Context) {
	var req createCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": err.Error()})
		return
	}

	in, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": err.Error()})
		return
	}

	coupon, err := h.svc.CreateCoupon(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, couponapp.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": err.Error()})
		case errors.Is(err, couponapp.ErrAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "CONFLICT", "message": err.Error()})
		default:
			h.log.Error("coupon create failed", slog.Any("err", err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL"})
		}
		return
	}
	c.JSON(http.StatusCreated, coupon)
}

func (req createCouponRequest) toInput() (couponapp.CreateCouponInput, error) {
	var in couponapp.CreateCouponInput
	var err error

	if in.Type, err = coupondomain.ParseDiscountType(req.DiscountType); err != nil {
		return in, err
	}
	if in.Value, err = money.Parse(req.DiscountValue); err != nil {
		return in, err
	}
	in.MinimumAmount = money.Zero()
	if req.MinimumAmount != "" {
		if in.MinimumAmount, err = money.Parse(req.MinimumAmount); err != nil {
			return in, err
		}
	}
	if req.MaximumDiscount != nil {
		max, err := money.Parse(*req.MaximumDiscount)
		if err != nil {
			return in, err
		}
		in.MaximumDiscount = &max
	}
	if in.ValidFrom, err = time.Parse(time.RFC3339, req.ValidFrom); err != nil {
		return in, err
	}
	if in.ValidTo, err = time.Parse(time.RFC3339, req.ValidTo); err != nil {
		return in, err
	}
	in.Code = req.Code
	in.UsageLimit = req.UsageLimit
	return in, nil
}

func (h *CouponHandler) ListActive(c *gin.Context) {
	coupons, err := h.svc.ListActive(c.Request.Context())
	if err != nil {
		h.log.Error("coupon list failed", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"coupons": coupons})
}
