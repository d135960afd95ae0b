package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	couponapp "github.com/oleeahmmed/ecommerce/internal/coupon/app"
	coupondomain "github.com/oleeahmmed/ecommerce/internal/coupon/domain"
)

type stubCouponRepo struct {
	byCode map[string]coupondomain.Coupon
}

func (r *stubCouponRepo) Create(_ context.Context, c coupondomain.Coupon) (coupondomain.Coupon, error) {
	if _, taken := r.byCode[c.Code]; taken {
		return coupondomain.Coupon{}, couponapp.ErrAlreadyExists
	}
	r.byCode[c.Code] = c
	return c, nil
}

func (r *stubCouponRepo) FindByCode(_ context.Context, code string) (coupondomain.Coupon, error) {
	c, ok := r.byCode[code]
	if !ok {
		return coupondomain.Coupon{}, couponapp.ErrNotFound
	}
	return c, nil
}

func (r *stubCouponRepo) ListActive(_ context.Context) ([]coupondomain.Coupon, error) {
	out := make([]coupondomain.Coupon, 0, len(r.byCode))
	for _, c := range r.byCode {
		out = append(out, c)
	}
	return out, nil
}

func (r *stubCouponRepo) Redeem(_ context.Context, code string, _ time.Time) (coupondomain.Coupon, error) {
	c, ok := r.byCode[code]
	if !ok {
		return coupondomain.Coupon{}, couponapp.ErrNotFound
	}
	c.UsedCount++
	r.byCode[code] = c
	return c, nil
}

func newApplyRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	max := decimal.NewFromInt(500)
	repo := &stubCouponRepo{byCode: map[string]coupondomain.Coupon{
		"MEGA30": {
			Code:            "MEGA30",
			Type:            coupondomain.DiscountPercentage,
			Value:           decimal.NewFromInt(30),
			MinimumAmount:   decimal.NewFromInt(2000),
			MaximumDiscount: &max,
			ValidFrom:       time.Now().Add(-time.Hour),
			ValidTo:         time.Now().Add(time.Hour),
			Active:          true,
		},
	}}

	h := NewCouponHandler(couponapp.NewService(repo), slog.Default())
	r := gin.New()
	r.POST("/api/coupons/apply", h.Apply)
	return r
}

func postApply(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/coupons/apply", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestApplyCouponCapped(t *testing.T) {
	r := newApplyRouter(t)

	w := postApply(t, r, `{"coupon_code":"MEGA30","cart_total":"3000"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		Valid          bool            `json:"valid"`
		DiscountAmount decimal.Decimal `json:"discount_amount"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Valid {
		t.Fatal("expected coupon to be valid")
	}
	// 30% of 3000 is 900, capped at 500.
	if !resp.DiscountAmount.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("discount = %s, want 500", resp.DiscountAmount)
	}
}

func TestApplyCouponBelowMinimum(t *testing.T) {
	r := newApplyRouter(t)

	w := postApply(t, r, `{"coupon_code":"MEGA30","cart_total":"1999.99"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Valid          bool            `json:"valid"`
		DiscountAmount decimal.Decimal `json:"discount_amount"`
		Message        string          `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Valid {
		t.Fatal("expected coupon to be rejected below the minimum")
	}
	if !resp.DiscountAmount.IsZero() {
		t.Fatalf("discount = %s, want 0", resp.DiscountAmount)
	}
	if !strings.Contains(resp.Message, "minimum order amount") {
		t.Fatalf("message = %q, want the minimum explained", resp.Message)
	}
}

func TestApplyCouponUnknownCode(t *testing.T) {
	r := newApplyRouter(t)

	w := postApply(t, r, `{"coupon_code":"NOPE","cart_total":"3000"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Valid   bool   `json:"valid"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Valid {
		t.Fatal("unknown code must not validate")
	}
	if resp.Message != "Invalid coupon code" {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestCreateCouponDuplicateCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &stubCouponRepo{byCode: map[string]coupondomain.Coupon{}}
	h := NewCouponHandler(couponapp.NewService(repo), slog.Default())
	r := gin.New()
	r.POST("/api/admin/coupons", h.Create)

	body := `{"code":"SAVE50","discount_type":"fixed","discount_value":"50",` +
		`"valid_from":"2026-01-01T00:00:00Z","valid_to":"2026-12-31T00:00:00Z"}`

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/coupons", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := post(); w.Code != http.StatusCreated {
		t.Fatalf("first create: status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}
	w := post()
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate create: status = %d, want %d: %s", w.Code, http.StatusConflict, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "CONFLICT") {
		t.Fatalf("duplicate create body = %s, want CONFLICT error code", w.Body.String())
	}
}

func TestApplyCouponRejectsMalformedTotal(t *testing.T) {
	r := newApplyRouter(t)

	for _, total := range []string{"-5", "abc", ""} {
		w := postApply(t, r, `{"coupon_code":"MEGA30","cart_total":"`+total+`"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("cart_total=%q: status = %d, want %d", total, w.Code, http.StatusBadRequest)
		}
	}
}
