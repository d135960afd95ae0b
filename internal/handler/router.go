package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oleeahmmed/ecommerce/internal/settings"
)

type RouterDeps struct {
	Catalog  *CatalogHandler
	Cart     *CartHandler
	Coupon   *CouponHandler
	Checkout *CheckoutHandler
	Order    *OrderHandler
	Settings *SettingsHandler
	Store    *settings.Service
	Log      *slog.Logger
}

// NewRouter assembles the storefront and admin routes. Storefront traffic
// goes through the maintenance gate; admin and health endpoints do not,
// so the store can be switched back on while in maintenance.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	shop := r.Group("/api", Maintenance(deps.Store))
	{
		shop.GET("/products", deps.Catalog.List)
		shop.GET("/products/:slug", deps.Catalog.GetBySlug)
		shop.GET("/categories", deps.Catalog.ListCategories)

		shop.GET("/cart", deps.Cart.GetCart)
		shop.POST("/cart/items", deps.Cart.AddItem)
		shop.PUT("/cart/items", deps.Cart.SetItemQuantity)
		shop.DELETE("/cart/items/:productID", deps.Cart.RemoveItem)

		shop.POST("/coupons/apply", deps.Coupon.Apply)

		shop.POST("/checkout", deps.Checkout.Checkout)

		shop.GET("/orders", deps.Order.ListMine)
		shop.GET("/orders/:number", deps.Order.GetByNumber)
	}

	admin := r.Group("/api/admin")
	{
		admin.POST("/products", deps.Catalog.Create)
		admin.POST("/categories", deps.Catalog.CreateCategory)
		admin.POST("/coupons", deps.Coupon.Create)
		admin.GET("/coupons", deps.Coupon.ListActive)
		admin.PUT("/orders/:number/status", deps.Order.UpdateStatus)
		admin.GET("/settings", deps.Settings.Get)
		admin.PUT("/settings", deps.Settings.Update)
	}

	return r
}
