package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oleeahmmed/ecommerce/internal/settings"
)

type SettingsHandler struct {
	svc *settings.Service
	log *slog.Logger
}

func NewSettingsHandler(svc *settings.Service, log *slog.Logger) *SettingsHandler {
	return &SettingsHandler{svc: svc, log: log}
}

type settingsView struct {
	StoreName       string `json:"store_name"`
	ContactEmail    string `json:"contact_email"`
	ContactPhone    string `json:"contact_phone"`
	Address         string `json:"address"`
	Currency        string `json:"currency"`
	CurrencySymbol  string `json:"currency_symbol"`
	MaintenanceMode bool   `json:"maintenance_mode"`
	ShippingPolicy  string `json:"shipping_policy"`
	ReturnPolicy    string `json:"return_policy"`
}

func (h *SettingsHandler) Get(c *gin.Context) {
	s := h.svc.Current()
	c.JSON(http.StatusOK, settingsView(s))
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var req settingsView
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": err.Error()})
		return
	}

	if err := h.svc.Update(c.Request.Context(), settings.Settings(req)); err != nil {
		h.log.Error("settings update failed", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL"})
		return
	}
	c.JSON(http.StatusOK, settingsView(h.svc.Current()))
}
