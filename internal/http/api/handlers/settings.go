package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hostwire/hostpanel/internal/models"
	"github.com/hostwire/hostpanel/internal/settings"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SettingsHandler serves panel-wide and per-admin settings.
type SettingsHandler struct {
	db *gorm.DB
}

// NewSettingsHandler constructs a SettingsHandler.
func NewSettingsHandler(conn *gorm.DB) *SettingsHandler {
	return &SettingsHandler{db: conn}
}

// adminFromContext returns the admin resolved by the session guard.
func adminFromContext(c *gin.Context) (models.Admin, bool) {
	value, ok := c.Get("admin")
	if !ok {
		return models.Admin{}, false
	}
	admin, ok := value.(models.Admin)
	return admin, ok
}

// GetCurrency returns the acting admin's currency preference.
func (h *SettingsHandler) GetCurrency(c *gin.Context) {
	admin, ok := adminFromContext(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"currency": admin.Currency}})
}

// currencyRequest is the currency preference payload.
type currencyRequest struct {
	Currency string `json:"currency"`
}

// UpdateCurrency sets the acting admin's currency preference.
func (h *SettingsHandler) UpdateCurrency(c *gin.Context) {
	var req currencyRequest
	if errBind := c.ShouldBindJSON(&req); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid currency is required (INR or DOLLAR)"})
		return
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency != models.CurrencyINR && currency != models.CurrencyDollar {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid currency is required (INR or DOLLAR)"})
		return
	}

	admin, ok := adminFromContext(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
		return
	}

	if errSave := h.db.WithContext(c.Request.Context()).
		Model(&models.Admin{}).
		Where("id = ?", admin.ID).
		Update("currency", currency).Error; errSave != nil {
		log.WithError(errSave).Error("update admin currency")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update currency"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Currency updated successfully",
		"data":    gin.H{"currency": currency},
	})
}

// AdminCurrency returns the acting admin's currency as a bare object, for
// lightweight polling by the dashboard header.
func (h *SettingsHandler) AdminCurrency(c *gin.Context) {
	admin, ok := adminFromContext(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"currency": admin.Currency})
}

// GetTax returns the singleton tax row, creating the default when missing.
func (h *SettingsHandler) GetTax(c *gin.Context) {
	tax, errGet := h.getOrCreateTax(c)
	if errGet != nil {
		log.WithError(errGet).Error("get tax")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tax settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": tax})
}

// taxRequest is the tax settings payload.
type taxRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// UpdateTax rewrites the singleton tax row.
func (h *SettingsHandler) UpdateTax(c *gin.Context) {
	var req taxRequest
	if errBind := c.ShouldBindJSON(&req); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Value = strings.TrimSpace(req.Value)
	if req.Name == "" || req.Value == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tax name and value are required"})
		return
	}

	tax, errGet := h.getOrCreateTax(c)
	if errGet != nil {
		log.WithError(errGet).Error("get tax")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tax settings"})
		return
	}

	tax.Name = req.Name
	tax.Value = req.Value
	if errSave := h.db.WithContext(c.Request.Context()).Save(&tax).Error; errSave != nil {
		log.WithError(errSave).Error("update tax")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tax settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Tax settings updated successfully",
		"data":    tax,
	})
}

// getOrCreateTax loads the singleton tax row, seeding the default on first
// access.
func (h *SettingsHandler) getOrCreateTax(c *gin.Context) (models.Tax, error) {
	var tax models.Tax
	errFind := h.db.WithContext(c.Request.Context()).
		Where("id = ?", models.TaxSingletonID).
		First(&tax).Error
	if errFind == nil {
		return tax, nil
	}
	if !errors.Is(errFind, gorm.ErrRecordNotFound) {
		return models.Tax{}, errFind
	}

	tax = models.Tax{ID: models.TaxSingletonID, Name: "VAT", Value: "20"}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&tax).Error; errCreate != nil {
		return models.Tax{}, errCreate
	}
	return tax, nil
}

// GetPanel returns the panel display settings from the in-memory snapshot.
func (h *SettingsHandler) GetPanel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"panelName":               settings.PanelName(),
			"performanceMockFallback": settings.MockFallbackEnabled(),
		},
	})
}

// panelRequest is the panel settings payload. Pointer fields allow partial
// updates.
type panelRequest struct {
	PanelName               *string `json:"panelName"`
	PerformanceMockFallback *bool   `json:"performanceMockFallback"`
}

// UpdatePanel persists panel settings and refreshes the snapshot so the new
// values take effect immediately.
func (h *SettingsHandler) UpdatePanel(c *gin.Context) {
	var req panelRequest
	if errBind := c.ShouldBindJSON(&req); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.PanelName == nil && req.PerformanceMockFallback == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No settings provided"})
		return
	}

	ctx := c.Request.Context()
	if req.PanelName != nil {
		name := strings.TrimSpace(*req.PanelName)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Panel name cannot be empty"})
			return
		}
		if errSet := settings.Set(ctx, h.db, settings.PanelNameKey, name); errSet != nil {
			log.WithError(errSet).Error("update panel name")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update panel settings"})
			return
		}
	}
	if req.PerformanceMockFallback != nil {
		if errSet := settings.Set(ctx, h.db, settings.PerformanceMockFallbackKey, *req.PerformanceMockFallback); errSet != nil {
			log.WithError(errSet).Error("update mock fallback setting")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update panel settings"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Panel settings updated successfully",
		"data": gin.H{
			"panelName":               settings.PanelName(),
			"performanceMockFallback": settings.MockFallbackEnabled(),
		},
	})
}
