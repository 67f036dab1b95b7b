package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hostwire/hostpanel/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TldHandler serves TLD pricing CRUD.
type TldHandler struct {
	db *gorm.DB
}

// NewTldHandler constructs a TldHandler.
func NewTldHandler(db *gorm.DB) *TldHandler {
	return &TldHandler{db: db}
}

// tldInput carries the create/update form fields. Booleans and years are
// pointers so omitted fields can keep their stored values on update.
type tldInput struct {
	TldExtension string `json:"tldExtension"`
	Category     string `json:"category"`
	BillingCycle string `json:"billingCycle"`

	RegistrationPrice string `json:"registrationPrice"`
	RenewalPrice      string `json:"renewalPrice"`
	TransferPrice     string `json:"transferPrice"`
	RedemptionPrice   string `json:"redemptionPrice"`

	MinimumYears *int `json:"minimumYears"`
	MaximumYears *int `json:"maximumYears"`

	Status        *bool `json:"status"`
	AutoRenewal   *bool `json:"autoRenewal"`
	WhoisPrivacy  *bool `json:"whoisPrivacy"`
	DnssecPrivacy *bool `json:"dnssecPrivacy"`

	RegistrarID uint64 `json:"registrarId"`
}

// normalizeExtension lowercases the extension and guarantees a leading dot.
func normalizeExtension(raw string) string {
	ext := strings.ToLower(strings.TrimSpace(raw))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// List returns all TLDs with their registrars.
func (h *TldHandler) List(c *gin.Context) {
	var tlds []models.Tld
	if errFind := h.db.WithContext(c.Request.Context()).
		Preload("Registrar").
		Order("tld_extension ASC").
		Find(&tlds).Error; errFind != nil {
		log.WithError(errFind).Error("list tlds")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch TLDs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": tlds})
}

// Get returns one TLD with its registrar.
func (h *TldHandler) Get(c *gin.Context) {
	var tld models.Tld
	if errFind := h.db.WithContext(c.Request.Context()).
		Preload("Registrar").
		Where("id = ?", c.Param("id")).
		First(&tld).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "TLD not found"})
			return
		}
		log.WithError(errFind).Error("get tld")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch TLD"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": tld})
}

// Create adds a new TLD. The extension must not already exist and the
// registrar must be a known active one.
func (h *TldHandler) Create(c *gin.Context) {
	var input tldInput
	if errBind := c.ShouldBindJSON(&input); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ext := normalizeExtension(input.TldExtension)
	if ext == "" || strings.TrimSpace(input.RegistrationPrice) == "" || strings.TrimSpace(input.RenewalPrice) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "TLD extension, registration price and renewal price are required"})
		return
	}
	if input.RegistrarID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Registrar is required"})
		return
	}

	var registrar models.Registrar
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("id = ?", input.RegistrarID).
		First(&registrar).Error; errFind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Registrar not found"})
		return
	}

	var count int64
	if errCount := h.db.WithContext(c.Request.Context()).
		Model(&models.Tld{}).
		Where("tld_extension = ?", ext).
		Count(&count).Error; errCount != nil {
		log.WithError(errCount).Error("check tld uniqueness")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create TLD"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "TLD with this extension already exists"})
		return
	}

	tld := models.Tld{
		ID:                uuid.NewString(),
		TldExtension:      ext,
		Category:          "generic",
		BillingCycle:      "annually",
		RegistrationPrice: strings.TrimSpace(input.RegistrationPrice),
		RenewalPrice:      strings.TrimSpace(input.RenewalPrice),
		TransferPrice:     "0.00",
		RedemptionPrice:   "0.00",
		MinimumYears:      1,
		MaximumYears:      10,
		Status:            true,
		AutoRenewal:       true,
		WhoisPrivacy:      true,
		DnssecPrivacy:     true,
		RegistrarID:       input.RegistrarID,
	}
	if v := strings.TrimSpace(input.Category); v != "" {
		tld.Category = v
	}
	if v := strings.TrimSpace(input.BillingCycle); v != "" {
		tld.BillingCycle = v
	}
	if v := strings.TrimSpace(input.TransferPrice); v != "" {
		tld.TransferPrice = v
	}
	if v := strings.TrimSpace(input.RedemptionPrice); v != "" {
		tld.RedemptionPrice = v
	}
	if input.MinimumYears != nil {
		tld.MinimumYears = *input.MinimumYears
	}
	if input.MaximumYears != nil {
		tld.MaximumYears = *input.MaximumYears
	}
	if input.Status != nil {
		tld.Status = *input.Status
	}
	if input.AutoRenewal != nil {
		tld.AutoRenewal = *input.AutoRenewal
	}
	if input.WhoisPrivacy != nil {
		tld.WhoisPrivacy = *input.WhoisPrivacy
	}
	if input.DnssecPrivacy != nil {
		tld.DnssecPrivacy = *input.DnssecPrivacy
	}

	if errCreate := h.db.WithContext(c.Request.Context()).Create(&tld).Error; errCreate != nil {
		log.WithError(errCreate).Error("create tld")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create TLD"})
		return
	}

	tld.Registrar = &registrar
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "TLD added successfully",
		"data":    tld,
	})
}

// Update modifies an existing TLD. Omitted fields keep their values; changing
// the extension re-checks uniqueness.
func (h *TldHandler) Update(c *gin.Context) {
	var input tldInput
	if errBind := c.ShouldBindJSON(&input); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var tld models.Tld
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("id = ?", c.Param("id")).
		First(&tld).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "TLD not found"})
			return
		}
		log.WithError(errFind).Error("find tld")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update TLD"})
		return
	}

	if ext := normalizeExtension(input.TldExtension); ext != "" && ext != tld.TldExtension {
		var count int64
		if errCount := h.db.WithContext(c.Request.Context()).
			Model(&models.Tld{}).
			Where("tld_extension = ? AND id <> ?", ext, tld.ID).
			Count(&count).Error; errCount != nil {
			log.WithError(errCount).Error("check tld uniqueness")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update TLD"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "TLD with this extension already exists"})
			return
		}
		tld.TldExtension = ext
	}

	if input.RegistrarID != 0 && input.RegistrarID != tld.RegistrarID {
		var registrar models.Registrar
		if errFind := h.db.WithContext(c.Request.Context()).
			Where("id = ?", input.RegistrarID).
			First(&registrar).Error; errFind != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Registrar not found"})
			return
		}
		tld.RegistrarID = input.RegistrarID
	}

	if v := strings.TrimSpace(input.Category); v != "" {
		tld.Category = v
	}
	if v := strings.TrimSpace(input.BillingCycle); v != "" {
		tld.BillingCycle = v
	}
	if v := strings.TrimSpace(input.RegistrationPrice); v != "" {
		tld.RegistrationPrice = v
	}
	if v := strings.TrimSpace(input.RenewalPrice); v != "" {
		tld.RenewalPrice = v
	}
	if v := strings.TrimSpace(input.TransferPrice); v != "" {
		tld.TransferPrice = v
	}
	if v := strings.TrimSpace(input.RedemptionPrice); v != "" {
		tld.RedemptionPrice = v
	}
	if input.MinimumYears != nil {
		tld.MinimumYears = *input.MinimumYears
	}
	if input.MaximumYears != nil {
		tld.MaximumYears = *input.MaximumYears
	}
	if input.Status != nil {
		tld.Status = *input.Status
	}
	if input.AutoRenewal != nil {
		tld.AutoRenewal = *input.AutoRenewal
	}
	if input.WhoisPrivacy != nil {
		tld.WhoisPrivacy = *input.WhoisPrivacy
	}
	if input.DnssecPrivacy != nil {
		tld.DnssecPrivacy = *input.DnssecPrivacy
	}

	if errSave := h.db.WithContext(c.Request.Context()).Save(&tld).Error; errSave != nil {
		log.WithError(errSave).Error("update tld")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update TLD"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "TLD updated successfully",
		"data":    tld,
	})
}

// Delete removes a TLD.
func (h *TldHandler) Delete(c *gin.Context) {
	result := h.db.WithContext(c.Request.Context()).
		Where("id = ?", c.Param("id")).
		Delete(&models.Tld{})
	if result.Error != nil {
		log.WithError(result.Error).Error("delete tld")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete TLD"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "TLD not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "TLD deleted successfully"})
}
