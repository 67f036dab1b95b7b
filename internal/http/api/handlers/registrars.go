package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hostwire/hostpanel/internal/models"
	"github.com/hostwire/hostpanel/internal/util"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// connectionTestTimeout bounds a registrar connectivity probe.
const connectionTestTimeout = 10 * time.Second

// RegistrarHandler serves registrar CRUD, connectivity tests and syncs.
type RegistrarHandler struct {
	db         *gorm.DB
	httpClient *http.Client
}

// NewRegistrarHandler constructs a RegistrarHandler.
func NewRegistrarHandler(db *gorm.DB) *RegistrarHandler {
	return &RegistrarHandler{
		db:         db,
		httpClient: &http.Client{Timeout: connectionTestTimeout},
	}
}

// registrarInput carries the create/update form fields.
type registrarInput struct {
	Name                 string   `json:"name"`
	Website              string   `json:"website"`
	APIEndpoint          string   `json:"apiEndpoint"`
	SandboxAPIEndpoint   string   `json:"sandboxApiEndpoint"`
	APIKey               string   `json:"apiKey"`
	SandboxMode          *bool    `json:"sandboxMode"`
	CommissionPercentage *float64 `json:"commissionPercentage"`
	Status               string   `json:"status"`
}

// List returns all registrars, newest first.
func (h *RegistrarHandler) List(c *gin.Context) {
	var registrars []models.Registrar
	if errFind := h.db.WithContext(c.Request.Context()).
		Order("created_at DESC").
		Find(&registrars).Error; errFind != nil {
		log.WithError(errFind).Error("list registrars")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch registrars"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": registrars})
}

// ListActive returns only registrars with ACTIVE status, for TLD assignment.
func (h *RegistrarHandler) ListActive(c *gin.Context) {
	var registrars []models.Registrar
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("status = ?", models.RegistrarStatusActive).
		Order("name ASC").
		Find(&registrars).Error; errFind != nil {
		log.WithError(errFind).Error("list active registrars")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch registrars"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": registrars})
}

// Create registers a new registrar.
func (h *RegistrarHandler) Create(c *gin.Context) {
	var input registrarInput
	if errBind := c.ShouldBindJSON(&input); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	input.Name = strings.TrimSpace(input.Name)
	input.APIEndpoint = strings.TrimSpace(input.APIEndpoint)
	if input.Name == "" || input.APIEndpoint == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Registrar name and API endpoint are required"})
		return
	}

	registrar := models.Registrar{
		Name:                 input.Name,
		Website:              strings.TrimSpace(input.Website),
		APIEndpoint:          input.APIEndpoint,
		SandboxAPIEndpoint:   strings.TrimSpace(input.SandboxAPIEndpoint),
		APIKey:               input.APIKey,
		CommissionPercentage: input.CommissionPercentage,
		Status:               models.RegistrarStatusActive,
	}
	if registrar.SandboxAPIEndpoint == "" {
		registrar.SandboxAPIEndpoint = registrar.APIEndpoint
	}
	if input.SandboxMode != nil {
		registrar.SandboxMode = *input.SandboxMode
	}
	if v := strings.ToUpper(strings.TrimSpace(input.Status)); v != "" {
		registrar.Status = v
	}

	if errCreate := h.db.WithContext(c.Request.Context()).Create(&registrar).Error; errCreate != nil {
		log.WithError(errCreate).Error("create registrar")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create registrar"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registrar added successfully",
		"data":    registrar,
	})
}

// Update modifies an existing registrar. Omitted fields keep their values.
func (h *RegistrarHandler) Update(c *gin.Context) {
	var input registrarInput
	if errBind := c.ShouldBindJSON(&input); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	registrar, ok := h.findRegistrar(c)
	if !ok {
		return
	}

	if v := strings.TrimSpace(input.Name); v != "" {
		registrar.Name = v
	}
	if v := strings.TrimSpace(input.Website); v != "" {
		registrar.Website = v
	}
	if v := strings.TrimSpace(input.APIEndpoint); v != "" {
		registrar.APIEndpoint = v
	}
	if v := strings.TrimSpace(input.SandboxAPIEndpoint); v != "" {
		registrar.SandboxAPIEndpoint = v
	}
	if input.APIKey != "" {
		registrar.APIKey = input.APIKey
	}
	if input.SandboxMode != nil {
		registrar.SandboxMode = *input.SandboxMode
	}
	if input.CommissionPercentage != nil {
		registrar.CommissionPercentage = input.CommissionPercentage
	}
	if v := strings.ToUpper(strings.TrimSpace(input.Status)); v != "" {
		registrar.Status = v
	}

	if errSave := h.db.WithContext(c.Request.Context()).Save(&registrar).Error; errSave != nil {
		log.WithError(errSave).Error("update registrar")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update registrar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Registrar updated successfully",
		"data":    registrar,
	})
}

// Delete removes a registrar.
func (h *RegistrarHandler) Delete(c *gin.Context) {
	result := h.db.WithContext(c.Request.Context()).
		Where("id = ?", c.Param("id")).
		Delete(&models.Registrar{})
	if result.Error != nil {
		log.WithError(result.Error).Error("delete registrar")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete registrar"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registrar not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Registrar deleted successfully"})
}

// TestConnection probes the registrar's API endpoint. Failures answer with
// HTTP 200 and success=false so the UI can render the diagnostic; a
// successful probe also stamps the last sync date.
func (h *RegistrarHandler) TestConnection(c *gin.Context) {
	registrar, ok := h.findRegistrar(c)
	if !ok {
		return
	}

	endpoint := registrar.Endpoint()
	if strings.TrimSpace(endpoint) == "" {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "No API endpoint configured"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), connectionTestTimeout)
	defer cancel()

	req, errReq := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if errReq != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Invalid API endpoint"})
		return
	}
	if registrar.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+registrar.APIKey)
	}

	start := time.Now()
	resp, errDo := h.httpClient.Do(req)
	latency := time.Since(start)

	if errDo != nil {
		message := "Connection failed"
		if errors.Is(errDo, context.DeadlineExceeded) {
			message = "Connection timed out"
		}
		log.WithError(errDo).WithFields(log.Fields{
			"registrar": registrar.Name,
			"apiKey":    util.HideAPIKey(registrar.APIKey),
		}).Warn("registrar connection test failed")
		c.JSON(http.StatusOK, gin.H{"success": false, "message": message})
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusInternalServerError {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "Registrar API returned an error",
			"status":  resp.StatusCode,
		})
		return
	}

	now := time.Now().UTC()
	if errSave := h.db.WithContext(c.Request.Context()).
		Model(&registrar).
		Update("last_sync_date", now).Error; errSave != nil {
		log.WithError(errSave).Error("stamp registrar sync date")
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Connection successful",
		"status":    resp.StatusCode,
		"latencyMs": latency.Milliseconds(),
	})
}

// ManualSync records a manual synchronization run against the registrar.
func (h *RegistrarHandler) ManualSync(c *gin.Context) {
	registrar, ok := h.findRegistrar(c)
	if !ok {
		return
	}

	now := time.Now().UTC()
	if errSave := h.db.WithContext(c.Request.Context()).
		Model(&registrar).
		Update("last_sync_date", now).Error; errSave != nil {
		log.WithError(errSave).Error("record manual sync")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record sync"})
		return
	}
	registrar.LastSyncDate = &now

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Sync completed successfully",
		"data":    registrar,
	})
}

// findRegistrar resolves the :id route param, writing the error response on
// failure.
func (h *RegistrarHandler) findRegistrar(c *gin.Context) (models.Registrar, bool) {
	var registrar models.Registrar
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("id = ?", c.Param("id")).
		First(&registrar).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Registrar not found"})
		} else {
			log.WithError(errFind).Error("find registrar")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch registrar"})
		}
		return models.Registrar{}, false
	}
	return registrar, true
}
