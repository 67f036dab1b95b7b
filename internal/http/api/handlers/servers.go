package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hostwire/hostpanel/internal/controlpanel"
	"github.com/hostwire/hostpanel/internal/models"
	"github.com/hostwire/hostpanel/internal/settings"
	"github.com/hostwire/hostpanel/internal/util"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ServerHandler serves managed server CRUD and performance snapshots.
type ServerHandler struct {
	db       *gorm.DB
	cpClient *controlpanel.Client
}

// NewServerHandler constructs a ServerHandler.
func NewServerHandler(db *gorm.DB, cpClient *controlpanel.Client) *ServerHandler {
	return &ServerHandler{db: db, cpClient: cpClient}
}

// serverInput carries the create/update form fields.
type serverInput struct {
	HostName     string `json:"hostName"`
	IPAddress    string `json:"ipAddress"`
	Location     string `json:"location"`
	APIKey       string `json:"apiKey"`
	ControlPanel string `json:"controlPanel"`
	Status       string `json:"status"`
}

// List returns all servers, newest first.
func (h *ServerHandler) List(c *gin.Context) {
	var servers []models.Server
	if errFind := h.db.WithContext(c.Request.Context()).
		Order("created_at DESC").
		Find(&servers).Error; errFind != nil {
		log.WithError(errFind).Error("list servers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch servers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": servers})
}

// Create registers a new server. Hostname and IP address must both be unique.
func (h *ServerHandler) Create(c *gin.Context) {
	var input serverInput
	if errBind := c.ShouldBindJSON(&input); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	input.HostName = strings.TrimSpace(input.HostName)
	input.IPAddress = strings.TrimSpace(input.IPAddress)
	if input.HostName == "" || input.IPAddress == "" || input.APIKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Hostname, IP address and API key are required"})
		return
	}

	panel := strings.ToUpper(strings.TrimSpace(input.ControlPanel))
	if panel == "" {
		panel = models.ControlPanelCPanel
	}
	if !models.ValidControlPanel(panel) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid control panel type"})
		return
	}

	var count int64
	if errCount := h.db.WithContext(c.Request.Context()).
		Model(&models.Server{}).
		Where("host_name = ? OR ip_address = ?", input.HostName, input.IPAddress).
		Count(&count).Error; errCount != nil {
		log.WithError(errCount).Error("check server uniqueness")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create server"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Server with this hostname or IP address already exists"})
		return
	}

	server := models.Server{
		ID:           uuid.NewString(),
		HostName:     input.HostName,
		IPAddress:    input.IPAddress,
		Location:     strings.TrimSpace(input.Location),
		APIKey:       input.APIKey,
		ControlPanel: panel,
		Status:       models.ServerStatusActive,
	}
	if strings.TrimSpace(input.Status) != "" {
		server.Status = strings.ToUpper(strings.TrimSpace(input.Status))
	}

	if errCreate := h.db.WithContext(c.Request.Context()).Create(&server).Error; errCreate != nil {
		log.WithError(errCreate).Error("create server")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create server"})
		return
	}
	log.WithFields(log.Fields{
		"host":   server.HostName,
		"panel":  server.ControlPanel,
		"apiKey": util.HideAPIKey(server.APIKey),
	}).Info("server registered")

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Server added successfully",
		"data":    server,
	})
}

// Update modifies an existing server. Omitted fields keep their values; the
// uniqueness check excludes the server itself.
func (h *ServerHandler) Update(c *gin.Context) {
	var input serverInput
	if errBind := c.ShouldBindJSON(&input); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var server models.Server
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("id = ?", c.Param("id")).
		First(&server).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Server not found"})
			return
		}
		log.WithError(errFind).Error("find server")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update server"})
		return
	}

	if v := strings.TrimSpace(input.HostName); v != "" {
		server.HostName = v
	}
	if v := strings.TrimSpace(input.IPAddress); v != "" {
		server.IPAddress = v
	}
	if v := strings.TrimSpace(input.Location); v != "" {
		server.Location = v
	}
	if input.APIKey != "" {
		server.APIKey = input.APIKey
	}
	if v := strings.ToUpper(strings.TrimSpace(input.ControlPanel)); v != "" {
		if !models.ValidControlPanel(v) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid control panel type"})
			return
		}
		server.ControlPanel = v
	}
	if v := strings.ToUpper(strings.TrimSpace(input.Status)); v != "" {
		server.Status = v
	}

	var count int64
	if errCount := h.db.WithContext(c.Request.Context()).
		Model(&models.Server{}).
		Where("(host_name = ? OR ip_address = ?) AND id <> ?", server.HostName, server.IPAddress, server.ID).
		Count(&count).Error; errCount != nil {
		log.WithError(errCount).Error("check server uniqueness")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update server"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Server with this hostname or IP address already exists"})
		return
	}

	if errSave := h.db.WithContext(c.Request.Context()).Save(&server).Error; errSave != nil {
		log.WithError(errSave).Error("update server")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update server"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Server updated successfully",
		"data":    server,
	})
}

// Delete removes a server.
func (h *ServerHandler) Delete(c *gin.Context) {
	result := h.db.WithContext(c.Request.Context()).
		Where("id = ?", c.Param("id")).
		Delete(&models.Server{})
	if result.Error != nil {
		log.WithError(result.Error).Error("delete server")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete server"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Server not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Server deleted successfully"})
}

// Performance returns a live snapshot from the server's control panel. When
// the fetch fails and the mock fallback setting is on, generated metrics are
// served instead and the response is flagged as mock data.
func (h *ServerHandler) Performance(c *gin.Context) {
	var server models.Server
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("id = ?", c.Param("id")).
		First(&server).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Server not found"})
			return
		}
		log.WithError(errFind).Error("find server")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch server performance"})
		return
	}

	metrics, errFetch := h.cpClient.Performance(c.Request.Context(), &server)

	policy := controlpanel.MockFallbackPolicy{Enabled: settings.MockFallbackEnabled()}
	metrics, mocked, errFinal := policy.Apply(metrics, errFetch)
	if errFinal != nil {
		log.WithError(errFinal).WithField("server", server.HostName).Error("fetch server performance")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch server performance"})
		return
	}
	if mocked {
		log.WithError(errFetch).WithField("server", server.HostName).
			Warn("performance fetch failed, serving mock metrics")
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": metrics, "mock": mocked})
}
