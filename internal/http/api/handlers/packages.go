package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hostwire/hostpanel/internal/catalog"
	log "github.com/sirupsen/logrus"
)

// PackageHandler serves the hosting package catalog.
type PackageHandler struct {
	catalog *catalog.Manager
}

// NewPackageHandler constructs a PackageHandler.
func NewPackageHandler(manager *catalog.Manager) *PackageHandler {
	return &PackageHandler{catalog: manager}
}

// List returns every package row with its server, newest first.
func (h *PackageHandler) List(c *gin.Context) {
	rows, errList := h.catalog.List(c.Request.Context())
	if errList != nil {
		log.WithError(errList).Error("list packages")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch packages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": rows})
}

// ListGrouped returns the catalog folded into one entry per logical plan.
func (h *PackageHandler) ListGrouped(c *gin.Context) {
	rows, errList := h.catalog.List(c.Request.Context())
	if errList != nil {
		log.WithError(errList).Error("list packages")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch packages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": catalog.Group(rows)})
}

// Get returns one package row by id.
func (h *PackageHandler) Get(c *gin.Context) {
	row, errGet := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if errGet != nil {
		if errors.Is(errGet, catalog.ErrPackageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
			return
		}
		log.WithError(errGet).Error("get package")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch package"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": row})
}

// Create inserts a new package group, one row per priced billing cycle.
func (h *PackageHandler) Create(c *gin.Context) {
	var input catalog.PackageInput
	if errBind := c.ShouldBindJSON(&input); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	created, errCreate := h.catalog.Create(c.Request.Context(), input)
	if errCreate != nil {
		switch {
		case errors.Is(errCreate, catalog.ErrNameAndServerRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Package name and server are required"})
		case errors.Is(errCreate, catalog.ErrNoPositivePrice):
			c.JSON(http.StatusBadRequest, gin.H{"error": "At least one price must be provided"})
		default:
			log.WithError(errCreate).Error("create package group")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create package"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Package created successfully",
		"data":    created,
	})
}

// Update rewrites the whole group containing the addressed row.
func (h *PackageHandler) Update(c *gin.Context) {
	var input catalog.PackageInput
	if errBind := c.ShouldBindJSON(&input); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updated, errUpdate := h.catalog.Update(c.Request.Context(), c.Param("id"), input)
	if errUpdate != nil {
		if errors.Is(errUpdate, catalog.ErrPackageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
			return
		}
		log.WithError(errUpdate).Error("update package group")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update package"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Package updated successfully",
		"data":    updated,
	})
}

// Delete removes the whole group containing the addressed row.
func (h *PackageHandler) Delete(c *gin.Context) {
	removed, errDelete := h.catalog.Delete(c.Request.Context(), c.Param("id"))
	if errDelete != nil {
		if errors.Is(errDelete, catalog.ErrPackageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
			return
		}
		log.WithError(errDelete).Error("delete package group")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete package"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Package deleted successfully",
		"deleted": removed,
	})
}

// FetchProviderPackages proxies the server's control panel package list.
func (h *PackageHandler) FetchProviderPackages(c *gin.Context) {
	templates, errFetch := h.catalog.FetchProviderPackages(c.Request.Context(), c.Param("serverId"))
	if errFetch != nil {
		if errors.Is(errFetch, catalog.ErrServerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Server not found"})
			return
		}
		log.WithError(errFetch).Error("fetch provider packages")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch packages from server"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": templates})
}
