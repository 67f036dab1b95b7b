package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hostwire/hostpanel/internal/db"
	"github.com/hostwire/hostpanel/internal/models"
	"github.com/hostwire/hostpanel/internal/security"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UserHandler serves hosting customer accounts.
type UserHandler struct {
	db *gorm.DB
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(conn *gorm.DB) *UserHandler {
	return &UserHandler{db: conn}
}

// userInput carries the create form fields.
type userInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Plan     string `json:"plan"`
}

// List returns verified customers, newest first, optionally filtered by
// status or a case-insensitive name or email search.
func (h *UserHandler) List(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context()).
		Where("verified = ?", true).
		Order("created_at DESC")

	if status := strings.ToUpper(strings.TrimSpace(c.Query("status"))); status != "" && status != "ALL" {
		query = query.Where("status = ?", status)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := db.NormalizeLikePattern(h.db, "%"+search+"%")
		likeName := db.CaseInsensitiveLikeExpr(h.db, "full_name")
		likeEmail := db.CaseInsensitiveLikeExpr(h.db, "email")
		query = query.Where(likeName+" OR "+likeEmail, pattern, pattern)
	}

	var users []models.User
	if errFind := query.Find(&users).Error; errFind != nil {
		log.WithError(errFind).Error("list users")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": users})
}

// Create registers a new customer account with a hashed password.
func (h *UserHandler) Create(c *gin.Context) {
	var input userInput
	if errBind := c.ShouldBindJSON(&input); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.FullName == "" || input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Full name, email and password are required"})
		return
	}

	var count int64
	if errCount := h.db.WithContext(c.Request.Context()).
		Model(&models.User{}).
		Where("email = ?", input.Email).
		Count(&count).Error; errCount != nil {
		log.WithError(errCount).Error("check user uniqueness")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User with this email already exists"})
		return
	}

	hash, errHash := security.HashPassword(input.Password)
	if errHash != nil {
		log.WithError(errHash).Error("hash user password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	user := models.User{
		ID:       uuid.NewString(),
		FullName: input.FullName,
		Email:    input.Email,
		Phone:    strings.TrimSpace(input.Phone),
		Password: hash,
		Plan:     "Basic",
		Status:   models.UserStatusActive,
	}
	if v := strings.TrimSpace(input.Plan); v != "" {
		user.Plan = v
	}

	if errCreate := h.db.WithContext(c.Request.Context()).Create(&user).Error; errCreate != nil {
		log.WithError(errCreate).Error("create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created successfully",
		"data":    user,
	})
}
