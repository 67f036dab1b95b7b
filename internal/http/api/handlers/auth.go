package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hostwire/hostpanel/internal/config"
	"github.com/hostwire/hostpanel/internal/models"
	"github.com/hostwire/hostpanel/internal/security"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// tokenCookieName is the session cookie set on login and cleared on logout.
const tokenCookieName = "token"

// AuthHandler serves admin login and logout.
type AuthHandler struct {
	db     *gorm.DB
	jwtCfg config.JWTConfig
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, jwtCfg config.JWTConfig) *AuthHandler {
	return &AuthHandler{db: db, jwtCfg: jwtCfg}
}

// loginRequest is the login form payload.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies admin credentials and sets the session cookie. Unknown
// usernames and wrong passwords answer identically so the response does not
// reveal which part failed.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if errBind := c.ShouldBindJSON(&req); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	var admin models.Admin
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("username = ?", req.Username).
		First(&admin).Error; errFind != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !security.CheckPassword(admin.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, errSign := security.GenerateAdminToken(h.jwtCfg.Secret, admin.ID, admin.Username, h.jwtCfg.Expiry)
	if errSign != nil {
		log.WithError(errSign).Error("sign admin token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(tokenCookieName, token, int(h.jwtCfg.Expiry.Seconds()), "/", "", c.Request.TLS != nil, true)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Login successful"})
}

// Logout clears the session cookie. The JWT itself stays valid until expiry;
// only the cookie is removed.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(tokenCookieName, "", -1, "/", "", c.Request.TLS != nil, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logout successful"})
}
