package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hostwire/hostpanel/internal/config"
	"github.com/hostwire/hostpanel/internal/models"
	"github.com/hostwire/hostpanel/internal/security"
	"gorm.io/gorm"
)

// TokenCookieName is the cookie carrying the admin session JWT.
const TokenCookieName = "token"

// Context keys set by the session guard.
const (
	ContextAdminKey   = "admin"
	ContextAdminIDKey = "adminID"
)

// AdminAuthMiddleware validates the signed session cookie and resolves the
// acting admin into the request context. Every protected route goes through
// this single guard instead of re-checking the token per handler.
func AdminAuthMiddleware(db *gorm.DB, jwtCfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, errCookie := c.Cookie(TokenCookieName)
		if errCookie != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized - No token provided"})
			return
		}

		claims, errJWT := security.ParseAdminToken(jwtCfg.Secret, token)
		if errJWT != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		var admin models.Admin
		if errFind := db.WithContext(c.Request.Context()).
			Where("id = ? AND username = ?", claims.AdminID, claims.Username).
			First(&admin).Error; errFind != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
			return
		}

		c.Set(ContextAdminKey, admin)
		c.Set(ContextAdminIDKey, admin.ID)
		c.Next()
	}
}

// AdminFromContext returns the admin resolved by the session guard.
func AdminFromContext(c *gin.Context) (models.Admin, bool) {
	value, ok := c.Get(ContextAdminKey)
	if !ok {
		return models.Admin{}, false
	}
	admin, ok := value.(models.Admin)
	return admin, ok
}
