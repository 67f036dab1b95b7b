// Package app assembles the panel: database, settings snapshot, HTTP engine
// and graceful shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hostwire/hostpanel/internal/config"
	"github.com/hostwire/hostpanel/internal/controlpanel"
	"github.com/hostwire/hostpanel/internal/db"
	"github.com/hostwire/hostpanel/internal/http/api"
	"github.com/hostwire/hostpanel/internal/models"
	"github.com/hostwire/hostpanel/internal/security"
	"github.com/hostwire/hostpanel/internal/settings"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// shutdownTimeout bounds the drain of in-flight requests on shutdown.
const shutdownTimeout = 10 * time.Second

// Run boots the panel and blocks until ctx is cancelled or the listener
// fails.
func Run(ctx context.Context, cfg config.Config) error {
	conn, errOpen := db.Open(cfg.Database.DSN)
	if errOpen != nil {
		return fmt.Errorf("open database: %w", errOpen)
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return fmt.Errorf("migrate database: %w", errMigrate)
	}
	if errRefresh := settings.Refresh(ctx, conn); errRefresh != nil {
		return fmt.Errorf("load settings: %w", errRefresh)
	}
	if errSeed := ensureDefaultAdmin(ctx, conn); errSeed != nil {
		return fmt.Errorf("seed admin: %w", errSeed)
	}

	engine := newEngine(cfg, conn)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", server.Addr)
		if errServe := server.ListenAndServe(); errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			errCh <- errServe
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if errShutdown := server.Shutdown(shutdownCtx); errShutdown != nil {
			return fmt.Errorf("shutdown: %w", errShutdown)
		}
		return <-errCh
	case errServe := <-errCh:
		return errServe
	}
}

// newEngine builds the gin engine with recovery, request logging, CORS and
// all routes registered.
func newEngine(cfg config.Config, conn *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = false
	corsCfg.AllowOriginFunc = func(string) bool { return true }
	corsCfg.AllowCredentials = true
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	engine.Use(cors.New(corsCfg))

	cpClient := controlpanel.NewClient(cfg.ControlPanel.RequestTimeout)
	api.RegisterRoutes(engine, conn, cfg, cpClient)
	return engine
}

// requestLogger logs one structured line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"client":  c.ClientIP(),
		}).Info("request")
	}
}

// ensureDefaultAdmin creates the bootstrap admin account when no admin row
// exists. Credentials come from ADMIN_USERNAME and ADMIN_PASSWORD, defaulting
// to admin/admin for local development.
func ensureDefaultAdmin(ctx context.Context, conn *gorm.DB) error {
	var count int64
	if errCount := conn.WithContext(ctx).Model(&models.Admin{}).Count(&count).Error; errCount != nil {
		return errCount
	}
	if count > 0 {
		return nil
	}

	username := strings.TrimSpace(os.Getenv("ADMIN_USERNAME"))
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
		log.Warn("ADMIN_PASSWORD is unset, bootstrap admin uses the default password")
	}

	hash, errHash := security.HashPassword(password)
	if errHash != nil {
		return errHash
	}

	admin := models.Admin{
		Username: username,
		Password: hash,
		Currency: models.CurrencyDollar,
	}
	if errCreate := conn.WithContext(ctx).Create(&admin).Error; errCreate != nil {
		return errCreate
	}
	log.Infof("created bootstrap admin %q", username)
	return nil
}
