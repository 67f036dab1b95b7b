package api

import (
	"github.com/gin-gonic/gin"
	"github.com/hostwire/hostpanel/internal/catalog"
	"github.com/hostwire/hostpanel/internal/config"
	"github.com/hostwire/hostpanel/internal/controlpanel"
	"github.com/hostwire/hostpanel/internal/http/api/handlers"
	"gorm.io/gorm"
)

// RegisterRoutes wires every panel endpoint onto the engine. All /api routes
// except /api/login sit behind the admin session guard.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, cpClient *controlpanel.Client) {
	if r == nil || db == nil {
		return
	}

	healthHandler := handlers.NewHealthHandler(db)
	r.GET("/healthz", healthHandler.Healthz)

	apiGroup := r.Group("/api")

	authHandler := handlers.NewAuthHandler(db, cfg.JWT)
	apiGroup.POST("/login", authHandler.Login)

	authed := apiGroup.Group("")
	authed.Use(AdminAuthMiddleware(db, cfg.JWT))

	authed.POST("/logout", authHandler.Logout)

	packageHandler := handlers.NewPackageHandler(catalog.NewManager(db, cpClient))
	authed.GET("/packages", packageHandler.List)
	authed.POST("/packages", packageHandler.Create)
	authed.GET("/packages/grouped", packageHandler.ListGrouped)
	authed.GET("/packages/fetch-provider-packages/:serverId", packageHandler.FetchProviderPackages)
	authed.GET("/packages/:id", packageHandler.Get)
	authed.PUT("/packages/:id", packageHandler.Update)
	authed.DELETE("/packages/:id", packageHandler.Delete)

	serverHandler := handlers.NewServerHandler(db, cpClient)
	authed.GET("/servers", serverHandler.List)
	authed.POST("/servers", serverHandler.Create)
	authed.PUT("/servers/:id", serverHandler.Update)
	authed.DELETE("/servers/:id", serverHandler.Delete)
	authed.GET("/servers/performance/:id", serverHandler.Performance)

	registrarHandler := handlers.NewRegistrarHandler(db)
	authed.GET("/registrar", registrarHandler.List)
	authed.GET("/registrar/active", registrarHandler.ListActive)
	authed.POST("/registrar", registrarHandler.Create)
	authed.PUT("/registrar/:id", registrarHandler.Update)
	authed.DELETE("/registrar/:id", registrarHandler.Delete)
	authed.POST("/registrar/test-connection/:id", registrarHandler.TestConnection)
	authed.POST("/registrar/manual-sync/:id", registrarHandler.ManualSync)

	tldHandler := handlers.NewTldHandler(db)
	authed.GET("/tlds", tldHandler.List)
	authed.POST("/tlds", tldHandler.Create)
	authed.GET("/tlds/:id", tldHandler.Get)
	authed.PUT("/tlds/:id", tldHandler.Update)
	authed.DELETE("/tlds/:id", tldHandler.Delete)

	userHandler := handlers.NewUserHandler(db)
	authed.GET("/users", userHandler.List)
	authed.POST("/users", userHandler.Create)

	supportHandler := handlers.NewSupportHandler(db)
	authed.GET("/support/tickets", supportHandler.ListTickets)
	authed.POST("/support/reply/:ticketId", supportHandler.Reply)
	authed.PATCH("/support/status/:ticketId", supportHandler.UpdateStatus)

	settingsHandler := handlers.NewSettingsHandler(db)
	authed.GET("/settings/currency", settingsHandler.GetCurrency)
	authed.PUT("/settings/currency", settingsHandler.UpdateCurrency)
	authed.GET("/settings/tax", settingsHandler.GetTax)
	authed.PUT("/settings/tax", settingsHandler.UpdateTax)
	authed.GET("/settings/panel", settingsHandler.GetPanel)
	authed.PUT("/settings/panel", settingsHandler.UpdatePanel)
	authed.GET("/admin/currency", settingsHandler.AdminCurrency)
}
