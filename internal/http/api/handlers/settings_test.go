package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hostwire/hostpanel/internal/models"
	"github.com/hostwire/hostpanel/internal/settings"
	"gorm.io/gorm"
)

func settingsEngine(conn *gorm.DB, admin models.Admin) *gin.Engine {
	handler := NewSettingsHandler(conn)
	engine := testEngine()
	engine.Use(withAdmin(admin))
	engine.GET("/api/settings/currency", handler.GetCurrency)
	engine.PUT("/api/settings/currency", handler.UpdateCurrency)
	engine.GET("/api/settings/tax", handler.GetTax)
	engine.PUT("/api/settings/tax", handler.UpdateTax)
	engine.GET("/api/settings/panel", handler.GetPanel)
	engine.PUT("/api/settings/panel", handler.UpdatePanel)
	engine.GET("/api/admin/currency", handler.AdminCurrency)
	return engine
}

func TestUpdateCurrencyValidatesValue(t *testing.T) {
	conn := testDB(t)
	admin := seedAdmin(t, conn)
	engine := settingsEngine(conn, admin)

	rec := doJSON(t, engine, http.MethodPut, "/api/settings/currency", map[string]string{
		"currency": "EUR",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Valid currency is required (INR or DOLLAR)" {
		t.Fatalf("error = %v", body["error"])
	}
}

func TestUpdateCurrencyPersists(t *testing.T) {
	conn := testDB(t)
	admin := seedAdmin(t, conn)
	engine := settingsEngine(conn, admin)

	rec := doJSON(t, engine, http.MethodPut, "/api/settings/currency", map[string]string{
		"currency": "inr",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var stored models.Admin
	if errFind := conn.First(&stored, "id = ?", admin.ID).Error; errFind != nil {
		t.Fatalf("reload admin: %v", errFind)
	}
	if stored.Currency != models.CurrencyINR {
		t.Fatalf("currency = %s", stored.Currency)
	}
}

func TestAdminCurrencyBareShape(t *testing.T) {
	conn := testDB(t)
	admin := seedAdmin(t, conn)
	engine := settingsEngine(conn, admin)

	rec := doJSON(t, engine, http.MethodGet, "/api/admin/currency", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["currency"] != models.CurrencyDollar {
		t.Fatalf("currency = %v", body["currency"])
	}
	if _, hasEnvelope := body["success"]; hasEnvelope {
		t.Fatalf("expected bare response, got envelope: %s", rec.Body.String())
	}
}

func TestGetTaxSeedsSingletonRow(t *testing.T) {
	conn := testDB(t)
	admin := seedAdmin(t, conn)
	engine := settingsEngine(conn, admin)

	rec := doJSON(t, engine, http.MethodGet, "/api/settings/tax", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var tax models.Tax
	if errFind := conn.First(&tax, "id = ?", models.TaxSingletonID).Error; errFind != nil {
		t.Fatalf("load tax: %v", errFind)
	}
	if tax.Name != "VAT" || tax.Value != "20" {
		t.Fatalf("unexpected default tax: %+v", tax)
	}
}

func TestUpdateTaxRewritesSingleton(t *testing.T) {
	conn := testDB(t)
	admin := seedAdmin(t, conn)
	engine := settingsEngine(conn, admin)

	rec := doJSON(t, engine, http.MethodPut, "/api/settings/tax", map[string]string{
		"name":  "GST",
		"value": "18",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var count int64
	if errCount := conn.Model(&models.Tax{}).Count(&count).Error; errCount != nil {
		t.Fatalf("count: %v", errCount)
	}
	if count != 1 {
		t.Fatalf("expected singleton tax row, got %d", count)
	}

	var tax models.Tax
	if errFind := conn.First(&tax, "id = ?", models.TaxSingletonID).Error; errFind != nil {
		t.Fatalf("load tax: %v", errFind)
	}
	if tax.Name != "GST" || tax.Value != "18" {
		t.Fatalf("tax not updated: %+v", tax)
	}
}

func TestUpdatePanelRefreshesSnapshot(t *testing.T) {
	conn := testDB(t)
	admin := seedAdmin(t, conn)
	engine := settingsEngine(conn, admin)

	enabled := false
	rec := doJSON(t, engine, http.MethodPut, "/api/settings/panel", map[string]any{
		"panelName":               "Acme Hosting",
		"performanceMockFallback": enabled,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	if settings.PanelName() != "Acme Hosting" {
		t.Fatalf("panel name = %s", settings.PanelName())
	}
	if settings.MockFallbackEnabled() {
		t.Fatalf("mock fallback still enabled")
	}
}
