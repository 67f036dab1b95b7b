package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hostwire/hostpanel/internal/models"
	"gorm.io/gorm"
)

func registrarEngine(conn *gorm.DB) *gin.Engine {
	handler := NewRegistrarHandler(conn)
	engine := testEngine()
	engine.GET("/api/registrar", handler.List)
	engine.GET("/api/registrar/active", handler.ListActive)
	engine.POST("/api/registrar", handler.Create)
	engine.PUT("/api/registrar/:id", handler.Update)
	engine.DELETE("/api/registrar/:id", handler.Delete)
	engine.POST("/api/registrar/test-connection/:id", handler.TestConnection)
	engine.POST("/api/registrar/manual-sync/:id", handler.ManualSync)
	return engine
}

func TestCreateRegistrarDefaultsSandboxEndpoint(t *testing.T) {
	conn := testDB(t)
	engine := registrarEngine(conn)

	rec := doJSON(t, engine, http.MethodPost, "/api/registrar", map[string]any{
		"name":        "Namecheap",
		"apiEndpoint": "https://api.namecheap.com",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var registrar models.Registrar
	if errFind := conn.First(&registrar).Error; errFind != nil {
		t.Fatalf("load registrar: %v", errFind)
	}
	if registrar.SandboxAPIEndpoint != registrar.APIEndpoint {
		t.Fatalf("sandbox endpoint = %q", registrar.SandboxAPIEndpoint)
	}
	if registrar.Status != models.RegistrarStatusActive {
		t.Fatalf("status = %s", registrar.Status)
	}
}

func TestCreateRegistrarRequiresNameAndEndpoint(t *testing.T) {
	conn := testDB(t)
	engine := registrarEngine(conn)

	rec := doJSON(t, engine, http.MethodPost, "/api/registrar", map[string]any{
		"name": "Incomplete",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestListActiveExcludesInactiveRegistrars(t *testing.T) {
	conn := testDB(t)
	engine := registrarEngine(conn)

	active := models.Registrar{Name: "Active", APIEndpoint: "https://a.example.com", Status: models.RegistrarStatusActive}
	inactive := models.Registrar{Name: "Dormant", APIEndpoint: "https://b.example.com", Status: models.RegistrarStatusInactive}
	for _, r := range []*models.Registrar{&active, &inactive} {
		if errCreate := conn.Create(r).Error; errCreate != nil {
			t.Fatalf("seed registrar: %v", errCreate)
		}
	}

	rec := doJSON(t, engine, http.MethodGet, "/api/registrar/active", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	data, ok := body["data"].([]any)
	if !ok || len(data) != 1 {
		t.Fatalf("expected 1 active registrar, body: %s", rec.Body.String())
	}
}

func TestTestConnectionSuccessStampsSyncDate(t *testing.T) {
	conn := testDB(t)
	engine := registrarEngine(conn)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	registrar := models.Registrar{
		Name:        "Probe",
		APIEndpoint: upstream.URL,
		Status:      models.RegistrarStatusActive,
	}
	if errCreate := conn.Create(&registrar).Error; errCreate != nil {
		t.Fatalf("seed registrar: %v", errCreate)
	}

	rec := doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/registrar/test-connection/%d", registrar.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Fatalf("expected success, body: %s", rec.Body.String())
	}

	var stored models.Registrar
	if errFind := conn.First(&stored, "id = ?", registrar.ID).Error; errFind != nil {
		t.Fatalf("reload registrar: %v", errFind)
	}
	if stored.LastSyncDate == nil {
		t.Fatalf("last sync date not stamped")
	}
}

func TestTestConnectionFailureReturns200WithDiagnostic(t *testing.T) {
	conn := testDB(t)
	engine := registrarEngine(conn)

	// Reserved .invalid TLD never resolves.
	registrar := models.Registrar{
		Name:        "Broken",
		APIEndpoint: "https://registrar.invalid",
		Status:      models.RegistrarStatusActive,
	}
	if errCreate := conn.Create(&registrar).Error; errCreate != nil {
		t.Fatalf("seed registrar: %v", errCreate)
	}

	rec := doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/registrar/test-connection/%d", registrar.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with diagnostic", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != false {
		t.Fatalf("expected failure diagnostic, body: %s", rec.Body.String())
	}
}

func TestTestConnectionUpstreamErrorStatus(t *testing.T) {
	conn := testDB(t)
	engine := registrarEngine(conn)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	registrar := models.Registrar{
		Name:        "Erroring",
		APIEndpoint: upstream.URL,
		Status:      models.RegistrarStatusActive,
	}
	if errCreate := conn.Create(&registrar).Error; errCreate != nil {
		t.Fatalf("seed registrar: %v", errCreate)
	}

	rec := doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/registrar/test-connection/%d", registrar.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != false {
		t.Fatalf("expected failure on upstream 500, body: %s", rec.Body.String())
	}
}

func TestManualSyncStampsDate(t *testing.T) {
	conn := testDB(t)
	engine := registrarEngine(conn)

	registrar := models.Registrar{
		Name:        "Synced",
		APIEndpoint: "https://api.example.com",
		Status:      models.RegistrarStatusActive,
	}
	if errCreate := conn.Create(&registrar).Error; errCreate != nil {
		t.Fatalf("seed registrar: %v", errCreate)
	}

	rec := doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/registrar/manual-sync/%d", registrar.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var stored models.Registrar
	if errFind := conn.First(&stored, "id = ?", registrar.ID).Error; errFind != nil {
		t.Fatalf("reload registrar: %v", errFind)
	}
	if stored.LastSyncDate == nil {
		t.Fatalf("last sync date not stamped")
	}
}

func TestSandboxModeSelectsSandboxEndpoint(t *testing.T) {
	registrar := models.Registrar{
		APIEndpoint:        "https://live.example.com",
		SandboxAPIEndpoint: "https://sandbox.example.com",
		SandboxMode:        true,
	}
	if registrar.Endpoint() != "https://sandbox.example.com" {
		t.Fatalf("endpoint = %s", registrar.Endpoint())
	}
	registrar.SandboxMode = false
	if registrar.Endpoint() != "https://live.example.com" {
		t.Fatalf("endpoint = %s", registrar.Endpoint())
	}
}
