package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/hostwire/hostpanel/internal/config"
	"github.com/hostwire/hostpanel/internal/models"
	"github.com/hostwire/hostpanel/internal/security"
)

func TestLoginSetsSessionCookie(t *testing.T) {
	conn := testDB(t)

	hash, errHash := security.HashPassword("hunter2")
	if errHash != nil {
		t.Fatalf("hash: %v", errHash)
	}
	admin := models.Admin{Username: "root", Password: hash}
	if errCreate := conn.Create(&admin).Error; errCreate != nil {
		t.Fatalf("seed admin: %v", errCreate)
	}

	engine := testEngine()
	handler := NewAuthHandler(conn, config.JWTConfig{Secret: "secret", Expiry: time.Hour})
	engine.POST("/api/login", handler.Login)

	rec := doJSON(t, engine, http.MethodPost, "/api/login", map[string]string{
		"username": "root",
		"password": "hunter2",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var sessionCookie *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == tokenCookieName {
			sessionCookie = cookie
		}
	}
	if sessionCookie == nil {
		t.Fatalf("no session cookie set")
	}
	if sessionCookie.Value == "" {
		t.Fatalf("session cookie empty")
	}
	if !sessionCookie.HttpOnly {
		t.Fatalf("session cookie not http-only")
	}
	if sessionCookie.MaxAge != 3600 {
		t.Fatalf("session cookie max-age = %d, want 3600", sessionCookie.MaxAge)
	}

	claims, errParse := security.ParseAdminToken("secret", sessionCookie.Value)
	if errParse != nil {
		t.Fatalf("parse issued token: %v", errParse)
	}
	if claims.AdminID != admin.ID || claims.Username != "root" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	conn := testDB(t)

	hash, _ := security.HashPassword("hunter2")
	if errCreate := conn.Create(&models.Admin{Username: "root", Password: hash}).Error; errCreate != nil {
		t.Fatalf("seed admin: %v", errCreate)
	}

	engine := testEngine()
	handler := NewAuthHandler(conn, config.JWTConfig{Secret: "secret", Expiry: time.Hour})
	engine.POST("/api/login", handler.Login)

	rec := doJSON(t, engine, http.MethodPost, "/api/login", map[string]string{
		"username": "root",
		"password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestLoginUnknownUserMatchesWrongPasswordResponse(t *testing.T) {
	conn := testDB(t)
	engine := testEngine()
	handler := NewAuthHandler(conn, config.JWTConfig{Secret: "secret", Expiry: time.Hour})
	engine.POST("/api/login", handler.Login)

	rec := doJSON(t, engine, http.MethodPost, "/api/login", map[string]string{
		"username": "nobody",
		"password": "whatever",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "Invalid credentials" {
		t.Fatalf("error = %v", body["error"])
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	conn := testDB(t)
	engine := testEngine()
	handler := NewAuthHandler(conn, config.JWTConfig{Secret: "secret", Expiry: time.Hour})
	engine.POST("/api/logout", handler.Logout)

	rec := doJSON(t, engine, http.MethodPost, "/api/logout", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var cleared bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == tokenCookieName && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("session cookie not cleared")
	}
}
