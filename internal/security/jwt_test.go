package security

import (
	"errors"
	"testing"
	"time"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	token, errSign := GenerateAdminToken("secret", 42, "root", time.Hour)
	if errSign != nil {
		t.Fatalf("sign: %v", errSign)
	}

	claims, errParse := ParseAdminToken("secret", token)
	if errParse != nil {
		t.Fatalf("parse: %v", errParse)
	}
	if claims.AdminID != 42 || claims.Username != "root" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAdminTokenWrongSecret(t *testing.T) {
	token, errSign := GenerateAdminToken("secret", 1, "root", time.Hour)
	if errSign != nil {
		t.Fatalf("sign: %v", errSign)
	}
	if _, errParse := ParseAdminToken("other", token); !errors.Is(errParse, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", errParse)
	}
}

func TestAdminTokenExpired(t *testing.T) {
	token, errSign := GenerateAdminToken("secret", 1, "root", -time.Minute)
	if errSign != nil {
		t.Fatalf("sign: %v", errSign)
	}
	if _, errParse := ParseAdminToken("secret", token); !errors.Is(errParse, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", errParse)
	}
}

func TestAdminTokenGarbage(t *testing.T) {
	if _, errParse := ParseAdminToken("secret", "not-a-jwt"); !errors.Is(errParse, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", errParse)
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, errHash := HashPassword("hunter2")
	if errHash != nil {
		t.Fatalf("hash: %v", errHash)
	}
	if !CheckPassword(hash, "hunter2") {
		t.Fatalf("correct password rejected")
	}
	if CheckPassword(hash, "hunter3") {
		t.Fatalf("wrong password accepted")
	}
}
