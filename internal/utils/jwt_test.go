package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestSignAndParseJWT(t *testing.T) {
	secret := "test-secret"
	userID := uuid.New().String()

	token, err := SignJWT(secret, userID, "user", 60)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := ParseJWT(secret, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("uid: got %s, want %s", claims.UserID, userID)
	}
	if claims.Role != "user" {
		t.Errorf("role: got %s, want user", claims.Role)
	}
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := SignJWT("secret-a", uuid.New().String(), "user", 60)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseJWT("secret-b", token); err == nil {
		t.Fatal("token signed with another secret was accepted")
	}
}

func TestParseJWTExpired(t *testing.T) {
	token, err := SignJWT("secret", uuid.New().String(), "user", -1)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseJWT("secret", token); err == nil {
		t.Fatal("expired token was accepted")
	}
}

func TestParseJWTGarbage(t *testing.T) {
	if _, err := ParseJWT("secret", "not-a-token"); err == nil {
		t.Fatal("garbage token was accepted")
	}
}
