package helpers

import (
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Minute, time.Hour)

	access, exp, err := m.GenerateAccessToken("user-1", "sess-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatal("expiry should be in the future")
	}

	claims, err := m.ParseAccessToken(access)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-1" || claims.SessionID != "sess-1" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestJWTSecretsAreNotInterchangeable(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Minute, time.Hour)

	refresh, _, err := m.GenerateRefreshToken("user-1", "sess-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := m.ParseAccessToken(refresh); err == nil {
		t.Fatal("a refresh token must not parse as an access token")
	}
	if _, err := m.ParseRefreshToken(refresh); err != nil {
		t.Fatalf("refresh token should parse with the refresh secret: %v", err)
	}
}

func TestJWTExpiredToken(t *testing.T) {
	m := NewJWTManager("access", "refresh", -time.Minute, time.Hour)

	token, _, err := m.GenerateAccessToken("user-1", "sess-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := m.ParseAccessToken(token); err == nil {
		t.Fatal("expired token should not parse")
	}
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("hash equals plaintext")
	}
	if !CompareHashAndPassword(hash, "hunter22") {
		t.Fatal("correct password should verify")
	}
	if CompareHashAndPassword(hash, "hunter23") {
		t.Fatal("wrong password should not verify")
	}
}
