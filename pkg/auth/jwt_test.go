package auth

import (
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestGuestSession_RoundTrip(t *testing.T) {
	tok, err := NewGuestSession("g1", "tok-1", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := Parse(tok, testSecret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Role != RoleGuest || claims.Subject != "g1" || claims.MagicToken != "tok-1" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestHostSession_RoundTrip(t *testing.T) {
	tok, err := NewHostSession("host@example.com", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := Parse(tok, testSecret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Role != RoleHost || claims.Email != "host@example.com" || claims.MagicToken != "" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestParse_Rejects(t *testing.T) {
	expired, _ := NewGuestSession("g1", "tok-1", testSecret, -time.Minute)
	valid, _ := NewGuestSession("g1", "tok-1", testSecret, time.Hour)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"expired", expired, testSecret},
		{"wrong secret", valid, "other-secret"},
		{"garbage", "not-a-jwt", testSecret},
		{"raw magic token", "magic-token-123", testSecret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.token, tt.secret); err == nil {
				t.Fatal("expected parse error")
			}
		})
	}
}
