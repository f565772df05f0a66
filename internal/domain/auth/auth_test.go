package auth

import (
	"testing"
	"time"
)

func TestGenerateAndParseToken(t *testing.T) {
	secret := "test-secret"
	claims := Claims{UserID: "u1", TenantID: "t1", RoleName: RoleHR}

	token, err := GenerateToken(secret, claims, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	parsed, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if parsed.User() != (UserContext{UserID: "u1", TenantID: "t1", RoleName: RoleHR}) {
		t.Fatalf("claims mismatch: %+v", parsed)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("one", Claims{UserID: "u1", TenantID: "t1"}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("two", token); err == nil {
		t.Fatal("expected signature mismatch")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken("s", Claims{UserID: "u1", TenantID: "t1"}, -time.Minute)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("s", token); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestParseTokenRequiresTenant(t *testing.T) {
	token, err := GenerateToken("s", Claims{UserID: "u1"}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("s", token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHasRole(t *testing.T) {
	if !HasRole(UserContext{RoleName: "Manager"}, ReviewerRoles...) {
		t.Fatal("expected manager to be a reviewer")
	}
	if HasRole(UserContext{RoleName: RoleEmployee}, ReviewerRoles...) {
		t.Fatal("expected employee not to be a reviewer")
	}
}
