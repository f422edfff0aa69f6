package auth

import (
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	mgr := NewManager("test-secret", time.Hour)
	token, err := mgr.Issue("staff-1", "tenant-1", []string{"dialer", "driver"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := mgr.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.StaffID != "staff-1" || claims.TenantID != "tenant-1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if len(claims.Permissions) != 2 || claims.Permissions[0] != "dialer" {
		t.Fatalf("permissions not carried: %+v", claims.Permissions)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).Issue("s", "t", nil)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewManager("secret-b", time.Hour).Parse(token); err == nil {
		t.Fatal("expected signature mismatch")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	mgr := NewManager("test-secret", -time.Minute)
	token, err := mgr.Issue("s", "t", nil)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := mgr.Parse(token); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := NewManager("x", time.Hour).Parse("not.a.token"); err == nil {
		t.Fatal("expected parse failure")
	}
}
