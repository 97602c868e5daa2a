package auth

import (
	"testing"
	"time"

	"gdys/internal/store"
)

func TestIssueAndVerifyToken(t *testing.T) {
	u := &store.User{
		ID:       "user-1",
		Name:     "Deniz Kaptan",
		Role:     store.RoleCaptain,
		VesselID: "vessel-1",
	}

	token, expiresAt, err := IssueToken("test-secret", u, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if time.Until(expiresAt) > time.Hour || time.Until(expiresAt) < 55*time.Minute {
		t.Errorf("unexpected expiry %v", expiresAt)
	}

	claims, err := VerifyToken("test-secret", token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("got subject %s, want user-1", claims.Subject)
	}
	if claims.Role != string(store.RoleCaptain) {
		t.Errorf("got role %s, want %s", claims.Role, store.RoleCaptain)
	}
	if claims.VesselID != "vessel-1" {
		t.Errorf("got vesselID %s, want vessel-1", claims.VesselID)
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	u := &store.User{ID: "user-1", Role: store.RoleOfficer}

	token, _, err := IssueToken("secret-a", u, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	if _, err := VerifyToken("secret-b", token); err == nil {
		t.Error("expected verification to fail with wrong secret")
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	u := &store.User{ID: "user-1", Role: store.RoleOfficer}

	token, _, err := IssueToken("test-secret", u, -2*time.Minute)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	if _, err := VerifyToken("test-secret", token); err == nil {
		t.Error("expected verification to fail for expired token")
	}
}

func TestIssueToken_RequiresSecret(t *testing.T) {
	u := &store.User{ID: "user-1"}
	if _, _, err := IssueToken("", u, time.Hour); err == nil {
		t.Error("expected error for empty secret")
	}
}

func TestPasswordHashing(t *testing.T) {
	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt failed: %v", err)
	}
	if len(salt) != passwordSaltBytes*2 {
		t.Errorf("got salt length %d, want %d", len(salt), passwordSaltBytes*2)
	}

	hash, err := HashPassword("cok-gizli", salt)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if !VerifyPassword("cok-gizli", salt, hash) {
		t.Error("expected password to verify")
	}
	if VerifyPassword("yanlis", salt, hash) {
		t.Error("expected wrong password to fail")
	}
}

func TestHashPassword_EmptyPassword(t *testing.T) {
	salt, _ := GenerateSalt()
	if _, err := HashPassword("", salt); err == nil {
		t.Error("expected error for empty password")
	}
}

func TestHashPassword_Deterministic(t *testing.T) {
	salt, _ := GenerateSalt()
	a, _ := HashPassword("parola", salt)
	b, _ := HashPassword("parola", salt)
	if a != b {
		t.Error("expected identical hashes for same password and salt")
	}

	otherSalt, _ := GenerateSalt()
	c, _ := HashPassword("parola", otherSalt)
	if a == c {
		t.Error("expected different hashes for different salts")
	}
}

func TestIssueToken_ExpiredNotYetExpiredOverlap(t *testing.T) {
	// A token with expiry in the past but within the NotBefore backdate still
	// fails validation.
	u := &store.User{ID: "user-1", Role: store.RoleOfficer}
	token, _, err := IssueToken("test-secret", u, -30*time.Second)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	if _, err := VerifyToken("test-secret", token); err == nil {
		t.Error("expected expired token to fail")
	}
}
