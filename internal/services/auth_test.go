package services

import "testing"

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	token, err := svc.Register("alice", "password123", "Ada", "Lovelace")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if token == "" {
		t.Fatal("Register returned empty token")
	}

	if _, err := svc.Register("alice", "other", "", ""); err == nil {
		t.Error("duplicate username was accepted")
	}

	if _, err := svc.Login("alice", "password123"); err != nil {
		t.Errorf("Login: %v", err)
	}
	if _, err := svc.Login("alice", "wrong"); err == nil {
		t.Error("wrong password was accepted")
	}
	if _, err := svc.Login("nobody", "password123"); err == nil {
		t.Error("unknown user logged in")
	}
}

func TestValidateToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	token, err := svc.GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	userID, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if userID != 42 {
		t.Errorf("user id = %d, want 42", userID)
	}

	if _, err := svc.ValidateToken("not-a-token"); err == nil {
		t.Error("garbage token validated")
	}

	other := NewAuthService(db, "other-secret")
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("token signed with a different secret validated")
	}
}
