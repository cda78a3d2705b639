package domain

import (
	"testing"
)

func TestNewOwner(t *testing.T) {
	t.Parallel()

	t.Run("Should create owner with trimmed name", func(t *testing.T) {
		t.Parallel()

		owner, err := NewOwner("  giacomo ", "")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if owner.Name != "giacomo" {
			t.Errorf("Expected name giacomo, got %s", owner.Name)
		}
	})

	t.Run("Should fail with empty name", func(t *testing.T) {
		t.Parallel()

		_, err := NewOwner("   ", "")
		if err != ErrOwnerNameEmpty {
			t.Errorf("Expected ErrOwnerNameEmpty, got %v", err)
		}
	})
}

func TestOwner_Password(t *testing.T) {
	t.Parallel()

	owner, _ := NewOwner(DefaultOwnerName, "")

	if err := owner.SetPassword("short"); err != ErrPasswordTooShort {
		t.Errorf("Expected ErrPasswordTooShort, got %v", err)
	}

	if err := owner.CheckPassword("anything"); err != ErrInvalidCredentials {
		t.Errorf("Expected ErrInvalidCredentials without a hash, got %v", err)
	}

	if err := owner.SetPassword("correct horse battery"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if owner.PasswordHash == "correct horse battery" {
		t.Fatal("Password must be stored hashed")
	}

	if err := owner.CheckPassword("correct horse battery"); err != nil {
		t.Errorf("Expected valid password, got %v", err)
	}
	if err := owner.CheckPassword("wrong horse battery"); err != ErrInvalidCredentials {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}
