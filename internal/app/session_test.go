package app_test

import (
	"errors"
	"strings"
	"testing"

	"hotelbook/internal/app"
	"hotelbook/internal/domain"
)

func TestSession_RegisterLoginFlow(t *testing.T) {
	s := app.NewSessionService(newMemStore())

	u, err := s.Register("Asha", "Asha@Example.com", "secret123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Email != "asha@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if u.PasswordHash == "secret123" || !strings.HasPrefix(u.PasswordHash, "$2") {
		t.Fatalf("password stored without bcrypt hash")
	}

	// register signs in
	cur, err := s.CurrentUser()
	if err != nil || cur == nil || cur.Email != "asha@example.com" {
		t.Fatalf("expected session after register, got %+v err=%v", cur, err)
	}

	if err := s.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	cur, err = s.CurrentUser()
	if err != nil || cur != nil {
		t.Fatalf("expected no session after logout, got %+v err=%v", cur, err)
	}

	if _, err := s.Login("asha@example.com", "secret123"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := s.Login("asha@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := s.Login("unknown@example.com", "secret123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestSession_DuplicateEmail(t *testing.T) {
	s := app.NewSessionService(newMemStore())
	if _, err := s.Register("Asha", "asha@example.com", "secret123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := s.Register("Other", "asha@example.com", "different"); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestSession_Theme(t *testing.T) {
	s := app.NewSessionService(newMemStore())
	if got := s.Theme(); got != domain.ThemeLight {
		t.Fatalf("default theme = %q", got)
	}
	if err := s.SetTheme(domain.ThemeDark); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	if got := s.Theme(); got != domain.ThemeDark {
		t.Fatalf("theme = %q", got)
	}
	if err := s.SetTheme("neon"); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
}
