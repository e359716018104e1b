package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventadmin/internal/auth"
	"eventadmin/internal/storage"

	"github.com/golang-jwt/jwt/v5"
)

func TestSession_LoadWithoutToken(t *testing.T) {
	s := auth.NewSession(storage.NewMemoryStorage(), "adminToken")
	found, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if found {
		t.Fatalf("expected no token")
	}
	if s.Authenticated() || s.Token() != "" {
		t.Fatalf("expected empty unauthenticated session")
	}
}

func TestSession_LoadDoesNotAuthenticate(t *testing.T) {
	store := storage.NewMemoryStorage()
	_ = store.Set(context.Background(), "adminToken", "tok")

	s := auth.NewSession(store, "adminToken")
	found, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !found || s.Token() != "tok" {
		t.Fatalf("expected loaded token, got found=%v token=%q", found, s.Token())
	}
	if s.Authenticated() {
		t.Fatalf("loaded token must not count as accepted")
	}
	if err := s.Accept(); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if !s.Authenticated() {
		t.Fatalf("expected authenticated after Accept")
	}
}

func TestSession_AcceptWithoutToken(t *testing.T) {
	s := auth.NewSession(nil, "adminToken")
	if err := s.Accept(); !errors.Is(err, auth.ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
	if s.Authenticated() {
		t.Fatalf("expected unauthenticated")
	}
}

func TestSession_EstablishPersistsAndEndClears(t *testing.T) {
	store := storage.NewMemoryStorage()
	s := auth.NewSession(store, "adminToken")

	if err := s.Establish(context.Background(), "fresh"); err != nil {
		t.Fatalf("Establish: %v", err)
	}
	if !s.Authenticated() || s.Token() != "fresh" {
		t.Fatalf("expected authenticated session holding token")
	}
	got, err := store.Get(context.Background(), "adminToken")
	if err != nil || got != "fresh" {
		t.Fatalf("expected persisted token, got %q err=%v", got, err)
	}

	if err := s.End(context.Background()); err != nil {
		t.Fatalf("End: %v", err)
	}
	if s.Authenticated() || s.Token() != "" {
		t.Fatalf("expected cleared session")
	}
	if _, err := store.Get(context.Background(), "adminToken"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected token removed from storage, got %v", err)
	}
}

func TestSession_EstablishRejectsEmptyToken(t *testing.T) {
	s := auth.NewSession(storage.NewMemoryStorage(), "adminToken")
	if err := s.Establish(context.Background(), "  "); !errors.Is(err, auth.ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
	if s.Authenticated() {
		t.Fatalf("expected unauthenticated")
	}
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	got, ok := auth.TokenExpiry(signed)
	if !ok {
		t.Fatalf("expected expiry")
	}
	if !got.Equal(exp) {
		t.Fatalf("expected %v, got %v", exp, got)
	}

	if _, ok := auth.TokenExpiry("opaque-token"); ok {
		t.Fatalf("opaque token must not report expiry")
	}
	if _, ok := auth.TokenExpiry(""); ok {
		t.Fatalf("empty token must not report expiry")
	}
}
