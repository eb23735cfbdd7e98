package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ClaudesonRodrigo/english-turbo/internal/domain"
	"github.com/ClaudesonRodrigo/english-turbo/internal/infra/google"
	"github.com/ClaudesonRodrigo/english-turbo/internal/middleware"
)

type fakeVerifier struct {
	signedIn *google.SignedIn
	err      error
}

func (f *fakeVerifier) VerifyIDToken(context.Context, string) (*google.SignedIn, error) {
	return f.signedIn, f.err
}

func TestAuthGoogleVerify(t *testing.T) {
	ta := newTestApp()
	ta.app.Google = &fakeVerifier{signedIn: &google.SignedIn{
		Subject:     "google-uid-1",
		Email:       "Ana@Example.com",
		DisplayName: "Ana",
		PhotoURL:    "https://example.com/p.jpg",
	}}

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/google", strings.NewReader(`{"id_token":"tok"}`))
	rec := httptest.NewRecorder()
	ta.app.AuthGoogleVerify(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body googleVerifyResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.User.Email != "ana@example.com" {
		t.Errorf("user email = %q, want lowercased %q", body.User.Email, "ana@example.com")
	}
	if body.User.Role != domain.RoleStudent {
		t.Errorf("new profile role = %q, want %q", body.User.Role, domain.RoleStudent)
	}
	if body.Capability != "student" {
		t.Errorf("capability = %q, want %q", body.Capability, "student")
	}

	identity, err := middleware.ParseSession(ta.app.JWTSecret, body.Token)
	if err != nil {
		t.Fatalf("ParseSession() on issued token: %v", err)
	}
	if identity.ID != "google-uid-1" {
		t.Errorf("token subject = %q, want %q", identity.ID, "google-uid-1")
	}
}

func TestAuthGoogleVerifySuperAdmin(t *testing.T) {
	ta := newTestApp()
	ta.app.Google = &fakeVerifier{signedIn: &google.SignedIn{Subject: "uid-root", Email: "root@example.com"}}

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/google", strings.NewReader(`{"id_token":"tok"}`))
	rec := httptest.NewRecorder()
	ta.app.AuthGoogleVerify(rec, req)

	var body googleVerifyResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Capability != "superAdmin" {
		t.Errorf("capability = %q, want %q", body.Capability, "superAdmin")
	}
}

func TestAuthGoogleVerifyInvalidToken(t *testing.T) {
	ta := newTestApp()
	ta.app.Google = &fakeVerifier{err: errors.New("token expired")}

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/google", strings.NewReader(`{"id_token":"bad"}`))
	rec := httptest.NewRecorder()
	ta.app.AuthGoogleVerify(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthGoogleVerifyMissingToken(t *testing.T) {
	ta := newTestApp()
	ta.app.Google = &fakeVerifier{}

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/google", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	ta.app.AuthGoogleVerify(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
