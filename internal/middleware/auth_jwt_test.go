package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ClaudesonRodrigo/english-turbo/internal/domain"
)

const testSecret = "test-secret"

func testIdentity() domain.Identity {
	return domain.Identity{
		ID:          "google-uid-1",
		Email:       "ana@example.com",
		DisplayName: "Ana",
		PhotoURL:    "https://example.com/p.jpg",
	}
}

func TestSignAndParseSession(t *testing.T) {
	token, err := SignSession(testSecret, "english-turbo", time.Hour, testIdentity())
	if err != nil {
		t.Fatalf("SignSession() unexpected error: %v", err)
	}

	identity, err := ParseSession(testSecret, token)
	if err != nil {
		t.Fatalf("ParseSession() unexpected error: %v", err)
	}
	if identity != testIdentity() {
		t.Errorf("ParseSession() = %+v, want %+v", identity, testIdentity())
	}
}

func TestParseSessionRejectsWrongSecret(t *testing.T) {
	token, err := SignSession(testSecret, "english-turbo", time.Hour, testIdentity())
	if err != nil {
		t.Fatalf("SignSession() unexpected error: %v", err)
	}
	if _, err := ParseSession("other-secret", token); err == nil {
		t.Error("ParseSession() accepted a token signed with another secret")
	}
}

func TestParseSessionRejectsExpiredToken(t *testing.T) {
	token, err := SignSession(testSecret, "english-turbo", -time.Minute, testIdentity())
	if err != nil {
		t.Fatalf("SignSession() unexpected error: %v", err)
	}
	if _, err := ParseSession(testSecret, token); err == nil {
		t.Error("ParseSession() accepted an expired token")
	}
}

func TestAuthJWT(t *testing.T) {
	handler := AuthJWT(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			t.Error("IdentityFromContext() missing inside authenticated handler")
		}
		if identity.ID != "google-uid-1" {
			t.Errorf("identity id = %q, want %q", identity.ID, "google-uid-1")
		}
		w.WriteHeader(http.StatusOK)
	}))

	token, err := SignSession(testSecret, "english-turbo", time.Hour, testIdentity())
	if err != nil {
		t.Fatalf("SignSession() unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestAuthJWTRejectsBadRequests(t *testing.T) {
	handler := AuthJWT(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler ran for an unauthenticated request")
	}))

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}
		})
	}
}
