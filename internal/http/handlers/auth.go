package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ClaudesonRodrigo/english-turbo/internal/domain"
	"github.com/ClaudesonRodrigo/english-turbo/internal/middleware"
)

type googleVerifyRequest struct {
	IDToken string `json:"id_token"`
}

type googleVerifyResponse struct {
	Token      string             `json:"token"`
	User       domain.UserProfile `json:"user"`
	Capability string             `json:"capability"`
}

// AuthGoogleVerify exchanges a Google ID token for a session token. The
// profile is created lazily here (default role student) and last_active is
// touched on every sign-in.
func (a *App) AuthGoogleVerify(w http.ResponseWriter, r *http.Request) {
	var req googleVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.IDToken == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "id_token required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	signedIn, err := a.Google.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		a.Logger.Error().Err(err).Msg("google verify failed")
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid google token")
		return
	}

	identity := domain.Identity{
		ID:          signedIn.Subject,
		Email:       strings.ToLower(signedIn.Email),
		DisplayName: signedIn.DisplayName,
		PhotoURL:    signedIn.PhotoURL,
	}

	profile, err := a.Profiles.Upsert(r.Context(), &domain.UserProfile{
		ID:          identity.ID,
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
		PhotoURL:    identity.PhotoURL,
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("upsert profile failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to persist profile")
		return
	}

	token, err := middleware.SignSession(a.JWTSecret, a.JWTIssuer, a.SessionTTL, identity)
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign session failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}

	a.json(w, http.StatusOK, googleVerifyResponse{
		Token:      token,
		User:       *profile,
		Capability: string(a.Resolver.Resolve(r.Context(), identity)),
	})
}
