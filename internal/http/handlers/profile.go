package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ClaudesonRodrigo/english-turbo/internal/domain"
	"github.com/ClaudesonRodrigo/english-turbo/internal/i18n"
	"github.com/ClaudesonRodrigo/english-turbo/internal/middleware"
)

type meResponse struct {
	User       domain.UserProfile `json:"user"`
	Capability string             `json:"capability"`
}

// Me returns the caller's profile, creating it lazily when this is the first
// profile-touching action of the account.
func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := a.currentIdentity(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	profile, err := a.Profiles.Upsert(r.Context(), &domain.UserProfile{
		ID:          identity.ID,
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
		PhotoURL:    identity.PhotoURL,
	})
	if err != nil {
		a.domainError(w, r, err)
		return
	}

	capability, ok := middleware.CapabilityFromContext(r.Context())
	if !ok {
		capability = a.Resolver.Resolve(r.Context(), identity)
	}
	a.json(w, http.StatusOK, meResponse{User: *profile, Capability: string(capability)})
}

type linkTeacherRequest struct {
	Email string `json:"email"`
}

// LinkTeacher stores the teacher email a student wants to share progress
// with. The email is lowercased so the teacher lookup is exact.
func (a *App) LinkTeacher(w http.ResponseWriter, r *http.Request) {
	identity, ok := a.currentIdentity(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	var req linkTeacherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		a.error(w, http.StatusBadRequest, "validation", "a valid teacher email is required")
		return
	}

	// The profile may not exist yet when linking is the first thing a new
	// account does.
	if _, err := a.Profiles.Upsert(r.Context(), &domain.UserProfile{
		ID:          identity.ID,
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
		PhotoURL:    identity.PhotoURL,
	}); err != nil {
		a.domainError(w, r, err)
		return
	}
	if err := a.Profiles.SetLinkedTeacher(r.Context(), identity.ID, email); err != nil {
		a.domainError(w, r, err)
		return
	}

	locale := middleware.LocaleFromContext(r.Context())
	a.json(w, http.StatusOK, map[string]string{
		"message":            i18n.T(locale, i18n.MsgTeacherLinked),
		"linkedTeacherEmail": email,
	})
}
