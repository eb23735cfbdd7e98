package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ClaudesonRodrigo/english-turbo/internal/domain"
)

// UsersList returns every profile on the platform. Super-admin console only;
// the route guard has already enforced that.
func (a *App) UsersList(w http.ResponseWriter, r *http.Request) {
	profiles, err := a.Profiles.ListAll(r.Context())
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": profiles, "total": len(profiles)})
}

type setRoleRequest struct {
	Role string `json:"role"`
}

// UserSetRole promotes a user to teacher or demotes them back to student.
// The super-admin allow-list itself is configuration and cannot be edited
// here; persisted roles never grant superAdmin.
func (a *App) UserSetRole(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var req setRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	role := domain.Role(req.Role)
	if role != domain.RoleStudent && role != domain.RoleTeacher {
		a.domainError(w, r, domain.ErrInvalidRole)
		return
	}

	if err := a.Profiles.SetRole(r.Context(), userID, role); err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"id": userID, "role": string(role)})
}
