package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ClaudesonRodrigo/english-turbo/internal/domain"
	"github.com/ClaudesonRodrigo/english-turbo/internal/seed"
)

// LessonsSeed bulk-upserts the lesson catalog from a JSON body. Lessons are
// immutable through every other surface; this is the one write path, guarded
// for super-admins. Invalid catalogs are rejected before anything touches
// the store, so a failed seed leaves the published catalog unchanged.
func (a *App) LessonsSeed(w http.ResponseWriter, r *http.Request) {
	var lessons []domain.Lesson
	if err := json.NewDecoder(r.Body).Decode(&lessons); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := seed.Validate(lessons); err != nil {
		a.error(w, http.StatusBadRequest, "validation", err.Error())
		return
	}

	if err := a.Lessons.UpsertAll(r.Context(), lessons); err != nil {
		a.domainError(w, r, err)
		return
	}

	a.Logger.Info().Int("count", len(lessons)).Msg("lesson catalog seeded")
	a.json(w, http.StatusOK, map[string]any{"seeded": len(lessons)})
}
