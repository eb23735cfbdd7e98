package handlers

import (
	"net/http"
	"time"
)

type studentDTO struct {
	ID               string    `json:"id"`
	DisplayName      string    `json:"displayName"`
	Email            string    `json:"email"`
	PhotoURL         string    `json:"photoURL,omitempty"`
	LastActive       time.Time `json:"lastActive"`
	CompletedLessons int       `json:"completedLessons"`
}

// TeacherStudents lists the students linked to the calling teacher, with
// their distinct completed-lesson counts.
func (a *App) TeacherStudents(w http.ResponseWriter, r *http.Request) {
	identity, ok := a.currentIdentity(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	students, err := a.Profiles.ListByLinkedTeacher(r.Context(), identity.Email)
	if err != nil {
		a.domainError(w, r, err)
		return
	}

	items := make([]studentDTO, 0, len(students))
	for _, student := range students {
		completed, err := a.Progress.CountByUser(r.Context(), student.ID)
		if err != nil {
			a.domainError(w, r, err)
			return
		}
		items = append(items, studentDTO{
			ID:               student.ID,
			DisplayName:      student.DisplayName,
			Email:            student.Email,
			PhotoURL:         student.PhotoURL,
			LastActive:       student.LastActive,
			CompletedLessons: completed,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
}
