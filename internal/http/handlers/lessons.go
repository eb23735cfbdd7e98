package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ClaudesonRodrigo/english-turbo/internal/course"
	"github.com/ClaudesonRodrigo/english-turbo/internal/domain"
)

type lessonSummaryDTO struct {
	ID             string `json:"id"`
	SequenceNumber int    `json:"sequenceNumber"`
	Title          string `json:"title"`
	ExerciseCount  int    `json:"exerciseCount"`
	Locked         bool   `json:"locked"`
	Completed      bool   `json:"completed"`
}

// exerciseDTO is the client-facing exercise shape. The correct answer never
// leaves the server; checking happens in the attempt session.
type exerciseDTO struct {
	ID      string   `json:"id"`
	Kind    string   `json:"kind"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options,omitempty"`
}

type lessonDTO struct {
	ID             string                  `json:"id"`
	SequenceNumber int                     `json:"sequenceNumber"`
	Title          string                  `json:"title"`
	Theory         []string                `json:"theory"`
	Vocabulary     []domain.VocabularyItem `json:"vocabulary"`
	Exercises      []exerciseDTO           `json:"exercises"`
	Status         domain.LessonStatus     `json:"status"`
}

// LessonsList returns the catalog in learning-path order with the gate state
// derived per lesson. The gate is recomputed on every read; it holds no state.
func (a *App) LessonsList(w http.ResponseWriter, r *http.Request) {
	identity, ok := a.currentIdentity(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	catalog, completed, err := a.gateInputs(r.Context(), identity.ID)
	if err != nil {
		a.domainError(w, r, err)
		return
	}

	items := make([]lessonSummaryDTO, 0, len(catalog))
	for _, lesson := range catalog {
		status := course.Status(lesson, catalog, completed)
		items = append(items, lessonSummaryDTO{
			ID:             lesson.ID,
			SequenceNumber: lesson.SequenceNumber,
			Title:          lesson.Title,
			ExerciseCount:  len(lesson.Exercises),
			Locked:         status.Locked,
			Completed:      status.Completed,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

// LessonGet returns one lesson with its gate state. A missing lesson is a
// distinct not-found state, never conflated with loading or denial.
func (a *App) LessonGet(w http.ResponseWriter, r *http.Request) {
	identity, ok := a.currentIdentity(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	lesson, err := a.Lessons.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "lesson_not_found", "lesson not found")
			return
		}
		a.domainError(w, r, err)
		return
	}

	catalog, completed, err := a.gateInputs(r.Context(), identity.ID)
	if err != nil {
		a.domainError(w, r, err)
		return
	}

	a.json(w, http.StatusOK, lessonView(*lesson, course.Status(*lesson, catalog, completed)))
}

// gateInputs loads the two inputs the progression gate derives from: the
// ordered catalog and the set of lesson ids the user completed.
func (a *App) gateInputs(ctx context.Context, userID string) ([]domain.Lesson, map[string]struct{}, error) {
	catalog, err := a.Lessons.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	history, err := a.Progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return catalog, domain.CompletedLessonIDs(history), nil
}

func lessonView(lesson domain.Lesson, status domain.LessonStatus) lessonDTO {
	exercises := make([]exerciseDTO, len(lesson.Exercises))
	for i, ex := range lesson.Exercises {
		exercises[i] = exerciseDTO{
			ID:      ex.ID,
			Kind:    string(ex.Kind),
			Prompt:  ex.Prompt,
			Options: ex.Options,
		}
	}
	return lessonDTO{
		ID:             lesson.ID,
		SequenceNumber: lesson.SequenceNumber,
		Title:          lesson.Title,
		Theory:         lesson.Theory,
		Vocabulary:     lesson.Vocabulary,
		Exercises:      exercises,
		Status:         status,
	}
}
