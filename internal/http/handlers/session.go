package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ClaudesonRodrigo/english-turbo/internal/course"
	"github.com/ClaudesonRodrigo/english-turbo/internal/domain"
	"github.com/ClaudesonRodrigo/english-turbo/internal/i18n"
	"github.com/ClaudesonRodrigo/english-turbo/internal/middleware"
)

type sessionResponse struct {
	Session  course.SessionView `json:"session"`
	Exercise *exerciseDTO       `json:"exercise,omitempty"`
	Feedback string             `json:"feedback,omitempty"`
}

type answerRequest struct {
	Answer string `json:"answer"`
}

type answerResponse struct {
	Correct  bool               `json:"correct"`
	Feedback string             `json:"feedback"`
	Session  course.SessionView `json:"session"`
}

type hintResponse struct {
	Hint     string             `json:"hint"`
	Feedback string             `json:"feedback"`
	Session  course.SessionView `json:"session"`
}

type advanceResponse struct {
	Finished bool                    `json:"finished"`
	Feedback string                  `json:"feedback,omitempty"`
	Session  *course.SessionView     `json:"session,omitempty"`
	Exercise *exerciseDTO            `json:"exercise,omitempty"`
	Event    *domain.CompletionEvent `json:"event,omitempty"`
}

// SessionStart opens (or resumes) an attempt session for a lesson. The gate
// is enforced here: a locked lesson cannot be started.
func (a *App) SessionStart(w http.ResponseWriter, r *http.Request) {
	identity, ok := a.currentIdentity(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	lesson, err := a.Lessons.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "lesson_not_found", i18n.T(middleware.LocaleFromContext(r.Context()), i18n.MsgLessonNotFound))
			return
		}
		a.domainError(w, r, err)
		return
	}
	if len(lesson.Exercises) == 0 {
		a.error(w, http.StatusConflict, "no_exercises", "lesson has no exercises")
		return
	}

	catalog, completed, err := a.gateInputs(r.Context(), identity.ID)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	if course.Status(*lesson, catalog, completed).Locked {
		a.error(w, http.StatusForbidden, "locked", i18n.T(middleware.LocaleFromContext(r.Context()), i18n.MsgLessonLocked))
		return
	}

	view := a.Sessions.Start(identity.ID, *lesson)
	a.json(w, http.StatusOK, sessionResponse{
		Session:  view,
		Exercise: currentExercise(*lesson, view),
	})
}

// SessionGet returns the state of an in-flight session.
func (a *App) SessionGet(w http.ResponseWriter, r *http.Request) {
	identity, ok := a.currentIdentity(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	lessonID := chi.URLParam(r, "id")
	view, err := a.Sessions.View(identity.ID, lessonID)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	lesson, err := a.Sessions.Lesson(identity.ID, lessonID)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, sessionResponse{
		Session:  view,
		Exercise: currentExercise(lesson, view),
	})
}

// AnswerSubmit checks one answer against the current exercise.
func (a *App) AnswerSubmit(w http.ResponseWriter, r *http.Request) {
	identity, ok := a.currentIdentity(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	locale := middleware.LocaleFromContext(r.Context())
	correct, view, err := a.Sessions.Submit(identity.ID, chi.URLParam(r, "id"), req.Answer)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyAnswer) {
			a.error(w, http.StatusBadRequest, "validation", i18n.T(locale, i18n.MsgEmptyAnswer))
			return
		}
		a.domainError(w, r, err)
		return
	}

	feedback := i18n.T(locale, i18n.MsgIncorrect)
	if correct {
		feedback = i18n.T(locale, i18n.MsgCorrect)
	}
	a.json(w, http.StatusOK, answerResponse{Correct: correct, Feedback: feedback, Session: view})
}

// HintReveal makes the hint visible once three wrong attempts unlocked it.
func (a *App) HintReveal(w http.ResponseWriter, r *http.Request) {
	identity, ok := a.currentIdentity(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	hint, view, err := a.Sessions.RevealHint(identity.ID, chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, r, err)
		return
	}

	locale := middleware.LocaleFromContext(r.Context())
	a.json(w, http.StatusOK, hintResponse{
		Hint:     hint,
		Feedback: i18n.T(locale, i18n.MsgHintPrefix) + " \"" + hint + "\"",
		Session:  view,
	})
}

// Advance moves a correctly answered session forward. Passing the last
// exercise records the completion event; if that write fails the session is
// left intact and the client can call Advance again without re-answering.
func (a *App) Advance(w http.ResponseWriter, r *http.Request) {
	identity, ok := a.currentIdentity(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	lessonID := chi.URLParam(r, "id")
	locale := middleware.LocaleFromContext(r.Context())

	finished, view, err := a.Sessions.Advance(identity.ID, lessonID)
	if err != nil {
		a.domainError(w, r, err)
		return
	}

	if !finished {
		lesson, err := a.Sessions.Lesson(identity.ID, lessonID)
		if err != nil {
			a.domainError(w, r, err)
			return
		}
		a.json(w, http.StatusOK, advanceResponse{
			Finished: false,
			Session:  &view,
			Exercise: currentExercise(lesson, view),
		})
		return
	}

	lesson, err := a.Sessions.Lesson(identity.ID, lessonID)
	if err != nil {
		a.domainError(w, r, err)
		return
	}

	event, err := a.Recorder.Record(r.Context(), identity, lesson)
	if err != nil {
		a.Logger.Error().Err(err).Str("lesson_id", lessonID).Msg("record completion failed")
		a.error(w, http.StatusInternalServerError, "save_failed", i18n.T(locale, i18n.MsgSaveFailed))
		return
	}
	a.Sessions.End(identity.ID, lessonID)

	a.json(w, http.StatusOK, advanceResponse{
		Finished: true,
		Feedback: i18n.T(locale, i18n.MsgLessonFinished),
		Event:    event,
	})
}

func currentExercise(lesson domain.Lesson, view course.SessionView) *exerciseDTO {
	if view.Finished || view.ExerciseIndex >= len(lesson.Exercises) {
		return nil
	}
	ex := lesson.Exercises[view.ExerciseIndex]
	return &exerciseDTO{ID: ex.ID, Kind: string(ex.Kind), Prompt: ex.Prompt, Options: ex.Options}
}
