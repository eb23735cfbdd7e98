package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/ClaudesonRodrigo/english-turbo/internal/authz"
	"github.com/ClaudesonRodrigo/english-turbo/internal/course"
	"github.com/ClaudesonRodrigo/english-turbo/internal/domain"
	"github.com/ClaudesonRodrigo/english-turbo/internal/infra/google"
	"github.com/ClaudesonRodrigo/english-turbo/internal/middleware"
	"github.com/ClaudesonRodrigo/english-turbo/internal/progress"
)

// GoogleVerifier verifies identity-provider ID tokens. Satisfied by
// google.Verifier; tests plug a fake.
type GoogleVerifier interface {
	VerifyIDToken(ctx context.Context, token string) (*google.SignedIn, error)
}

// App is the handler container; everything it needs is injected from main.
type App struct {
	Logger     zerolog.Logger
	Lessons    domain.LessonRepository
	Profiles   domain.ProfileRepository
	Progress   domain.ProgressRepository
	Sessions   *course.SessionStore
	Resolver   *authz.Resolver
	Recorder   *progress.Recorder
	Feed       progress.Feed
	Google     GoogleVerifier
	JWTSecret  string
	JWTIssuer  string
	SessionTTL time.Duration
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, slug, message string) {
	a.json(w, code, map[string]string{"error": slug, "message": message})
}

// domainError maps sentinel domain errors onto HTTP responses. Unknown
// errors are logged and surface as a retryable 500; no prior state is lost.
func (a *App) domainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, domain.ErrSessionNotFound):
		a.error(w, http.StatusNotFound, "no_session", "no active lesson session")
	case errors.Is(err, domain.ErrLessonLocked):
		a.error(w, http.StatusForbidden, "locked", "lesson is locked")
	case errors.Is(err, domain.ErrEmptyAnswer):
		a.error(w, http.StatusBadRequest, "validation", "answer must not be empty")
	case errors.Is(err, domain.ErrHintLocked):
		a.error(w, http.StatusConflict, "hint_locked", "hint not yet available")
	case errors.Is(err, domain.ErrNotCorrectYet):
		a.error(w, http.StatusConflict, "not_correct_yet", "answer the current exercise first")
	case errors.Is(err, domain.ErrAlreadyCorrect):
		a.error(w, http.StatusConflict, "already_correct", "exercise already answered, advance instead")
	case errors.Is(err, domain.ErrLessonFinished):
		a.error(w, http.StatusConflict, "finished", "lesson already finished")
	case errors.Is(err, domain.ErrInvalidRole):
		a.error(w, http.StatusBadRequest, "invalid_role", "role must be student or teacher")
	default:
		a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		a.error(w, http.StatusInternalServerError, "internal", "unexpected failure, please retry")
	}
}

// currentIdentity returns the authenticated identity. Handlers behind the
// guard can rely on it being present.
func (a *App) currentIdentity(r *http.Request) (domain.Identity, bool) {
	return middleware.IdentityFromContext(r.Context())
}
