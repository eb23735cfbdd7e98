package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ClaudesonRodrigo/english-turbo/internal/authz"
	"github.com/ClaudesonRodrigo/english-turbo/internal/http/handlers"
	"github.com/ClaudesonRodrigo/english-turbo/internal/infra"
	"github.com/ClaudesonRodrigo/english-turbo/internal/middleware"
)

// NewRouter wires the API surface. Every protected group carries its own
// required capability set; the guard never lets a handler run for an
// unresolved or insufficient session.
func NewRouter(app *handlers.App, cfg *infra.Config, countryLookup middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(cfg.AllowedOrigins),
		middleware.I18N(cfg.DefaultLocale, countryLookup),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
	)

	// Public
	r.Get("/v1/healthz", app.Health)
	r.Post("/v1/auth/google", app.AuthGoogleVerify)

	// General content: any authenticated user.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(cfg.JWTSecret))
		r.Use(middleware.RequireCapability(app.Resolver,
			authz.CapabilityStudent, authz.CapabilityTeacher, authz.CapabilitySuperAdmin))

		r.Route("/v1/lessons", func(r chi.Router) {
			r.Get("/", app.LessonsList)
			r.Get("/{id}", app.LessonGet)
			r.Post("/{id}/session", app.SessionStart)
			r.Get("/{id}/session", app.SessionGet)
			r.Post("/{id}/answers", app.AnswerSubmit)
			r.Post("/{id}/hint", app.HintReveal)
			r.Post("/{id}/advance", app.Advance)
		})

		r.Route("/v1/progress", func(r chi.Router) {
			r.Get("/", app.ProgressList)
			r.Get("/stream", app.ProgressStream)
		})

		r.Route("/v1/me", func(r chi.Router) {
			r.Get("/", app.Me)
			r.Put("/teacher", app.LinkTeacher)
		})
	})

	// Teacher tooling.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(cfg.JWTSecret))
		r.Use(middleware.RequireCapability(app.Resolver,
			authz.CapabilityTeacher, authz.CapabilitySuperAdmin))

		r.Get("/v1/teacher/students", app.TeacherStudents)
	})

	// Content management: super-admin only.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(cfg.JWTSecret))
		r.Use(middleware.RequireCapability(app.Resolver, authz.CapabilitySuperAdmin))

		r.Post("/v1/admin/lessons/seed", app.LessonsSeed)
	})

	// Super-admin console.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(cfg.JWTSecret))
		r.Use(middleware.RequireCapability(app.Resolver, authz.CapabilitySuperAdmin))

		r.Route("/v1/superadmin/users", func(r chi.Router) {
			r.Get("/", app.UsersList)
			r.Patch("/{id}", app.UserSetRole)
		})
	})

	return r
}
