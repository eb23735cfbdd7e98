package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ClaudesonRodrigo/english-turbo/internal/authz"
	"github.com/ClaudesonRodrigo/english-turbo/internal/course"
	"github.com/ClaudesonRodrigo/english-turbo/internal/domain"
	"github.com/ClaudesonRodrigo/english-turbo/internal/middleware"
	"github.com/ClaudesonRodrigo/english-turbo/internal/progress"
)

type memLessons struct {
	lessons map[string]domain.Lesson
	err     error
}

func newMemLessons(lessons ...domain.Lesson) *memLessons {
	m := &memLessons{lessons: make(map[string]domain.Lesson)}
	for _, l := range lessons {
		m.lessons[l.ID] = l
	}
	return m
}

func (m *memLessons) List(context.Context) ([]domain.Lesson, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Lesson, 0, len(m.lessons))
	for _, l := range m.lessons {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SequenceNumber < out[j].SequenceNumber })
	return out, nil
}

func (m *memLessons) GetByID(_ context.Context, id string) (*domain.Lesson, error) {
	if m.err != nil {
		return nil, m.err
	}
	l, ok := m.lessons[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &l, nil
}

func (m *memLessons) UpsertAll(_ context.Context, lessons []domain.Lesson) error {
	if m.err != nil {
		return m.err
	}
	for _, l := range lessons {
		m.lessons[l.ID] = l
	}
	return nil
}

type memProfiles struct {
	profiles map[string]*domain.UserProfile
	err      error
}

func newMemProfiles() *memProfiles {
	return &memProfiles{profiles: make(map[string]*domain.UserProfile)}
}

func (m *memProfiles) GetByID(_ context.Context, id string) (*domain.UserProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *memProfiles) Upsert(_ context.Context, profile *domain.UserProfile) (*domain.UserProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	existing, ok := m.profiles[profile.ID]
	if !ok {
		stored := *profile
		if stored.Role == "" {
			stored.Role = domain.RoleStudent
		}
		stored.LastActive = time.Now()
		m.profiles[profile.ID] = &stored
	} else {
		existing.Email = profile.Email
		existing.DisplayName = profile.DisplayName
		existing.PhotoURL = profile.PhotoURL
		existing.LastActive = time.Now()
	}
	copied := *m.profiles[profile.ID]
	return &copied, nil
}

func (m *memProfiles) SetLinkedTeacher(_ context.Context, userID, teacherEmail string) error {
	p, ok := m.profiles[userID]
	if !ok {
		return domain.ErrNotFound
	}
	p.LinkedTeacherEmail = teacherEmail
	return nil
}

func (m *memProfiles) SetRole(_ context.Context, userID string, role domain.Role) error {
	p, ok := m.profiles[userID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Role = role
	return nil
}

func (m *memProfiles) ListAll(context.Context) ([]domain.UserProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.UserProfile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memProfiles) ListByLinkedTeacher(_ context.Context, teacherEmail string) ([]domain.UserProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.UserProfile
	for _, p := range m.profiles {
		if p.LinkedTeacherEmail == teacherEmail {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memProgress struct {
	events    []domain.CompletionEvent
	appendErr error
}

func (m *memProgress) Append(_ context.Context, event *domain.CompletionEvent) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.events = append(m.events, *event)
	return nil
}

func (m *memProgress) ListByUser(_ context.Context, userID string) ([]domain.CompletionEvent, error) {
	var out []domain.CompletionEvent
	for _, e := range m.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memProgress) CountByUser(_ context.Context, userID string) (int, error) {
	seen := make(map[string]struct{})
	for _, e := range m.events {
		if e.UserID == userID {
			seen[e.LessonID] = struct{}{}
		}
	}
	return len(seen), nil
}

type testApp struct {
	app      *App
	lessons  *memLessons
	profiles *memProfiles
	progress *memProgress
}

func newTestApp(lessons ...domain.Lesson) *testApp {
	lessonStore := newMemLessons(lessons...)
	profiles := newMemProfiles()
	progressStore := &memProgress{}
	feed := progress.NewMemoryFeed()
	logger := zerolog.Nop()

	return &testApp{
		app: &App{
			Logger:     logger,
			Lessons:    lessonStore,
			Profiles:   profiles,
			Progress:   progressStore,
			Sessions:   course.NewSessionStore(),
			Resolver:   authz.NewResolver([]string{"root@example.com"}, profiles, logger),
			Recorder:   progress.NewRecorder(progressStore, feed, logger),
			Feed:       feed,
			JWTSecret:  "test-secret",
			JWTIssuer:  "english-turbo",
			SessionTTL: time.Hour,
		},
		lessons:  lessonStore,
		profiles: profiles,
		progress: progressStore,
	}
}

func studentIdentity() domain.Identity {
	return domain.Identity{ID: "student-1", Email: "ana@example.com", DisplayName: "Ana"}
}

// withIdentity injects the authenticated identity the way AuthJWT would.
func withIdentity(r *http.Request, identity domain.Identity) *http.Request {
	return r.WithContext(middleware.ContextWithIdentity(r.Context(), identity))
}

// withURLParam injects a chi route parameter.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func threeLessonCatalog() []domain.Lesson {
	mkLesson := func(id string, seq int, title string) domain.Lesson {
		return domain.Lesson{
			ID:             id,
			SequenceNumber: seq,
			Title:          title,
			Exercises: []domain.Exercise{
				{ID: id + "-ex-1", Kind: domain.ExerciseTranslation, Prompt: "Eu bebo café", CorrectAnswer: "I drink coffee"},
				{ID: id + "-ex-2", Kind: domain.ExerciseMultipleChoice, Prompt: "Eu não como maçã", CorrectAnswer: "I do not eat apple",
					Options: []string{"I do not eat apple", "I not eat apple"}},
			},
		}
	}
	return []domain.Lesson{
		mkLesson("lesson-01", 1, "Verbs & Foods"),
		mkLesson("lesson-02", 2, "Greetings"),
		mkLesson("lesson-03", 3, "Colors"),
	}
}
