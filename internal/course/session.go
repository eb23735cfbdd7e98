package course

import (
	"sync"

	"github.com/ClaudesonRodrigo/english-turbo/internal/domain"
)

// SessionView is a read-only snapshot of an attempt session, safe to hand to
// transport code. It never carries the correct answer.
type SessionView struct {
	LessonID      string       `json:"lessonId"`
	ExerciseIndex int          `json:"exerciseIndex"`
	ExerciseCount int          `json:"exerciseCount"`
	State         AttemptState `json:"state"`
	Attempts      int          `json:"attempts"`
	HintAvailable bool         `json:"hintAvailable"`
	HintVisible   bool         `json:"hintVisible"`
	Finished      bool         `json:"finished"`
}

// SessionStore keeps attempt sessions in memory, one per (user, lesson) pair.
// All access is serialized through the store mutex; the HTTP layer is the
// only writer and each user works one exercise at a time.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[sessionKey]*Attempt
}

type sessionKey struct {
	userID   string
	lessonID string
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[sessionKey]*Attempt)}
}

// Start creates a session for the lesson, or resumes the existing one.
func (s *SessionStore) Start(userID string, lesson domain.Lesson) SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := sessionKey{userID: userID, lessonID: lesson.ID}
	attempt, ok := s.sessions[key]
	if !ok {
		attempt = NewAttempt(lesson)
		s.sessions[key] = attempt
	}
	return snapshot(attempt)
}

// View returns the current session state.
func (s *SessionStore) View(userID, lessonID string) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempt, ok := s.sessions[sessionKey{userID: userID, lessonID: lessonID}]
	if !ok {
		return SessionView{}, domain.ErrSessionNotFound
	}
	return snapshot(attempt), nil
}

// Submit forwards an answer to the session's attempt machine.
func (s *SessionStore) Submit(userID, lessonID, answer string) (bool, SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempt, ok := s.sessions[sessionKey{userID: userID, lessonID: lessonID}]
	if !ok {
		return false, SessionView{}, domain.ErrSessionNotFound
	}
	correct, err := attempt.Submit(answer)
	if err != nil {
		return false, SessionView{}, err
	}
	return correct, snapshot(attempt), nil
}

// RevealHint marks the hint visible and returns its text.
func (s *SessionStore) RevealHint(userID, lessonID string) (string, SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempt, ok := s.sessions[sessionKey{userID: userID, lessonID: lessonID}]
	if !ok {
		return "", SessionView{}, domain.ErrSessionNotFound
	}
	hint, err := attempt.RevealHint()
	if err != nil {
		return "", SessionView{}, err
	}
	return hint, snapshot(attempt), nil
}

// Advance moves the session forward. finished is true once the last exercise
// has been passed; the caller records the completion and then calls End.
func (s *SessionStore) Advance(userID, lessonID string) (bool, SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempt, ok := s.sessions[sessionKey{userID: userID, lessonID: lessonID}]
	if !ok {
		return false, SessionView{}, domain.ErrSessionNotFound
	}
	finished, err := attempt.Advance()
	if err != nil {
		return false, SessionView{}, err
	}
	return finished, snapshot(attempt), nil
}

// Lesson returns the lesson a session was started with.
func (s *SessionStore) Lesson(userID, lessonID string) (domain.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempt, ok := s.sessions[sessionKey{userID: userID, lessonID: lessonID}]
	if !ok {
		return domain.Lesson{}, domain.ErrSessionNotFound
	}
	return attempt.Lesson(), nil
}

// End drops a session once its completion event has been persisted.
func (s *SessionStore) End(userID, lessonID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionKey{userID: userID, lessonID: lessonID})
}

func snapshot(a *Attempt) SessionView {
	return SessionView{
		LessonID:      a.Lesson().ID,
		ExerciseIndex: a.ExerciseIndex(),
		ExerciseCount: a.ExerciseCount(),
		State:         a.State(),
		Attempts:      a.Attempts(),
		HintAvailable: a.HintAvailable(),
		HintVisible:   a.HintVisible(),
		Finished:      a.Finished(),
	}
}
