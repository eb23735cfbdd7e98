package course

import (
	"strings"

	"github.com/ClaudesonRodrigo/english-turbo/internal/domain"
)

// AttemptState is the visible state of the current exercise within a session.
type AttemptState string

const (
	StateAnswering AttemptState = "answering"
	StateCorrect   AttemptState = "correct"
	StateIncorrect AttemptState = "incorrect"
)

// hintThreshold is the number of wrong submissions after which the hint
// becomes available.
const hintThreshold = 3

// minHintLen is the minimum number of characters a hint reveals.
const minHintLen = 4

// Attempt walks a user through one lesson's exercises in order. It tracks the
// attempt count, hint availability and hint visibility for the current
// exercise only; all three reset when the session moves to the next exercise.
// Attempt is not safe for concurrent use; SessionStore serializes access.
type Attempt struct {
	lesson        domain.Lesson
	exerciseIndex int
	attempts      int
	state         AttemptState
	hintAvailable bool
	hintVisible   bool
	finished      bool
}

// NewAttempt starts a session at the first exercise of the lesson.
func NewAttempt(lesson domain.Lesson) *Attempt {
	return &Attempt{lesson: lesson, state: StateAnswering}
}

func (a *Attempt) Lesson() domain.Lesson { return a.lesson }
func (a *Attempt) ExerciseIndex() int    { return a.exerciseIndex }
func (a *Attempt) ExerciseCount() int    { return len(a.lesson.Exercises) }
func (a *Attempt) Attempts() int         { return a.attempts }
func (a *Attempt) State() AttemptState   { return a.state }
func (a *Attempt) HintAvailable() bool   { return a.hintAvailable }
func (a *Attempt) HintVisible() bool     { return a.hintVisible }
func (a *Attempt) Finished() bool        { return a.finished }

// Exercise returns the exercise the session currently points at.
func (a *Attempt) Exercise() domain.Exercise {
	return a.lesson.Exercises[a.exerciseIndex]
}

// Submit checks an answer against the current exercise. Empty answers are
// rejected before they reach the state machine. A wrong answer increments the
// attempt count and, from the third wrong answer on, makes the hint available
// without showing it.
func (a *Attempt) Submit(answer string) (bool, error) {
	if a.finished {
		return false, domain.ErrLessonFinished
	}
	if a.state == StateCorrect {
		return false, domain.ErrAlreadyCorrect
	}
	if strings.TrimSpace(answer) == "" {
		return false, domain.ErrEmptyAnswer
	}

	if AnswersMatch(answer, a.Exercise().CorrectAnswer) {
		a.state = StateCorrect
		return true, nil
	}

	a.attempts++
	a.state = StateIncorrect
	if a.attempts >= hintThreshold {
		a.hintAvailable = true
	}
	return false, nil
}

// RevealHint makes the hint visible and returns its text. It fails until the
// attempt count has crossed the threshold.
func (a *Attempt) RevealHint() (string, error) {
	if a.finished || a.state == StateCorrect {
		return "", domain.ErrHintLocked
	}
	if !a.hintAvailable {
		return "", domain.ErrHintLocked
	}
	a.hintVisible = true
	return Hint(a.Exercise().CorrectAnswer), nil
}

// Advance moves past a correctly answered exercise. On intermediate exercises
// it resets the attempt and hint state and returns false; on the last
// exercise it marks the session finished and returns true, leaving the
// progress write to the caller. Advancing a finished session reports true
// again without changing state, so a failed progress write can be retried.
func (a *Attempt) Advance() (bool, error) {
	if a.finished {
		return true, nil
	}
	if a.state != StateCorrect {
		return false, domain.ErrNotCorrectYet
	}

	if a.exerciseIndex+1 >= len(a.lesson.Exercises) {
		a.finished = true
		return true, nil
	}

	a.exerciseIndex++
	a.attempts = 0
	a.state = StateAnswering
	a.hintAvailable = false
	a.hintVisible = false
	return false, nil
}

// Hint returns the first max(4, len/3) characters of the correct answer
// followed by an ellipsis marker.
func Hint(correct string) string {
	runes := []rune(correct)
	limit := len(runes) / 3
	if limit < minHintLen {
		limit = minHintLen
	}
	if limit > len(runes) {
		limit = len(runes)
	}
	return string(runes[:limit]) + "..."
}
