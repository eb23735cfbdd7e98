package course

import (
	"errors"
	"testing"

	"github.com/ClaudesonRodrigo/english-turbo/internal/domain"
)

func twoExerciseLesson() domain.Lesson {
	return domain.Lesson{
		ID:             "lesson-01",
		SequenceNumber: 1,
		Title:          "Verbs & Foods",
		Exercises: []domain.Exercise{
			{ID: "ex-1", Kind: domain.ExerciseTranslation, Prompt: "Eu bebo café", CorrectAnswer: "I drink coffee"},
			{ID: "ex-2", Kind: domain.ExerciseMultipleChoice, Prompt: "Eu não como maçã", CorrectAnswer: "I do not eat apple",
				Options: []string{"I do not eat apple", "I not eat apple"}},
		},
	}
}

func TestSubmitCorrectAnswer(t *testing.T) {
	a := NewAttempt(twoExerciseLesson())

	correct, err := a.Submit("  i DRINK coffee ")
	if err != nil {
		t.Fatalf("Submit() unexpected error: %v", err)
	}
	if !correct {
		t.Error("Submit() = false for a normalized match")
	}
	if a.State() != StateCorrect {
		t.Errorf("State() = %q, want %q", a.State(), StateCorrect)
	}
}

func TestSubmitEmptyAnswer(t *testing.T) {
	a := NewAttempt(twoExerciseLesson())

	if _, err := a.Submit("   "); !errors.Is(err, domain.ErrEmptyAnswer) {
		t.Errorf("Submit() error = %v, want ErrEmptyAnswer", err)
	}
	if a.Attempts() != 0 {
		t.Errorf("Attempts() = %d after empty submit, want 0", a.Attempts())
	}
}

func TestSubmitAfterCorrect(t *testing.T) {
	a := NewAttempt(twoExerciseLesson())
	if _, err := a.Submit("I drink coffee"); err != nil {
		t.Fatalf("Submit() unexpected error: %v", err)
	}
	if _, err := a.Submit("I drink coffee"); !errors.Is(err, domain.ErrAlreadyCorrect) {
		t.Errorf("Submit() error = %v, want ErrAlreadyCorrect", err)
	}
}

func TestHintUnlocksAtThirdWrongAnswer(t *testing.T) {
	a := NewAttempt(twoExerciseLesson())

	for i := 1; i <= 2; i++ {
		if _, err := a.Submit("wrong"); err != nil {
			t.Fatalf("Submit() unexpected error: %v", err)
		}
		if a.HintAvailable() {
			t.Fatalf("HintAvailable() = true after %d wrong answers", i)
		}
		if _, err := a.RevealHint(); !errors.Is(err, domain.ErrHintLocked) {
			t.Fatalf("RevealHint() error = %v after %d wrong answers, want ErrHintLocked", err, i)
		}
	}

	if _, err := a.Submit("wrong again"); err != nil {
		t.Fatalf("Submit() unexpected error: %v", err)
	}
	if !a.HintAvailable() {
		t.Fatal("HintAvailable() = false after third wrong answer")
	}
	if a.HintVisible() {
		t.Error("HintVisible() = true before RevealHint")
	}

	hint, err := a.RevealHint()
	if err != nil {
		t.Fatalf("RevealHint() unexpected error: %v", err)
	}
	if hint != "I dr..." {
		t.Errorf("RevealHint() = %q, want %q", hint, "I dr...")
	}
	if !a.HintVisible() {
		t.Error("HintVisible() = false after RevealHint")
	}
}

func TestHintStaysAvailableAfterFurtherAttempts(t *testing.T) {
	a := NewAttempt(twoExerciseLesson())
	for i := 0; i < 4; i++ {
		if _, err := a.Submit("wrong"); err != nil {
			t.Fatalf("Submit() unexpected error: %v", err)
		}
	}
	if !a.HintAvailable() {
		t.Error("HintAvailable() = false after four wrong answers")
	}
}

func TestAdvanceRequiresCorrectState(t *testing.T) {
	a := NewAttempt(twoExerciseLesson())

	if _, err := a.Advance(); !errors.Is(err, domain.ErrNotCorrectYet) {
		t.Errorf("Advance() error = %v while answering, want ErrNotCorrectYet", err)
	}
	if _, err := a.Submit("wrong"); err != nil {
		t.Fatalf("Submit() unexpected error: %v", err)
	}
	if _, err := a.Advance(); !errors.Is(err, domain.ErrNotCorrectYet) {
		t.Errorf("Advance() error = %v while incorrect, want ErrNotCorrectYet", err)
	}
}

func TestAdvanceResetsAttemptState(t *testing.T) {
	a := NewAttempt(twoExerciseLesson())

	for i := 0; i < 3; i++ {
		if _, err := a.Submit("wrong"); err != nil {
			t.Fatalf("Submit() unexpected error: %v", err)
		}
	}
	if _, err := a.RevealHint(); err != nil {
		t.Fatalf("RevealHint() unexpected error: %v", err)
	}
	if _, err := a.Submit("I drink coffee"); err != nil {
		t.Fatalf("Submit() unexpected error: %v", err)
	}

	finished, err := a.Advance()
	if err != nil {
		t.Fatalf("Advance() unexpected error: %v", err)
	}
	if finished {
		t.Fatal("Advance() = finished on an intermediate exercise")
	}
	if a.ExerciseIndex() != 1 {
		t.Errorf("ExerciseIndex() = %d, want 1", a.ExerciseIndex())
	}
	if a.Attempts() != 0 || a.HintAvailable() || a.HintVisible() || a.State() != StateAnswering {
		t.Errorf("Advance() left stale state: attempts=%d available=%v visible=%v state=%q",
			a.Attempts(), a.HintAvailable(), a.HintVisible(), a.State())
	}
}

func TestAdvanceFinishesLesson(t *testing.T) {
	a := NewAttempt(twoExerciseLesson())

	if _, err := a.Submit("I drink coffee"); err != nil {
		t.Fatalf("Submit() unexpected error: %v", err)
	}
	if _, err := a.Advance(); err != nil {
		t.Fatalf("Advance() unexpected error: %v", err)
	}
	if _, err := a.Submit("I do not eat apple"); err != nil {
		t.Fatalf("Submit() unexpected error: %v", err)
	}

	finished, err := a.Advance()
	if err != nil {
		t.Fatalf("Advance() unexpected error: %v", err)
	}
	if !finished {
		t.Fatal("Advance() = false on the last exercise")
	}
	if !a.Finished() {
		t.Error("Finished() = false after final advance")
	}

	// A finished session keeps reporting finished so a failed progress write
	// can be retried without answering again.
	finished, err = a.Advance()
	if err != nil {
		t.Fatalf("Advance() on finished session unexpected error: %v", err)
	}
	if !finished {
		t.Error("Advance() on finished session = false, want true")
	}

	if _, err := a.Submit("anything"); !errors.Is(err, domain.ErrLessonFinished) {
		t.Errorf("Submit() on finished session error = %v, want ErrLessonFinished", err)
	}
	if _, err := a.RevealHint(); !errors.Is(err, domain.ErrHintLocked) {
		t.Errorf("RevealHint() on finished session error = %v, want ErrHintLocked", err)
	}
}

func TestHint(t *testing.T) {
	cases := []struct {
		correct string
		want    string
	}{
		// len/3 below the minimum reveals four characters.
		{"I drink coffee", "I dr..."},
		// 18 characters, 18/3 = 6.
		{"I do not eat apple", "I do n..."},
		{"tea", "tea..."},
		{"go", "go..."},
	}
	for _, tc := range cases {
		if got := Hint(tc.correct); got != tc.want {
			t.Errorf("Hint(%q) = %q, want %q", tc.correct, got, tc.want)
		}
	}
}
