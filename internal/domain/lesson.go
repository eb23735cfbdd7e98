package domain

import "time"

// ExerciseKind enumerates supported exercise formats.
type ExerciseKind string

const (
	ExerciseTranslation    ExerciseKind = "translation"
	ExerciseMultipleChoice ExerciseKind = "multiple_choice"
	ExerciseComplete       ExerciseKind = "complete"
)

// VocabularyItem is a single EN/PT vocabulary pair taught by a lesson.
type VocabularyItem struct {
	EN       string `json:"en"`
	PT       string `json:"pt"`
	Category string `json:"category,omitempty"`
}

// Exercise is one question inside a lesson. Exercises are answered strictly
// in the order they appear.
type Exercise struct {
	ID            string       `json:"id"`
	Kind          ExerciseKind `json:"kind"`
	Prompt        string       `json:"prompt"`
	CorrectAnswer string       `json:"correctAnswer"`
	Options       []string     `json:"options,omitempty"`
}

// Lesson is a published unit of the learning path. SequenceNumber is unique
// and defines the total order of the catalog; lessons are immutable once
// published and only replaced wholesale by bulk seeding.
type Lesson struct {
	ID             string           `json:"id"`
	SequenceNumber int              `json:"sequenceNumber"`
	Title          string           `json:"title"`
	Theory         []string         `json:"theory"`
	Vocabulary     []VocabularyItem `json:"vocabulary"`
	Exercises      []Exercise       `json:"exercises"`
	CreatedAt      time.Time        `json:"-"`
	UpdatedAt      time.Time        `json:"-"`
}

// LessonStatus is the derived gate state for one lesson and one user.
type LessonStatus struct {
	Locked    bool `json:"locked"`
	Completed bool `json:"completed"`
}
