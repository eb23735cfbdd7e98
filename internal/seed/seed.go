// Package seed validates and loads bulk lesson catalogs, shared by the admin
// seeding endpoint and the cmd/seed tool.
package seed

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ClaudesonRodrigo/english-turbo/internal/domain"
)

// Load reads a lesson catalog from a JSON file and validates it.
func Load(path string) ([]domain.Lesson, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var lessons []domain.Lesson
	if err := json.Unmarshal(raw, &lessons); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	if err := Validate(lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

// Validate checks the catalog invariants before anything is written: ids and
// sequence numbers present and unique, at least one exercise per lesson, and
// every exercise carrying a correct answer.
func Validate(lessons []domain.Lesson) error {
	if len(lessons) == 0 {
		return fmt.Errorf("seed contains no lessons")
	}
	seenIDs := make(map[string]struct{}, len(lessons))
	seenSeq := make(map[int]struct{}, len(lessons))
	for _, lesson := range lessons {
		if lesson.ID == "" {
			return fmt.Errorf("lesson with empty id")
		}
		if _, dup := seenIDs[lesson.ID]; dup {
			return fmt.Errorf("duplicate lesson id %q", lesson.ID)
		}
		seenIDs[lesson.ID] = struct{}{}

		if lesson.SequenceNumber < 1 {
			return fmt.Errorf("lesson %s: sequence number must be >= 1", lesson.ID)
		}
		if _, dup := seenSeq[lesson.SequenceNumber]; dup {
			return fmt.Errorf("lesson %s: duplicate sequence number %d", lesson.ID, lesson.SequenceNumber)
		}
		seenSeq[lesson.SequenceNumber] = struct{}{}

		if lesson.Title == "" {
			return fmt.Errorf("lesson %s: empty title", lesson.ID)
		}
		if len(lesson.Exercises) == 0 {
			return fmt.Errorf("lesson %s: no exercises", lesson.ID)
		}
		for _, ex := range lesson.Exercises {
			if ex.ID == "" {
				return fmt.Errorf("lesson %s: exercise with empty id", lesson.ID)
			}
			if ex.CorrectAnswer == "" {
				return fmt.Errorf("lesson %s: exercise %s has no correct answer", lesson.ID, ex.ID)
			}
			switch ex.Kind {
			case domain.ExerciseTranslation, domain.ExerciseComplete:
			case domain.ExerciseMultipleChoice:
				if len(ex.Options) < 2 {
					return fmt.Errorf("lesson %s: exercise %s needs at least two options", lesson.ID, ex.ID)
				}
			default:
				return fmt.Errorf("lesson %s: exercise %s has unknown kind %q", lesson.ID, ex.ID, ex.Kind)
			}
		}
	}
	return nil
}
