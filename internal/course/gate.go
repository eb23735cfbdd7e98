package course

import "github.com/ClaudesonRodrigo/english-turbo/internal/domain"

// Status derives the gate state for one lesson given the full catalog and the
// set of completed lesson ids. The lesson with the lowest sequence number is
// always unlocked; every other lesson unlocks only when the lesson with the
// exact previous sequence number is completed. A gap in sequence numbers
// leaves the successor locked for good (fail closed).
func Status(lesson domain.Lesson, catalog []domain.Lesson, completed map[string]struct{}) domain.LessonStatus {
	_, isCompleted := completed[lesson.ID]

	if lesson.SequenceNumber == minSequence(catalog) {
		return domain.LessonStatus{Locked: false, Completed: isCompleted}
	}

	previous, ok := lessonBySequence(catalog, lesson.SequenceNumber-1)
	if !ok {
		return domain.LessonStatus{Locked: true, Completed: isCompleted}
	}

	_, prevCompleted := completed[previous.ID]
	return domain.LessonStatus{Locked: !prevCompleted, Completed: isCompleted}
}

// Statuses computes the gate for every lesson in the catalog.
func Statuses(catalog []domain.Lesson, completed map[string]struct{}) []domain.LessonStatus {
	out := make([]domain.LessonStatus, len(catalog))
	for i, lesson := range catalog {
		out[i] = Status(lesson, catalog, completed)
	}
	return out
}

func minSequence(catalog []domain.Lesson) int {
	min := 0
	for i, l := range catalog {
		if i == 0 || l.SequenceNumber < min {
			min = l.SequenceNumber
		}
	}
	return min
}

func lessonBySequence(catalog []domain.Lesson, seq int) (domain.Lesson, bool) {
	for _, l := range catalog {
		if l.SequenceNumber == seq {
			return l, true
		}
	}
	return domain.Lesson{}, false
}
