package domain

import "time"

// CompletionEvent records that a specific user finished a specific lesson at
// a specific time. Events are append-only; redoing a lesson appends another
// event and the gate deduplicates by lesson id at read time.
type CompletionEvent struct {
	ID              string    `json:"id"`
	LessonID        string    `json:"lessonId"`
	LessonTitle     string    `json:"lessonTitle"`
	UserID          string    `json:"userId"`
	UserDisplayName string    `json:"userDisplayName"`
	CompletedAt     time.Time `json:"completedAt"`
}

// CompletedLessonIDs collapses a completion history into the set of lesson
// ids it covers.
func CompletedLessonIDs(events []CompletionEvent) map[string]struct{} {
	ids := make(map[string]struct{}, len(events))
	for _, e := range events {
		ids[e.LessonID] = struct{}{}
	}
	return ids
}
