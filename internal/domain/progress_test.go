package domain

import "testing"

func TestCompletedLessonIDs(t *testing.T) {
	events := []CompletionEvent{
		{ID: "e1", LessonID: "lesson-01"},
		{ID: "e2", LessonID: "lesson-01"},
		{ID: "e3", LessonID: "lesson-02"},
	}

	ids := CompletedLessonIDs(events)
	if len(ids) != 2 {
		t.Fatalf("CompletedLessonIDs() returned %d ids, want 2", len(ids))
	}
	for _, want := range []string{"lesson-01", "lesson-02"} {
		if _, ok := ids[want]; !ok {
			t.Errorf("CompletedLessonIDs() missing %q", want)
		}
	}
}

func TestCompletedLessonIDsEmpty(t *testing.T) {
	if ids := CompletedLessonIDs(nil); len(ids) != 0 {
		t.Errorf("CompletedLessonIDs(nil) returned %d ids, want 0", len(ids))
	}
}
