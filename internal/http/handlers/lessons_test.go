package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ClaudesonRodrigo/english-turbo/internal/domain"
)

func TestLessonsListGateProgression(t *testing.T) {
	ta := newTestApp(threeLessonCatalog()...)
	ta.progress.events = []domain.CompletionEvent{
		{ID: "e1", LessonID: "lesson-01", UserID: "student-1"},
	}

	req := withIdentity(httptest.NewRequest(http.MethodGet, "/v1/lessons", nil), studentIdentity())
	rec := httptest.NewRecorder()
	ta.app.LessonsList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body struct {
		Items []lessonSummaryDTO `json:"items"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(body.Items))
	}

	want := []struct {
		id        string
		locked    bool
		completed bool
	}{
		{"lesson-01", false, true},
		{"lesson-02", false, false},
		{"lesson-03", true, false},
	}
	for i, w := range want {
		item := body.Items[i]
		if item.ID != w.id || item.Locked != w.locked || item.Completed != w.completed {
			t.Errorf("items[%d] = {%s locked=%v completed=%v}, want {%s locked=%v completed=%v}",
				i, item.ID, item.Locked, item.Completed, w.id, w.locked, w.completed)
		}
	}
}

func TestLessonGet(t *testing.T) {
	ta := newTestApp(threeLessonCatalog()...)

	req := withIdentity(httptest.NewRequest(http.MethodGet, "/v1/lessons/lesson-01", nil), studentIdentity())
	req = withURLParam(req, "id", "lesson-01")
	rec := httptest.NewRecorder()
	ta.app.LessonGet(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body lessonDTO
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.ID != "lesson-01" {
		t.Errorf("id = %q, want %q", body.ID, "lesson-01")
	}
	if body.Status.Locked {
		t.Error("first lesson reported locked")
	}
	if len(body.Exercises) != 2 {
		t.Fatalf("len(exercises) = %d, want 2", len(body.Exercises))
	}
}

func TestLessonGetNotFound(t *testing.T) {
	ta := newTestApp(threeLessonCatalog()...)

	req := withIdentity(httptest.NewRequest(http.MethodGet, "/v1/lessons/nope", nil), studentIdentity())
	req = withURLParam(req, "id", "nope")
	rec := httptest.NewRecorder()
	ta.app.LessonGet(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "lesson_not_found" {
		t.Errorf("error = %q, want %q", body["error"], "lesson_not_found")
	}
}

func TestExerciseDTONeverCarriesAnswer(t *testing.T) {
	ta := newTestApp(threeLessonCatalog()...)

	req := withIdentity(httptest.NewRequest(http.MethodGet, "/v1/lessons/lesson-01", nil), studentIdentity())
	req = withURLParam(req, "id", "lesson-01")
	rec := httptest.NewRecorder()
	ta.app.LessonGet(rec, req)

	var payload map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	exercises, _ := payload["exercises"].([]any)
	for _, raw := range exercises {
		ex, _ := raw.(map[string]any)
		for key := range ex {
			if key == "correctAnswer" || key == "correct_answer" {
				t.Fatalf("exercise payload leaked the correct answer: %v", ex)
			}
		}
	}
}

func TestLessonsListStoreFailure(t *testing.T) {
	ta := newTestApp(threeLessonCatalog()...)
	ta.lessons.err = context.DeadlineExceeded

	req := withIdentity(httptest.NewRequest(http.MethodGet, "/v1/lessons", nil), studentIdentity())
	rec := httptest.NewRecorder()
	ta.app.LessonsList(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}
