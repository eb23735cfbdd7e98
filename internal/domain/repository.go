package domain

import "context"

// LessonRepository defines access to the published lesson catalog.
type LessonRepository interface {
	List(ctx context.Context) ([]Lesson, error)
	GetByID(ctx context.Context, id string) (*Lesson, error)
	UpsertAll(ctx context.Context, lessons []Lesson) error
}

// ProfileRepository defines persistence for user profiles. Upsert carries
// merge semantics: absent fields on the input leave stored values untouched.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*UserProfile, error)
	Upsert(ctx context.Context, profile *UserProfile) (*UserProfile, error)
	SetLinkedTeacher(ctx context.Context, userID, teacherEmail string) error
	SetRole(ctx context.Context, userID string, role Role) error
	ListAll(ctx context.Context) ([]UserProfile, error)
	ListByLinkedTeacher(ctx context.Context, teacherEmail string) ([]UserProfile, error)
}

// ProgressRepository defines the append-only completion history.
type ProgressRepository interface {
	Append(ctx context.Context, event *CompletionEvent) error
	ListByUser(ctx context.Context, userID string) ([]CompletionEvent, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}
