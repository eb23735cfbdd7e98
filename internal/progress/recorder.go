package progress

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ClaudesonRodrigo/english-turbo/internal/domain"
)

// Recorder appends completion events, the sole write the lesson flow
// performs. Events are append-only: redoing a lesson appends another event
// rather than being rejected.
type Recorder struct {
	events domain.ProgressRepository
	feed   Feed
	logger zerolog.Logger
	now    func() time.Time
}

func NewRecorder(events domain.ProgressRepository, feed Feed, logger zerolog.Logger) *Recorder {
	return &Recorder{events: events, feed: feed, logger: logger, now: time.Now}
}

// Record persists one CompletionEvent for the user and lesson at the current
// wall-clock time, then notifies the user's feed. The append must succeed
// before anything is published; a feed failure is logged but does not fail
// the completion, since the next history read picks the event up anyway.
func (r *Recorder) Record(ctx context.Context, identity domain.Identity, lesson domain.Lesson) (*domain.CompletionEvent, error) {
	event := &domain.CompletionEvent{
		ID:              uuid.NewString(),
		LessonID:        lesson.ID,
		LessonTitle:     lesson.Title,
		UserID:          identity.ID,
		UserDisplayName: identity.DisplayName,
		CompletedAt:     r.now().UTC(),
	}

	if err := r.events.Append(ctx, event); err != nil {
		return nil, err
	}

	if err := r.feed.Publish(ctx, identity.ID); err != nil {
		r.logger.Error().Err(err).Str("user_id", identity.ID).Msg("publish completion notification failed")
	}
	return event, nil
}
